package lib

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/rds/auth"
)

// RDSAuthToken builds a short lived IAM database authentication token which
// is used in place of the password when connecting.
func RDSAuthToken(ctx context.Context, endpoint string, port int, user string) (string, error) {
	if doDebug {
		defer NewDebug("RDSAuthToken").Log()
	}
	cfg := Session()
	return rdsAuthToken(ctx, cfg.Region, cfg.Credentials, endpoint, port, user)
}

func rdsAuthToken(ctx context.Context, region string, creds aws.CredentialsProvider, endpoint string, port int, user string) (string, error) {
	token, err := auth.BuildAuthToken(ctx, fmt.Sprintf("%s:%d", endpoint, port), region, user, creds)
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	return token, nil
}
