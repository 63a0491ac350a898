package lib

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

var ssmClient *ssm.Client
var ssmClientLock sync.Mutex

func SSMClient() *ssm.Client {
	ssmClientLock.Lock()
	defer ssmClientLock.Unlock()
	if ssmClient == nil {
		ssmClient = ssm.NewFromConfig(*Session())
	}
	return ssmClient
}

// SSMGetParameter returns the decrypted value of a parameter. Lookup errors,
// including ParameterNotFound, are returned unchanged.
func SSMGetParameter(ctx context.Context, name string) (string, error) {
	if doDebug {
		defer NewDebug("SSMGetParameter").Log()
	}
	out, err := SSMClient().GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		err := fmt.Errorf("parameter has no value: %s", name)
		Logger.Println("error:", err)
		return "", err
	}
	return *out.Parameter.Value, nil
}
