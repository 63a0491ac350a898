package lib

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

var secretsManagerClient *secretsmanager.Client
var secretsManagerClientLock sync.Mutex

func SecretsManagerClient() *secretsmanager.Client {
	secretsManagerClientLock.Lock()
	defer secretsManagerClientLock.Unlock()
	if secretsManagerClient == nil {
		secretsManagerClient = secretsmanager.NewFromConfig(*Session())
	}
	return secretsManagerClient
}

func SecretsManagerGetSecretString(ctx context.Context, secretID string) (string, error) {
	if doDebug {
		defer NewDebug("SecretsManagerGetSecretString").Log()
	}
	out, err := SecretsManagerClient().GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	switch {
	case out.SecretString != nil:
		return *out.SecretString, nil
	case out.SecretBinary != nil:
		return string(out.SecretBinary), nil
	default:
		err := fmt.Errorf("secret has no value: %s", secretID)
		Logger.Println("error:", err)
		return "", err
	}
}
