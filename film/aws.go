package film

import (
	"context"
	"net/http"

	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nathants/filmsync/lib"
)

type ssmParameters struct{}

func (ssmParameters) GetParameter(ctx context.Context, name string) (string, error) {
	return lib.SSMGetParameter(ctx, name)
}

type secretsManagerSecrets struct{}

func (secretsManagerSecrets) GetSecret(ctx context.Context, id string) (string, error) {
	return lib.SecretsManagerGetSecretString(ctx, id)
}

type rdsTokens struct{}

func (rdsTokens) Token(ctx context.Context, endpoint string, port int, user string) (string, error) {
	return lib.RDSAuthToken(ctx, endpoint, port, user)
}

type dynamoDBItems struct{}

func (dynamoDBItems) PutItem(ctx context.Context, table string, item map[string]ddbtypes.AttributeValue) error {
	return lib.DynamoDBPutItem(ctx, table, item)
}

// NewAWSServices wires a run to ssm, secretsmanager, aurora postgres and
// dynamodb through the shared lib clients.
func NewAWSServices(cfg Config) Services {
	fetcher := &SQLFetcher{
		Driver:   "postgres",
		Port:     cfg.Port,
		Database: cfg.Database,
		SSLMode:  cfg.SSLMode,
		Query:    cfg.Query,
	}
	if cfg.IAMAuth {
		fetcher.Tokens = rdsTokens{}
	}
	return Services{
		Parameters: ssmParameters{},
		Secrets:    secretsManagerSecrets{},
		Prober:     &NetProber{Port: cfg.Port, Timeout: cfg.ProbeTimeout},
		Films:      fetcher,
		Locator:    &HTTPLocator{Client: &http.Client{}, URL: cfg.LocationURL},
		Items:      dynamoDBItems{},
	}
}
