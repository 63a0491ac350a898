package film

import (
	"context"
	"strings"

	"github.com/nathants/filmsync/lib"
)

type ParameterStore interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

type SecretStore interface {
	GetSecret(ctx context.Context, id string) (string, error)
}

// ResolveEndpoint reads the cluster endpoint from the parameter store.
func ResolveEndpoint(ctx context.Context, store ParameterStore, name string) (string, error) {
	value, err := store.GetParameter(ctx, name)
	if err != nil {
		return "", stageError(ErrConfigUnavailable, err, "get parameter %s", name)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", stageError(ErrConfigUnavailable, nil, "empty parameter %s", name)
	}
	lib.Logger.Println("endpoint:", value)
	return value, nil
}

// ResolveCredentials reads and parses the database secret. The password is
// never logged.
func ResolveCredentials(ctx context.Context, store SecretStore, id string) (*Credentials, error) {
	payload, err := store.GetSecret(ctx, id)
	if err != nil {
		return nil, stageError(ErrSecretUnavailable, err, "get secret %s", id)
	}
	creds, err := ParseCredentials(payload)
	if err != nil {
		return nil, stageError(ErrSecretUnavailable, err, "parse secret %s", id)
	}
	lib.Logger.Println("credentials:", creds)
	return creds, nil
}
