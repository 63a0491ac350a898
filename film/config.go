package film

import (
	"time"

	"github.com/alexflint/go-arg"
)

const (
	EndpointParameter = "/rds/aurorapostgres/cluster_endpoint"
	SecretID          = "prod/aurora-postgres-cluster-1"
	DatabasePort      = 5432
	DatabaseName      = "dvdrental"
	SelectAllFilms    = "SELECT * FROM FILM"
	FilmTable         = "film_table"
	LocationURL       = "https://checkip.amazonaws.com"
	ProbeTimeout      = 3 * time.Second
)

// Config holds the fixed lookup keys and identifiers of a run. Every field can
// be overridden by flag or by its FILM_* environment variable.
type Config struct {
	EndpointParameter string        `arg:"--endpoint-parameter,env:FILM_ENDPOINT_PARAMETER" help:"ssm parameter holding the cluster endpoint"`
	SecretID          string        `arg:"--secret-id,env:FILM_SECRET_ID" help:"secretsmanager id holding the database credentials"`
	Port              int           `arg:"--port,env:FILM_DB_PORT"`
	Database          string        `arg:"--database,env:FILM_DB_NAME"`
	SSLMode           string        `arg:"--sslmode,env:FILM_DB_SSLMODE"`
	Query             string        `arg:"--query,env:FILM_QUERY"`
	Table             string        `arg:"--table,env:FILM_TABLE" help:"dynamodb destination table"`
	LocationURL       string        `arg:"--location-url,env:FILM_LOCATION_URL"`
	ProbeTimeout      time.Duration `arg:"--probe-timeout,env:FILM_PROBE_TIMEOUT"`
	NoProbe           bool          `arg:"--no-probe,env:FILM_NO_PROBE" help:"skip the dns and reachability probe"`
	IAMAuth           bool          `arg:"--iam-auth,env:FILM_IAM_AUTH" help:"connect with an rds iam token instead of the secret password"`
	StrictLocation    bool          `arg:"--strict-location,env:FILM_STRICT_LOCATION" help:"fail the run when the location lookup fails"`
}

func DefaultConfig() Config {
	return Config{
		EndpointParameter: EndpointParameter,
		SecretID:          SecretID,
		Port:              DatabasePort,
		Database:          DatabaseName,
		SSLMode:           "require",
		Query:             SelectAllFilms,
		Table:             FilmTable,
		LocationURL:       LocationURL,
		ProbeTimeout:      ProbeTimeout,
	}
}

// ConfigFromEnv applies FILM_* environment overrides to the defaults. It is
// used by the lambda entry point, which has no command line.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	p, err := arg.NewParser(arg.Config{Program: "film"}, &cfg)
	if err != nil {
		return Config{}, err
	}
	err = p.Parse(nil)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
