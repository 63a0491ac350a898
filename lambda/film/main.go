//
// attr: concurrency 1
// attr: memory 256
// attr: timeout 120
// policy: AWSLambdaBasicExecutionRole
// policy: AWSLambdaVPCAccessExecutionRole
// allow: ssm:GetParameter arn:aws:ssm:*:*:parameter/rds/aurorapostgres/cluster_endpoint
// allow: secretsmanager:GetSecretValue arn:aws:secretsmanager:*:*:secret:prod/aurora-postgres-cluster-1*
// allow: dynamodb:PutItem arn:aws:dynamodb:*:*:table/film_table
// trigger: api

package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nathants/filmsync/film"
	"github.com/nathants/filmsync/lib"
)

type runner interface {
	Run(ctx context.Context) (*film.Response, error)
}

var newRunner = func(cfg film.Config) runner {
	return &film.Pipeline{
		Config:   cfg,
		Services: film.NewAWSServices(cfg),
		Out:      os.Stdout,
	}
}

var headers = map[string]string{
	"Content-Type":    "application/json",
	"X-Custom-Header": "application/json",
}

func handleRequest(ctx context.Context, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	cfg, err := film.ConfigFromEnv()
	if err != nil {
		lib.Logger.Println("error:", err)
		return events.APIGatewayProxyResponse{}, err
	}
	resp, err := newRunner(cfg).Run(ctx)
	if err != nil {
		lib.Logger.Println("error:", err)
		return events.APIGatewayProxyResponse{}, err
	}
	body, err := resp.JSON()
	if err != nil {
		lib.Logger.Println("error:", err)
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

func main() {
	lambda.Start(handleRequest)
}
