package lib

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
)

const sessionMaxAttempts = 5

var sess *aws.Config
var sessLock sync.Mutex

func sessionOptions(region string) []func(*config.LoadOptions) error {
	opts := []func(*config.LoadOptions) error{
		config.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), sessionMaxAttempts)
		}),
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	return opts
}

func Session() *aws.Config {
	sessLock.Lock()
	defer sessLock.Unlock()
	if sess == nil {
		cfg, err := config.LoadDefaultConfig(context.Background(), sessionOptions("")...)
		if err != nil {
			panic(err)
		}
		sess = &cfg
	}
	return sess
}
