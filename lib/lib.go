package lib

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
)

var Commands = make(map[string]func())

var Args = make(map[string]ArgsStruct)

type ArgsStruct interface {
	Description() string
}

func Retry(ctx context.Context, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.Attempts(6),
		retry.Delay(150*time.Millisecond),
		retry.MaxDelay(3*time.Second),
	)
}

func SplitTwice(s string, sep string) (string, string, string, error) {
	parts := strings.SplitN(s, sep, 3)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("cannot split twice: %s", s)
	}
	return parts[0], parts[1], parts[2], nil
}

func splitOnce(s string, sep string) (head, tail string, err error) {
	parts := strings.SplitN(s, sep, 2)
	if len(parts) == 2 {
		return parts[0], parts[1], nil
	}
	return "", "", fmt.Errorf("cannot splitOnce: %s", s)
}
