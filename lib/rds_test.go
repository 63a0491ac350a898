package lib

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/credentials"
)

func TestRDSAuthToken(t *testing.T) {
	creds := credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "SECRETEXAMPLE", "")
	token, err := rdsAuthToken(context.Background(), "us-east-1", creds, "db.example.internal", 5432, "app")
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(token, "https://") {
		t.Fatalf("token carries a scheme: %s", token)
	}
	u, err := url.Parse("https://" + token)
	if err != nil {
		t.Fatal(err)
	}
	if u.Host != "db.example.internal:5432" {
		t.Errorf("got host %q, want %q", u.Host, "db.example.internal:5432")
	}
	query := u.Query()
	for key, want := range map[string]string{"Action": "connect", "DBUser": "app"} {
		if got := query.Get(key); got != want {
			t.Errorf("got %s=%q, want %q", key, got, want)
		}
	}
	if query.Get("X-Amz-Signature") == "" {
		t.Errorf("token is not signed: %s", token)
	}
}
