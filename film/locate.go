package film

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nathants/filmsync/lib"
)

// Locator reports the public address the function egresses from.
type Locator interface {
	Locate(ctx context.Context) (string, error)
}

type HTTPLocator struct {
	Client *http.Client
	URL    string
}

// Locate returns the response body as is, no validation is done.
func (l *HTTPLocator) Locate(ctx context.Context) (string, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return "", stageError(ErrEnrichmentFailed, err, "get %s", l.URL)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", stageError(ErrEnrichmentFailed, err, "get %s", l.URL)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", stageError(ErrEnrichmentFailed, err, "read %s", l.URL)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", stageError(ErrEnrichmentFailed, fmt.Errorf("status %d", resp.StatusCode), "get %s", l.URL)
	}
	lib.Logger.Println("location:", strings.TrimSpace(string(body)))
	return string(body), nil
}
