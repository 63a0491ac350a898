package film

import (
	"context"
	"io"
	"time"

	"github.com/gofrs/uuid"
	"github.com/nathants/filmsync/lib"
)

// Services are the external capabilities a run depends on. A nil Prober
// skips the probe, every other field is required.
type Services struct {
	Parameters ParameterStore
	Secrets    SecretStore
	Prober     Prober
	Films      FilmSource
	Locator    Locator
	Items      ItemWriter
}

type Pipeline struct {
	Config   Config
	Services Services
	// Out receives the response json, nil means do not emit.
	Out io.Writer
}

// Run executes endpoint, credentials, probe, fetch, locate, persist and
// respond in that order. Any fatal failure stops the run at that step.
func (p *Pipeline) Run(ctx context.Context) (*Response, error) {
	runID := uuid.Must(uuid.NewV4()).String()
	start := time.Now()
	lib.Logger.Println("run:", runID)

	endpoint, err := ResolveEndpoint(ctx, p.Services.Parameters, p.Config.EndpointParameter)
	if err != nil {
		lib.Logger.Println("error:", runID, err)
		return nil, err
	}

	creds, err := ResolveCredentials(ctx, p.Services.Secrets, p.Config.SecretID)
	if err != nil {
		lib.Logger.Println("error:", runID, err)
		return nil, err
	}

	var probe *Probe
	if !p.Config.NoProbe && p.Services.Prober != nil {
		probe = p.Services.Prober.Probe(ctx, endpoint)
	}

	films, err := p.Services.Films.Films(ctx, endpoint, creds)
	if err != nil {
		lib.Logger.Println("error:", runID, err)
		return nil, err
	}

	var location *string
	loc, err := p.Services.Locator.Locate(ctx)
	switch {
	case err == nil:
		location = &loc
	case p.Config.StrictLocation:
		lib.Logger.Println("error:", runID, err)
		return nil, err
	default:
		lib.Logger.Println("warn: location unavailable:", runID, err)
	}

	_, err = Persist(ctx, p.Services.Items, p.Config.Table, films)
	if err != nil {
		lib.Logger.Println("error:", runID, err)
		return nil, err
	}

	resp := &Response{
		Endpoint:    endpoint,
		Credentials: creds.Host,
		Username:    creds.Username,
		Location:    location,
		Films:       films,
		Probe:       probe,
	}
	if p.Out != nil {
		err = resp.Emit(p.Out)
		if err != nil {
			lib.Logger.Println("error:", runID, err)
			return nil, err
		}
	}
	lib.Logger.Println("run:", runID, "done in", time.Since(start).Round(time.Millisecond))
	return resp, nil
}
