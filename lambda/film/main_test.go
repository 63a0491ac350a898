package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/nathants/filmsync/film"
)

type stubRunner struct {
	resp *film.Response
	err  error
	cfg  film.Config
}

func (s *stubRunner) Run(context.Context) (*film.Response, error) {
	return s.resp, s.err
}

func withRunner(t *testing.T, s *stubRunner) {
	orig := newRunner
	newRunner = func(cfg film.Config) runner {
		s.cfg = cfg
		return s
	}
	t.Cleanup(func() { newRunner = orig })
}

func TestHandleRequest(t *testing.T) {
	loc := "203.0.113.7"
	s := &stubRunner{resp: &film.Response{
		Endpoint:    "db.example.internal",
		Credentials: "db.example.internal",
		Username:    "app",
		Location:    &loc,
		Films:       []*film.Film{{FilmID: 1}, {FilmID: 2}},
	}}
	withRunner(t, s)
	t.Setenv("FILM_TABLE", "films_test")
	out, err := handleRequest(context.Background(), events.APIGatewayProxyRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if out.StatusCode != 200 {
		t.Errorf("got status %d", out.StatusCode)
	}
	if out.Headers["Content-Type"] != "application/json" || out.Headers["X-Custom-Header"] != "application/json" {
		t.Errorf("got headers %v", out.Headers)
	}
	var body map[string]any
	err = json.Unmarshal([]byte(out.Body), &body)
	if err != nil {
		t.Fatal(err)
	}
	if films, ok := body["films"].([]any); !ok || len(films) != 2 {
		t.Errorf("got body %s", out.Body)
	}
	if s.cfg.Table != "films_test" {
		t.Errorf("env config not applied: %+v", s.cfg)
	}
}

func TestHandleRequestFailure(t *testing.T) {
	withRunner(t, &stubRunner{err: &film.StageError{Kind: film.ErrConfigUnavailable, Message: "get parameter"}})
	out, err := handleRequest(context.Background(), events.APIGatewayProxyRequest{})
	if !errors.Is(err, film.ErrConfigUnavailable) {
		t.Errorf("got %v", err)
	}
	if out.Body != "" || out.StatusCode != 0 {
		t.Errorf("got a payload on failure: %+v", out)
	}
}
