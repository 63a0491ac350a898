package film

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
)

func testFetcher() *SQLFetcher {
	return &SQLFetcher{
		Driver:   fakeDriverName,
		Port:     DatabasePort,
		Database: DatabaseName,
		SSLMode:  "require",
		Query:    SelectAllFilms,
	}
}

var testCreds = &Credentials{Host: "db.example.internal", Username: "app", Password: "secret"}

func TestSQLFetcherFilms(t *testing.T) {
	s := useScenario(&fakeScenario{
		columns: filmTestColumns,
		rows: [][]driver.Value{
			filmTestRow(1, "Academy Dinosaur"),
			filmTestRow(2, "Ace Goldfinger"),
		},
	})
	films, err := testFetcher().Films(context.Background(), "db.example.internal", testCreds)
	if err != nil {
		t.Fatal(err)
	}
	if len(films) != 2 {
		t.Fatalf("got %d films, want 2", len(films))
	}
	f := films[0]
	if f.FilmID != 1 || *f.Title != "Academy Dinosaur" {
		t.Errorf("got %d %q", f.FilmID, *f.Title)
	}
	if *f.RentalRate != 4 || *f.ReplacementCost != 20 {
		t.Errorf("numeric columns not truncated: %d %d", *f.RentalRate, *f.ReplacementCost)
	}
	if *f.ReleaseYear != 2006 || *f.Length != 86 || *f.LanguageID != 1 || *f.RentalDuration != 6 {
		t.Errorf("integer columns: %+v", f)
	}
	if !f.LastUpdate.Equal(filmTestUpdated) {
		t.Errorf("got %s want %s", f.LastUpdate, filmTestUpdated)
	}
	if *f.Rating != "PG" {
		t.Errorf("got rating %q", *f.Rating)
	}
	if films[1].FilmID != 2 {
		t.Errorf("rows out of order: %d", films[1].FilmID)
	}
	if len(s.queries) != 1 || s.queries[0] != SelectAllFilms {
		t.Errorf("got queries %v", s.queries)
	}
	for _, part := range []string{"host='db.example.internal'", "port=5432", "dbname='dvdrental'", "sslmode='require'", "user='app'"} {
		if !strings.Contains(s.dsn, part) {
			t.Errorf("dsn %q missing %s", s.dsn, part)
		}
	}
	opened, closed := s.counts()
	if opened != 1 || closed != 1 {
		t.Errorf("opened %d closed %d", opened, closed)
	}
}

func TestSQLFetcherLargeFilmID(t *testing.T) {
	id := int64(1)<<53 + 1
	useScenario(&fakeScenario{
		columns: filmTestColumns,
		rows:    [][]driver.Value{filmTestRow(id, "Academy Dinosaur")},
	})
	films, err := testFetcher().Films(context.Background(), "db.example.internal", testCreds)
	if err != nil {
		t.Fatal(err)
	}
	if len(films) != 1 || films[0].FilmID != id {
		t.Errorf("got %+v, want film_id %d", films, id)
	}
}

func TestSQLFetcherNulls(t *testing.T) {
	row := make([]driver.Value, len(filmTestColumns))
	row[0] = int64(7)
	useScenario(&fakeScenario{columns: filmTestColumns, rows: [][]driver.Value{row}})
	films, err := testFetcher().Films(context.Background(), "db", testCreds)
	if err != nil {
		t.Fatal(err)
	}
	f := films[0]
	if f.FilmID != 7 {
		t.Fatalf("got %d", f.FilmID)
	}
	if f.Title != nil || f.ReleaseYear != nil || f.LastUpdate != nil || f.Fulltext != nil {
		t.Errorf("expected nil optional fields: %+v", f)
	}
}

func TestSQLFetcherEmpty(t *testing.T) {
	useScenario(&fakeScenario{columns: filmTestColumns})
	films, err := testFetcher().Films(context.Background(), "db", testCreds)
	if err != nil {
		t.Fatal(err)
	}
	if films == nil || len(films) != 0 {
		t.Errorf("got %v want empty", films)
	}
}

func TestSQLFetcherReleasesConnection(t *testing.T) {
	type test struct {
		name     string
		scenario *fakeScenario
		kind     error
	}
	boom := errors.New("boom")
	tests := []test{
		{"open", &fakeScenario{openErr: boom}, ErrConnectionFailed},
		{"query", &fakeScenario{queryErr: boom}, ErrQueryFailed},
		{"mid rows", &fakeScenario{
			columns:   filmTestColumns,
			rows:      [][]driver.Value{filmTestRow(1, "a"), filmTestRow(2, "b")},
			failAtRow: 1,
			rowErr:    boom,
		}, ErrQueryFailed},
		{"missing column", &fakeScenario{
			columns: filmTestColumns[:12],
			rows:    [][]driver.Value{filmTestRow(1, "a")[:12]},
		}, ErrQueryFailed},
		{"null id", &fakeScenario{
			columns: filmTestColumns,
			rows:    [][]driver.Value{make([]driver.Value, len(filmTestColumns))},
		}, ErrQueryFailed},
	}
	for _, test := range tests {
		s := useScenario(test.scenario)
		films, err := testFetcher().Films(context.Background(), "db", testCreds)
		if err == nil {
			t.Errorf("%s: expected error", test.name)
			continue
		}
		if films != nil {
			t.Errorf("%s: partial result %v", test.name, films)
		}
		if !errors.Is(err, test.kind) {
			t.Errorf("%s: got %v want %v", test.name, err, test.kind)
		}
		opened, closed := s.counts()
		if opened != closed {
			t.Errorf("%s: opened %d closed %d", test.name, opened, closed)
		}
	}
}

func TestSQLFetcherMissingColumn(t *testing.T) {
	useScenario(&fakeScenario{columns: []string{"film_id", "title"}})
	_, err := testFetcher().Films(context.Background(), "db", testCreds)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "description") {
		t.Errorf("error does not name the column: %v", err)
	}
}

type fakeTokens struct {
	token string
	err   error
	calls int
}

func (f *fakeTokens) Token(_ context.Context, endpoint string, port int, user string) (string, error) {
	f.calls++
	return f.token, f.err
}

func TestSQLFetcherIAMToken(t *testing.T) {
	s := useScenario(&fakeScenario{columns: filmTestColumns})
	fetcher := testFetcher()
	fetcher.Tokens = &fakeTokens{token: "tok'en"}
	_, err := fetcher.Films(context.Background(), "db", testCreds)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s.dsn, `password='tok\'en'`) {
		t.Errorf("dsn %q does not carry the token", s.dsn)
	}
	if strings.Contains(s.dsn, "secret") {
		t.Errorf("dsn %q carries the secret password", s.dsn)
	}

	s = useScenario(&fakeScenario{columns: filmTestColumns})
	fetcher.Tokens = &fakeTokens{err: errors.New("no creds")}
	_, err = fetcher.Films(context.Background(), "db", testCreds)
	if !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("got %v", err)
	}
	if opened, _ := s.counts(); opened != 0 {
		t.Errorf("connected without a token")
	}
}

func TestDSNQuote(t *testing.T) {
	type test struct {
		input  string
		output string
	}
	tests := []test{
		{"plain", "'plain'"},
		{"has space", "'has space'"},
		{`it's`, `'it\'s'`},
		{`back\slash`, `'back\\slash'`},
	}
	for _, test := range tests {
		output := dsnQuote(test.input)
		if output != test.output {
			t.Errorf("got:\n%s\nwant:\n%s\n", output, test.output)
		}
	}
}
