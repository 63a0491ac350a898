package film

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lib/pq"
	"github.com/nathants/filmsync/lib"
)

// FilmSource loads every film from the database behind endpoint.
type FilmSource interface {
	Films(ctx context.Context, endpoint string, creds *Credentials) ([]*Film, error)
}

// TokenSource supplies a password replacement such as an rds iam token.
type TokenSource interface {
	Token(ctx context.Context, endpoint string, port int, user string) (string, error)
}

var filmColumns = []string{
	"film_id",
	"title",
	"description",
	"rating",
	"release_year",
	"length",
	"language_id",
	"rental_duration",
	"rental_rate",
	"replacement_cost",
	"last_update",
	"special_features",
	"fulltext",
}

// SQLFetcher runs one query over one connection. The connection and the pool
// behind it are closed before Films returns, on success and on every error.
type SQLFetcher struct {
	Driver   string
	Port     int
	Database string
	SSLMode  string
	Query    string
	Tokens   TokenSource
}

func dsnQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

func (s *SQLFetcher) DSN(endpoint, user, password string) string {
	parts := []string{
		"host=" + dsnQuote(endpoint),
		fmt.Sprintf("port=%d", s.Port),
		"user=" + dsnQuote(user),
		"password=" + dsnQuote(password),
		"dbname=" + dsnQuote(s.Database),
		"sslmode=" + dsnQuote(s.SSLMode),
	}
	return strings.Join(parts, " ")
}

func (s *SQLFetcher) Films(ctx context.Context, endpoint string, creds *Credentials) ([]*Film, error) {
	password := creds.Password
	if s.Tokens != nil {
		token, err := s.Tokens.Token(ctx, endpoint, s.Port, creds.Username)
		if err != nil {
			return nil, stageError(ErrConnectionFailed, err, "iam token for %s", creds.Username)
		}
		password = token
	}
	lib.Logger.Printf("postgres endpoint: %s:%d/%s sslmode=%s\n", endpoint, s.Port, s.Database, s.SSLMode)
	db, err := sql.Open(s.Driver, s.DSN(endpoint, creds.Username, password))
	if err != nil {
		return nil, stageError(ErrConnectionFailed, err, "open %s", endpoint)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)
	conn, err := db.Conn(ctx)
	if err != nil {
		logPostgresError(err)
		return nil, stageError(ErrConnectionFailed, err, "connect %s", endpoint)
	}
	defer func() { _ = conn.Close() }()
	start := time.Now()
	rows, err := conn.QueryContext(ctx, s.Query)
	if err != nil {
		logPostgresError(err)
		return nil, stageError(ErrQueryFailed, err, "%s", s.Query)
	}
	defer func() { _ = rows.Close() }()
	films, err := ScanFilms(rows)
	if err != nil {
		logPostgresError(err)
		return nil, stageError(ErrQueryFailed, err, "%s", s.Query)
	}
	lib.Logger.Println("fetched", humanize.Comma(int64(len(films))), "films in", time.Since(start).Round(time.Millisecond))
	return films, nil
}

func logPostgresError(err error) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		lib.Logger.Println("error: postgres", pqErr.Code, pqErr.Code.Name(), pqErr.Message)
	}
}

// Rows is the subset of *sql.Rows ScanFilms needs.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type filmScan struct {
	filmID          sql.NullInt64
	title           sql.NullString
	description     sql.NullString
	rating          sql.NullString
	releaseYear     sql.NullFloat64
	length          sql.NullFloat64
	languageID      sql.NullFloat64
	rentalDuration  sql.NullFloat64
	rentalRate      sql.NullFloat64
	replacementCost sql.NullFloat64
	lastUpdate      sql.NullTime
	specialFeatures sql.NullString
	fulltext        sql.NullString
}

func (f *filmScan) dest(column string) any {
	switch column {
	case "film_id":
		return &f.filmID
	case "title":
		return &f.title
	case "description":
		return &f.description
	case "rating":
		return &f.rating
	case "release_year":
		return &f.releaseYear
	case "length":
		return &f.length
	case "language_id":
		return &f.languageID
	case "rental_duration":
		return &f.rentalDuration
	case "rental_rate":
		return &f.rentalRate
	case "replacement_cost":
		return &f.replacementCost
	case "last_update":
		return &f.lastUpdate
	case "special_features":
		return &f.specialFeatures
	case "fulltext":
		return &f.fulltext
	default:
		return new(any)
	}
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// numeric columns such as rental_rate arrive as text, they are truncated
// toward zero like an integer read would.
func nullInt(v sql.NullFloat64) *int64 {
	if !v.Valid {
		return nil
	}
	n := int64(v.Float64)
	return &n
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func (f *filmScan) film() (*Film, error) {
	if !f.filmID.Valid {
		return nil, fmt.Errorf("film_id is null")
	}
	return &Film{
		FilmID:          f.filmID.Int64,
		Title:           nullString(f.title),
		Description:     nullString(f.description),
		Rating:          nullString(f.rating),
		ReleaseYear:     nullInt(f.releaseYear),
		Length:          nullInt(f.length),
		LanguageID:      nullInt(f.languageID),
		RentalDuration:  nullInt(f.rentalDuration),
		RentalRate:      nullInt(f.rentalRate),
		ReplacementCost: nullInt(f.replacementCost),
		LastUpdate:      nullTime(f.lastUpdate),
		SpecialFeatures: nullString(f.specialFeatures),
		Fulltext:        nullString(f.fulltext),
	}, nil
}

// ScanFilms maps every row by column name. Every film column must be present
// in the result set, extra columns are ignored.
func ScanFilms(rows Rows) ([]*Film, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(columns))
	for i, column := range columns {
		columns[i] = strings.ToLower(column)
		present[columns[i]] = true
	}
	for _, column := range filmColumns {
		if !present[column] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, column)
		}
	}
	films := []*Film{}
	for rows.Next() {
		scan := &filmScan{}
		dest := make([]any, len(columns))
		for i, column := range columns {
			dest[i] = scan.dest(column)
		}
		err := rows.Scan(dest...)
		if err != nil {
			return nil, err
		}
		f, err := scan.film()
		if err != nil {
			return nil, err
		}
		films = append(films, f)
	}
	err = rows.Err()
	if err != nil {
		return nil, err
	}
	return films, nil
}
