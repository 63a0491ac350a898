package film

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
	"time"
)

const fakeDriverName = "filmtest"

// fakeScenario scripts the next connections opened through the filmtest
// driver and counts acquire and release of driver connections.
type fakeScenario struct {
	mu        sync.Mutex
	openErr   error
	queryErr  error
	columns   []string
	rows      [][]driver.Value
	failAtRow int
	rowErr    error
	dsn       string
	queries   []string
	opened    int
	closed    int
}

func (s *fakeScenario) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened, s.closed
}

var fakeCurrent struct {
	sync.Mutex
	scenario *fakeScenario
}

func useScenario(s *fakeScenario) *fakeScenario {
	if s.failAtRow == 0 {
		s.failAtRow = -1
	}
	fakeCurrent.Lock()
	defer fakeCurrent.Unlock()
	fakeCurrent.scenario = s
	return s
}

func init() {
	sql.Register(fakeDriverName, fakeDriver{})
}

type fakeDriver struct{}

func (fakeDriver) Open(dsn string) (driver.Conn, error) {
	fakeCurrent.Lock()
	s := fakeCurrent.scenario
	fakeCurrent.Unlock()
	if s == nil {
		return nil, errors.New("no scenario")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dsn = dsn
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.opened++
	return &fakeConn{scenario: s}, nil
}

type fakeConn struct {
	scenario *fakeScenario
	closed   bool
}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *fakeConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c *fakeConn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.scenario.mu.Lock()
	defer c.scenario.mu.Unlock()
	c.scenario.closed++
	return nil
}

func (c *fakeConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	s := c.scenario
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return &fakeRows{scenario: s}, nil
}

type fakeRows struct {
	scenario *fakeScenario
	i        int
}

func (r *fakeRows) Columns() []string {
	return r.scenario.columns
}

func (r *fakeRows) Close() error {
	return nil
}

func (r *fakeRows) Next(dest []driver.Value) error {
	s := r.scenario
	if r.i == s.failAtRow {
		return s.rowErr
	}
	if r.i >= len(s.rows) {
		return io.EOF
	}
	copy(dest, s.rows[r.i])
	r.i++
	return nil
}

var filmTestColumns = []string{
	"film_id", "title", "description", "release_year", "language_id",
	"rental_duration", "rental_rate", "length", "replacement_cost",
	"rating", "last_update", "special_features", "fulltext",
}

var filmTestUpdated = time.Date(2013, 5, 26, 14, 50, 58, 951000000, time.UTC)

func filmTestRow(id int64, title string) []driver.Value {
	return []driver.Value{
		id,
		title,
		[]byte("A Epic Drama of a Feminist"),
		int64(2006),
		int64(1),
		int64(6),
		[]byte("4.99"),
		int64(86),
		[]byte("20.99"),
		[]byte("PG"),
		filmTestUpdated,
		[]byte("{\"Deleted Scenes\",\"Behind the Scenes\"}"),
		[]byte("'academi':1 'dinosaur':2"),
	}
}
