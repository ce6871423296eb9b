package expenseRepository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// stubConn scripts one rows result per query so the dimension resolver's
// select/insert/re-select orchestration runs without a database. A nil entry
// means the query returns no rows.
type stubConn struct {
	results [][]driver.Value
	queries []string
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c *stubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.queries = append(c.queries, query)
	if len(c.results) == 0 {
		return nil, errors.New("unexpected query: " + query)
	}

	row := c.results[0]
	c.results = c.results[1:]

	rows := &stubRows{columns: []string{"id"}}
	if row != nil {
		rows.values = [][]driver.Value{row}
	}
	return rows, nil
}

type stubRows struct {
	columns []string
	values  [][]driver.Value
	pos     int
}

func (r *stubRows) Columns() []string { return r.columns }

func (r *stubRows) Close() error { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.pos])
	r.pos++
	return nil
}

type stubConnector struct{ conn *stubConn }

func (c stubConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }

func (c stubConnector) Driver() driver.Driver { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("use the connector")
}

func newStubDimensionRepository(results [][]driver.Value) (*dimensionRepository, *stubConn) {
	conn := &stubConn{results: results}
	db := sqlx.NewDb(sql.OpenDB(stubConnector{conn: conn}), "postgres")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &dimensionRepository{q: db, log: logger}, conn
}

func countInserts(queries []string) int {
	inserts := 0
	for _, query := range queries {
		if strings.Contains(query, "INSERT") {
			inserts++
		}
	}
	return inserts
}

func TestResolveExistingNameNeverInserts(t *testing.T) {
	repo, conn := newStubDimensionRepository([][]driver.Value{
		{int64(7)}, // select finds the row
	})

	id, err := repo.ResolveCategory(context.Background(), "Food")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id != 7 {
		t.Errorf("id = %d, want 7", id)
	}
	if len(conn.queries) != 1 {
		t.Fatalf("executed %d queries, want 1: %v", len(conn.queries), conn.queries)
	}
	if countInserts(conn.queries) != 0 {
		t.Errorf("existing name reached the insert path: %v", conn.queries)
	}
}

func TestResolveNewNameInsertsOnce(t *testing.T) {
	repo, conn := newStubDimensionRepository([][]driver.Value{
		nil,        // select finds nothing
		{int64(9)}, // insert returns the new id
	})

	id, err := repo.ResolveVendor(context.Background(), "Jollibee")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id != 9 {
		t.Errorf("id = %d, want 9", id)
	}
	if len(conn.queries) != 2 {
		t.Fatalf("executed %d queries, want 2: %v", len(conn.queries), conn.queries)
	}
	if countInserts(conn.queries) != 1 {
		t.Errorf("expected exactly one insert: %v", conn.queries)
	}
}

// Two resolutions of the same new name can race on the insert. The loser's
// ON CONFLICT DO NOTHING returns no row; the resolver must re-read the
// winner's id instead of failing or inserting a duplicate.
func TestResolveLostInsertRaceRereadsWinner(t *testing.T) {
	repo, conn := newStubDimensionRepository([][]driver.Value{
		nil,         // select finds nothing
		nil,         // insert conflicts, DO NOTHING swallows the row
		{int64(42)}, // re-select picks up the winner
	})

	id, err := repo.ResolvePaymentMethod(context.Background(), "Cash")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if len(conn.queries) != 3 {
		t.Fatalf("executed %d queries, want 3: %v", len(conn.queries), conn.queries)
	}
	if countInserts(conn.queries) != 1 {
		t.Errorf("lost race must not retry the insert: %v", conn.queries)
	}
	if strings.Contains(conn.queries[2], "INSERT") {
		t.Errorf("final query after conflict must be a re-select: %q", conn.queries[2])
	}
}
