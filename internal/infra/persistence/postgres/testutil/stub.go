// Package testutil provides an in-process database/sql driver that stands in
// for postgres in store tests.
package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	driverSeq atomic.Int64

	insertRe = regexp.MustCompile(`(?is)^\s*insert\s+into\s+(\w+)\s*\(([^)]*)\)`)
	upsertRe = regexp.MustCompile(`(?i)\bon\s+conflict\b`)
	selectRe = regexp.MustCompile(`(?is)^\s*select\s+(.+?)\s+from\s+(\w+)(?:\s+where\s+(\w+)\s*=\s*\$1)?\s*$`)
)

// StubConn is a single shared connection. Rows live in Tables keyed by table
// name; an INSERT carrying ON CONFLICT replaces rows whose first column matches.
// The Fail flags force the corresponding driver call to error.
type StubConn struct {
	mu     sync.Mutex
	Execs  []string
	Tables map[string][]map[string]any

	FailPing   bool
	FailExec   bool
	FailBegin  bool
	FailCommit bool
	FailQuery  bool
}

// NewStubDB registers a fresh driver and returns a sql.DB bound to it.
func NewStubDB() (*sql.DB, *StubConn) {
	conn := &StubConn{Tables: map[string][]map[string]any{}}
	name := fmt.Sprintf("maturity-stubpg-%d", driverSeq.Add(1))
	sql.Register(name, stubDriver{conn})
	db, err := sql.Open(name, "")
	if err != nil {
		panic(err)
	}
	return db, conn
}

type stubDriver struct{ conn *StubConn }

func (d stubDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

// Prepare is unsupported; database/sql uses the context-aware paths instead.
func (c *StubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("stub: prepare unsupported: %s", query)
}

// Close is a no-op; the connection lives as long as the test.
func (c *StubConn) Close() error { return nil }

// Begin starts a transaction.
func (c *StubConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

// Ping reports FailPing.
func (c *StubConn) Ping(context.Context) error {
	if c.FailPing {
		return errors.New("ping fail")
	}
	return nil
}

// BeginTx starts a transaction whose commit honours FailCommit.
func (c *StubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	if c.FailBegin {
		return nil, errors.New("begin fail")
	}
	return stubTx{c}, nil
}

// ExecContext records the statement and applies INSERTs. Other statements
// succeed without effect.
func (c *StubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Execs = append(c.Execs, query)
	if c.FailExec {
		return nil, errors.New("exec fail")
	}
	m := insertRe.FindStringSubmatch(query)
	if m == nil {
		return driver.RowsAffected(0), nil
	}
	table, cols := strings.ToLower(m[1]), columns(m[2])
	if len(cols) != len(args) {
		return nil, fmt.Errorf("stub: %s expects %d args, got %d", table, len(cols), len(args))
	}
	row := make(map[string]any, len(cols))
	for i, col := range cols {
		row[col] = args[i].Value
	}
	if upsertRe.MatchString(query) {
		c.Tables[table] = without(c.Tables[table], cols[0], row[cols[0]])
	}
	c.Tables[table] = append(c.Tables[table], row)
	return driver.RowsAffected(1), nil
}

// QueryContext answers `SELECT cols FROM table [WHERE col = $1]`.
func (c *StubConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailQuery {
		return nil, errors.New("query fail")
	}
	m := selectRe.FindStringSubmatch(query)
	if m == nil {
		return nil, fmt.Errorf("stub: unsupported query: %s", query)
	}
	cols, table, filter := columns(m[1]), strings.ToLower(m[2]), strings.ToLower(m[3])
	out := &stubRows{cols: cols}
	for _, row := range c.Tables[table] {
		if filter != "" && (len(args) == 0 || row[filter] != args[0].Value) {
			continue
		}
		vals := make([]driver.Value, len(cols))
		for i, col := range cols {
			vals[i] = row[col]
		}
		out.rows = append(out.rows, vals)
	}
	return out, nil
}

func without(rows []map[string]any, col string, value any) []map[string]any {
	kept := rows[:0:0]
	for _, r := range rows {
		if r[col] != value {
			kept = append(kept, r)
		}
	}
	return kept
}

func columns(list string) []string {
	fields := strings.Split(list, ",")
	for i, f := range fields {
		fields[i] = strings.ToLower(strings.TrimSpace(f))
	}
	return fields
}

type stubTx struct{ conn *StubConn }

func (tx stubTx) Commit() error {
	if tx.conn.FailCommit {
		return errors.New("commit fail")
	}
	return nil
}

func (stubTx) Rollback() error { return nil }

type stubRows struct {
	cols []string
	rows [][]driver.Value
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if len(r.rows) == 0 {
		return io.EOF
	}
	copy(dest, r.rows[0])
	r.rows = r.rows[1:]
	return nil
}
