package postgres

import (
	"context"
	"database/sql"
	"maturity/internal/infra/persistence/postgres/testutil"
	"strings"
	"testing"
)

func openStub(t *testing.T) (*Store, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(driverName, dsn string) (*sql.DB, error) {
		if driverName != "pgx" {
			t.Fatalf("unexpected driver %s", driverName)
		}
		return db, nil
	})
	t.Cleanup(restore)
	store, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, conn
}

func TestNewStoreEnsuresStateTable(t *testing.T) {
	store, conn := openStub(t)
	if store.DB() == nil {
		t.Fatalf("expected db handle")
	}
	var sawDDL bool
	for _, stmt := range conn.Execs {
		if strings.Contains(strings.ToUpper(stmt), "CREATE TABLE IF NOT EXISTS ASSESSMENT_STATE") {
			sawDDL = true
		}
	}
	if !sawDDL {
		t.Fatalf("expected state table DDL, got %v", conn.Execs)
	}
}

func TestSaveAndLoad(t *testing.T) {
	store, conn := openStub(t)
	ctx := context.Background()
	if _, ok, err := store.Load(ctx, "assessment"); err != nil || ok {
		t.Fatalf("expected empty, got ok=%v err=%v", ok, err)
	}
	if err := store.Save(ctx, "assessment", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "assessment", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := store.Save(ctx, "other", []byte(`{"v":3}`)); err != nil {
		t.Fatalf("save other: %v", err)
	}
	if rows := conn.Tables["assessment_state"]; len(rows) != 2 {
		t.Fatalf("expected upsert to keep 2 rows, got %d", len(rows))
	}
	got, ok, err := store.Load(ctx, "assessment")
	if err != nil || !ok || string(got) != `{"v":2}` {
		t.Fatalf("load: %q %v %v", got, ok, err)
	}
}

func TestSaveFailures(t *testing.T) {
	ctx := context.Background()
	cases := map[string]func(*testutil.StubConn){
		"begin":  func(c *testutil.StubConn) { c.FailBegin = true },
		"exec":   func(c *testutil.StubConn) { c.FailExec = true },
		"commit": func(c *testutil.StubConn) { c.FailCommit = true },
	}
	for name, arm := range cases {
		t.Run(name, func(t *testing.T) {
			store, conn := openStub(t)
			arm(conn)
			if err := store.Save(ctx, "k", []byte("{}")); err == nil || !strings.Contains(err.Error(), name) {
				t.Fatalf("expected %s failure, got %v", name, err)
			}
		})
	}
}

func TestLoadQueryFailure(t *testing.T) {
	store, conn := openStub(t)
	conn.FailQuery = true
	if _, _, err := store.Load(context.Background(), "k"); err == nil {
		t.Fatalf("expected query failure")
	}
}

func TestNewStorePingFailure(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailPing = true
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()
	if _, err := NewStore(context.Background(), "postgres://example"); err == nil || !strings.Contains(err.Error(), "ping") {
		t.Fatalf("expected ping failure, got %v", err)
	}
}
