package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPredicates(t *testing.T) {
	cases := []struct {
		name string
		pred func(string) bool
		in   string
		want bool
	}{
		{"internal nested", InternalImportForbidden, "maturity/internal/core", true},
		{"internal root", InternalImportForbidden, "maturity/internal", true},
		{"internal public", InternalImportForbidden, "maturity/pkg/domain", false},
		{"infra driver", InfraImportForbidden, "maturity/internal/infra/blob/s3", true},
		{"infra facade", InfraImportForbidden, "maturity/internal/blob", false},
		{"prefix exact", PrefixForbidden("go.uber.org/zap"), "go.uber.org/zap", true},
		{"prefix nested", PrefixForbidden("go.uber.org/zap"), "go.uber.org/zap/zapcore", true},
		{"prefix sibling", PrefixForbidden("go.uber.org/zap"), "go.uber.org/zapx", false},
	}
	for _, c := range cases {
		if got := c.pred(c.in); got != c.want {
			t.Fatalf("%s: pred(%q)=%v want %v", c.name, c.in, got, c.want)
		}
	}
}

type recordingTB struct {
	testing.TB
	failed string
}

func (r *recordingTB) Helper() {}
func (r *recordingTB) Fatalf(format string, _ ...any) {
	r.failed = format
}

func writeFile(t *testing.T, dir, name, src string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestAssertNoDirectImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package tmp\nimport \"maturity/internal/infra/blob/fs\"\nvar _ = fs.New\n")
	writeFile(t, dir, "a_test.go", "package tmp\nimport \"maturity/internal/infra/blob/s3\"\n")

	rec := &recordingTB{TB: t}
	AssertNoDirectImports(rec, dir, InfraImportForbidden, "facade only")
	if rec.failed == "" {
		t.Fatalf("expected violation for infra import")
	}
	viols, err := directImportViolations(dir, InfraImportForbidden)
	if err != nil || len(viols) != 1 || viols[0] != "maturity/internal/infra/blob/fs (in a.go)" {
		t.Fatalf("test files must be skipped: %v %v", viols, err)
	}

	AssertNoDirectImports(t, dir, PrefixForbidden("go.uber.org/zap"), "no logging")
}

func TestDirectImportViolationsErrors(t *testing.T) {
	if _, err := directImportViolations(filepath.Join(t.TempDir(), "missing"), InternalImportForbidden); err == nil {
		t.Fatalf("expected missing dir error")
	}
	dir := t.TempDir()
	writeFile(t, dir, "bad.go", "package tmp\nimport (\n")
	if _, err := directImportViolations(dir, InternalImportForbidden); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestAssertNoTransitiveDependency(t *testing.T) {
	prev := goListDeps
	t.Cleanup(func() { goListDeps = prev })

	goListDeps = func(string) ([]byte, error) {
		return []byte("fmt\nmaturity/pkg/domain\nmaturity/internal/core\n\n"), nil
	}
	rec := &recordingTB{TB: t}
	AssertNoTransitiveDependency(rec, ".", InternalImportForbidden, "domain purity")
	if rec.failed == "" {
		t.Fatalf("expected transitive violation")
	}
	AssertNoTransitiveDependency(t, ".", PrefixForbidden("database/sql"), "no sql")

	goListDeps = func(string) ([]byte, error) { return []byte("boom"), errors.New("exit 1") }
	rec = &recordingTB{TB: t}
	AssertNoTransitiveDependency(rec, ".", InternalImportForbidden, "x")
	if rec.failed == "" {
		t.Fatalf("expected go list failure to be reported")
	}
}
