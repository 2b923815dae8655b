package domain

import (
	"testing"

	"maturity/testutil"
)

func TestDomainHasNoInternalImports(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden, "domain stays independent of application packages")
	testutil.AssertNoDirectImports(t, ".", testutil.PrefixForbidden("database/sql", "go.uber.org/zap", "github.com/prometheus/client_golang"),
		"domain carries no storage, logging or metrics dependencies")
}
