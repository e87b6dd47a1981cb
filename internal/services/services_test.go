package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/repos/testutil"
)

// testutilScope bundles the per-test transaction and logger the service
// tests build their collaborators from. Everything rolls back on cleanup.
type testutilScope struct {
	tx  *gorm.DB
	log *logger.Logger
}

func newTestutilScope(t *testing.T) *testutilScope {
	t.Helper()
	db := testutil.DB(t)
	return &testutilScope{
		tx:  testutil.Tx(t, db),
		log: testutil.Logger(t),
	}
}
