package repository

import (
	"context"
	"testing"

	"github.com/paytrack/ledger-gateway/pkg/sqlite"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	db, err := sqlite.Open(sqlite.Config{Path: ":memory:"}, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = db.Write(context.Background()).AutoMigrate(
		&CustomerEntity{},
		&TransactionEntity{},
		&ActionLogEntity{},
		&ActionLogArchiveEntity{},
	)
	require.NoError(t, err)

	return db
}
