package services

import (
	"context"
	"testing"

	"github.com/paytrack/ledger-gateway/internal/repository"
	"github.com/paytrack/ledger-gateway/pkg/sqlite"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	customers    *repository.CustomerRepository
	transactions *repository.TransactionRepository
	logs         *repository.ActionLogRepository
	ledger       *LedgerService
	undo         *UndoService
	reports      *ReportService
	retention    *RetentionService
}

func setupTestEnv(t *testing.T) *testEnv {
	db, err := sqlite.Open(sqlite.Config{Path: ":memory:"}, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = db.Write(context.Background()).AutoMigrate(
		&repository.CustomerEntity{},
		&repository.TransactionEntity{},
		&repository.ActionLogEntity{},
		&repository.ActionLogArchiveEntity{},
	)
	require.NoError(t, err)

	customers := repository.NewCustomerRepository(db)
	transactions := repository.NewTransactionRepository(db)
	logs := repository.NewActionLogRepository(db)
	ledger := NewLedgerService(customers, transactions, logs, 5)

	return &testEnv{
		customers:    customers,
		transactions: transactions,
		logs:         logs,
		ledger:       ledger,
		undo:         NewUndoService(ledger, customers, logs),
		reports:      NewReportService(customers, transactions, logs, 5),
		retention:    NewRetentionService(logs, 30),
	}
}
