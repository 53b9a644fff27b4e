package repository

import (
	"context"
	"testing"
	"time"

	"github.com/paytrack/ledger-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionLogRepository_AppendAndLatest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActionLogRepository(db)
	ctx := context.Background()

	t.Run("empty journal", func(t *testing.T) {
		_, err := repo.LatestForAdmin(ctx, 1)
		assert.ErrorIs(t, err, ErrNoActionLog)
	})

	t.Run("latest wins", func(t *testing.T) {
		err := repo.Append(ctx, model.ActionAddCustomer, 10, 1, model.AddCustomerUndo{CustomerID: 10, AdminID: 1})
		require.NoError(t, err)
		err = repo.Append(ctx, model.ActionRenameCustomer, 10, 1, model.RenameCustomerUndo{
			CustomerID: 10, AdminID: 1, OldName: "old name", NewName: "new name",
		})
		require.NoError(t, err)

		latest, err := repo.LatestForAdmin(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, model.ActionRenameCustomer, latest.ActionType)

		var args model.RenameCustomerUndo
		require.NoError(t, model.DecodeUndoArgs(latest.Payload, &args))
		assert.Equal(t, "old name", args.OldName)
	})

	t.Run("scoped by admin", func(t *testing.T) {
		_, err := repo.LatestForAdmin(ctx, 2)
		assert.ErrorIs(t, err, ErrNoActionLog)
	})
}

func TestActionLogRepository_DeleteByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActionLogRepository(db)
	ctx := context.Background()

	err := repo.Append(ctx, model.ActionChangePhone, 5, 3, model.ChangePhoneUndo{CustomerID: 5, AdminID: 3, OldPhone: "111"})
	require.NoError(t, err)

	latest, err := repo.LatestForAdmin(ctx, 3)
	require.NoError(t, err)

	n, err := repo.DeleteByID(ctx, latest.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.DeleteByID(ctx, latest.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestActionLogRepository_ListBefore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActionLogRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := repo.Append(ctx, model.ActionAddTransaction, int64(i), 8, model.AddTransactionUndo{TransactionID: int64(i)})
		require.NoError(t, err)
	}

	first, err := repo.ListBefore(ctx, 8, 0, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Greater(t, first[0].ID, first[1].ID)

	rest, err := repo.ListBefore(ctx, 8, first[1].ID, 10)
	require.NoError(t, err)
	assert.Len(t, rest, 3)
}

func TestActionLogRepository_SweepArchive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActionLogRepository(db)
	ctx := context.Background()

	now := time.Now()
	old := &ActionLogEntity{
		AdminID:    7,
		CustomerID: 1,
		ActionType: string(model.ActionAddCustomer),
		Payload:    `{"undo-args":{}}`,
		CreatedAt:  now.AddDate(0, 0, -40),
	}
	recent := &ActionLogEntity{
		AdminID:    7,
		CustomerID: 2,
		ActionType: string(model.ActionAddCustomer),
		Payload:    `{"undo-args":{}}`,
		CreatedAt:  now.AddDate(0, 0, -10),
	}
	require.NoError(t, db.Write(ctx).Create(old).Error)
	require.NoError(t, db.Write(ctx).Create(recent).Error)

	moved, err := repo.SweepArchive(ctx, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), moved)

	var archived []ActionLogArchiveEntity
	require.NoError(t, db.Read(ctx).Find(&archived).Error)
	require.Len(t, archived, 1)
	assert.Equal(t, old.ID, archived[0].ID)
	assert.Equal(t, int64(1), archived[0].CustomerID)

	var live []ActionLogEntity
	require.NoError(t, db.Read(ctx).Find(&live).Error)
	require.Len(t, live, 1)
	assert.Equal(t, int64(2), live[0].CustomerID)

	t.Run("second sweep moves nothing", func(t *testing.T) {
		moved, err := repo.SweepArchive(ctx, now.AddDate(0, 0, -30))
		require.NoError(t, err)
		assert.Zero(t, moved)
	})
}
