package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paytrack/ledger-gateway/internal/model"
)

func TestUndoService_NothingToUndo(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := env.undo.Undo(context.Background(), 1, model.Session{AdminID: 1})
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestUndoService_AddCustomer(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	sess, c, err := env.ledger.AddCustomer(ctx, "john doe", "415-555-1234", 1, model.Session{AdminID: 1})
	require.NoError(t, err)

	sess, res, err := env.undo.Undo(ctx, 1, sess)
	require.NoError(t, err)
	assert.Equal(t, model.ActionAddCustomer, res.Action)
	assert.Equal(t, "john doe", res.Details["Removed"])
	assert.Nil(t, sess.Selected, "undoing the add drops the selection")

	_, err = env.ledger.Summary(ctx, c.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	// One level only: the add itself was the last action.
	_, _, err = env.undo.Undo(ctx, 1, sess)
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestUndoService_DeleteCustomer(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	sess, c, err := env.ledger.AddCustomer(ctx, "john doe", "415-555-1234", 1, model.Session{AdminID: 1})
	require.NoError(t, err)
	sess, _, err = env.ledger.AddTransaction(ctx, decimal.NewFromInt(80), model.KindSale, "tools", c.ID, 1, sess)
	require.NoError(t, err)
	sess, _, err = env.ledger.AddTransaction(ctx, decimal.NewFromInt(20), model.KindPayment, "", c.ID, 1, sess)
	require.NoError(t, err)

	sess, snapshot, err := env.ledger.DeleteCustomer(ctx, c.ID, 1, sess)
	require.NoError(t, err)
	require.Len(t, snapshot.Transactions, 2)

	sess, res, err := env.undo.Undo(ctx, 1, sess)
	require.NoError(t, err)
	assert.Equal(t, model.ActionDeleteCustomer, res.Action)
	assert.Equal(t, "john doe", res.Details["Restored"])

	restored, err := env.ledger.Summary(ctx, c.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, c.ID, restored.ID, "customer returns under its original id")
	assert.True(t, restored.Balance.Equal(decimal.NewFromInt(-60)))
	assert.True(t, restored.TotalSales.Equal(decimal.NewFromInt(80)))
	assert.True(t, restored.TotalPayments.Equal(decimal.NewFromInt(20)))
	assert.Len(t, restored.Recent, 2, "transactions come back with the customer")
}

func TestUndoService_RenameCustomer(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	sess, c, err := env.ledger.AddCustomer(ctx, "john doe", "415-555-1234", 1, model.Session{AdminID: 1})
	require.NoError(t, err)
	sess, _, err = env.ledger.RenameCustomer(ctx, "johnny doe", c.ID, 1, sess)
	require.NoError(t, err)

	sess, res, err := env.undo.Undo(ctx, 1, sess)
	require.NoError(t, err)
	assert.Equal(t, model.ActionRenameCustomer, res.Action)
	assert.Equal(t, "john doe", res.Details["Current Name"])
	assert.Equal(t, "johnny doe", res.Details["Reverted From"])

	require.NotNil(t, sess.Selected)
	assert.Equal(t, "john doe", sess.Selected.FullName, "selection shows the restored name")
}

func TestUndoService_ChangePhone(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	sess, c, err := env.ledger.AddCustomer(ctx, "john doe", "415-555-1234", 1, model.Session{AdminID: 1})
	require.NoError(t, err)
	_, _, err = env.ledger.ChangePhone(ctx, "(415) 555-9999", c.ID, 1)
	require.NoError(t, err)

	_, res, err := env.undo.Undo(ctx, 1, sess)
	require.NoError(t, err)
	assert.Equal(t, model.ActionChangePhone, res.Action)
	assert.Equal(t, "4155551234", res.Details["Current Phone"])

	summary, err := env.ledger.Summary(ctx, c.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "4155551234", summary.Phone)
}

func TestUndoService_AddTransaction(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	sess, c, err := env.ledger.AddCustomer(ctx, "john doe", "415-555-1234", 1, model.Session{AdminID: 1})
	require.NoError(t, err)
	sess, _, err = env.ledger.AddTransaction(ctx, decimal.NewFromInt(100), model.KindSale, "", c.ID, 1, sess)
	require.NoError(t, err)

	sess, res, err := env.undo.Undo(ctx, 1, sess)
	require.NoError(t, err)
	assert.Equal(t, model.ActionAddTransaction, res.Action)
	assert.Equal(t, "0.00", res.Details["Current Balance"])

	summary, err := env.ledger.Summary(ctx, c.ID, 1)
	require.NoError(t, err)
	assert.True(t, summary.Balance.IsZero(), "removing the sale pays the balance back")
	assert.Empty(t, summary.Recent)

	require.NotNil(t, sess.Selected)
	assert.True(t, sess.Selected.Balance.IsZero())
}

func TestUndoService_OnlyLatestAction(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	sess, c, err := env.ledger.AddCustomer(ctx, "john doe", "415-555-1234", 1, model.Session{AdminID: 1})
	require.NoError(t, err)
	sess, _, err = env.ledger.AddTransaction(ctx, decimal.NewFromInt(50), model.KindSale, "", c.ID, 1, sess)
	require.NoError(t, err)
	sess, _, err = env.ledger.RenameCustomer(ctx, "johnny doe", c.ID, 1, sess)
	require.NoError(t, err)

	// Each undo consumes exactly one action, newest first.
	sess, res, err := env.undo.Undo(ctx, 1, sess)
	require.NoError(t, err)
	assert.Equal(t, model.ActionRenameCustomer, res.Action)

	sess, res, err = env.undo.Undo(ctx, 1, sess)
	require.NoError(t, err)
	assert.Equal(t, model.ActionAddTransaction, res.Action)

	sess, res, err = env.undo.Undo(ctx, 1, sess)
	require.NoError(t, err)
	assert.Equal(t, model.ActionAddCustomer, res.Action)

	_, _, err = env.undo.Undo(ctx, 1, sess)
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestUndoService_AdminScoped(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, _, err := env.ledger.AddCustomer(ctx, "john doe", "415-555-1234", 1, model.Session{AdminID: 1})
	require.NoError(t, err)

	_, _, err = env.undo.Undo(ctx, 2, model.Session{AdminID: 2})
	assert.ErrorIs(t, err, ErrNothingToUndo, "one admin cannot undo another's action")
}

func TestUndoService_FailedUndoKeepsAction(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	sess, c, err := env.ledger.AddCustomer(ctx, "john doe", "415-555-1234", 1, model.Session{AdminID: 1})
	require.NoError(t, err)
	sess, res, err := env.ledger.AddTransaction(ctx, decimal.NewFromInt(10), model.KindSale, "", c.ID, 1, sess)
	require.NoError(t, err)

	// Sabotage the inverse: drop the transaction row behind the log's back.
	_, err = env.transactions.DeleteReturning(ctx, res.Transaction.ID, 1)
	require.NoError(t, err)

	_, _, err = env.undo.Undo(ctx, 1, sess)
	assert.ErrorIs(t, err, ErrUndoFailed)

	// The log entry survived the rollback and stays undoable.
	last, err := env.logs.LatestForAdmin(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.ActionAddTransaction, last.ActionType)
}
