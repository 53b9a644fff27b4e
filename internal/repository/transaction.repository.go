package repository

import (
	"context"
	"errors"

	"github.com/paytrack/ledger-gateway/internal/model"
	"github.com/paytrack/ledger-gateway/pkg/sqlite"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

type TransactionRepository struct {
	*sqlite.DB
}

func NewTransactionRepository(db *sqlite.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	entity := toTransactionEntity(txn)

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTransactionModel(entity), nil
}

// DeleteReturning removes one transaction row and hands back what was
// deleted, so the caller can reverse its balance effect in the same unit
// of work.
func (r *TransactionRepository) DeleteReturning(ctx context.Context, transactionID, adminID int64) (*model.Transaction, error) {
	var entity TransactionEntity

	result := r.Write(ctx).Raw(`
		DELETE FROM transactions
		WHERE id = ? AND admin_id = ?
		RETURNING id, amount, type, customer_id, admin_id, description, created_at`,
		transactionID, adminID,
	).Scan(&entity)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTransactionNotFound
	}

	return toTransactionModel(&entity), nil
}

// RestoreBatch re-inserts previously deleted transactions with their
// original ids, amounts and timestamps. Used only by the delete-customer
// undo path, inside its unit of work.
func (r *TransactionRepository) RestoreBatch(ctx context.Context, txns []*model.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	entities := make([]*TransactionEntity, len(txns))
	for i, t := range txns {
		entities[i] = toTransactionEntity(t)
	}

	return r.Write(ctx).Create(&entities).Error
}

// ListBefore returns up to limit transactions for a customer strictly
// older (by id) than beforeID, newest first. beforeID <= 0 starts from
// the newest row.
func (r *TransactionRepository) ListBefore(ctx context.Context, customerID, adminID, beforeID int64, limit int) ([]*model.Transaction, error) {
	q := r.Read(ctx).
		Where("customer_id = ? AND admin_id = ?", customerID, adminID)

	if beforeID > 0 {
		q = q.Where("id < ?", beforeID)
	}

	var entities []*TransactionEntity
	err := q.Order("id DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}

	return toTransactionModels(entities), nil
}

// ListByCustomer returns every transaction belonging to a customer, used
// to snapshot them before a cascade delete.
func (r *TransactionRepository) ListByCustomer(ctx context.Context, customerID, adminID int64) ([]*model.Transaction, error) {
	var entities []*TransactionEntity

	err := r.Read(ctx).
		Where("customer_id = ? AND admin_id = ?", customerID, adminID).
		Order("id ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}

	return toTransactionModels(entities), nil
}
