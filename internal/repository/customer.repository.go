package repository

import (
	"context"
	"errors"

	"github.com/paytrack/ledger-gateway/internal/model"
	"github.com/paytrack/ledger-gateway/pkg/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrDuplicateCustomerName  = errors.New("customer name already exists")
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")
)

type CustomerRepository struct {
	*sqlite.DB
}

func NewCustomerRepository(db *sqlite.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

// Create inserts a customer and returns it with its generated id. When
// the incoming model carries a non-zero ID/CreatedAt/Balance (the
// delete-undo restore path) those are written as-is, resurrecting the
// customer at its original identity.
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(c)

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCustomerName
		}
		return nil, err
	}

	return toCustomerModel(entity), nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, customerID, adminID int64) (*model.Customer, error) {
	var entity CustomerEntity

	err := r.Read(ctx).
		Where("id = ? AND admin_id = ?", customerID, adminID).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	return toCustomerModel(&entity), nil
}

// Search returns customers whose name or phone contains the query,
// ordered by name.
func (r *CustomerRepository) Search(ctx context.Context, query string, limit int, adminID int64) ([]*model.Customer, error) {
	var entities []*CustomerEntity

	pattern := "%" + query + "%"
	err := r.Read(ctx).
		Where("(fullname LIKE ? OR phone LIKE ?) AND admin_id = ?", pattern, pattern, adminID).
		Order("fullname ASC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}

	return toCustomerModels(entities), nil
}

func (r *CustomerRepository) Rename(ctx context.Context, name string, customerID, adminID int64) error {
	result := r.Write(ctx).
		Model(&CustomerEntity{}).
		Where("id = ? AND admin_id = ?", customerID, adminID).
		Update("fullname", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCustomerName
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

func (r *CustomerRepository) UpdatePhone(ctx context.Context, phone string, customerID, adminID int64) error {
	result := r.Write(ctx).
		Model(&CustomerEntity{}).
		Where("id = ? AND admin_id = ?", customerID, adminID).
		Update("phone", phone)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// Delete removes the customer row; the store cascades the delete to its
// transactions.
func (r *CustomerRepository) Delete(ctx context.Context, customerID, adminID int64) error {
	result := r.Write(ctx).
		Where("id = ? AND admin_id = ?", customerID, adminID).
		Delete(&CustomerEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// ApplyDelta atomically adjusts the customer's balance by the signed
// effect of (amount, kind) and reads back the new balance and display
// name in the same statement. Payments add, sales subtract. Must run
// inside the same unit of work as the matching transaction-row insert.
func (r *CustomerRepository) ApplyDelta(ctx context.Context, customerID, adminID int64, amount decimal.Decimal, kind model.TransactionKind) (*model.BalanceUpdate, error) {
	var delta decimal.Decimal
	switch kind {
	case model.KindPayment:
		delta = amount.Abs()
	case model.KindSale:
		delta = amount.Abs().Neg()
	default:
		return nil, ErrInvalidTransactionKind
	}

	var updated model.BalanceUpdate
	result := r.Write(ctx).Raw(`
		UPDATE customers SET balance = balance + ?
		WHERE id = ? AND admin_id = ?
		RETURNING balance, fullname`,
		delta, customerID, adminID,
	).Scan(&updated)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCustomerNotFound
	}

	return &updated, nil
}

type BalanceFilter struct {
	AdminID int64
	Mode    model.ReportMode
	Cursor  *model.BalanceCursor
	Limit   int
}

// ListByBalance serves one page of a balance report. Due mode returns
// negative balances ascending, overpaid mode positive balances
// descending; ties on balance break by id ascending in both modes, and
// the cursor predicate mirrors the ordering so no row is skipped or
// repeated across pages.
func (r *CustomerRepository) ListByBalance(ctx context.Context, f BalanceFilter) ([]*model.Customer, error) {
	q := r.Read(ctx).
		Model(&CustomerEntity{}).
		Where("admin_id = ?", f.AdminID)

	switch f.Mode {
	case model.ReportDue:
		q = q.Where("balance < 0").Order("balance ASC, id ASC")
		if f.Cursor != nil {
			q = q.Where("balance > ? OR (balance = ? AND id > ?)",
				f.Cursor.Balance, f.Cursor.Balance, f.Cursor.ID)
		}
	case model.ReportOverpaid:
		q = q.Where("balance > 0").Order("balance DESC, id ASC")
		if f.Cursor != nil {
			q = q.Where("balance < ? OR (balance = ? AND id > ?)",
				f.Cursor.Balance, f.Cursor.Balance, f.Cursor.ID)
		}
	default:
		return nil, errors.New("invalid report mode: " + string(f.Mode))
	}

	var entities []*CustomerEntity
	if err := q.Limit(f.Limit).Find(&entities).Error; err != nil {
		return nil, err
	}

	return toCustomerModels(entities), nil
}

// Summary reads the customer row together with its lifetime sale and
// payment totals and the five most recent transactions.
func (r *CustomerRepository) Summary(ctx context.Context, customerID, adminID int64) (*model.CustomerSummary, error) {
	customer, err := r.GetByID(ctx, customerID, adminID)
	if err != nil {
		return nil, err
	}

	var totals struct {
		TotalSales    decimal.Decimal `gorm:"column:total_sales"`
		TotalPayments decimal.Decimal `gorm:"column:total_payments"`
	}
	err = r.Read(ctx).Raw(`
		SELECT TOTAL(CASE WHEN type = 'sale' THEN amount ELSE 0.0 END) AS total_sales,
		       TOTAL(CASE WHEN type = 'payment' THEN amount ELSE 0.0 END) AS total_payments
		FROM transactions
		WHERE customer_id = ? AND admin_id = ?`,
		customerID, adminID,
	).Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var recent []*TransactionEntity
	err = r.Read(ctx).
		Where("customer_id = ? AND admin_id = ?", customerID, adminID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent).
		Error
	if err != nil {
		return nil, err
	}

	return &model.CustomerSummary{
		Customer:      *customer,
		TotalSales:    totals.TotalSales,
		TotalPayments: totals.TotalPayments,
		Recent:        toTransactionModels(recent),
	}, nil
}
