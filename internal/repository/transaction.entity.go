package repository

import (
	"time"

	"github.com/paytrack/ledger-gateway/internal/model"
	"github.com/shopspring/decimal"
)

type TransactionEntity struct {
	ID          int64           `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Amount      decimal.Decimal `db:"amount"      gorm:"column:amount;type:real;not null"`
	Kind        string          `db:"type"        gorm:"column:type;not null;check:type IN ('sale','payment')"`
	CustomerID  int64           `db:"customer_id" gorm:"column:customer_id;not null;index"`
	Customer    *CustomerEntity `db:"-"           gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:CASCADE"`
	AdminID     int64           `db:"admin_id"    gorm:"column:admin_id;not null;index"`
	Description string          `db:"description" gorm:"column:description"`
	CreatedAt   time.Time       `db:"created_at"  gorm:"column:created_at"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:          m.ID,
		Amount:      m.Amount,
		Kind:        string(m.Kind),
		CustomerID:  m.CustomerID,
		AdminID:     m.AdminID,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:          e.ID,
		Amount:      e.Amount,
		Kind:        model.TransactionKind(e.Kind),
		CustomerID:  e.CustomerID,
		AdminID:     e.AdminID,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
