package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindSale    TransactionKind = "sale"
	KindPayment TransactionKind = "payment"
)

func (k TransactionKind) Valid() bool {
	return k == KindSale || k == KindPayment
}

// Inverse returns the kind whose balance effect cancels this one.
func (k TransactionKind) Inverse() TransactionKind {
	if k == KindSale {
		return KindPayment
	}
	return KindSale
}

// Transaction records a single sale or payment. Amount is always
// strictly positive; the direction of the balance effect is carried by
// Kind, never by the sign of Amount. Rows are created and deleted (by
// undo), never updated.
type Transaction struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        TransactionKind `json:"type"`
	CustomerID  int64           `json:"customer_id"`
	AdminID     int64           `json:"admin_id"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }

// TransactionResult is what an add-transaction operation hands back for
// feedback rendering.
type TransactionResult struct {
	Transaction *Transaction
	Balance     decimal.Decimal
	FullName    string
}
