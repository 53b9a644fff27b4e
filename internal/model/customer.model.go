package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a ledger account owned by a single admin. Balance is the
// running sum of signed transaction deltas: payments raise it, sales
// lower it. A negative balance means the customer owes money.
type Customer struct {
	ID        int64           `json:"id"`
	FullName  string          `json:"fullname"`
	Phone     string          `json:"phone"`
	AdminID   int64           `json:"admin_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

func (Customer) TableName() string { return "customers" }

// BalanceUpdate is the post-mutation state returned by a balance delta,
// read in the same statement as the update.
type BalanceUpdate struct {
	Balance  decimal.Decimal `gorm:"column:balance"`
	FullName string          `gorm:"column:fullname"`
}

// CustomerSummary aggregates a customer's account for display: lifetime
// totals per transaction kind plus the most recent transactions.
type CustomerSummary struct {
	Customer
	TotalSales    decimal.Decimal `json:"sales"`
	TotalPayments decimal.Decimal `json:"payments"`
	Recent        []*Transaction  `json:"recent"`
}
