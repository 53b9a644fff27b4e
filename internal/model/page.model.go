package model

import "github.com/shopspring/decimal"

// ReportMode selects which balance-filtered customer listing a report
// page serves.
type ReportMode string

const (
	// ReportDue lists customers with negative balances, most indebted
	// first (balance ascending, id ascending on ties).
	ReportDue ReportMode = "due_customers"
	// ReportOverpaid lists customers with positive balances, largest
	// credit first (balance descending, id ascending on ties).
	ReportOverpaid ReportMode = "overpaid_customers"
)

func (m ReportMode) Valid() bool {
	return m == ReportDue || m == ReportOverpaid
}

// BalanceCursor is the decoded composite cursor for balance listings:
// the (balance, id) pair of the last row on the previous page. The id
// component breaks ties between customers sharing a balance.
type BalanceCursor struct {
	Balance decimal.Decimal
	ID      int64
}

// CustomerPage is one page of a balance report. NextCursor is an opaque
// token, empty when HasMore is false.
type CustomerPage struct {
	Items      []*Customer
	HasMore    bool
	NextCursor string
}

// TransactionPage is one page of a customer's transaction history,
// ordered by id descending.
type TransactionPage struct {
	Items      []*Transaction
	HasMore    bool
	NextCursor string
}

// ActionLogPage is one page of an admin's action audit trail, ordered by
// id descending.
type ActionLogPage struct {
	Items      []*ActionLog
	HasMore    bool
	NextCursor string
}
