package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ActionType string

const (
	ActionAddCustomer    ActionType = "add_customer"
	ActionDeleteCustomer ActionType = "delete_customer"
	ActionRenameCustomer ActionType = "rename_customer"
	ActionChangePhone    ActionType = "change_phone"
	ActionAddTransaction ActionType = "add_transaction"
)

func (a ActionType) Valid() bool {
	switch a {
	case ActionAddCustomer, ActionDeleteCustomer, ActionRenameCustomer,
		ActionChangePhone, ActionAddTransaction:
		return true
	}
	return false
}

// ActionLog is one row of the append-only undo journal. Payload is the
// serialized undo envelope; only the most recent row per admin is ever
// replayed, older rows are retained for audit until the retention sweep
// archives them.
type ActionLog struct {
	ID         int64      `json:"id"`
	AdminID    int64      `json:"admin_id"`
	CustomerID int64      `json:"customer_id"`
	ActionType ActionType `json:"action_type"`
	Payload    []byte     `json:"payload"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (ActionLog) TableName() string { return "action_logs" }

// One undo-args shape exists per action kind; together they form a
// closed sum dispatched by an exhaustive switch in the undo coordinator.

// AddCustomerUndo reverses add_customer by deleting the customer again.
type AddCustomerUndo struct {
	CustomerID int64 `json:"customer_id"`
	AdminID    int64 `json:"admin_id"`
}

// DeleteCustomerUndo holds everything a cascade delete destroys: the
// customer row at its original identity, timestamp and balance, plus all
// of its transactions.
type DeleteCustomerUndo struct {
	CustomerID   int64           `json:"customer_id"`
	AdminID      int64           `json:"admin_id"`
	FullName     string          `json:"fullname"`
	Phone        string          `json:"phone"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
	Transactions []*Transaction  `json:"transactions"`
}

// RenameCustomerUndo reverses rename_customer by restoring the old name.
type RenameCustomerUndo struct {
	CustomerID int64           `json:"customer_id"`
	AdminID    int64           `json:"admin_id"`
	OldName    string          `json:"old_name"`
	NewName    string          `json:"new_name"`
	Balance    decimal.Decimal `json:"balance"`
}

// ChangePhoneUndo reverses change_phone by restoring the old phone.
type ChangePhoneUndo struct {
	CustomerID int64  `json:"customer_id"`
	AdminID    int64  `json:"admin_id"`
	OldPhone   string `json:"old_phone"`
	NewPhone   string `json:"new_phone"`
}

// AddTransactionUndo reverses add_transaction by deleting the row and
// applying the opposite kind's delta.
type AddTransactionUndo struct {
	TransactionID int64           `json:"transaction_id"`
	CustomerID    int64           `json:"customer_id"`
	AdminID       int64           `json:"admin_id"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          TransactionKind `json:"type"`
}

// actionEnvelope is the stored payload shape. The undo arguments live
// under "undo-args" so the envelope can grow audit-only fields without
// touching the undo path.
type actionEnvelope struct {
	UndoArgs json.RawMessage `json:"undo-args"`
}

// EncodeUndoArgs wraps kind-specific undo arguments into the stored
// envelope form. Shape correctness is the caller's contract.
func EncodeUndoArgs(args any) ([]byte, error) {
	inner, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	return json.Marshal(actionEnvelope{UndoArgs: inner})
}

// DecodeUndoArgs extracts the kind-specific undo arguments from a stored
// payload into dst.
func DecodeUndoArgs(payload []byte, dst any) error {
	var env actionEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return fmt.Errorf("decode action payload: %w", err)
	}
	if len(env.UndoArgs) == 0 {
		return fmt.Errorf("action payload has no undo-args")
	}
	return json.Unmarshal(env.UndoArgs, dst)
}
