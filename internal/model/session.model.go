package model

import "github.com/shopspring/decimal"

// SelectedCustomer is the slice of customer state a chat session keeps
// between commands.
type SelectedCustomer struct {
	CustomerID int64
	FullName   string
	Balance    decimal.Decimal
}

// Session is the per-admin conversational state. It is passed into and
// returned from every operation that can affect it, replaced wholesale
// rather than mutated through a shared reference; the command layer owns
// its lifecycle.
type Session struct {
	AdminID  int64
	Selected *SelectedCustomer
}

func (s Session) IsSelected(customerID int64) bool {
	return s.Selected != nil && s.Selected.CustomerID == customerID
}

// WithSelected returns a copy of the session pointing at the given
// customer.
func (s Session) WithSelected(c *Customer) Session {
	s.Selected = &SelectedCustomer{
		CustomerID: c.ID,
		FullName:   c.FullName,
		Balance:    c.Balance,
	}
	return s
}

// WithoutSelected returns a copy of the session with no selection.
func (s Session) WithoutSelected() Session {
	s.Selected = nil
	return s
}

// WithSelectedName returns a copy with the selected customer's cached
// name replaced. No-op when nothing is selected.
func (s Session) WithSelectedName(name string) Session {
	if s.Selected == nil {
		return s
	}
	sel := *s.Selected
	sel.FullName = name
	s.Selected = &sel
	return s
}

// WithSelectedBalance returns a copy with the selected customer's cached
// balance replaced. No-op when nothing is selected.
func (s Session) WithSelectedBalance(balance decimal.Decimal) Session {
	if s.Selected == nil {
		return s
	}
	sel := *s.Selected
	sel.Balance = balance
	s.Selected = &sel
	return s
}
