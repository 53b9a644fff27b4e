package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paytrack/ledger-gateway/internal/model"
	"github.com/paytrack/ledger-gateway/internal/repository"
	"github.com/paytrack/ledger-gateway/pkg/logger"
	"github.com/shopspring/decimal"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, customerID, adminID int64) (*model.Customer, error)
	Search(ctx context.Context, query string, limit int, adminID int64) ([]*model.Customer, error)
	Rename(ctx context.Context, name string, customerID, adminID int64) error
	UpdatePhone(ctx context.Context, phone string, customerID, adminID int64) error
	Delete(ctx context.Context, customerID, adminID int64) error
	ApplyDelta(ctx context.Context, customerID, adminID int64, amount decimal.Decimal, kind model.TransactionKind) (*model.BalanceUpdate, error)
	Summary(ctx context.Context, customerID, adminID int64) (*model.CustomerSummary, error)
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	DeleteReturning(ctx context.Context, transactionID, adminID int64) (*model.Transaction, error)
	RestoreBatch(ctx context.Context, txns []*model.Transaction) error
	ListByCustomer(ctx context.Context, customerID, adminID int64) ([]*model.Transaction, error)
}

type ActionLogRepository interface {
	Append(ctx context.Context, actionType model.ActionType, customerID, adminID int64, undoArgs any) error
	LatestForAdmin(ctx context.Context, adminID int64) (*model.ActionLog, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// LedgerService is the write surface of the ledger. Every mutation
// validates its input first, then runs the store change and its action
// log entry inside one unit of work, so an operation is undoable iff it
// happened.
type LedgerService struct {
	customers    CustomerRepository
	transactions TransactionRepository
	logs         ActionLogRepository
	searchLimit  int
}

func NewLedgerService(customers CustomerRepository, transactions TransactionRepository, logs ActionLogRepository, searchLimit int) *LedgerService {
	if searchLimit <= 0 {
		searchLimit = 5
	}
	return &LedgerService{
		customers:    customers,
		transactions: transactions,
		logs:         logs,
		searchLimit:  searchLimit,
	}
}

// AddCustomer registers a customer under the admin's book and selects
// it in the returned session.
func (s *LedgerService) AddCustomer(ctx context.Context, fullName, phone string, adminID int64, sess model.Session) (_ model.Session, _ *model.Customer, err error) {
	defer observeOp(opAddCustomer, time.Now(), &err)

	name := NormalizeFullName(fullName)
	if !ValidFullName(name) {
		return sess, nil, ErrInvalidName
	}
	if !ValidPhone(phone) {
		return sess, nil, ErrInvalidPhone
	}

	var created *model.Customer
	err = s.customers.WithinTransaction(ctx, func(ctx context.Context) error {
		c, txErr := s.customers.Create(ctx, &model.Customer{
			FullName: name,
			Phone:    NormalizePhone(phone),
			AdminID:  adminID,
		})
		if txErr != nil {
			return txErr
		}
		created = c
		return s.logs.Append(ctx, model.ActionAddCustomer, c.ID, adminID, model.AddCustomerUndo{
			CustomerID: c.ID,
			AdminID:    adminID,
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateCustomerName) {
			return sess, nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		logger.Error("add customer failed", "admin_id", adminID, "error", err)
		return sess, nil, ErrUnexpected
	}

	return sess.WithSelected(created), created, nil
}

// DeleteCustomer removes a customer with all its transactions. The
// returned snapshot is the same record the action log keeps, so the
// caller sees exactly what an undo would bring back.
func (s *LedgerService) DeleteCustomer(ctx context.Context, customerID, adminID int64, sess model.Session) (_ model.Session, _ *model.DeleteCustomerUndo, err error) {
	defer observeOp(opDeleteCustomer, time.Now(), &err)

	var snapshot *model.DeleteCustomerUndo
	err = s.customers.WithinTransaction(ctx, func(ctx context.Context) error {
		c, txErr := s.customers.GetByID(ctx, customerID, adminID)
		if txErr != nil {
			return txErr
		}
		txns, txErr := s.transactions.ListByCustomer(ctx, customerID, adminID)
		if txErr != nil {
			return txErr
		}
		snapshot = &model.DeleteCustomerUndo{
			CustomerID:   c.ID,
			AdminID:      adminID,
			FullName:     c.FullName,
			Phone:        c.Phone,
			Balance:      c.Balance,
			CreatedAt:    c.CreatedAt,
			Transactions: txns,
		}
		if txErr = s.logs.Append(ctx, model.ActionDeleteCustomer, customerID, adminID, snapshot); txErr != nil {
			return txErr
		}
		return s.customers.Delete(ctx, customerID, adminID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return sess, nil, ErrNotFound
		}
		logger.Error("delete customer failed", "admin_id", adminID, "customer_id", customerID, "error", err)
		return sess, nil, ErrUnexpected
	}

	if sess.IsSelected(customerID) {
		sess = sess.WithoutSelected()
	}
	return sess, snapshot, nil
}

// RenameCustomer changes a customer's full name and returns the name it
// had before.
func (s *LedgerService) RenameCustomer(ctx context.Context, newName string, customerID, adminID int64, sess model.Session) (_ model.Session, _ string, err error) {
	defer observeOp(opRenameCustomer, time.Now(), &err)

	name := NormalizeFullName(newName)
	if !ValidFullName(name) {
		return sess, "", ErrInvalidName
	}

	var oldName string
	err = s.customers.WithinTransaction(ctx, func(ctx context.Context) error {
		c, txErr := s.customers.GetByID(ctx, customerID, adminID)
		if txErr != nil {
			return txErr
		}
		oldName = c.FullName
		if txErr = s.logs.Append(ctx, model.ActionRenameCustomer, customerID, adminID, model.RenameCustomerUndo{
			CustomerID: customerID,
			AdminID:    adminID,
			OldName:    oldName,
			NewName:    name,
			Balance:    c.Balance,
		}); txErr != nil {
			return txErr
		}
		return s.customers.Rename(ctx, name, customerID, adminID)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateCustomerName):
			return sess, "", fmt.Errorf("%w: %q", ErrDuplicateName, name)
		case errors.Is(err, repository.ErrCustomerNotFound):
			return sess, "", ErrNotFound
		}
		logger.Error("rename customer failed", "admin_id", adminID, "customer_id", customerID, "error", err)
		return sess, "", ErrUnexpected
	}

	if sess.IsSelected(customerID) {
		sess = sess.WithSelectedName(name)
	}
	return sess, oldName, nil
}

// ChangePhone replaces a customer's phone number and returns the old
// number alongside the customer's name.
func (s *LedgerService) ChangePhone(ctx context.Context, phone string, customerID, adminID int64) (oldPhone, fullName string, err error) {
	defer observeOp(opChangePhone, time.Now(), &err)

	if !ValidPhone(phone) {
		return "", "", ErrInvalidPhone
	}
	normalized := NormalizePhone(phone)

	err = s.customers.WithinTransaction(ctx, func(ctx context.Context) error {
		c, txErr := s.customers.GetByID(ctx, customerID, adminID)
		if txErr != nil {
			return txErr
		}
		oldPhone = c.Phone
		fullName = c.FullName
		if txErr = s.logs.Append(ctx, model.ActionChangePhone, customerID, adminID, model.ChangePhoneUndo{
			CustomerID: customerID,
			AdminID:    adminID,
			OldPhone:   oldPhone,
			NewPhone:   normalized,
		}); txErr != nil {
			return txErr
		}
		return s.customers.UpdatePhone(ctx, normalized, customerID, adminID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return "", "", ErrNotFound
		}
		logger.Error("change phone failed", "admin_id", adminID, "customer_id", customerID, "error", err)
		return "", "", ErrUnexpected
	}

	return oldPhone, fullName, nil
}

// AddTransaction records a sale or a payment against a customer and
// adjusts the balance in the same unit of work. Payments raise the
// balance, sales lower it.
func (s *LedgerService) AddTransaction(ctx context.Context, amount decimal.Decimal, kind model.TransactionKind, description string, customerID, adminID int64, sess model.Session) (_ model.Session, _ *model.TransactionResult, err error) {
	defer observeOp(opAddTransaction, time.Now(), &err)

	if !kind.Valid() {
		return sess, nil, ErrInvalidKind
	}
	if !amount.IsPositive() {
		return sess, nil, ErrInvalidAmount
	}

	var result *model.TransactionResult
	err = s.customers.WithinTransaction(ctx, func(ctx context.Context) error {
		updated, txErr := s.customers.ApplyDelta(ctx, customerID, adminID, amount, kind)
		if txErr != nil {
			return txErr
		}
		txn, txErr := s.transactions.Create(ctx, &model.Transaction{
			Amount:      amount,
			Kind:        kind,
			CustomerID:  customerID,
			AdminID:     adminID,
			Description: description,
		})
		if txErr != nil {
			return txErr
		}
		if txErr = s.logs.Append(ctx, model.ActionAddTransaction, customerID, adminID, model.AddTransactionUndo{
			TransactionID: txn.ID,
			CustomerID:    customerID,
			AdminID:       adminID,
			Amount:        amount,
			Kind:          kind,
		}); txErr != nil {
			return txErr
		}
		result = &model.TransactionResult{
			Transaction: txn,
			Balance:     updated.Balance,
			FullName:    updated.FullName,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return sess, nil, ErrNotFound
		}
		logger.Error("add transaction failed", "admin_id", adminID, "customer_id", customerID, "error", err)
		return sess, nil, ErrUnexpected
	}

	if sess.IsSelected(customerID) {
		sess = sess.WithSelectedBalance(result.Balance)
	}
	return sess, result, nil
}

// SelectCustomer makes a customer the session's working target.
func (s *LedgerService) SelectCustomer(ctx context.Context, customerID, adminID int64, sess model.Session) (model.Session, *model.Customer, error) {
	c, err := s.customers.GetByID(ctx, customerID, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return sess, nil, ErrNotFound
		}
		logger.Error("select customer failed", "admin_id", adminID, "customer_id", customerID, "error", err)
		return sess, nil, ErrUnexpected
	}
	return sess.WithSelected(c), c, nil
}

// Search finds customers whose name or phone contains the query.
func (s *LedgerService) Search(ctx context.Context, query string, adminID int64) ([]*model.Customer, error) {
	trimmed := strings.ToLower(strings.TrimSpace(query))
	if trimmed == "" {
		return nil, nil
	}
	found, err := s.customers.Search(ctx, trimmed, s.searchLimit, adminID)
	if err != nil {
		logger.Error("customer search failed", "admin_id", adminID, "error", err)
		return nil, ErrUnexpected
	}
	return found, nil
}

// Summary returns one customer's card: profile, lifetime sale and
// payment totals and the most recent transactions.
func (s *LedgerService) Summary(ctx context.Context, customerID, adminID int64) (*model.CustomerSummary, error) {
	summary, err := s.customers.Summary(ctx, customerID, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrNotFound
		}
		logger.Error("customer summary failed", "admin_id", adminID, "customer_id", customerID, "error", err)
		return nil, ErrUnexpected
	}
	return summary, nil
}

// Inverse operations used by the undo coordinator. They run inside the
// coordinator's unit of work and skip both logging and action log
// appends: reverting must not itself become undoable.

func (s *LedgerService) removeCustomer(ctx context.Context, customerID, adminID int64) (*model.Customer, error) {
	c, err := s.customers.GetByID(ctx, customerID, adminID)
	if err != nil {
		return nil, err
	}
	if err = s.customers.Delete(ctx, customerID, adminID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *LedgerService) restoreCustomer(ctx context.Context, args *model.DeleteCustomerUndo) error {
	_, err := s.customers.Create(ctx, &model.Customer{
		ID:        args.CustomerID,
		FullName:  args.FullName,
		Phone:     args.Phone,
		AdminID:   args.AdminID,
		Balance:   args.Balance,
		CreatedAt: args.CreatedAt,
	})
	if err != nil {
		return err
	}
	return s.transactions.RestoreBatch(ctx, args.Transactions)
}

func (s *LedgerService) restoreName(ctx context.Context, name string, customerID, adminID int64) error {
	return s.customers.Rename(ctx, name, customerID, adminID)
}

func (s *LedgerService) restorePhone(ctx context.Context, phone string, customerID, adminID int64) error {
	return s.customers.UpdatePhone(ctx, phone, customerID, adminID)
}

func (s *LedgerService) removeTransaction(ctx context.Context, args *model.AddTransactionUndo) (*model.BalanceUpdate, error) {
	if _, err := s.transactions.DeleteReturning(ctx, args.TransactionID, args.AdminID); err != nil {
		return nil, err
	}
	return s.customers.ApplyDelta(ctx, args.CustomerID, args.AdminID, args.Amount, args.Kind.Inverse())
}
