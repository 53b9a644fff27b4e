package services

import (
	"context"
	"fmt"

	"github.com/paytrack/ledger-gateway/internal/model"
	"github.com/paytrack/ledger-gateway/internal/repository"
	"github.com/paytrack/ledger-gateway/pkg/logger"
	"github.com/paytrack/ledger-gateway/pkg/pagination"
)

type BalanceLister interface {
	ListByBalance(ctx context.Context, f repository.BalanceFilter) ([]*model.Customer, error)
}

type HistoryLister interface {
	ListBefore(ctx context.Context, customerID, adminID, beforeID int64, limit int) ([]*model.Transaction, error)
}

type AuditLister interface {
	ListBefore(ctx context.Context, adminID, beforeID int64, limit int) ([]*model.ActionLog, error)
}

// ReportService serves keyset-paged read views. Pages carry opaque
// cursor tokens; re-reading a page with the same token is always valid
// even after inserts, rows just shift between pages without duplicating.
type ReportService struct {
	customers    BalanceLister
	transactions HistoryLister
	logs         AuditLister
	pageSize     int
}

func NewReportService(customers BalanceLister, transactions HistoryLister, logs AuditLister, pageSize int) *ReportService {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &ReportService{
		customers:    customers,
		transactions: transactions,
		logs:         logs,
		pageSize:     pageSize,
	}
}

// BalancePage lists customers owing money (due, most negative first) or
// holding credit (overpaid, most positive first), one page at a time.
func (s *ReportService) BalancePage(ctx context.Context, mode model.ReportMode, adminID int64, token string) (*model.CustomerPage, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown report mode %q", ErrInvalidCursor, mode)
	}

	var cursor *model.BalanceCursor
	if token != "" {
		balance, id, err := pagination.DecodeBalanceCursor(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
		}
		cursor = &model.BalanceCursor{Balance: balance, ID: id}
	}

	items, err := s.customers.ListByBalance(ctx, repository.BalanceFilter{
		AdminID: adminID,
		Mode:    mode,
		Cursor:  cursor,
		Limit:   s.pageSize + 1,
	})
	if err != nil {
		logger.Error("balance report failed", "admin_id", adminID, "mode", mode, "error", err)
		return nil, ErrUnexpected
	}

	page := &model.CustomerPage{Items: items}
	if len(items) > s.pageSize {
		page.Items = items[:s.pageSize]
		page.HasMore = true
		last := page.Items[len(page.Items)-1]
		page.NextCursor = pagination.EncodeBalanceCursor(last.Balance, last.ID)
	}
	return page, nil
}

// TransactionHistoryPage lists one customer's transactions newest
// first.
func (s *ReportService) TransactionHistoryPage(ctx context.Context, customerID, adminID int64, token string) (*model.TransactionPage, error) {
	beforeID, err := s.decodeIDToken(token)
	if err != nil {
		return nil, err
	}

	items, err := s.transactions.ListBefore(ctx, customerID, adminID, beforeID, s.pageSize+1)
	if err != nil {
		logger.Error("transaction history failed", "admin_id", adminID, "customer_id", customerID, "error", err)
		return nil, ErrUnexpected
	}

	page := &model.TransactionPage{Items: items}
	if len(items) > s.pageSize {
		page.Items = items[:s.pageSize]
		page.HasMore = true
		page.NextCursor = pagination.EncodeIDCursor(page.Items[len(page.Items)-1].ID)
	}
	return page, nil
}

// ActionLogPage lists an admin's pending (not yet swept) action log
// entries newest first.
func (s *ReportService) ActionLogPage(ctx context.Context, adminID int64, token string) (*model.ActionLogPage, error) {
	beforeID, err := s.decodeIDToken(token)
	if err != nil {
		return nil, err
	}

	items, err := s.logs.ListBefore(ctx, adminID, beforeID, s.pageSize+1)
	if err != nil {
		logger.Error("action log report failed", "admin_id", adminID, "error", err)
		return nil, ErrUnexpected
	}

	page := &model.ActionLogPage{Items: items}
	if len(items) > s.pageSize {
		page.Items = items[:s.pageSize]
		page.HasMore = true
		page.NextCursor = pagination.EncodeIDCursor(page.Items[len(page.Items)-1].ID)
	}
	return page, nil
}

// decodeIDToken turns an optional cursor token into a strict upper
// bound on row ids; an empty token means "from the top".
func (s *ReportService) decodeIDToken(token string) (int64, error) {
	if token == "" {
		return 0, nil
	}
	id, err := pagination.DecodeIDCursor(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	return id, nil
}
