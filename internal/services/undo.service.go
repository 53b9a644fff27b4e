package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paytrack/ledger-gateway/internal/model"
	"github.com/paytrack/ledger-gateway/internal/repository"
	"github.com/paytrack/ledger-gateway/pkg/logger"
)

// UndoResult describes a reverted action for presentation: which action
// was rolled back and a small set of labelled facts about it.
type UndoResult struct {
	Action  model.ActionType
	Details map[string]string
}

// UndoService reverts the single most recent logged action of an admin.
// The inverse mutation and the consumption of the log row commit
// together; if either side fails the action stays undoable.
type UndoService struct {
	ledger    *LedgerService
	customers CustomerRepository
	logs      ActionLogRepository
}

func NewUndoService(ledger *LedgerService, customers CustomerRepository, logs ActionLogRepository) *UndoService {
	return &UndoService{
		ledger:    ledger,
		customers: customers,
		logs:      logs,
	}
}

func (s *UndoService) Undo(ctx context.Context, adminID int64, sess model.Session) (model.Session, *UndoResult, error) {
	start := time.Now()

	last, err := s.logs.LatestForAdmin(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrNoActionLog) {
			return sess, nil, ErrNothingToUndo
		}
		logger.Error("undo lookup failed", "admin_id", adminID, "error", err)
		return sess, nil, ErrUnexpected
	}

	var result *UndoResult
	err = s.customers.WithinTransaction(ctx, func(ctx context.Context) error {
		r, txErr := s.applyInverse(ctx, last)
		if txErr != nil {
			return txErr
		}
		rows, txErr := s.logs.DeleteByID(ctx, last.ID)
		if txErr != nil {
			return txErr
		}
		if rows == 0 {
			return errors.New("action log row already consumed")
		}
		result = r
		return nil
	})
	undoStatus := "ok"
	if err != nil {
		undoStatus = "error"
	}
	undosTotal.WithLabelValues(string(last.ActionType), undoStatus).Inc()
	operationDuration.WithLabelValues(opUndo).Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Error("undo failed", "admin_id", adminID, "action", last.ActionType, "error", err)
		return sess, nil, fmt.Errorf("%w (%s)", ErrUndoFailed, last.ActionType)
	}

	return s.refreshSession(ctx, last, sess), result, nil
}

// applyInverse dispatches on the logged action type. The payload types
// form a closed set; an unknown type means a corrupt or foreign row and
// aborts the undo.
func (s *UndoService) applyInverse(ctx context.Context, last *model.ActionLog) (*UndoResult, error) {
	switch last.ActionType {
	case model.ActionAddCustomer:
		var args model.AddCustomerUndo
		if err := model.DecodeUndoArgs(last.Payload, &args); err != nil {
			return nil, err
		}
		removed, err := s.ledger.removeCustomer(ctx, args.CustomerID, args.AdminID)
		if err != nil {
			return nil, err
		}
		return &UndoResult{Action: last.ActionType, Details: map[string]string{
			"Removed": removed.FullName,
		}}, nil

	case model.ActionDeleteCustomer:
		var args model.DeleteCustomerUndo
		if err := model.DecodeUndoArgs(last.Payload, &args); err != nil {
			return nil, err
		}
		if err := s.ledger.restoreCustomer(ctx, &args); err != nil {
			return nil, err
		}
		return &UndoResult{Action: last.ActionType, Details: map[string]string{
			"Restored":     args.FullName,
			"Balance":      args.Balance.StringFixed(2),
			"Transactions": fmt.Sprintf("%d", len(args.Transactions)),
		}}, nil

	case model.ActionRenameCustomer:
		var args model.RenameCustomerUndo
		if err := model.DecodeUndoArgs(last.Payload, &args); err != nil {
			return nil, err
		}
		if err := s.ledger.restoreName(ctx, args.OldName, args.CustomerID, args.AdminID); err != nil {
			return nil, err
		}
		return &UndoResult{Action: last.ActionType, Details: map[string]string{
			"Current Name":  args.OldName,
			"Reverted From": args.NewName,
		}}, nil

	case model.ActionChangePhone:
		var args model.ChangePhoneUndo
		if err := model.DecodeUndoArgs(last.Payload, &args); err != nil {
			return nil, err
		}
		if err := s.ledger.restorePhone(ctx, args.OldPhone, args.CustomerID, args.AdminID); err != nil {
			return nil, err
		}
		return &UndoResult{Action: last.ActionType, Details: map[string]string{
			"Current Phone": args.OldPhone,
			"Reverted From": args.NewPhone,
		}}, nil

	case model.ActionAddTransaction:
		var args model.AddTransactionUndo
		if err := model.DecodeUndoArgs(last.Payload, &args); err != nil {
			return nil, err
		}
		updated, err := s.ledger.removeTransaction(ctx, &args)
		if err != nil {
			return nil, err
		}
		return &UndoResult{Action: last.ActionType, Details: map[string]string{
			"Customer":        updated.FullName,
			"Removed":         fmt.Sprintf("%s %s", args.Kind, args.Amount.StringFixed(2)),
			"Current Balance": updated.Balance.StringFixed(2),
		}}, nil
	}

	return nil, fmt.Errorf("unknown action type %q", last.ActionType)
}

// refreshSession reconciles the session's selected customer with the
// post-undo state of the store. A read failure here never fails the
// undo; the selection is dropped instead of going stale.
func (s *UndoService) refreshSession(ctx context.Context, last *model.ActionLog, sess model.Session) model.Session {
	if !sess.IsSelected(last.CustomerID) {
		return sess
	}

	switch last.ActionType {
	case model.ActionAddCustomer:
		return sess.WithoutSelected()
	case model.ActionChangePhone:
		return sess
	}

	c, err := s.customers.GetByID(ctx, last.CustomerID, last.AdminID)
	if err != nil {
		logger.Warn("selected customer refresh failed after undo", "admin_id", last.AdminID, "customer_id", last.CustomerID, "error", err)
		return sess.WithoutSelected()
	}
	return sess.WithSelected(c)
}
