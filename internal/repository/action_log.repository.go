package repository

import (
	"context"
	"errors"
	"time"

	"github.com/paytrack/ledger-gateway/internal/model"
	"github.com/paytrack/ledger-gateway/pkg/sqlite"
	"gorm.io/gorm"
)

var (
	ErrNoActionLog = errors.New("no action log for admin")
)

type ActionLogRepository struct {
	*sqlite.DB
}

func NewActionLogRepository(db *sqlite.DB) *ActionLogRepository {
	return &ActionLogRepository{
		db,
	}
}

// Append writes one undo-journal row. Callers must invoke it inside the
// same unit of work as the mutation it describes; committing the log
// separately from its action is a correctness bug. Payload shape is the
// caller's contract, no validation happens here.
func (r *ActionLogRepository) Append(ctx context.Context, actionType model.ActionType, customerID, adminID int64, undoArgs any) error {
	payload, err := model.EncodeUndoArgs(undoArgs)
	if err != nil {
		return err
	}

	entity := &ActionLogEntity{
		AdminID:    adminID,
		CustomerID: customerID,
		ActionType: string(actionType),
		Payload:    string(payload),
	}

	return r.Write(ctx).Create(entity).Error
}

// LatestForAdmin returns the single most recent log row for an admin,
// the only row the undo protocol ever consults.
func (r *ActionLogRepository) LatestForAdmin(ctx context.Context, adminID int64) (*model.ActionLog, error) {
	var entity ActionLogEntity

	err := r.Read(ctx).
		Where("admin_id = ?", adminID).
		Order("id DESC").
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActionLog
		}
		return nil, err
	}

	return toActionLogModel(&entity), nil
}

// DeleteByID consumes a log row and reports how many rows were removed.
// The undo coordinator treats zero as a failure and rolls back.
func (r *ActionLogRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	result := r.Write(ctx).
		Where("id = ?", id).
		Delete(&ActionLogEntity{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// ListBefore returns up to limit log rows for an admin strictly older
// (by id) than beforeID, newest first. beforeID <= 0 starts from the
// newest row.
func (r *ActionLogRepository) ListBefore(ctx context.Context, adminID, beforeID int64, limit int) ([]*model.ActionLog, error) {
	q := r.Read(ctx).
		Where("admin_id = ?", adminID)

	if beforeID > 0 {
		q = q.Where("id < ?", beforeID)
	}

	var entities []*ActionLogEntity
	err := q.Order("id DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}

	return toActionLogModels(entities), nil
}

// SweepArchive moves every live log row older than cutoff into the
// archive table: copy then delete, both inside one committed unit of
// work. Returns the number of rows moved.
func (r *ActionLogRepository) SweepArchive(ctx context.Context, cutoff time.Time) (int64, error) {
	var moved int64

	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		copied := r.Write(ctx).Exec(`
			INSERT INTO action_logs_archive (id, admin_id, customer_id, action_type, payload, created_at)
			SELECT id, admin_id, customer_id, action_type, payload, created_at
			FROM action_logs
			WHERE created_at < ?`, cutoff)
		if copied.Error != nil {
			return copied.Error
		}

		deleted := r.Write(ctx).
			Where("created_at < ?", cutoff).
			Delete(&ActionLogEntity{})
		if deleted.Error != nil {
			return deleted.Error
		}

		if copied.RowsAffected != deleted.RowsAffected {
			return errors.New("archive sweep copy/delete mismatch")
		}

		moved = copied.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return moved, nil
}
