package repository

import (
	"time"

	"github.com/paytrack/ledger-gateway/internal/model"
)

// action_logs.customer_id deliberately carries no foreign key: a log row
// must outlive the customer row it references during the delete/undo
// transition.
type ActionLogEntity struct {
	ID         int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	AdminID    int64     `db:"admin_id"    gorm:"column:admin_id;not null;index"`
	CustomerID int64     `db:"customer_id" gorm:"column:customer_id;not null"`
	ActionType string    `db:"action_type" gorm:"column:action_type;not null;check:action_type IN ('change_phone','add_customer','add_transaction','delete_customer','rename_customer')"`
	Payload    string    `db:"payload"     gorm:"column:payload;not null"`
	CreatedAt  time.Time `db:"created_at"  gorm:"column:created_at"`
}

func (ActionLogEntity) TableName() string {
	return "action_logs"
}

// ActionLogArchiveEntity mirrors the live table; rows land here
// append-only once the retention sweep moves them.
type ActionLogArchiveEntity struct {
	ID         int64     `db:"id"          gorm:"primaryKey;column:id"`
	AdminID    int64     `db:"admin_id"    gorm:"column:admin_id;not null"`
	CustomerID int64     `db:"customer_id" gorm:"column:customer_id;not null"`
	ActionType string    `db:"action_type" gorm:"column:action_type;not null"`
	Payload    string    `db:"payload"     gorm:"column:payload;not null"`
	CreatedAt  time.Time `db:"created_at"  gorm:"column:created_at"`
}

func (ActionLogArchiveEntity) TableName() string {
	return "action_logs_archive"
}

func toActionLogModel(e *ActionLogEntity) *model.ActionLog {
	if e == nil {
		return nil
	}
	return &model.ActionLog{
		ID:         e.ID,
		AdminID:    e.AdminID,
		CustomerID: e.CustomerID,
		ActionType: model.ActionType(e.ActionType),
		Payload:    []byte(e.Payload),
		CreatedAt:  e.CreatedAt,
	}
}

func toActionLogModels(entities []*ActionLogEntity) []*model.ActionLog {
	if entities == nil {
		return nil
	}
	models := make([]*model.ActionLog, len(entities))
	for i, e := range entities {
		models[i] = toActionLogModel(e)
	}
	return models
}
