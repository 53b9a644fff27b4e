package repository

import (
	"time"

	"github.com/paytrack/ledger-gateway/internal/model"
	"github.com/shopspring/decimal"
)

type CustomerEntity struct {
	ID        int64           `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	FullName  string          `db:"fullname"   gorm:"column:fullname;not null;uniqueIndex:idx_customer_admin_name;type:text COLLATE NOCASE"`
	Phone     string          `db:"phone"      gorm:"column:phone"`
	AdminID   int64           `db:"admin_id"   gorm:"column:admin_id;not null;index;uniqueIndex:idx_customer_admin_name"`
	Balance   decimal.Decimal `db:"balance"    gorm:"column:balance;type:real;not null;default:0"`
	CreatedAt time.Time       `db:"created_at" gorm:"column:created_at"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		ID:        m.ID,
		FullName:  m.FullName,
		Phone:     m.Phone,
		AdminID:   m.AdminID,
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:        e.ID,
		FullName:  e.FullName,
		Phone:     e.Phone,
		AdminID:   e.AdminID,
		Balance:   e.Balance,
		CreatedAt: e.CreatedAt,
	}
}

func toCustomerModels(entities []*CustomerEntity) []*model.Customer {
	if entities == nil {
		return nil
	}
	models := make([]*model.Customer, len(entities))
	for i, e := range entities {
		models[i] = toCustomerModel(e)
	}
	return models
}
