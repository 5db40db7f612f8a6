package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderflowhq/orderflow-backend/pkg/enums"
)

// Order is the header row of a multi-item purchase.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string            `gorm:"column:order_number;not null;uniqueIndex"`
	UserID          uuid.UUID         `gorm:"column:user_id;type:uuid;not null"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	TotalAmount     decimal.Decimal   `gorm:"column:total_amount;type:numeric(10,2);not null"`
	DeliveryAddress *string           `gorm:"column:delivery_address"`
	Notes           *string           `gorm:"column:notes"`
	OrderDate       time.Time         `gorm:"column:order_date;autoCreateTime"`
	User            *User             `gorm:"foreignKey:UserID"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
