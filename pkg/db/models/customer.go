package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderflowhq/orderflow-backend/pkg/enums"
)

// SourceSystemAutoImport tags customers provisioned by the grade
// recalculation pass rather than entered by staff.
const SourceSystemAutoImport = "system_auto_import"

// Customer is a CRM account record. It is linked to a User only by email
// equality; there is no foreign key between the two tables.
type Customer struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyName   string              `gorm:"column:company_name;not null"`
	ContactPerson *string             `gorm:"column:contact_person"`
	Phone         *string             `gorm:"column:phone"`
	Email         *string             `gorm:"column:email;uniqueIndex"`
	Address       *string             `gorm:"column:address"`
	Industry      *string             `gorm:"column:industry"`
	Source        *string             `gorm:"column:source"`
	Grade         enums.CustomerGrade `gorm:"column:grade;type:text;not null;default:'C'"`
	TotalOrders   int                 `gorm:"column:total_orders;not null;default:0"`
	TotalAmount   decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	LastOrderDate *time.Time          `gorm:"column:last_order_date"`
	Interactions  []Interaction       `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
