package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderflowhq/orderflow-backend/pkg/enums"
)

// Interaction is one entry in a customer's append-only touchpoint log.
// After creation the only permitted mutation is completing the next action.
type Interaction struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID      uuid.UUID             `gorm:"column:customer_id;type:uuid;not null"`
	Type            enums.InteractionType `gorm:"column:interaction_type;type:text;not null"`
	Content         string                `gorm:"column:content;not null"`
	NextAction      *string               `gorm:"column:next_action"`
	ActionCompleted bool                  `gorm:"column:action_completed;not null;default:false"`
	RecordedBy      string                `gorm:"column:recorded_by;not null"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
}
