package crm

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderflowhq/orderflow-backend/pkg/enums"
)

// RecalculateResult reports what one grading pass did. Updated counts both
// newly provisioned customers and customers whose grade changed, in keeping
// with how the recalculation endpoint has always reported progress.
type RecalculateResult struct {
	Updated     int `json:"updated"`
	Provisioned int `json:"provisioned"`
	Regraded    int `json:"regraded"`
}

// Reminder is a derived, non-persisted notice that a customer needs attention.
type Reminder struct {
	CustomerID     uuid.UUID          `json:"customer_id"`
	CompanyName    string             `json:"company_name"`
	Type           enums.ReminderType `json:"reminder_type"`
	Reason         string             `json:"reason"`
	DaysSinceOrder *int               `json:"days_since_order,omitempty"`
	LastOrderDate  *time.Time         `json:"last_order_date,omitempty"`
	PendingActions int                `json:"pending_actions,omitempty"`
}
