package customers

import (
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
)

// SortLastOrderDate orders the customer listing by most recent order first.
const SortLastOrderDate = "last_order_date"

// Filters narrows and orders the customer listing.
type Filters struct {
	Grade    *enums.CustomerGrade
	Industry *string
	SortBy   string
}

// CreateInput carries a new customer record.
type CreateInput struct {
	CompanyName   string
	ContactPerson *string
	Phone         *string
	Email         *string
	Address       *string
	Industry      *string
	Source        *string
}

// UpdateInput carries a partial customer edit; nil fields are left untouched.
type UpdateInput struct {
	CompanyName   *string
	ContactPerson *string
	Phone         *string
	Email         *string
	Address       *string
	Industry      *string
	Source        *string
}

// CreateInteractionInput carries a new touchpoint entry.
type CreateInteractionInput struct {
	Type       enums.InteractionType
	Content    string
	NextAction *string
	RecordedBy string
}
