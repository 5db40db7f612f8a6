package orders

import (
	"github.com/google/uuid"

	"github.com/orderflowhq/orderflow-backend/pkg/enums"
)

// RequestedItem is one product/quantity pair of an incoming order.
type RequestedItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	UserID          uuid.UUID
	Items           []RequestedItem
	DeliveryAddress *string
	Notes           *string
}

// CancelOwnOrderInput identifies the order a customer wants to cancel.
type CancelOwnOrderInput struct {
	OrderID     uuid.UUID
	ActorUserID uuid.UUID
}

// UpdateStatusInput carries a privileged status transition.
type UpdateStatusInput struct {
	OrderID uuid.UUID
	Status  enums.OrderStatus
}

// OrderFilters narrows the staff-facing order listing.
type OrderFilters struct {
	Status *enums.OrderStatus
	UserID *uuid.UUID
}
