package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderAggregate holds the order count and amount sum for one slice of
// the order history.
type OrderAggregate struct {
	Count int64
	Total decimal.Decimal
}

// Repository defines the read queries backing dashboard statistics.
type Repository interface {
	// AggregateOrders counts orders and sums their amounts. A nil userID
	// aggregates across all users; a nil from/to leaves that bound open.
	AggregateOrders(ctx context.Context, userID *uuid.UUID, from, to *time.Time) (OrderAggregate, error)
	CountUsers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
}
