package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
)

// OrderAggregate summarises a user's completed orders.
type OrderAggregate struct {
	Count         int
	Total         decimal.Decimal
	LastOrderDate *time.Time
}

// Repository defines persistence operations for the grading and reminder passes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindUsersWithCompletedOrders(ctx context.Context) ([]models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	ListAllCustomers(ctx context.Context) ([]models.Customer, error)
	SaveCustomer(ctx context.Context, customer *models.Customer) error
	AggregateCompletedOrders(ctx context.Context, userID uuid.UUID) (*OrderAggregate, error)
	FindCustomersWithLastOrderBefore(ctx context.Context, cutoff time.Time) ([]models.Customer, error)
	ListPendingActionInteractions(ctx context.Context) ([]models.Interaction, error)
	FindCustomersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Customer, error)
}
