package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a CRM repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindUsersWithCompletedOrders(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Distinct("users.*").
		Joins("JOIN orders ON orders.user_id = users.id").
		Where("orders.status = ?", enums.OrderStatusCompleted).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *repository) ListAllCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repository) SaveCustomer(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *repository) AggregateCompletedOrders(ctx context.Context, userID uuid.UUID) (*OrderAggregate, error) {
	var row struct {
		Count int
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total").
		Where("user_id = ? AND status = ?", userID, enums.OrderStatusCompleted).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	agg := &OrderAggregate{Count: row.Count, Total: row.Total}
	if row.Count == 0 {
		return agg, nil
	}

	var latest models.Order
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, enums.OrderStatusCompleted).
		Order("order_date DESC").
		First(&latest).Error
	if err != nil {
		return nil, err
	}
	agg.LastOrderDate = &latest.OrderDate
	return agg, nil
}

func (r *repository) FindCustomersWithLastOrderBefore(ctx context.Context, cutoff time.Time) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("last_order_date IS NOT NULL AND last_order_date < ?", cutoff).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repository) ListPendingActionInteractions(ctx context.Context) ([]models.Interaction, error) {
	var interactions []models.Interaction
	err := r.db.WithContext(ctx).
		Where("action_completed = ? AND next_action IS NOT NULL AND next_action <> ''", false).
		Find(&interactions).Error
	if err != nil {
		return nil, err
	}
	return interactions, nil
}

func (r *repository) FindCustomersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
