package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	"github.com/orderflowhq/orderflow-backend/pkg/pagination"
)

// Repository defines persistence operations for customers and their
// interaction log.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Find(ctx context.Context, customerID uuid.UUID) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Customer, error)
	Update(ctx context.Context, customerID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, customerID uuid.UUID) error
	CreateInteraction(ctx context.Context, interaction *models.Interaction) (*models.Interaction, error)
	FindInteraction(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error)
	ListInteractions(ctx context.Context, customerID uuid.UUID) ([]models.Interaction, error)
	CompleteInteraction(ctx context.Context, interactionID uuid.UUID) error
}
