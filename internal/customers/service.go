package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
	pkgerrors "github.com/orderflowhq/orderflow-backend/pkg/errors"
	"github.com/orderflowhq/orderflow-backend/pkg/pagination"
)

// Service defines CRM record-keeping operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Customer, error)
	Get(ctx context.Context, customerID uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Customer, error)
	Update(ctx context.Context, customerID uuid.UUID, input UpdateInput) (*models.Customer, error)
	Delete(ctx context.Context, customerID uuid.UUID) error
	AddInteraction(ctx context.Context, customerID uuid.UUID, input CreateInteractionInput) (*models.Interaction, error)
	ListInteractions(ctx context.Context, customerID uuid.UUID) ([]models.Interaction, error)
	CompleteInteraction(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error)
}

type service struct {
	repo Repository
}

// NewService builds a CRM record service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Customer, error) {
	if input.CompanyName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name required")
	}

	if input.Email != nil && *input.Email != "" {
		_, err := s.repo.FindByEmail(ctx, *input.Email)
		if err == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		if err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up customer by email")
		}
	}

	customer := &models.Customer{
		CompanyName:   input.CompanyName,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		Industry:      input.Industry,
		Source:        input.Source,
		Grade:         enums.CustomerGradeC,
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist customer")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, customerID uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.Find(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return customer, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Customer, error) {
	customers, err := s.repo.List(ctx, params.Normalize(), filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return customers, nil
}

func (s *service) Update(ctx context.Context, customerID uuid.UUID, input UpdateInput) (*models.Customer, error) {
	updates := map[string]any{}
	if input.CompanyName != nil {
		if *input.CompanyName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name required")
		}
		updates["company_name"] = *input.CompanyName
	}
	if input.ContactPerson != nil {
		updates["contact_person"] = *input.ContactPerson
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Industry != nil {
		updates["industry"] = *input.Industry
	}
	if input.Source != nil {
		updates["source"] = *input.Source
	}
	if len(updates) == 0 {
		return s.Get(ctx, customerID)
	}

	if err := s.repo.Update(ctx, customerID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	return s.Get(ctx, customerID)
}

// Delete removes a customer and, through the cascade, its interaction log.
func (s *service) Delete(ctx context.Context, customerID uuid.UUID) error {
	err := s.repo.Delete(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	return nil
}

func (s *service) AddInteraction(ctx context.Context, customerID uuid.UUID, input CreateInteractionInput) (*models.Interaction, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid interaction type %q", input.Type))
	}
	if input.Content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "interaction content required")
	}
	if input.RecordedBy == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "recorder identity missing")
	}

	if _, err := s.Get(ctx, customerID); err != nil {
		return nil, err
	}

	interaction := &models.Interaction{
		CustomerID: customerID,
		Type:       input.Type,
		Content:    input.Content,
		NextAction: input.NextAction,
		RecordedBy: input.RecordedBy,
	}
	created, err := s.repo.CreateInteraction(ctx, interaction)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist interaction")
	}
	return created, nil
}

func (s *service) ListInteractions(ctx context.Context, customerID uuid.UUID) ([]models.Interaction, error) {
	if _, err := s.Get(ctx, customerID); err != nil {
		return nil, err
	}

	interactions, err := s.repo.ListInteractions(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list interactions")
	}
	return interactions, nil
}

// CompleteInteraction flips the follow-up flag; the log is otherwise
// append-only.
func (s *service) CompleteInteraction(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error) {
	if err := s.repo.CompleteInteraction(ctx, interactionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "interaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete interaction")
	}

	interaction, err := s.repo.FindInteraction(ctx, interactionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload interaction")
	}
	return interaction, nil
}
