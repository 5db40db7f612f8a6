package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orderflowhq/orderflow-backend/pkg/enums"
	pkgerrors "github.com/orderflowhq/orderflow-backend/pkg/errors"
)

// Service computes dashboard statistics scoped to the caller's role.
type Service interface {
	Stats(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*Stats, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a dashboard service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Stats aggregates order totals for the current caller. Customers only see
// their own orders; staff see every order; admins additionally get user and
// product counts.
func (s *service) Stats(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*Stats, error) {
	var scope *uuid.UUID
	if role == enums.UserRoleCustomer {
		scope = &userID
	}

	total, err := s.repo.AggregateOrders(ctx, scope, nil, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate orders")
	}

	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	month, err := s.repo.AggregateOrders(ctx, scope, &monthStart, &monthEnd)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate monthly orders")
	}

	stats := &Stats{
		TotalOrders:     total.Count,
		TotalAmount:     total.Total,
		ThisMonthOrders: month.Count,
		ThisMonthAmount: month.Total,
	}

	if role == enums.UserRoleAdmin || role == enums.UserRoleSuperAdmin {
		users, err := s.repo.CountUsers(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
		}
		products, err := s.repo.CountProducts(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
		}
		stats.TotalUsers = &users
		stats.TotalProducts = &products
	}

	return stats, nil
}
