package crm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
	pkgerrors "github.com/orderflowhq/orderflow-backend/pkg/errors"
)

// Reminders produces the combined reminder list: customers that have not
// ordered within the configured window, and customers with incomplete
// follow-up actions. A customer appearing in both lists is reported twice.
func (s *service) Reminders(ctx context.Context) ([]Reminder, error) {
	rules, err := s.loadRules(s.rulesPath)
	if err != nil {
		return nil, err
	}

	reminders, err := s.noOrderReminders(ctx, rules.NoOrderDays)
	if err != nil {
		return nil, err
	}

	pending, err := s.pendingActionReminders(ctx)
	if err != nil {
		return nil, err
	}

	return append(reminders, pending...), nil
}

func (s *service) noOrderReminders(ctx context.Context, noOrderDays int) ([]Reminder, error) {
	now := s.now()
	cutoff := now.AddDate(0, 0, -noOrderDays)

	customers, err := s.repo.FindCustomersWithLastOrderBefore(ctx, cutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stale customers")
	}

	reminders := make([]Reminder, 0, len(customers))
	for i := range customers {
		customer := &customers[i]
		days := int(now.Sub(*customer.LastOrderDate).Hours() / 24)
		reminders = append(reminders, Reminder{
			CustomerID:     customer.ID,
			CompanyName:    customer.CompanyName,
			Type:           enums.ReminderTypeNoOrder,
			Reason:         fmt.Sprintf("no orders in %d days", days),
			DaysSinceOrder: &days,
			LastOrderDate:  customer.LastOrderDate,
		})
	}
	return reminders, nil
}

func (s *service) pendingActionReminders(ctx context.Context) ([]Reminder, error) {
	interactions, err := s.repo.ListPendingActionInteractions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending interactions")
	}
	if len(interactions) == 0 {
		return nil, nil
	}

	byCustomer := lo.GroupBy(interactions, func(i models.Interaction) uuid.UUID {
		return i.CustomerID
	})

	customers, err := s.repo.FindCustomersByIDs(ctx, lo.Keys(byCustomer))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customers for reminders")
	}

	reminders := make([]Reminder, 0, len(customers))
	for i := range customers {
		customer := &customers[i]
		count := len(byCustomer[customer.ID])
		reminders = append(reminders, Reminder{
			CustomerID:     customer.ID,
			CompanyName:    customer.CompanyName,
			Type:           enums.ReminderTypePendingAction,
			Reason:         fmt.Sprintf("%d pending follow-up actions", count),
			PendingActions: count,
		})
	}
	return reminders, nil
}
