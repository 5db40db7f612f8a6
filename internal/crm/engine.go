package crm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
	pkgerrors "github.com/orderflowhq/orderflow-backend/pkg/errors"
	"github.com/orderflowhq/orderflow-backend/pkg/metrics"
)

const recalculateJob = "crm_recalculate_grades"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RulesLoader reads and compiles the grading rule document.
type RulesLoader func(path string) (*RuleSet, error)

// Service exposes the grading and reminder operations.
type Service interface {
	RecalculateGrades(ctx context.Context) (*RecalculateResult, error)
	Reminders(ctx context.Context) ([]Reminder, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	rulesPath string
	loadRules RulesLoader
	jobs      *metrics.JobMetrics
	now       func() time.Time
}

// NewService builds the CRM engine with the required dependencies.
func NewService(repo Repository, tx txRunner, rulesPath string, jobs *metrics.JobMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("crm repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if rulesPath == "" {
		return nil, fmt.Errorf("rules path required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		rulesPath: rulesPath,
		loadRules: LoadRules,
		jobs:      jobs,
		now:       time.Now,
	}, nil
}

// RecalculateGrades provisions customers for users with completed orders,
// refreshes order aggregates, and regrades every customer. The whole pass
// runs in one transaction so a concurrent reader never observes a customer
// that has been provisioned but not yet graded.
func (s *service) RecalculateGrades(ctx context.Context) (*RecalculateResult, error) {
	start := s.now()

	rules, err := s.loadRules(s.rulesPath)
	if err != nil {
		s.observeRecalculate(start, 0, err)
		return nil, err
	}

	result := &RecalculateResult{}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := s.provisionCustomers(ctx, repo, result); err != nil {
			return err
		}
		return s.regradeCustomers(ctx, repo, rules, result)
	})

	s.observeRecalculate(start, result.Updated, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// provisionCustomers creates a customer record for every user that has at
// least one completed order but no customer sharing its email. Each creation
// counts toward the running updated total.
func (s *service) provisionCustomers(ctx context.Context, repo Repository, result *RecalculateResult) error {
	users, err := repo.FindUsersWithCompletedOrders(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users with completed orders")
	}

	for i := range users {
		user := &users[i]
		if user.Email == "" {
			continue
		}
		_, err := repo.FindCustomerByEmail(ctx, user.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up customer by email")
		}

		email := user.Email
		contact := user.Username
		source := models.SourceSystemAutoImport
		customer := &models.Customer{
			CompanyName:   user.CompanyName,
			ContactPerson: &contact,
			Email:         &email,
			Source:        &source,
			Grade:         enums.CustomerGradeC,
		}
		if _, err := repo.CreateCustomer(ctx, customer); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "provision customer")
		}
		result.Updated++
		result.Provisioned++
	}
	return nil
}

// regradeCustomers refreshes each customer's completed-order aggregates and
// applies the grading rules. Only grade changes count toward the updated
// total; aggregate-only changes are persisted silently.
func (s *service) regradeCustomers(ctx context.Context, repo Repository, rules *RuleSet, result *RecalculateResult) error {
	customers, err := repo.ListAllCustomers(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}

	for i := range customers {
		customer := &customers[i]

		changed, err := s.refreshAggregates(ctx, repo, customer)
		if err != nil {
			return err
		}

		if grade := ClassifyGrade(customer, rules); grade != customer.Grade {
			customer.Grade = grade
			changed = true
			result.Updated++
			result.Regraded++
		}

		if changed {
			if err := repo.SaveCustomer(ctx, customer); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save customer")
			}
		}
	}
	return nil
}

func (s *service) refreshAggregates(ctx context.Context, repo Repository, customer *models.Customer) (bool, error) {
	if customer.Email == nil || *customer.Email == "" {
		return false, nil
	}

	user, err := repo.FindUserByEmail(ctx, *customer.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up user by email")
	}

	agg, err := repo.AggregateCompletedOrders(ctx, user.ID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate completed orders")
	}
	if agg.Count == 0 {
		return false, nil
	}

	changed := customer.TotalOrders != agg.Count ||
		!customer.TotalAmount.Equal(agg.Total) ||
		!equalTimePtr(customer.LastOrderDate, agg.LastOrderDate)

	customer.TotalOrders = agg.Count
	customer.TotalAmount = agg.Total
	customer.LastOrderDate = agg.LastOrderDate
	return changed, nil
}

func (s *service) observeRecalculate(start time.Time, updated int, err error) {
	if s.jobs == nil {
		return
	}
	s.jobs.ObserveDuration(recalculateJob, s.now().Sub(start))
	if err != nil {
		s.jobs.IncFailure(recalculateJob)
		return
	}
	s.jobs.IncSuccess(recalculateJob)
	s.jobs.AddUpdated(recalculateJob, updated)
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
