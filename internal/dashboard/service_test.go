package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderflowhq/orderflow-backend/pkg/enums"
)

type stubOrder struct {
	userID uuid.UUID
	amount decimal.Decimal
	date   time.Time
}

type stubStatsRepo struct {
	orders        []stubOrder
	userCount     int64
	productCount  int64
	adminCalls    int
	aggregateArgs []*uuid.UUID
}

func (r *stubStatsRepo) AggregateOrders(ctx context.Context, userID *uuid.UUID, from, to *time.Time) (OrderAggregate, error) {
	r.aggregateArgs = append(r.aggregateArgs, userID)
	agg := OrderAggregate{Total: decimal.Zero}
	for _, order := range r.orders {
		if userID != nil && order.userID != *userID {
			continue
		}
		if from != nil && order.date.Before(*from) {
			continue
		}
		if to != nil && !order.date.Before(*to) {
			continue
		}
		agg.Count++
		agg.Total = agg.Total.Add(order.amount)
	}
	return agg, nil
}

func (r *stubStatsRepo) CountUsers(ctx context.Context) (int64, error) {
	r.adminCalls++
	return r.userCount, nil
}

func (r *stubStatsRepo) CountProducts(ctx context.Context) (int64, error) {
	r.adminCalls++
	return r.productCount, nil
}

var statsNow = time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

func newStatsService(t *testing.T, repo *stubStatsRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	svc.(*service).now = func() time.Time { return statsNow }
	return svc
}

func TestStatsCustomerSeesOnlyOwnOrders(t *testing.T) {
	me := uuid.New()
	other := uuid.New()
	repo := &stubStatsRepo{orders: []stubOrder{
		{userID: me, amount: decimal.RequireFromString("100.00"), date: statsNow.AddDate(0, 0, -1)},
		{userID: me, amount: decimal.RequireFromString("50.00"), date: statsNow.AddDate(0, -2, 0)},
		{userID: other, amount: decimal.RequireFromString("999.00"), date: statsNow},
	}}
	svc := newStatsService(t, repo)

	stats, err := svc.Stats(context.Background(), me, enums.UserRoleCustomer)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalOrders != 2 {
		t.Fatalf("total orders = %d, want 2", stats.TotalOrders)
	}
	if !stats.TotalAmount.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("total amount = %s, want 150.00", stats.TotalAmount)
	}
	if stats.ThisMonthOrders != 1 {
		t.Fatalf("month orders = %d, want 1", stats.ThisMonthOrders)
	}
	if !stats.ThisMonthAmount.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("month amount = %s, want 100.00", stats.ThisMonthAmount)
	}
	if stats.TotalUsers != nil || stats.TotalProducts != nil {
		t.Fatal("customer stats must not include admin counts")
	}
}

func TestStatsStaffSeesAllOrdersWithoutAdminCounts(t *testing.T) {
	repo := &stubStatsRepo{orders: []stubOrder{
		{userID: uuid.New(), amount: decimal.RequireFromString("10.00"), date: statsNow},
		{userID: uuid.New(), amount: decimal.RequireFromString("20.00"), date: statsNow},
	}}
	svc := newStatsService(t, repo)

	stats, err := svc.Stats(context.Background(), uuid.New(), enums.UserRoleAccountManager)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalOrders != 2 {
		t.Fatalf("total orders = %d, want 2", stats.TotalOrders)
	}
	for _, scope := range repo.aggregateArgs {
		if scope != nil {
			t.Fatal("staff aggregation must not be scoped to one user")
		}
	}
	if stats.TotalUsers != nil || repo.adminCalls != 0 {
		t.Fatal("account manager stats must not include admin counts")
	}
}

func TestStatsAdminIncludesUserAndProductCounts(t *testing.T) {
	repo := &stubStatsRepo{userCount: 12, productCount: 40}
	svc := newStatsService(t, repo)

	stats, err := svc.Stats(context.Background(), uuid.New(), enums.UserRoleAdmin)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalUsers == nil || *stats.TotalUsers != 12 {
		t.Fatalf("total users = %v, want 12", stats.TotalUsers)
	}
	if stats.TotalProducts == nil || *stats.TotalProducts != 40 {
		t.Fatalf("total products = %v, want 40", stats.TotalProducts)
	}
}
