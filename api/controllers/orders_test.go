package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/orderflowhq/orderflow-backend/api/middleware"
	ordersvc "github.com/orderflowhq/orderflow-backend/internal/orders"
	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
	"github.com/orderflowhq/orderflow-backend/pkg/logger"
	"github.com/orderflowhq/orderflow-backend/pkg/pagination"
)

type stubOrderService struct {
	created      *ordersvc.CreateOrderInput
	listedByUser *uuid.UUID
	listFilters  *ordersvc.OrderFilters
}

func (s *stubOrderService) Create(ctx context.Context, input ordersvc.CreateOrderInput) (*models.Order, error) {
	s.created = &input
	return &models.Order{UserID: input.UserID, OrderNumber: "ORD-20250620-0001", Status: enums.OrderStatusPending}, nil
}

func (s *stubOrderService) CancelOwn(ctx context.Context, input ordersvc.CancelOwnOrderInput) (*models.Order, error) {
	return &models.Order{ID: input.OrderID, Status: enums.OrderStatusCancelled}, nil
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, input ordersvc.UpdateStatusInput) (*models.Order, error) {
	return &models.Order{ID: input.OrderID, Status: input.Status}, nil
}

func (s *stubOrderService) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return &models.Order{ID: orderID}, nil
}

func (s *stubOrderService) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, error) {
	s.listedByUser = &userID
	return []models.Order{}, nil
}

func (s *stubOrderService) List(ctx context.Context, params pagination.Params, filters ordersvc.OrderFilters) ([]models.Order, error) {
	s.listFilters = &filters
	return []models.Order{}, nil
}

func ordersTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func TestCreateOrder(t *testing.T) {
	logg := ordersTestLogger()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("missing user context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"items":[]}`))
		rec := httptest.NewRecorder()
		CreateOrder(&stubOrderService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("empty items rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"items":[]}`))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(middleware.WithActor(req.Context(), userID, "buyer", enums.UserRoleCustomer))
		rec := httptest.NewRecorder()
		CreateOrder(&stubOrderService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for empty items, got %d", rec.Code)
		}
	})

	t.Run("invalid product id rejected", func(t *testing.T) {
		body := `{"items":[{"product_id":"not-a-uuid","quantity":1}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(middleware.WithActor(req.Context(), userID, "buyer", enums.UserRoleCustomer))
		rec := httptest.NewRecorder()
		CreateOrder(&stubOrderService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid product id, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		body := `{"items":[{"product_id":"` + productID.String() + `","quantity":3}],"notes":"leave at the dock"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(middleware.WithActor(req.Context(), userID, "buyer", enums.UserRoleCustomer))

		stub := &stubOrderService{}
		rec := httptest.NewRecorder()
		CreateOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.created == nil {
			t.Fatalf("expected Create to be invoked")
		}
		if stub.created.UserID != userID {
			t.Fatalf("expected order placed for %s, got %s", userID, stub.created.UserID)
		}
		if len(stub.created.Items) != 1 || stub.created.Items[0].ProductID != productID || stub.created.Items[0].Quantity != 3 {
			t.Fatalf("unexpected items %+v", stub.created.Items)
		}
		if stub.created.Notes == nil || *stub.created.Notes != "leave at the dock" {
			t.Fatalf("expected notes to pass through")
		}
	})
}

func TestListOrdersScoping(t *testing.T) {
	logg := ordersTestLogger()
	userID := uuid.New()

	t.Run("customer only sees own orders", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		req = req.WithContext(middleware.WithActor(req.Context(), userID, "buyer", enums.UserRoleCustomer))

		stub := &stubOrderService{}
		rec := httptest.NewRecorder()
		ListOrders(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.listedByUser == nil || *stub.listedByUser != userID {
			t.Fatalf("expected ListByUser scoped to %s", userID)
		}
		if stub.listFilters != nil {
			t.Fatalf("customer request must not reach the staff listing")
		}
	})

	t.Run("staff sees all with filters", func(t *testing.T) {
		target := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=pending&user_id="+target.String(), nil)
		req = req.WithContext(middleware.WithActor(req.Context(), userID, "manager", enums.UserRoleAccountManager))

		stub := &stubOrderService{}
		rec := httptest.NewRecorder()
		ListOrders(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.listFilters == nil {
			t.Fatalf("expected staff listing to be invoked")
		}
		if stub.listFilters.Status == nil || *stub.listFilters.Status != enums.OrderStatusPending {
			t.Fatalf("expected status filter pending, got %+v", stub.listFilters.Status)
		}
		if stub.listFilters.UserID == nil || *stub.listFilters.UserID != target {
			t.Fatalf("expected user filter %s", target)
		}
	})

	t.Run("staff rejects unknown status", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=teleported", nil)
		req = req.WithContext(middleware.WithActor(req.Context(), userID, "manager", enums.UserRoleAccountManager))

		rec := httptest.NewRecorder()
		ListOrders(&stubOrderService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
		}
	})
}
