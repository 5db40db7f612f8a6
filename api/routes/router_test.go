package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/orderflowhq/orderflow-backend/internal/auth"
	crmsvc "github.com/orderflowhq/orderflow-backend/internal/crm"
	customersvc "github.com/orderflowhq/orderflow-backend/internal/customers"
	dashboardsvc "github.com/orderflowhq/orderflow-backend/internal/dashboard"
	ordersvc "github.com/orderflowhq/orderflow-backend/internal/orders"
	productsvc "github.com/orderflowhq/orderflow-backend/internal/products"
	usersvc "github.com/orderflowhq/orderflow-backend/internal/users"
	pkgauth "github.com/orderflowhq/orderflow-backend/pkg/auth"
	"github.com/orderflowhq/orderflow-backend/pkg/config"
	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
	pkgerrors "github.com/orderflowhq/orderflow-backend/pkg/errors"
	"github.com/orderflowhq/orderflow-backend/pkg/logger"
	"github.com/orderflowhq/orderflow-backend/pkg/pagination"
)

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req authsvc.RegisterRequest) (*models.User, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "incorrect username or password")
}

type stubUsersService struct{}

func (stubUsersService) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return &models.User{ID: userID, Username: "tester", Role: enums.UserRoleCustomer}, nil
}

func (stubUsersService) UpdateProfile(ctx context.Context, userID uuid.UUID, input usersvc.UpdateProfileInput) (*models.User, error) {
	return &models.User{ID: userID}, nil
}

func (stubUsersService) ChangePassword(ctx context.Context, userID uuid.UUID, input usersvc.ChangePasswordInput) error {
	return nil
}

func (stubUsersService) List(ctx context.Context, params pagination.Params) ([]models.User, error) {
	return nil, nil
}

func (stubUsersService) UpdateRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*models.User, error) {
	return &models.User{ID: userID, Role: role}, nil
}

func (stubUsersService) SetActive(ctx context.Context, userID uuid.UUID, active bool) (*models.User, error) {
	return &models.User{ID: userID, IsActive: active}, nil
}

type stubProductsService struct{}

func (stubProductsService) Create(ctx context.Context, input productsvc.CreateInput) (*models.Product, error) {
	return &models.Product{Name: input.Name}, nil
}

func (stubProductsService) Get(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	return &models.Product{ID: productID}, nil
}

func (stubProductsService) List(ctx context.Context, params pagination.Params, filters productsvc.Filters) ([]models.Product, error) {
	return []models.Product{}, nil
}

func (stubProductsService) Update(ctx context.Context, productID uuid.UUID, input productsvc.UpdateInput) (*models.Product, error) {
	return &models.Product{ID: productID}, nil
}

func (stubProductsService) Deactivate(ctx context.Context, productID uuid.UUID) error {
	return nil
}

type stubOrdersService struct{}

func (stubOrdersService) Create(ctx context.Context, input ordersvc.CreateOrderInput) (*models.Order, error) {
	return &models.Order{UserID: input.UserID}, nil
}

func (stubOrdersService) CancelOwn(ctx context.Context, input ordersvc.CancelOwnOrderInput) (*models.Order, error) {
	return &models.Order{ID: input.OrderID}, nil
}

func (stubOrdersService) UpdateStatus(ctx context.Context, input ordersvc.UpdateStatusInput) (*models.Order, error) {
	return &models.Order{ID: input.OrderID, Status: input.Status}, nil
}

func (stubOrdersService) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return &models.Order{ID: orderID}, nil
}

func (stubOrdersService) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (stubOrdersService) List(ctx context.Context, params pagination.Params, filters ordersvc.OrderFilters) ([]models.Order, error) {
	return []models.Order{}, nil
}

type stubCustomersService struct{}

func (stubCustomersService) Create(ctx context.Context, input customersvc.CreateInput) (*models.Customer, error) {
	return &models.Customer{CompanyName: input.CompanyName}, nil
}

func (stubCustomersService) Get(ctx context.Context, customerID uuid.UUID) (*models.Customer, error) {
	return &models.Customer{ID: customerID}, nil
}

func (stubCustomersService) List(ctx context.Context, params pagination.Params, filters customersvc.Filters) ([]models.Customer, error) {
	return []models.Customer{}, nil
}

func (stubCustomersService) Update(ctx context.Context, customerID uuid.UUID, input customersvc.UpdateInput) (*models.Customer, error) {
	return &models.Customer{ID: customerID}, nil
}

func (stubCustomersService) Delete(ctx context.Context, customerID uuid.UUID) error {
	return nil
}

func (stubCustomersService) AddInteraction(ctx context.Context, customerID uuid.UUID, input customersvc.CreateInteractionInput) (*models.Interaction, error) {
	return &models.Interaction{CustomerID: customerID}, nil
}

func (stubCustomersService) ListInteractions(ctx context.Context, customerID uuid.UUID) ([]models.Interaction, error) {
	return []models.Interaction{}, nil
}

func (stubCustomersService) CompleteInteraction(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error) {
	return &models.Interaction{ID: interactionID, ActionCompleted: true}, nil
}

type stubCRMService struct{}

func (stubCRMService) RecalculateGrades(ctx context.Context) (*crmsvc.RecalculateResult, error) {
	return &crmsvc.RecalculateResult{}, nil
}

func (stubCRMService) Reminders(ctx context.Context) ([]crmsvc.Reminder, error) {
	return []crmsvc.Reminder{}, nil
}

type stubDashboardService struct{}

func (stubDashboardService) Stats(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*dashboardsvc.Stats, error) {
	return &dashboardsvc.Stats{}, nil
}

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "development", Port: "8080"},
		JWT: config.JWTConfig{Secret: "router-test-secret", Issuer: "orderflow", ExpirationMinutes: 60},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	return NewRouter(testRouterConfig(), logg, nil, nil, nil, nil, Services{
		Auth:      stubAuthService{},
		Users:     stubUsersService{},
		Products:  stubProductsService{},
		Orders:    stubOrdersService{},
		Customers: stubCustomersService{},
		CRM:       stubCRMService{},
		Dashboard: stubDashboardService{},
	})
}

func mintRouterToken(t *testing.T, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testRouterConfig().JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "tester",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var body struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data["status"] != "live" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/orders", "/api/v1/products", "/api/v1/users/me", "/api/v1/dashboard/stats"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", path, rec.Code)
		}
	}
}

func TestCustomerBlockedFromStaffSurfaces(t *testing.T) {
	router := newTestRouter(t)
	token := mintRouterToken(t, enums.UserRoleCustomer)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/customers"},
		{http.MethodGet, "/api/v1/crm/reminders"},
		{http.MethodPost, "/api/v1/crm/recalculate-grades"},
		{http.MethodGet, "/api/v1/admin/users"},
	}
	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403 got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestStaffReachesCRMSurfaces(t *testing.T) {
	router := newTestRouter(t)
	token := mintRouterToken(t, enums.UserRoleAccountManager)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crm/reminders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestAccountManagerBlockedFromAdminSurfaces(t *testing.T) {
	router := newTestRouter(t)
	token := mintRouterToken(t, enums.UserRoleAccountManager)
	orderID := uuid.New()
	customerID := uuid.New()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/admin/users"},
		{http.MethodPut, "/api/v1/orders/" + orderID.String() + "/status"},
		{http.MethodDelete, "/api/v1/customers/" + customerID.String()},
		{http.MethodPost, "/api/v1/crm/recalculate-grades"},
	}
	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403 got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestAdminReachesPrivilegedSurfaces(t *testing.T) {
	router := newTestRouter(t)
	token := mintRouterToken(t, enums.UserRoleAdmin)
	customerID := uuid.New()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/api/v1/customers/" + customerID.String()},
		{http.MethodPost, "/api/v1/crm/recalculate-grades"},
	}
	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s %s: expected 200 got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestCustomerReadsCatalog(t *testing.T) {
	router := newTestRouter(t)
	token := mintRouterToken(t, enums.UserRoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
