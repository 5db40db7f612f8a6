package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orderflowhq/orderflow-backend/api/controllers"
	"github.com/orderflowhq/orderflow-backend/api/middleware"
	authsvc "github.com/orderflowhq/orderflow-backend/internal/auth"
	crmsvc "github.com/orderflowhq/orderflow-backend/internal/crm"
	customersvc "github.com/orderflowhq/orderflow-backend/internal/customers"
	dashboardsvc "github.com/orderflowhq/orderflow-backend/internal/dashboard"
	ordersvc "github.com/orderflowhq/orderflow-backend/internal/orders"
	productsvc "github.com/orderflowhq/orderflow-backend/internal/products"
	usersvc "github.com/orderflowhq/orderflow-backend/internal/users"
	"github.com/orderflowhq/orderflow-backend/pkg/config"
	"github.com/orderflowhq/orderflow-backend/pkg/db"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
	"github.com/orderflowhq/orderflow-backend/pkg/logger"
	"github.com/orderflowhq/orderflow-backend/pkg/metrics"
	"github.com/orderflowhq/orderflow-backend/pkg/redis"
)

// Services bundles everything the router hands to controllers.
type Services struct {
	Auth      authsvc.Service
	Users     usersvc.Service
	Products  productsvc.Service
	Orders    ordersvc.Service
	Customers customersvc.Service
	CRM       crmsvc.Service
	Dashboard dashboardsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		0,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", controllers.Me(svcs.Users, logg))
			r.Put("/", controllers.UpdateMe(svcs.Users, logg))
			r.Post("/password", controllers.ChangeMyPassword(svcs.Users, logg))
		})

		r.Get("/dashboard/stats", controllers.DashboardStats(svcs.Dashboard, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(svcs.Products, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireMinRole(enums.UserRoleAdmin, logg))
				r.Post("/", controllers.AdminCreateProduct(svcs.Products, logg))
				r.Put("/{productId}", controllers.AdminUpdateProduct(svcs.Products, logg))
				r.Delete("/{productId}", controllers.AdminDeactivateProduct(svcs.Products, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(svcs.Orders, logg))
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(svcs.Orders, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(svcs.Orders, logg))

			r.With(middleware.RequireMinRole(enums.UserRoleAdmin, logg)).
				Put("/{orderId}/status", controllers.StaffUpdateOrderStatus(svcs.Orders, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireMinRole(enums.UserRoleAccountManager, logg))

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", controllers.ListCustomers(svcs.Customers, logg))
				r.Post("/", controllers.CreateCustomer(svcs.Customers, logg))
				r.Get("/{customerId}", controllers.GetCustomer(svcs.Customers, logg))
				r.Put("/{customerId}", controllers.UpdateCustomer(svcs.Customers, logg))
				r.With(middleware.RequireMinRole(enums.UserRoleAdmin, logg)).
					Delete("/{customerId}", controllers.DeleteCustomer(svcs.Customers, logg))
				r.Get("/{customerId}/interactions", controllers.ListInteractions(svcs.Customers, logg))
				r.Post("/{customerId}/interactions", controllers.CreateInteraction(svcs.Customers, logg))
			})
			r.Post("/interactions/{interactionId}/complete", controllers.CompleteInteraction(svcs.Customers, logg))

			r.Route("/crm", func(r chi.Router) {
				r.With(middleware.RequireMinRole(enums.UserRoleAdmin, logg)).
					Post("/recalculate-grades", controllers.RecalculateGrades(svcs.CRM, logg))
				r.Get("/reminders", controllers.ListReminders(svcs.CRM, logg))
			})
		})

		r.Route("/admin/users", func(r chi.Router) {
			r.Use(middleware.RequireMinRole(enums.UserRoleAdmin, logg))
			r.Get("/", controllers.AdminListUsers(svcs.Users, logg))
			r.Put("/{userId}/role", controllers.AdminUpdateUserRole(svcs.Users, logg))
			r.Put("/{userId}/active", controllers.AdminSetUserActive(svcs.Users, logg))
		})
	})

	return r
}
