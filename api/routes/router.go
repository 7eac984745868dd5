package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopsphere/marketplace-backend/api/controllers"
	"github.com/shopsphere/marketplace-backend/api/middleware"
	"github.com/shopsphere/marketplace-backend/internal/analytics"
	"github.com/shopsphere/marketplace-backend/internal/auth"
	"github.com/shopsphere/marketplace-backend/internal/orders"
	"github.com/shopsphere/marketplace-backend/internal/products"
	"github.com/shopsphere/marketplace-backend/internal/vendors"
	"github.com/shopsphere/marketplace-backend/internal/wishlist"
	"github.com/shopsphere/marketplace-backend/pkg/auth/session"
	"github.com/shopsphere/marketplace-backend/pkg/config"
	"github.com/shopsphere/marketplace-backend/pkg/db"
	"github.com/shopsphere/marketplace-backend/pkg/enums"
	"github.com/shopsphere/marketplace-backend/pkg/logger"
	"github.com/shopsphere/marketplace-backend/pkg/metrics"
)

// Deps bundles everything the HTTP surface needs. Keeping it a struct
// spares main.go a twenty-argument constructor.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    db.Pinger
	CachePinger db.Pinger
	Sessions    session.Checker
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	AuthService      auth.Service
	ProductService   products.Service
	OrderService     orders.Service
	VendorService    vendors.Service
	AnalyticsService analytics.Service
	WishlistService  wishlist.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, d.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DBPinger, d.CachePinger))
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(d.AuthService, cfg.JWT, logg))
			r.Post("/register", controllers.AuthRegister(d.AuthService, cfg.JWT, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListCatalog(d.ProductService, logg))
			r.Get("/{productID}", controllers.GetProduct(d.ProductService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))

			r.Get("/me/ping", controllers.PrivatePing())
			r.Post("/auth/logout", controllers.AuthLogout(d.AuthService, logg))

			r.Route("/orders", func(r chi.Router) {
				r.With(middleware.RequireRole(enums.UserRoleCustomer, logg)).
					Post("/", controllers.PlaceOrder(d.OrderService, logg))
				r.Get("/", controllers.ListOrders(d.OrderService, logg))
				r.Get("/{orderID}", controllers.GetOrder(d.OrderService, logg))
				r.Patch("/{orderID}/status", controllers.UpdateOrderStatus(d.OrderService, logg))
			})

			r.With(middleware.RequireRole(enums.UserRoleCustomer, logg)).
				Post("/products/{productID}/view", controllers.TrackProductView(d.WishlistService, logg))

			r.Route("/wishlist", func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.UserRoleCustomer, logg))
				r.Get("/", controllers.WishlistList(d.WishlistService, logg))
				r.Put("/{productID}", controllers.WishlistAdd(d.WishlistService, logg))
				r.Delete("/{productID}", controllers.WishlistRemove(d.WishlistService, logg))
			})

			r.Route("/vendor", func(r chi.Router) {
				r.Use(middleware.RequireVendor(logg))
				r.Get("/me", controllers.VendorProfile(d.VendorService, logg))
				r.Put("/me", controllers.VendorUpdateSettings(d.VendorService, logg))
				r.Get("/products", controllers.ListVendorProducts(d.ProductService, logg))
				r.Post("/products", controllers.CreateProduct(d.ProductService, logg))
				r.Patch("/products/{productID}", controllers.UpdateProduct(d.ProductService, logg))
				r.Delete("/products/{productID}", controllers.DeleteProduct(d.ProductService, logg))
				r.Get("/analytics/summary", controllers.VendorSalesSummary(d.AnalyticsService, logg))
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin(logg))
				r.Get("/vendors", controllers.AdminListVendors(d.VendorService, logg))
				r.Patch("/vendors/{vendorID}/verify", controllers.AdminSetVendorVerified(d.VendorService, logg))
				r.Patch("/vendors/{vendorID}/settings", controllers.AdminUpdateVendorSettings(d.VendorService, logg))
				r.Route("/analytics", func(r chi.Router) {
					r.Get("/totals", controllers.AdminPlatformTotals(d.AnalyticsService, logg))
					r.Get("/top-vendors", controllers.AdminTopVendors(d.AnalyticsService, logg))
				})
			})
		})
	})

	return r
}
