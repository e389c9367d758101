package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brightcart/storefront-backend/api/controllers"
	cartcontrollers "github.com/brightcart/storefront-backend/api/controllers/cart"
	"github.com/brightcart/storefront-backend/api/middleware"
	cartsvc "github.com/brightcart/storefront-backend/internal/cart"
	"github.com/brightcart/storefront-backend/internal/catalog"
	"github.com/brightcart/storefront-backend/internal/delivery"
	"github.com/brightcart/storefront-backend/internal/history"
	"github.com/brightcart/storefront-backend/internal/users"
	"github.com/brightcart/storefront-backend/pkg/auth/session"
	"github.com/brightcart/storefront-backend/pkg/config"
	"github.com/brightcart/storefront-backend/pkg/db"
	"github.com/brightcart/storefront-backend/pkg/logger"
	redisclient "github.com/brightcart/storefront-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redisclient.Client
	Sessions       session.AccessSessionChecker
	UsersService   users.Service
	CatalogService catalog.Service
	CatalogRepo    *catalog.Repository
	CartEngine     *cartsvc.Engine
	Estimator      *delivery.Estimator
	History        *history.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(d.UsersService, logg))
		r.Post("/login", controllers.AuthLogin(d.UsersService, logg))
		r.With(middleware.Auth(cfg.JWT, d.Sessions, logg)).Post("/logout", controllers.AuthLogout(d.UsersService, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductsList(d.CatalogService, logg))
		r.Get("/{slug}", controllers.ProductBySlug(d.CatalogService, d.History, logg))
	})

	r.Get("/api/v1/delivery-options", controllers.DeliveryOptions(d.Estimator, logg))

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.CartSession(logg))

		r.Get("/", cartcontrollers.Fetch(d.CartEngine, logg))
		r.Post("/items", cartcontrollers.AddItem(d.CartEngine, logg))
		r.Put("/items", cartcontrollers.UpdateItem(d.CartEngine, logg))
		r.Delete("/items", cartcontrollers.RemoveItem(d.CartEngine, logg))
		r.Put("/shipping-address", cartcontrollers.SetAddress(d.CartEngine, logg))
		r.Put("/delivery-option", cartcontrollers.SetDeliveryOption(d.CartEngine, logg))
		r.Put("/payment-method", cartcontrollers.SetPaymentMethod(d.CartEngine, logg))
		r.Delete("/", cartcontrollers.Clear(d.CartEngine, logg))
	})

	r.Route("/api/v1/history", func(r chi.Router) {
		r.Use(middleware.CartSession(logg))

		r.Get("/", controllers.HistoryList(d.History, d.CatalogRepo, logg))
		r.Post("/", controllers.HistoryRecord(d.History, logg))
		r.Delete("/", controllers.HistoryClear(d.History, logg))
	})

	r.Route("/api/v1/account", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))

		r.Get("/", controllers.AccountFetch(d.UsersService, logg))
		r.Put("/name", controllers.AccountUpdateName(d.UsersService, logg))
	})

	return r
}
