package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giftnest/giftnest-backend/api/controllers"
	"github.com/giftnest/giftnest-backend/api/middleware"
	cartsvc "github.com/giftnest/giftnest-backend/internal/cart"
	ordersvc "github.com/giftnest/giftnest-backend/internal/orders"
	productsvc "github.com/giftnest/giftnest-backend/internal/products"
	"github.com/giftnest/giftnest-backend/pkg/auth/session"
	"github.com/giftnest/giftnest-backend/pkg/config"
	"github.com/giftnest/giftnest-backend/pkg/db"
	"github.com/giftnest/giftnest-backend/pkg/logger"
	"github.com/giftnest/giftnest-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface needs.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	Sessions       session.AccessSessionChecker
	ProductService productsvc.Service
	CartService    cartsvc.Service
	OrdersService  ordersvc.Service
}

// NewRouter assembles the storefront API. The catalog is public; cart and
// orders require a bearer token with a live session.
func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	// Avoid handing typed-nil interfaces to the middleware and health checks.
	var idemStore redis.IdempotencyStore
	var cachePinger redis.Pinger
	if params.Redis != nil {
		idemStore = params.Redis
		cachePinger = params.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.DB, cachePinger))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(params.ProductService, logg))
			r.Get("/{productId}", controllers.GetProduct(params.ProductService, logg))
		})
		r.Get("/categories", controllers.ListCategories(params.ProductService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, params.Sessions, logg))
			r.Use(middleware.Idempotency(idemStore, logg))

			r.Get("/ping", controllers.PrivatePing())

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(params.CartService, logg))
				r.Post("/", controllers.CartAdd(params.CartService, logg))
				r.Put("/", controllers.CartSet(params.CartService, logg))
				r.Delete("/", controllers.CartRemove(params.CartService, logg))
			})

			r.Post("/checkout", controllers.Checkout(params.OrdersService, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.ListOrders(params.OrdersService, logg))
				r.Get("/{orderId}", controllers.GetOrder(params.OrdersService, logg))
			})
		})
	})

	return r
}
