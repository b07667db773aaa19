package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/poundtowntx/storefront-backend/api/controllers"
	cartcontrollers "github.com/poundtowntx/storefront-backend/api/controllers/cart"
	checkoutcontrollers "github.com/poundtowntx/storefront-backend/api/controllers/checkout"
	"github.com/poundtowntx/storefront-backend/api/middleware"
	"github.com/poundtowntx/storefront-backend/internal/blog"
	cartsvc "github.com/poundtowntx/storefront-backend/internal/cart"
	"github.com/poundtowntx/storefront-backend/internal/catalog"
	checkoutsvc "github.com/poundtowntx/storefront-backend/internal/checkout"
	"github.com/poundtowntx/storefront-backend/internal/orders"
	"github.com/poundtowntx/storefront-backend/pkg/config"
	"github.com/poundtowntx/storefront-backend/pkg/db"
	"github.com/poundtowntx/storefront-backend/pkg/logger"
	"github.com/poundtowntx/storefront-backend/pkg/metrics"
	"github.com/poundtowntx/storefront-backend/pkg/printful"
	"github.com/poundtowntx/storefront-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	Printful        *printful.Client
	CartService     cartsvc.Service
	CatalogService  catalog.Service
	CheckoutService checkoutsvc.Service
	OrdersService   orders.Service
	BlogService     blog.Service
	Registry        *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	if deps.Registry != nil {
		httpMetrics := metrics.NewHTTPMetrics(deps.Registry)
		r.Use(middleware.Metrics(httpMetrics))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.CatalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.CatalogService, logg))
		})

		r.Post("/shipping/rates", controllers.ShippingRates(deps.Printful, logg))

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", controllers.BlogList(deps.BlogService, logg))
			r.Get("/{slug}", controllers.BlogPost(deps.BlogService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(cfg.Cart, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.CartFetch(deps.CartService, logg))
				r.Delete("/", cartcontrollers.CartClear(deps.CartService, logg))
				r.Post("/items", cartcontrollers.CartAddItem(deps.CartService, deps.CatalogService, logg))
				r.Patch("/items/{variantId}", cartcontrollers.CartUpdateItem(deps.CartService, logg))
				r.Delete("/items/{variantId}", cartcontrollers.CartRemoveItem(deps.CartService, logg))
			})

			r.Post("/checkout", checkoutcontrollers.CheckoutSubmit(deps.CheckoutService, logg))
		})

		r.Get("/orders/{orderId}", controllers.OrderFetch(deps.OrdersService, logg))
	})

	return r
}
