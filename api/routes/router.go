package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Hasan-Creations/MobiSwap/api/controllers"
	"github.com/Hasan-Creations/MobiSwap/api/middleware"
	"github.com/Hasan-Creations/MobiSwap/internal/advisory"
	"github.com/Hasan-Creations/MobiSwap/internal/cart"
	"github.com/Hasan-Creations/MobiSwap/internal/catalog"
	"github.com/Hasan-Creations/MobiSwap/internal/checkout"
	"github.com/Hasan-Creations/MobiSwap/internal/exchange"
	"github.com/Hasan-Creations/MobiSwap/internal/orders"
	"github.com/Hasan-Creations/MobiSwap/pkg/config"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
	"github.com/Hasan-Creations/MobiSwap/pkg/redis"
)

// Dependencies are the services the storefront API serves.
type Dependencies struct {
	DB          controllers.Pinger
	Redis       *redis.Client
	Catalog     *catalog.Catalog
	Carts       *cart.Registry
	Advisory    *advisory.Gateway
	Checkout    *checkout.Service
	Orders      orders.Service
	Exchange    *exchange.Service
	Gatherer    prometheus.Gatherer
	Idempotency redis.IdempotencyStore
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	advisoryPolicy := middleware.NewRateLimitPolicy(
		"advisory",
		cfg.AdvisoryRateLimit.Window,
		cfg.AdvisoryRateLimit.IPLimit,
	).WithTrustedProxyHops(cfg.AdvisoryRateLimit.TrustedProxyHops)

	readiness := map[string]controllers.Pinger{"db": deps.DB}
	if deps.Redis != nil {
		readiness["redis"] = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CartSession(logg))
		idempotent := middleware.Idempotency(idempotencyStore(deps), logg)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.Catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Carts, logg))
			r.Delete("/", controllers.CartClear(deps.Carts, logg))
			r.Post("/items", controllers.CartAddItem(deps.Carts, deps.Catalog, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.Carts, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Carts, logg))
		})

		r.Route("/advisory", func(r chi.Router) {
			r.Use(middleware.RateLimit(advisoryPolicy, rateLimitStore(deps), logg))
			r.Post("/valuation", controllers.AdvisoryValuation(deps.Advisory, logg))
			r.Post("/recommendations", controllers.AdvisoryRecommendations(deps.Advisory, deps.Catalog, logg))
		})

		r.With(idempotent).Post("/checkout", controllers.CheckoutPlaceOrder(deps.Checkout, logg))
		r.Get("/orders/{orderId}", controllers.OrderGet(deps.Orders, logg))
		r.With(idempotent).Post("/exchange-requests", controllers.ExchangeSubmit(deps.Exchange, logg))
	})

	return r
}

func idempotencyStore(deps Dependencies) redis.IdempotencyStore {
	if deps.Idempotency != nil {
		return deps.Idempotency
	}
	if deps.Redis != nil {
		return deps.Redis
	}
	return nil
}

func rateLimitStore(deps Dependencies) middleware.RateLimitStore {
	if deps.Redis != nil {
		return deps.Redis
	}
	return nil
}
