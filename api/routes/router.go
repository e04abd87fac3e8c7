package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/warescan/warescan-backend/api/controllers"
	"github.com/warescan/warescan-backend/api/middleware"
	"github.com/warescan/warescan-backend/internal/catalog"
	"github.com/warescan/warescan-backend/internal/ledger"
	"github.com/warescan/warescan-backend/pkg/config"
	"github.com/warescan/warescan-backend/pkg/db"
	"github.com/warescan/warescan-backend/pkg/logger"
	"github.com/warescan/warescan-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	idemStore redis.IdempotencyStore,
	catalogService catalog.Service,
	ledgerService ledger.Service,
	metricsRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if metricsRegistry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idemStore, cfg.Idempotency.TTL, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(catalogService, logg))
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Get("/{barcode}", controllers.GetProduct(catalogService, logg))
			r.Get("/{barcode}/adjustments", controllers.AdjustmentHistory(ledgerService, logg))
		})

		r.Post("/scan", controllers.ScanProduct(catalogService, logg))
		r.Post("/adjustments", controllers.AdjustStock(ledgerService, logg))
	})

	return r
}
