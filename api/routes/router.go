package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yessgo/coin-terminal/api/controllers"
	"github.com/yessgo/coin-terminal/api/middleware"
	"github.com/yessgo/coin-terminal/internal/order"
	"github.com/yessgo/coin-terminal/internal/terminal"
	"github.com/yessgo/coin-terminal/pkg/config"
	"github.com/yessgo/coin-terminal/pkg/logger"
	"github.com/yessgo/coin-terminal/pkg/metrics"
	"github.com/yessgo/coin-terminal/pkg/redis"
)

// NewRouter wires the terminal HTTP surface. redisClient and registry
// may be nil; rate limiting and /metrics are skipped accordingly.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	manager *terminal.Manager,
	qrGen order.Generator,
	m *metrics.TerminalMetrics,
	registry *prometheus.Registry,
	redisClient *redis.Client,
	catalogPinger controllers.Pinger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, m),
	)

	loginPolicy := middleware.NewLoginRateLimitPolicy(
		cfg.Login.Window,
		cfg.Login.IPLimit,
		cfg.Login.PartnerLimit,
	)
	loginLimiter := middleware.LoginRateLimit(loginPolicy, nil, logg)
	if redisClient != nil {
		loginLimiter = middleware.LoginRateLimit(loginPolicy, redisClient, logg)
	}

	pingers := []controllers.Pinger{catalogPinger}
	if redisClient != nil {
		pingers = append(pingers, redisClient)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers...))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", controllers.AuthLogin(manager, m, logg))
		r.Post("/logout", controllers.AuthLogout(manager, logg))
	})

	r.Route("/api/v1/terminal", func(r chi.Router) {
		r.Use(middleware.Session(manager, logg))

		r.Get("/catalog", controllers.TerminalCatalog(m, logg))
		r.Route("/basket", func(r chi.Router) {
			r.Get("/", controllers.BasketFetch(logg))
			r.Delete("/", controllers.BasketClear(m, logg))
			r.Post("/items", controllers.BasketApplyDelta(m, logg))
		})
		r.Post("/order/qr", controllers.OrderGenerateQR(qrGen, m, logg))
	})

	return r
}
