package app

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/jisho-backend/internal/config"
	"github.com/heartmarshall/jisho-backend/internal/transport/middleware"
	"github.com/heartmarshall/jisho-backend/internal/transport/rest"
)

// NewHTTPHandler assembles routes and middleware. reg receives the HTTP and
// runtime collectors; nil creates a fresh registry. The returned func stops
// background work owned by the handler.
func NewHTTPHandler(cfg *config.Config, c *Container, logger *slog.Logger, reg *prometheus.Registry) (http.Handler, func()) {
	handlers := rest.Handlers{
		Health:       rest.NewHealthHandler(c.Pool, c.Rules.Len(), BuildVersion()),
		Lookup:       rest.NewLookupHandler(logger, c.Lookup, c.Tags, cfg.Lookup.Settings()),
		Dictionaries: rest.NewDictionaryHandler(logger, c.Dictionaries),
	}

	var metrics middleware.Middleware
	if cfg.Metrics.Enabled {
		if reg == nil {
			reg = prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		metrics = middleware.NewMetrics(reg).Middleware()
		handlers.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
		handlers.MetricsPath = cfg.Metrics.Path
	}

	stop := func() {}
	var api middleware.Middleware
	if cfg.RateLimit.RequestsPerMinute > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.CleanupInterval)
		api = limiter.Middleware()
		stop = limiter.Stop
	}

	mux := rest.NewRouter(handlers, api)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		metrics,
		middleware.CORS(cfg.CORS),
	)
	return chain(mux), stop
}
