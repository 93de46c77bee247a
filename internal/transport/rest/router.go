package rest

import (
	"net/http"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Health       *HealthHandler
	Lookup       *LookupHandler
	Dictionaries *DictionaryHandler
	// Metrics is mounted at MetricsPath when non-nil.
	Metrics     http.Handler
	MetricsPath string
}

// NewRouter builds the route table. Health probes and metrics bypass api, the
// middleware applied to /api routes only.
func NewRouter(h Handlers, api func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	if h.Metrics != nil {
		mux.Handle("GET "+h.MetricsPath, h.Metrics)
	}

	if api == nil {
		api = func(next http.Handler) http.Handler { return next }
	}
	mux.Handle("GET /api/lookup", api(http.HandlerFunc(h.Lookup.Lookup)))
	mux.Handle("GET /api/deinflect", api(http.HandlerFunc(h.Lookup.Deinflect)))
	mux.Handle("GET /api/dictionaries", api(http.HandlerFunc(h.Dictionaries.List)))

	return mux
}
