package api

import (
	"net/http"
	"parcel-kpi-service/internal/api/handlers"
	"parcel-kpi-service/internal/ports"
)

// Router options beyond the required collaborators.
type Options struct {
	// Per-client request rate; zero disables rate limiting.
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(src ports.RecordSource, rules handlers.RulesProvider, opts Options) http.Handler {
	mux := http.NewServeMux()

	reportHandler := &handlers.ReportHandler{Source: src, Rules: rules}
	journeyHandler := &handlers.JourneyHandler{Source: src}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/summary", reportHandler.Summary)
	mux.HandleFunc("/throughput", reportHandler.Throughput)
	mux.HandleFunc("/throughput/rate", reportHandler.Rate)
	mux.HandleFunc("/volume", reportHandler.Volume)
	mux.HandleFunc("/parcel-journey", journeyHandler.Find)

	var h http.Handler = mux
	if opts.RateLimitRPS > 0 {
		h = newClientRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).middleware(h)
	}

	return loggingMiddleware(h)
}
