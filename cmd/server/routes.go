package main

import (
	"net/http"

	"github.com/semembed/semembed/internal/config"
)

// apiHandler is the surface the route table needs from internal/api.
type apiHandler interface {
	Embeddings(http.ResponseWriter, *http.Request)
	Health(http.ResponseWriter, *http.Request)
	ListModels(http.ResponseWriter, *http.Request)
}

// buildMux assembles the route table: the OpenAI-compatible embeddings
// endpoint, health, model listing, and the Prometheus exposition endpoint.
func buildMux(cfg *config.Config, handler apiHandler, metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/embeddings", handler.Embeddings)
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /models", handler.ListModels)

	if cfg.Metrics.Enabled && metricsHandler != nil {
		mux.Handle("GET "+cfg.Metrics.Path, metricsHandler)
	}

	return mux
}
