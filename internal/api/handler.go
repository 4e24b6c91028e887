// Package api provides the HTTP handlers for the embedding service. It
// implements the OpenAI-compatible embeddings endpoint plus health and model
// listing.
package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/semembed/semembed/internal/engine"
	"github.com/semembed/semembed/internal/metrics"
	"github.com/semembed/semembed/internal/observability"
	"github.com/semembed/semembed/internal/tokenizer"
	apierrors "github.com/semembed/semembed/pkg/errors"
	"github.com/semembed/semembed/pkg/types"
)

const (
	// DefaultMaxBodySize is the default maximum request body size (10MB).
	DefaultMaxBodySize = 10 * 1024 * 1024
)

// Handler serves the embedding API. All requests share one engine behind the
// gate and one metrics instance; both tolerate concurrent handlers.
type Handler struct {
	gate        *engine.Gate
	modelName   string
	metrics     *metrics.Metrics
	logger      *slog.Logger
	tracer      trace.Tracer
	maxBodySize int64
}

// HandlerConfig contains optional settings for the Handler.
type HandlerConfig struct {
	MaxBodySize int64        // Maximum request body size in bytes
	Tracer      trace.Tracer // Span source; nil means the global no-op tracer
}

// NewHandler creates the API handler around a gated engine.
func NewHandler(gate *engine.Gate, m *metrics.Metrics, logger *slog.Logger, cfg *HandlerConfig) *Handler {
	maxBodySize := int64(DefaultMaxBodySize)
	var tracer trace.Tracer
	if cfg != nil {
		if cfg.MaxBodySize > 0 {
			maxBodySize = cfg.MaxBodySize
		}
		tracer = cfg.Tracer
	}
	if tracer == nil {
		tracer = otel.Tracer(observability.TracerName)
	}

	return &Handler{
		gate:        gate,
		modelName:   gate.ModelName(),
		metrics:     m,
		logger:      logger,
		tracer:      tracer,
		maxBodySize: maxBodySize,
	}
}

// Embeddings handles POST /v1/embeddings requests.
//
// The request counter and latency timer cover every exit path, success or
// failure; the error counter is incremented once on each failure path before
// the response is written.
func (h *Handler) Embeddings(w http.ResponseWriter, r *http.Request) {
	h.metrics.RequestsTotal.Inc()
	timer := prometheus.NewTimer(h.metrics.RequestDuration)
	defer timer.ObserveDuration()

	limitedReader := io.LimitReader(r.Body, h.maxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		h.writeError(w, apierrors.NewInvalidRequestError("failed to read request body"))
		return
	}
	defer func() { _ = r.Body.Close() }()

	if int64(len(body)) > h.maxBodySize {
		h.writeError(w, apierrors.NewInvalidRequestError("request body too large"))
		return
	}

	var req types.EmbeddingRequest
	if unmarshalErr := json.Unmarshal(body, &req); unmarshalErr != nil {
		h.writeError(w, apierrors.NewInvalidRequestError("invalid JSON: "+unmarshalErr.Error()))
		return
	}

	texts := req.Input.Texts()
	if len(texts) == 0 {
		h.writeError(w, apierrors.NewInvalidRequestError("Input cannot be empty"))
		return
	}

	// Approximate usage accounting; counted before inference so the token
	// metric reflects accepted work even when the engine fails.
	tokenCount := tokenizer.CountBatchTokens(texts)
	h.metrics.TokensProcessed.Add(float64(tokenCount))

	ctx, span := observability.StartEmbedSpan(r.Context(), h.tracer, h.modelName, len(texts))
	vectors, err := h.gate.Run(ctx, texts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "embed failed")
		span.End()

		h.logger.Error("failed to generate embeddings",
			"error", err,
			"batch_size", len(texts),
			"request_id", observability.RequestIDFromContext(r.Context()),
		)
		h.writeError(w, apierrors.NewInternalError("Failed to generate embeddings: "+err.Error()))
		return
	}
	span.End()

	data := make([]types.EmbeddingObject, len(vectors))
	for i, vector := range vectors {
		data[i] = types.EmbeddingObject{
			Object:    "embedding",
			Embedding: vector,
			Index:     i,
		}
	}

	resp := types.EmbeddingResponse{
		Object: "list",
		Data:   data,
		Model:  h.modelName,
		Usage: types.Usage{
			PromptTokens: tokenCount,
			TotalTokens:  tokenCount,
		},
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /health requests. Once the process is serving, the
// engine has loaded; there is no deeper liveness signal to probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, types.HealthResponse{
		Status: "healthy",
		Model:  h.modelName,
	})
}

// ListModels handles GET /models requests.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, types.ModelsResponse{
		Models: []string{h.modelName},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
