package api

import (
	"net/http"

	"github.com/goccy/go-json"

	apierrors "github.com/semembed/semembed/pkg/errors"
)

// ErrorResponse is the OpenAI-compatible error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes the error payload.
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// writeError increments the error counter and renders err as the structured
// error document. Non-API errors are wrapped as internal errors so no failure
// leaves without the envelope.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	h.metrics.ErrorsTotal.Inc()

	apiErr, ok := err.(*apierrors.APIError)
	if !ok {
		apiErr = apierrors.NewInternalError(err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatusCode())

	resp := ErrorResponse{
		Error: ErrorDetail{
			Message: apiErr.Message,
			Type:    apiErr.Type,
		},
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		h.logger.Error("failed to encode error response", "error", encodeErr)
	}
}
