package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const defaultRuntimeTimeout = 30 * time.Second

// maxRuntimeErrorBody caps how much of a runtime error body is read into the
// error message.
const maxRuntimeErrorBody = 4 * 1024

// RuntimeClient talks to an out-of-process inference runtime (an ONNX sidecar
// exposing the loaded model over HTTP). It implements Engine.
type RuntimeClient struct {
	baseURL    string
	httpClient *http.Client
	model      ModelSpec
}

type runtimeEmbedRequest struct {
	Model string   `json:"model"`
	Texts []string `json:"texts"`
}

type runtimeEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// NewRuntimeClient constructs a client for the runtime at baseURL.
func NewRuntimeClient(baseURL string, model ModelSpec, timeout time.Duration) (*RuntimeClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("engine: runtime URL is required")
	}
	if timeout <= 0 {
		timeout = defaultRuntimeTimeout
	}

	return &RuntimeClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		model:      model,
	}, nil
}

// Ready probes the runtime's health endpoint. Used once at startup; a runtime
// that does not answer makes the model load fail.
func (c *RuntimeClient) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("build readiness request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("runtime health returned %d", resp.StatusCode)
	}
	return nil
}

// Embed sends the batch to the runtime and returns vectors aligned to input
// order. The runtime processes one call at a time; callers serialize through
// the Gate.
func (c *RuntimeClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(runtimeEmbedRequest{Model: c.model.Name, Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("encode embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("runtime request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxRuntimeErrorBody))
		return nil, fmt.Errorf("runtime returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed runtimeEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}

	if len(parsed.Embeddings) != len(texts) {
		return nil, fmt.Errorf("runtime returned %d vectors for %d texts", len(parsed.Embeddings), len(texts))
	}
	return parsed.Embeddings, nil
}

// ModelName implements Engine.
func (c *RuntimeClient) ModelName() string { return c.model.Name }

// Dimensions implements Engine.
func (c *RuntimeClient) Dimensions() int { return c.model.Dimensions }
