// Package engine wraps the embedding engine: an opaque capability that turns
// text into fixed-length vectors. The engine itself (tokenization, neural
// inference) lives behind the Engine interface; this package supplies the
// model table, backend construction, and the Gate that serializes access.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Engine converts a batch of texts into one embedding vector per text, in
// input order. Implementations are NOT safe for concurrent invocation; all
// calls must go through a Gate.
type Engine interface {
	// Embed returns one vector per input text, aligned by index.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the canonical name of the loaded model.
	ModelName() string

	// Dimensions returns the vector length produced by the loaded model.
	Dimensions() int
}

// ModelSpec describes one supported embedding model.
type ModelSpec struct {
	Name       string
	Dimensions int
}

// DefaultModel is used when the configured model is not recognized.
const DefaultModel = "BAAI/bge-small-en-v1.5"

var supportedModels = map[string]ModelSpec{
	"BAAI/bge-small-en-v1.5":                 {Name: "BAAI/bge-small-en-v1.5", Dimensions: 384},
	"BAAI/bge-base-en-v1.5":                  {Name: "BAAI/bge-base-en-v1.5", Dimensions: 768},
	"sentence-transformers/all-MiniLM-L6-v2": {Name: "sentence-transformers/all-MiniLM-L6-v2", Dimensions: 384},
}

// SupportedModels returns the names of all models the service can load.
func SupportedModels() []string {
	names := make([]string, 0, len(supportedModels))
	for name := range supportedModels {
		names = append(names, name)
	}
	return names
}

// Resolve maps a configured model name to its spec. Unrecognized names fall
// back to DefaultModel with a warning; model selection never fails startup.
func Resolve(name string, logger *slog.Logger) ModelSpec {
	if spec, ok := supportedModels[name]; ok {
		return spec
	}
	logger.Warn("unknown model, falling back to default", "model", name, "default", DefaultModel)
	return supportedModels[DefaultModel]
}

// Backend names accepted by Load.
const (
	BackendRuntime = "runtime"
	BackendHash    = "hash"
)

// Options selects and configures the engine backend.
type Options struct {
	// Model is the requested model name; unrecognized values fall back to
	// DefaultModel.
	Model string

	// Backend is "runtime" (HTTP inference runtime sidecar) or "hash"
	// (deterministic local embedder for development and tests).
	Backend string

	// RuntimeURL is the base URL of the inference runtime. Runtime backend only.
	RuntimeURL string

	// Timeout bounds a single inference call. Runtime backend only.
	Timeout time.Duration
}

// Load resolves the model and constructs the configured backend. A backend
// that cannot come up (for the runtime backend, a sidecar that does not
// answer the readiness probe) is a fatal startup error.
func Load(ctx context.Context, opts Options, logger *slog.Logger) (Engine, error) {
	spec := Resolve(opts.Model, logger)

	switch opts.Backend {
	case BackendHash:
		logger.Info("loaded hash embedding backend", "model", spec.Name, "dimensions", spec.Dimensions)
		return NewHashEmbedder(spec), nil
	case BackendRuntime, "":
		client, err := NewRuntimeClient(opts.RuntimeURL, spec, opts.Timeout)
		if err != nil {
			return nil, err
		}
		if err := client.Ready(ctx); err != nil {
			return nil, fmt.Errorf("engine: inference runtime not ready: %w", err)
		}
		logger.Info("loaded runtime embedding backend",
			"model", spec.Name, "dimensions", spec.Dimensions, "runtime_url", opts.RuntimeURL)
		return client, nil
	default:
		return nil, fmt.Errorf("engine: unknown backend %q", opts.Backend)
	}
}
