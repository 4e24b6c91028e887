package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolve_KnownModels(t *testing.T) {
	tests := []struct {
		model    string
		wantDims int
	}{
		{model: "BAAI/bge-small-en-v1.5", wantDims: 384},
		{model: "BAAI/bge-base-en-v1.5", wantDims: 768},
		{model: "sentence-transformers/all-MiniLM-L6-v2", wantDims: 384},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			spec := Resolve(tt.model, discardLogger())
			if spec.Name != tt.model {
				t.Errorf("Resolve(%q).Name = %q", tt.model, spec.Name)
			}
			if spec.Dimensions != tt.wantDims {
				t.Errorf("Resolve(%q).Dimensions = %d, want %d", tt.model, spec.Dimensions, tt.wantDims)
			}
		})
	}
}

func TestResolve_UnknownModelFallsBack(t *testing.T) {
	spec := Resolve("openai/text-embedding-3-large", discardLogger())
	if spec.Name != DefaultModel {
		t.Errorf("Resolve unknown model = %q, want fallback to %q", spec.Name, DefaultModel)
	}
}

func TestLoad_HashBackend(t *testing.T) {
	eng, err := Load(context.Background(), Options{
		Model:   "BAAI/bge-base-en-v1.5",
		Backend: BackendHash,
	}, discardLogger())
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if eng.ModelName() != "BAAI/bge-base-en-v1.5" {
		t.Errorf("ModelName = %q", eng.ModelName())
	}
	if eng.Dimensions() != 768 {
		t.Errorf("Dimensions = %d, want 768", eng.Dimensions())
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	if _, err := Load(context.Background(), Options{Backend: "gpu"}, discardLogger()); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoad_RuntimeBackendRequiresURL(t *testing.T) {
	if _, err := Load(context.Background(), Options{Backend: BackendRuntime}, discardLogger()); err == nil {
		t.Fatal("expected error when runtime URL is missing")
	}
}
