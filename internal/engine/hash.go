package engine

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// HashEmbedder produces deterministic unit-length vectors from a SHA-256 of
// the input text. The vectors carry no semantic meaning; the backend exists
// so the service can run without an inference runtime in development and so
// tests can verify data flow with reproducible output.
type HashEmbedder struct {
	model ModelSpec
}

// NewHashEmbedder creates a hash backend producing vectors of the model's
// dimensionality.
func NewHashEmbedder(model ModelSpec) *HashEmbedder {
	return &HashEmbedder{model: model}
}

// Embed implements Engine. Output order matches input order.
func (e *HashEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors[i] = e.embedOne(text)
	}
	return vectors, nil
}

func (e *HashEmbedder) embedOne(text string) []float32 {
	hash := sha256.Sum256([]byte(text))

	vec := make([]float32, e.model.Dimensions)
	for i := range vec {
		start := (i * 4) % (len(hash) - 4)
		val := binary.BigEndian.Uint32(hash[start : start+4])
		vec[i] = float32(val) / float32(math.MaxUint32)
	}

	// Unit length so cosine similarity behaves downstream.
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	norm = float32(math.Sqrt(float64(norm)))
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// ModelName implements Engine.
func (e *HashEmbedder) ModelName() string { return e.model.Name }

// Dimensions implements Engine.
func (e *HashEmbedder) Dimensions() int { return e.model.Dimensions }
