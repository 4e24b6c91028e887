package engine

import (
	"context"
	"fmt"
	"sync"
)

// Gate serializes access to an Engine. The engine's internal state is not
// safe for concurrent invocation, so at most one inference call is in flight
// at a time; concurrent requests queue on the mutex in no particular order.
//
// The lock covers only the engine call itself. Validation, JSON work, and
// response assembly happen outside the critical section.
type Gate struct {
	mu     sync.Mutex
	engine Engine
}

// NewGate wraps engine behind the exclusive-access boundary.
func NewGate(engine Engine) *Gate {
	return &Gate{engine: engine}
}

// Run invokes the engine with the given texts in order and returns vectors
// aligned to input order. The lock is released on every exit path. Failed
// calls are not retried: the engine's state after a failure is not guaranteed
// consistent for retry.
func (g *Gate) Run(ctx context.Context, texts []string) ([][]float32, error) {
	g.mu.Lock()
	vectors, err := g.engine.Embed(ctx, texts)
	g.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("embed %d texts: %w", len(texts), err)
	}
	return vectors, nil
}

// ModelName reports the loaded model without touching engine state.
func (g *Gate) ModelName() string {
	return g.engine.ModelName()
}
