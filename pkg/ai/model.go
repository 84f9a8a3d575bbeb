package ai

import (
	"fmt"

	"github.com/decred/slog"
)

// InferFunc runs an external inference backend against a snapshot. The
// backend itself (process, RPC, whatever serves the trained network) lives
// outside this module.
type InferFunc func(Snapshot) (Decision, error)

// ModelEngine is the model-backed Engine variant. It resolves the named
// checkpoint through a ModelCache and delegates the actual inference to an
// attached InferFunc. With no backend attached, or an unregistered model,
// every decision fails with ErrModelUnavailable so a FallbackEngine can
// degrade to the heuristic.
type ModelEngine struct {
	cache *ModelCache
	name  string
	infer InferFunc
}

// NewModelEngine creates a model engine for the named registered model.
// infer may be nil; the engine then always reports ErrModelUnavailable.
func NewModelEngine(cache *ModelCache, name string, infer InferFunc) *ModelEngine {
	return &ModelEngine{cache: cache, name: name, infer: infer}
}

// Decide implements Engine.
func (m *ModelEngine) Decide(snapshot Snapshot) (Decision, error) {
	if m.infer == nil {
		return Decision{}, fmt.Errorf("%w: no inference backend attached", ErrModelUnavailable)
	}
	md, ok := m.cache.Metadata(m.name)
	if !ok {
		return Decision{}, fmt.Errorf("%w: model %q not registered", ErrModelUnavailable, m.name)
	}
	if !md.IsLoaded {
		return Decision{}, fmt.Errorf("%w: model %q not loaded", ErrModelUnavailable, m.name)
	}

	decision, err := m.infer(snapshot)
	if err != nil {
		return Decision{}, fmt.Errorf("inference for model %q: %w", m.name, err)
	}
	m.cache.Touch(m.name)
	return decision, nil
}

// FallbackEngine tries a primary engine and falls back to a secondary one
// when the primary fails. Pairing a ModelEngine with a HeuristicEngine
// reproduces the inference service's model-to-heuristic degradation.
type FallbackEngine struct {
	log      slog.Logger
	primary  Engine
	fallback Engine
}

// NewFallbackEngine wires a primary engine to a fallback.
func NewFallbackEngine(primary, fallback Engine, log slog.Logger) *FallbackEngine {
	return &FallbackEngine{log: log, primary: primary, fallback: fallback}
}

// Decide implements Engine.
func (f *FallbackEngine) Decide(snapshot Snapshot) (Decision, error) {
	decision, err := f.primary.Decide(snapshot)
	if err == nil {
		return decision, nil
	}
	f.log.Warnf("Primary decision engine failed, using fallback: %v", err)
	return f.fallback.Decide(snapshot)
}
