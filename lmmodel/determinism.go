package lmmodel

import (
	"context"
	"fmt"

	"github.com/liamwilbur/lmzip"
)

// DeterminismGuard wraps another Model and double-checks a cheap proxy for
// determinism: it remembers the logits returned the first time it sees a
// given context length, and compares every later call at that same length.
// A real determinism check would key on the full context rather than its
// length, but this is enough to catch the common failure mode the
// distilled spec's §7 warns about (reduced-precision inference with
// non-deterministic reduction order) in tests without needing a real model
// to reproduce it.
type DeterminismGuard struct {
	lmzip.Model
	seen     map[int][]float64
	mismatch error
}

// NewDeterminismGuard wraps model.
func NewDeterminismGuard(model lmzip.Model) *DeterminismGuard {
	return &DeterminismGuard{Model: model, seen: make(map[int][]float64)}
}

func (g *DeterminismGuard) NextLogits(ctx context.Context, tokenContext []lmzip.Token) ([]float64, error) {
	logits, err := g.Model.NextLogits(ctx, tokenContext)
	if err != nil {
		return nil, err
	}
	if g.mismatch == nil {
		if prev, ok := g.seen[len(tokenContext)]; ok {
			if !floatsEqual(prev, logits) {
				g.mismatch = fmt.Errorf("logits at context length %d changed between calls", len(tokenContext))
			}
		} else {
			g.seen[len(tokenContext)] = append([]float64(nil), logits...)
		}
	}
	return logits, nil
}

// ReportDeterminism implements lmzip.DeterminismReporter.
func (g *DeterminismGuard) ReportDeterminism() error { return g.mismatch }

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
