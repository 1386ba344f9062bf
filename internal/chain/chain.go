// Package chain runs an ordered list of fallible strategies and returns the
// first result. Both the content classifier and the date resolver are built
// on it.
package chain

import (
	"context"
	"errors"

	"github.com/pbaille/snipstack/internal/logging"
)

// ErrNoMatch is returned by a strategy that ran cleanly but had nothing to
// say about the input.
var ErrNoMatch = errors.New("no match")

// Strategy is one named stage of a chain.
type Strategy[In, Out any] struct {
	Name string
	Run  func(ctx context.Context, in In) (Out, error)
}

// Result carries the winning output and the stage that produced it.
type Result[Out any] struct {
	Value Out
	Stage string
}

// First evaluates strategies in order and returns the first success. Stage
// errors other than ErrNoMatch are logged and treated as a miss. When every
// stage misses, ok is false.
func First[In, Out any](ctx context.Context, in In, strategies ...Strategy[In, Out]) (Result[Out], bool) {
	for _, s := range strategies {
		if s.Run == nil {
			continue
		}
		out, err := s.Run(ctx, in)
		if err == nil {
			logging.Debug("chain stage hit", "stage", s.Name)
			return Result[Out]{Value: out, Stage: s.Name}, true
		}
		if !errors.Is(err, ErrNoMatch) {
			logging.Warn("chain stage failed", "stage", s.Name, "err", err)
		}
	}
	return Result[Out]{}, false
}
