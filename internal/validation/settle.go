package validation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Settled is the outcome of one research input, success or not.
type Settled[T any] struct {
	Value T
	Err   error
}

// settle runs fn on its own goroutine and delivers exactly one result.
// A failing or panicking input must never take its siblings down, so
// each input gets an independent context and panics become errors.
func settle[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) <-chan Settled[T] {
	out := make(chan Settled[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Str("input", name).Any("panic", r).Msg("Research input panicked")
				var zero T
				out <- Settled[T]{Value: zero, Err: fmt.Errorf("research input %s panicked: %v", name, r)}
			}
		}()
		value, err := fn(ctx)
		out <- Settled[T]{Value: value, Err: err}
	}()
	return out
}
