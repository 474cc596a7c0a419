package trackcode

import (
	"context"
	"errors"
	"fmt"

	"genius-backend/internal/shared/metrics"
	"genius-backend/internal/shared/telemetry"
)

// DefaultMaxAttempts caps the generate-and-check loop.
const DefaultMaxAttempts = 50

// ErrCodeSpaceExhausted is returned when every attempt collided with an existing code.
var ErrCodeSpaceExhausted = errors.New("could not mint a unique tracking code")

// ExistsFunc reports whether code is already held by a record in some store.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Checker re-rolls generated codes until one is free in the store it is pointed at.
// The check and the caller's later insert are not atomic; concurrent writers can
// still race for the same code, which the store's unique index reports.
type Checker struct {
	Gen         *Generator
	MaxAttempts int
	// Scope labels logs and metrics ("candidates", "tracking").
	Scope string
}

// Mint returns the first generated code that exists reports as free.
func (c Checker) Mint(ctx context.Context, exists ExistsFunc) (string, error) {
	if exists == nil {
		return "", errors.New("trackcode: exists func is required")
	}
	gen := c.Gen
	if gen == nil {
		gen = NewGenerator()
	}
	maxAttempts := c.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		code := gen.Next()
		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check tracking code: %w", err)
		}
		if !taken {
			return code, nil
		}
		metrics.IncCodeCollision(c.Scope)
		telemetry.Warn("trackcode.collision", map[string]any{
			"scope":   c.Scope,
			"code":    code,
			"attempt": attempt,
		})
	}

	telemetry.Error("trackcode.exhausted", map[string]any{
		"scope":        c.Scope,
		"max_attempts": maxAttempts,
	})
	return "", ErrCodeSpaceExhausted
}
