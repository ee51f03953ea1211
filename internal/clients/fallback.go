// Package clients holds the external-collaborator integrations and the one
// fallback policy applied to all of them.
package clients

import (
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
)

// WithFallback runs call and substitutes the boundary's typed default on
// any error. Both LLM boundaries (curriculum generation, assessment
// evaluation) go through here so failures always resolve to a definite
// domain value instead of a propagated error.
func WithFallback[T any](log *logger.Logger, boundary string, call func() (T, error), fallback func(err error) T) T {
	out, err := call()
	if err != nil {
		if log != nil {
			log.Warn("external call failed, substituting default", "boundary", boundary, "error", err)
		}
		return fallback(err)
	}
	return out
}
