package slang

import "errors"

// Common errors for the slang translation system.
var (
	// Backend errors
	ErrQuotaExceeded = errors.New("backend quota exceeded")
	ErrInvalidFormat = errors.New("backend returned an invalid response format")

	// Orchestrator errors
	ErrEmptyInput        = errors.New("nothing to translate")
	ErrSuperseded        = errors.New("request superseded by a newer one")
	ErrTranslationFailed = errors.New("translation failed")

	// History errors
	ErrRecordNotFound = errors.New("record not found in history")
)

// IsRetryable reports whether an error is worth surfacing with a retry
// affordance. Superseded requests stay silent, and invalid-format
// responses will not improve on immediate retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrSuperseded):
		return false
	case errors.Is(err, ErrInvalidFormat):
		return false
	case errors.Is(err, ErrEmptyInput):
		return false
	}
	return true
}
