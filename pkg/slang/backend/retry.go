// Package backend implements the generative-inference client: translation,
// streaming, enrichment, speech, images, and pronunciation scoring over the
// Gemini API, with retry, rate limiting, and circuit breaking layered on top.
package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ganklab/gankspeak/pkg/slang"
)

// Retry defaults. Quota failures back off three times harder than
// transient ones so a rate-limited key gets room to recover.
const (
	DefaultMaxRetries = 2
	DefaultBaseDelay  = time.Second

	transientBackoffFactor = 2
	quotaBackoffFactor     = 3
)

// Policy retries an operation with exponential backoff. The zero value is
// not usable; construct with NewPolicy.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration

	// sleep is swapped out by tests to observe delays without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPolicy creates a policy with the default attempt and delay bounds.
func NewPolicy() *Policy {
	return &Policy{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		sleep:      sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs fn until it succeeds or the attempt budget is spent. Transient
// failures double the delay from the second retry on; quota failures
// triple it every time. Exhausted quota failures surface as
// slang.ErrQuotaExceeded so callers can show a distinct message.
func (p *Policy) Do(ctx context.Context, op string, fn func() error) error {
	delay := p.BaseDelay
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if attempt >= p.MaxRetries {
			break
		}
		if IsQuotaError(err) {
			delay *= quotaBackoffFactor
		} else if attempt > 0 {
			delay *= transientBackoffFactor
		}
		log.Debug("backend call failed, retrying", "op", op, "attempt", attempt+1, "delay", delay, "err", err)
		if serr := p.sleep(ctx, delay); serr != nil {
			return serr
		}
	}
	if IsQuotaError(err) {
		return fmt.Errorf("%s: %w: %s", op, slang.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsQuotaError reports whether err looks like an API quota or rate-limit
// rejection. The Gemini API surfaces these as HTTP 429 with a
// RESOURCE_EXHAUSTED status, but error text varies across transports, so
// this matches substrings.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "429") ||
		strings.Contains(s, "quota") ||
		strings.Contains(s, "resource exhausted") ||
		strings.Contains(s, "resource_exhausted")
}
