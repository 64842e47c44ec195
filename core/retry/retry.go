package retry

import (
	"context"
	"time"

	"auction-courier/core/gateway"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	// DefaultAttempts is the total number of attempts for one operation,
	// including the first.
	DefaultAttempts = 5
	// DefaultDelay is the fixed delay between attempts.
	DefaultDelay = 2 * time.Second
)

// IsTransient reports whether err is worth retrying. Only server errors and
// the conflict class (409, 412, 429) qualify; every other failure is
// permanent.
func IsTransient(err error) bool {
	code := gateway.StatusOf(err)
	switch {
	case code >= 500:
		return true
	case code == 409 || code == 412 || code == 429:
		return true
	default:
		return false
	}
}

// Policy wraps single idempotent remote mutations in a bounded retry. It is
// never applied around multi-step sequences, so a retry cannot double-apply
// anything beyond a field-value patch.
type Policy struct {
	attempts uint64
	delay    time.Duration
	logger   *zap.Logger
}

// NewPolicy creates a Policy with the default 5 attempts and 2s fixed delay.
func NewPolicy(logger *zap.Logger) *Policy {
	return &Policy{attempts: DefaultAttempts, delay: DefaultDelay, logger: logger}
}

// NewPolicyWith creates a Policy with explicit attempt count and delay.
func NewPolicyWith(attempts uint64, delay time.Duration, logger *zap.Logger) *Policy {
	if attempts == 0 {
		attempts = 1
	}
	return &Policy{attempts: attempts, delay: delay, logger: logger}
}

// Do invokes op, retrying transient failures up to the attempt budget with a
// fixed delay. Permanent failures propagate immediately; on budget exhaustion
// the last error propagates.
func (p *Policy) Do(ctx context.Context, op func() error) error {
	attempt := 0
	wrapped := func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return backoff.Permanent(err)
		}
		p.logger.Warn("Transient failure, will retry",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return err
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.delay), p.attempts-1),
		ctx,
	)
	return backoff.Retry(wrapped, b)
}
