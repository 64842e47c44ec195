package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"auction-courier/core/gateway"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"server error", &gateway.StatusError{Code: 500}, true},
		{"bad gateway", &gateway.StatusError{Code: 502}, true},
		{"service unavailable", &gateway.StatusError{Code: 503}, true},
		{"conflict", &gateway.StatusError{Code: 409}, true},
		{"precondition failed", &gateway.StatusError{Code: 412}, true},
		{"rate limited", &gateway.StatusError{Code: 429}, true},
		{"bad request", &gateway.StatusError{Code: 400}, false},
		{"forbidden", &gateway.StatusError{Code: 403}, false},
		{"not found", &gateway.StatusError{Code: 404}, false},
		{"unprocessable", &gateway.StatusError{Code: 422}, false},
		{"no status code", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.transient, IsTransient(tt.err))
		})
	}
}

func TestDo_RetriesTransientThenSucceeds(t *testing.T) {
	policy := NewPolicyWith(5, time.Millisecond, zap.NewNop())

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		if calls <= 3 {
			return &gateway.StatusError{Code: 503}
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, calls, "three failed attempts plus the success")
}

func TestDo_PermanentErrorNotRetried(t *testing.T) {
	policy := NewPolicyWith(5, time.Millisecond, zap.NewNop())

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return &gateway.StatusError{Code: 400}
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 400, gateway.StatusOf(err))
}

func TestDo_ExhaustsAttemptBudget(t *testing.T) {
	policy := NewPolicyWith(5, time.Millisecond, zap.NewNop())

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return &gateway.StatusError{Code: 500}
	})

	assert.Error(t, err)
	assert.Equal(t, 5, calls, "five total attempts including the first")
	assert.Equal(t, 500, gateway.StatusOf(err))
}

func TestDo_SuccessFirstTry(t *testing.T) {
	policy := NewPolicy(zap.NewNop())

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}
