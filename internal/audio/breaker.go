package audio

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerProvider guards a network provider with a circuit breaker so a
// dead API is skipped quickly instead of stalling every word.
type BreakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerProvider trips after maxFailures consecutive failures and
// lets a trial request through again after timeout.
func NewBreakerProvider(p Provider, maxFailures uint32, timeout time.Duration) *BreakerProvider {
	if maxFailures == 0 {
		maxFailures = 3
	}

	settings := gobreaker.Settings{
		Name:        p.Name(),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// caller cancellation is neutral, timeouts count as failures
		IsSuccessful: func(err error) bool {
			var abandoned *abandonedError
			return err == nil || errors.As(err, &abandoned)
		},
	}

	return &BreakerProvider{
		inner: p,
		cb:    gobreaker.NewCircuitBreaker(settings),
	}
}

// abandonedError marks a failure caused by the caller cancelling its context
type abandonedError struct {
	err error
}

func (e *abandonedError) Error() string { return e.err.Error() }
func (e *abandonedError) Unwrap() error { return e.err }

// GenerateAudio runs the wrapped provider unless the breaker is open
func (b *BreakerProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		err := b.inner.GenerateAudio(ctx, text, outputFile)
		if err != nil && errors.Is(ctx.Err(), context.Canceled) {
			return nil, &abandonedError{err: err}
		}
		return nil, err
	})

	var abandoned *abandonedError
	if errors.As(err, &abandoned) {
		return abandoned.err
	}
	return err
}

// Name returns the wrapped provider's name
func (b *BreakerProvider) Name() string {
	return b.inner.Name()
}

// IsAvailable reports an open breaker as unavailable
func (b *BreakerProvider) IsAvailable() error {
	if b.cb.State() == gobreaker.StateOpen {
		return gobreaker.ErrOpenState
	}
	return b.inner.IsAvailable()
}

// State exposes the breaker state
func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}
