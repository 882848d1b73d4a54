package audio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestBreakerProviderTripsAfterFailures(t *testing.T) {
	inner := &mockProvider{name: "flaky", generateErr: errors.New("boom")}
	b := NewBreakerProvider(inner, 2, time.Hour)
	ctx := context.Background()
	out := t.TempDir() + "/out.mp3"

	for i := 0; i < 2; i++ {
		if err := b.GenerateAudio(ctx, "cat", out); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	err := b.GenerateAudio(ctx, "cat", out)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
	if inner.calls() != 2 {
		t.Errorf("open breaker should not call provider, got %d calls", inner.calls())
	}
	if b.IsAvailable() == nil {
		t.Error("IsAvailable() should fail while the breaker is open")
	}
}

func TestBreakerProviderIgnoresCancellation(t *testing.T) {
	inner := &mockProvider{name: "slow", block: make(chan struct{})}
	b := NewBreakerProvider(inner, 1, time.Hour)

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := b.GenerateAudio(ctx, "cat", t.TempDir()+"/out.mp3")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("call %d: error = %v, want context.Canceled", i, err)
		}
	}

	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}

func TestBreakerProviderTripsOnTimeouts(t *testing.T) {
	tests := []struct {
		name  string
		inner *mockProvider
		call  func(b *BreakerProvider, out string) error
	}{
		{
			name:  "caller deadline",
			inner: &mockProvider{name: "hung", block: make(chan struct{})},
			call: func(b *BreakerProvider, out string) error {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
				defer cancel()
				return b.GenerateAudio(ctx, "cat", out)
			},
		},
		{
			// An http.Client timeout surfaces as a wrapped DeadlineExceeded
			name:  "client timeout",
			inner: &mockProvider{name: "hung", generateErr: fmt.Errorf("Get: %w (Client.Timeout exceeded)", context.DeadlineExceeded)},
			call: func(b *BreakerProvider, out string) error {
				return b.GenerateAudio(context.Background(), "cat", out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBreakerProvider(tt.inner, 3, time.Hour)
			out := t.TempDir() + "/out.mp3"

			for i := 0; i < 3; i++ {
				if err := tt.call(b, out); !errors.Is(err, context.DeadlineExceeded) {
					t.Fatalf("call %d: error = %v, want DeadlineExceeded", i, err)
				}
			}

			if b.State() != gobreaker.StateOpen {
				t.Fatalf("State() = %v, want open", b.State())
			}
			if err := tt.call(b, out); !errors.Is(err, gobreaker.ErrOpenState) {
				t.Errorf("expected ErrOpenState once tripped, got %v", err)
			}
		})
	}
}

func TestBreakerProviderTripsOnSlowServer(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p := NewGoogleProvider(nil)
	p.baseURL = srv.URL
	p.client = &http.Client{Timeout: 20 * time.Millisecond}

	b := NewBreakerProvider(p, 3, time.Hour)
	out := t.TempDir() + "/out.mp3"

	for i := 0; i < 3; i++ {
		if err := b.GenerateAudio(context.Background(), "said", out); err == nil {
			t.Fatalf("call %d: expected timeout error", i)
		}
	}

	if b.State() != gobreaker.StateOpen {
		t.Errorf("State() = %v, want open after repeated timeouts", b.State())
	}
}

func TestBreakerProviderPassesThrough(t *testing.T) {
	inner := &mockProvider{name: "ok"}
	b := NewBreakerProvider(inner, 0, time.Second)

	if err := b.GenerateAudio(context.Background(), "cat", t.TempDir()+"/out.mp3"); err != nil {
		t.Fatalf("GenerateAudio() error = %v", err)
	}
	if b.Name() != "ok" {
		t.Errorf("Name() = %v, want ok", b.Name())
	}
	if err := b.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() error = %v", err)
	}
}
