package testutil

import (
	"context"
	"os"
	"slices"
	"sync"
)

// MockProvider is a speech provider that writes "audio:<text>" into the
// output file. It is safe for concurrent use.
type MockProvider struct {
	// Errors maps a text to the error returned for it
	Errors map[string]error
	// Err is returned for every text when set
	Err error

	mu    sync.Mutex
	calls []string
}

// GenerateAudio records the call and writes the fake audio
func (m *MockProvider) GenerateAudio(ctx context.Context, text, outputFile string) error {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if err, ok := m.Errors[text]; ok {
		return err
	}
	return os.WriteFile(outputFile, []byte("audio:"+text), 0644)
}

// Name returns "mock"
func (m *MockProvider) Name() string { return "mock" }

// IsAvailable always succeeds
func (m *MockProvider) IsAvailable() error { return nil }

// Calls returns the texts synthesized so far, in call order
func (m *MockProvider) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// MockPlayer records the contents of played files instead of playing them
type MockPlayer struct {
	Err error

	mu     sync.Mutex
	played []string
}

// Play reads file and records its contents
func (m *MockPlayer) Play(ctx context.Context, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.played = append(m.played, string(data))
	m.mu.Unlock()
	return m.Err
}

// Played returns the contents of the files played so far
func (m *MockPlayer) Played() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.played)
}
