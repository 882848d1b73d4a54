package audio

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// GenerateAudio generates audio from text and saves it to the specified file.
	// The file extension selects the audio format.
	GenerateAudio(ctx context.Context, text string, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Provider names accepted in Config.Provider and Config.Fallback
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderESpeak = "espeak"
	ProviderGoogle = "google"
)

// ProviderNames lists every supported provider
func ProviderNames() []string {
	return []string{ProviderOpenAI, ProviderGemini, ProviderESpeak, ProviderGoogle}
}

// Config holds common configuration for audio providers
type Config struct {
	Provider     string // Primary provider name
	Fallback     string // Used when the primary fails; empty disables fallback
	OutputFormat string // "mp3" or "wav"

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "ballad", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer", "verse"
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts model

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string
	GeminiVoice string

	// espeak-ng settings
	ESpeakVoice string
	ESpeakSpeed int

	// Google Translate TTS language
	GoogleLang string

	// Circuit breaker for network providers
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Fallback:          ProviderESpeak,
		OutputFormat:      "mp3",
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "nova",
		OpenAISpeed:       0.9,
		OpenAIInstruction: "You are reading a single English sight word to a young child who is learning to read. Say only the word, slowly and clearly, in a warm and friendly voice.",
		GeminiModel:       "gemini-2.5-flash-preview-tts",
		GeminiVoice:       "Kore",
		ESpeakVoice:       "en-us",
		ESpeakSpeed:       130,
		GoogleLang:        "en",
		BreakerFailures:   3,
		BreakerTimeout:    30 * time.Second,
	}
}

// NewProvider creates the provider named by config.Provider. Network
// providers come wrapped in a circuit breaker.
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}
	return newNamedProvider(config.Provider, config)
}

// Build creates the primary provider and, when configured, attaches the
// fallback. A fallback that cannot be created is logged and skipped.
func Build(config *Config, logger zerolog.Logger) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	primary, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	if config.Fallback == "" || config.Fallback == config.Provider {
		return primary, nil
	}

	fallback, err := newNamedProvider(config.Fallback, config)
	if err != nil {
		logger.Warn().Err(err).Str("fallback", config.Fallback).Msg("fallback audio provider unavailable")
		return primary, nil
	}

	return NewProviderWithFallback(primary, fallback, logger), nil
}

func newNamedProvider(name string, config *Config) (Provider, error) {
	switch name {
	case ProviderOpenAI:
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		p, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, err
		}
		return NewBreakerProvider(p, config.BreakerFailures, config.BreakerTimeout), nil

	case ProviderGemini:
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		p, err := NewGeminiProvider(config)
		if err != nil {
			return nil, err
		}
		return NewBreakerProvider(p, config.BreakerFailures, config.BreakerTimeout), nil

	case ProviderGoogle:
		return NewBreakerProvider(NewGoogleProvider(config), config.BreakerFailures, config.BreakerTimeout), nil

	case ProviderESpeak:
		return NewESpeakProvider(&ESpeakConfig{
			Voice: config.ESpeakVoice,
			Speed: config.ESpeakSpeed,
		})

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", name)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
	log      zerolog.Logger
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider, logger zerolog.Logger) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		log:      logger,
	}
}

// GenerateAudio tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	_, err := p.GenerateAudioFrom(ctx, text, outputFile)
	return err
}

// GenerateAudioFrom works like GenerateAudio and also returns the name of
// the provider that produced the file.
func (p *ProviderWithFallback) GenerateAudioFrom(ctx context.Context, text string, outputFile string) (string, error) {
	err := p.primary.GenerateAudio(ctx, text, outputFile)
	if err == nil {
		return p.primary.Name(), nil
	}
	if ctx.Err() != nil {
		return "", err
	}

	p.log.Warn().Err(err).
		Str("primary", p.primary.Name()).
		Str("fallback", p.fallback.Name()).
		Msg("primary audio provider failed, falling back")

	if err := p.fallback.GenerateAudio(ctx, text, outputFile); err != nil {
		return "", err
	}
	return p.fallback.Name(), nil
}

// sourceReporter is implemented by providers that delegate the actual
// synthesis to one of several providers.
type sourceReporter interface {
	GenerateAudioFrom(ctx context.Context, text string, outputFile string) (string, error)
}

// generateFrom runs provider and returns the name of whoever produced the file
func generateFrom(ctx context.Context, provider Provider, text, outputFile string) (string, error) {
	if r, ok := provider.(sourceReporter); ok {
		return r.GenerateAudioFrom(ctx, text, outputFile)
	}
	if err := provider.GenerateAudio(ctx, text, outputFile); err != nil {
		return "", err
	}
	return provider.Name(), nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
