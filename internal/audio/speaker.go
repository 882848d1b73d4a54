package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/sightwords/internal/quiz"
)

// DefaultSpeakTimeout bounds one synthesize-and-play cycle
const DefaultSpeakTimeout = 30 * time.Second

// DefaultEffectPhrases are spoken when no effect file is configured
var DefaultEffectPhrases = map[string]string{
	quiz.EffectCorrect: "Great job!",
	quiz.EffectWrong:   "Try again",
}

// SpeakerConfig wires a Speaker
type SpeakerConfig struct {
	Cache    *Cache
	Provider Provider
	Player   Player

	// DisableEffects silences the correct and wrong feedback sounds.
	DisableEffects bool
	// EffectFiles maps an effect id to an audio file played as is.
	EffectFiles map[string]string
	// EffectPhrases maps an effect id to a phrase spoken through the
	// cache. Nil means DefaultEffectPhrases.
	EffectPhrases map[string]string

	Timeout time.Duration
	Logger  zerolog.Logger
}

// Speaker pronounces words and plays feedback effects in the background.
// Failures are logged and never reach the caller.
type Speaker struct {
	cache    *Cache
	provider Provider
	player   Player

	effects       bool
	effectFiles   map[string]string
	effectPhrases map[string]string
	timeout       time.Duration
	log           zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	// playMu keeps sounds from talking over each other
	playMu sync.Mutex
}

var _ quiz.Speaker = (*Speaker)(nil)

// NewSpeaker creates a speaker
func NewSpeaker(cfg SpeakerConfig) (*Speaker, error) {
	if cfg.Cache == nil {
		return nil, errors.New("audio: cache is required")
	}
	if cfg.Provider == nil {
		return nil, errors.New("audio: provider is required")
	}
	if cfg.Player == nil {
		cfg.Player = NewExecPlayer()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSpeakTimeout
	}
	if cfg.EffectPhrases == nil {
		cfg.EffectPhrases = DefaultEffectPhrases
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Speaker{
		cache:         cfg.Cache,
		provider:      cfg.Provider,
		player:        cfg.Player,
		effects:       !cfg.DisableEffects,
		effectFiles:   cfg.EffectFiles,
		effectPhrases: cfg.EffectPhrases,
		timeout:       cfg.Timeout,
		log:           cfg.Logger.With().Str("component", "speaker").Logger(),
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// Speak synthesizes word if needed and plays it
func (s *Speaker) Speak(word string) {
	s.spawn("speak", word, func(ctx context.Context) error {
		return s.say(ctx, word)
	})
}

// PlayEffect plays the feedback sound for id
func (s *Speaker) PlayEffect(id string) {
	if !s.effects {
		return
	}

	if file, ok := s.effectFiles[id]; ok && file != "" {
		s.spawn("effect", id, func(ctx context.Context) error {
			return s.play(ctx, file)
		})
		return
	}

	phrase, ok := s.effectPhrases[id]
	if !ok || phrase == "" {
		s.log.Warn().Str("effect", id).Msg("unknown effect")
		return
	}

	s.spawn("effect", id, func(ctx context.Context) error {
		return s.say(ctx, phrase)
	})
}

// Prefetch fills the cache for words and the effect phrases, running at
// most concurrency generations at a time. It stops at the first error.
func (s *Speaker) Prefetch(ctx context.Context, words []string, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}

	texts := append([]string(nil), words...)
	if s.effects {
		for id, phrase := range s.effectPhrases {
			if _, hasFile := s.effectFiles[id]; !hasFile {
				texts = append(texts, phrase)
			}
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, text := range texts {
		g.Go(func() error {
			if _, err := s.cache.Ensure(ctx, text, s.provider); err != nil {
				return fmt.Errorf("prefetch %q: %w", text, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.log.Info().Int("words", len(texts)).Msg("audio prefetched")
	return nil
}

// Close cancels pending playback and waits for it to stop
func (s *Speaker) Close() {
	s.cancel()
	s.wg.Wait()
}

// wait blocks until all started playback has finished
func (s *Speaker) wait() {
	s.wg.Wait()
}

func (s *Speaker) say(ctx context.Context, text string) error {
	file, err := s.cache.Ensure(ctx, text, s.provider)
	if err != nil {
		return err
	}
	return s.play(ctx, file)
}

func (s *Speaker) play(ctx context.Context, file string) error {
	s.playMu.Lock()
	defer s.playMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.player.Play(ctx, file)
}

func (s *Speaker) spawn(kind, subject string, fn func(ctx context.Context) error) {
	if s.ctx.Err() != nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.log.Error().Err(err).Str("kind", kind).Str("subject", subject).Msg("audio playback failed")
		}
	}()
}
