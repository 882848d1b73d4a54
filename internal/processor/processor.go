package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"codeberg.org/snonux/sightwords/internal/audio"
	"codeberg.org/snonux/sightwords/internal/cli"
	"codeberg.org/snonux/sightwords/internal/gui"
	"codeberg.org/snonux/sightwords/internal/quiz"
	"codeberg.org/snonux/sightwords/internal/words"
)

// PrefetchConcurrency bounds parallel synthesis during --prefetch
const PrefetchConcurrency = 4

// Processor handles the main program flow
type Processor struct {
	flags *cli.Flags
	out   io.Writer
	log   zerolog.Logger

	// provider overrides the provider built from flags
	provider audio.Provider
}

// NewProcessor creates a new processor using the global logger
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{
		flags: flags,
		out:   os.Stdout,
		log:   log.Logger.With().Str("component", "processor").Logger(),
	}
}

// Run dispatches to the action selected by the flags. Without an action
// flag the GUI is launched.
func (p *Processor) Run(ctx context.Context) error {
	switch {
	case p.flags.ListThemes:
		return p.ListThemes()
	case p.flags.ListVoices:
		return p.ListVoices()
	case p.flags.ListCache:
		return p.ListCache()
	case p.flags.ClearCache:
		return p.ClearCache()
	case p.flags.Prefetch:
		return p.Prefetch(ctx)
	default:
		return p.RunGUIMode()
	}
}

// Catalog returns the built-in themes merged with the themes from the
// config file and any --words-file lists.
func (p *Processor) Catalog() (*words.Catalog, error) {
	catalog := words.NewCatalog()

	custom, err := cli.GetWordThemes()
	if err != nil {
		return nil, err
	}
	if err := catalog.Merge(custom); err != nil {
		return nil, fmt.Errorf("invalid word theme in config: %w", err)
	}

	for _, path := range p.flags.WordsFiles {
		list, err := words.LoadFile(path)
		if err != nil {
			return nil, err
		}
		name := words.ThemeNameFromPath(path)
		if err := catalog.Add(name, list); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		p.log.Debug().Str("theme", name).Str("file", path).Int("words", len(list)).Msg("word list loaded")
	}

	return catalog, nil
}

// AudioConfig translates the flags into a provider configuration
func (p *Processor) AudioConfig() *audio.Config {
	config := audio.DefaultProviderConfig()
	config.Provider = p.flags.AudioProvider
	config.Fallback = p.flags.FallbackProvider
	config.OutputFormat = p.flags.AudioFormat

	config.OpenAIKey = cli.GetOpenAIKey()
	config.OpenAIModel = p.flags.OpenAIModel
	config.OpenAIVoice = p.flags.OpenAIVoice
	config.OpenAISpeed = p.flags.OpenAISpeed
	if p.flags.OpenAIInstruction != "" {
		config.OpenAIInstruction = p.flags.OpenAIInstruction
	}

	config.GeminiKey = cli.GetGeminiKey()
	config.GeminiModel = p.flags.GeminiModel
	config.GeminiVoice = p.flags.GeminiVoice

	config.ESpeakVoice = p.flags.ESpeakVoice

	return config
}

// ListThemes prints every word theme with its size
func (p *Processor) ListThemes() error {
	catalog, err := p.Catalog()
	if err != nil {
		return err
	}

	for _, name := range catalog.Names() {
		set, err := catalog.Set(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "%-20s %3d words\n", name, set.Len())
	}
	return nil
}

// ListVoices prints the espeak-ng voice variants accepted by --espeak-voice
func (p *Processor) ListVoices() error {
	for _, voice := range audio.ListVoices() {
		fmt.Fprintln(p.out, voice)
	}
	return nil
}

// ListCache prints the cache manifest, one word per line
func (p *Processor) ListCache() error {
	cache, err := audio.OpenCache(p.flags.CacheDir, p.flags.AudioFormat, p.log)
	if err != nil {
		return err
	}
	defer cache.Close()

	entries, err := cache.Entries()
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(p.out, "%-20s %-8s %6.1f KB  %s\n",
			e.Word, e.Provider, float64(e.Size)/1024, e.CreatedAt.Format(time.DateTime))
	}
	fmt.Fprintf(p.out, "%d cached words in %s\n", len(entries), cache.Dir())
	return nil
}

// ClearCache removes every cached audio file
func (p *Processor) ClearCache() error {
	cache, err := audio.OpenCache(p.flags.CacheDir, p.flags.AudioFormat, p.log)
	if err != nil {
		return err
	}
	defer cache.Close()

	stats, err := cache.Stats()
	if err != nil {
		return err
	}
	if err := cache.Clear(); err != nil {
		return err
	}

	fmt.Fprintf(p.out, "Cleared %d cached words (%.1f KB) from %s\n",
		stats.Entries, float64(stats.TotalSize)/1024, cache.Dir())
	return nil
}

// Prefetch synthesizes audio for every word of every theme so the game
// never waits for the network.
func (p *Processor) Prefetch(ctx context.Context) error {
	catalog, err := p.Catalog()
	if err != nil {
		return err
	}

	var all []string
	for _, name := range catalog.Names() {
		set, err := catalog.Set(name)
		if err != nil {
			return err
		}
		all = append(all, set.Texts()...)
	}
	all = lo.Uniq(all)

	speaker, cache, err := p.newSpeaker()
	if err != nil {
		return err
	}
	defer cache.Close()
	defer speaker.Close()

	fmt.Fprintf(p.out, "Prefetching audio for %d words into %s\n", len(all), cache.Dir())
	if err := speaker.Prefetch(ctx, all, PrefetchConcurrency); err != nil {
		return err
	}

	stats, err := cache.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "Done! %d words cached (%.1f KB)\n", stats.Entries, float64(stats.TotalSize)/1024)
	return nil
}

// RunGUIMode launches the GUI application and blocks until its window closes
func (p *Processor) RunGUIMode() error {
	catalog, err := p.Catalog()
	if err != nil {
		return err
	}

	difficulty, err := quiz.ParseDifficulty(p.flags.Difficulty)
	if err != nil {
		return err
	}

	if !catalog.Has(p.flags.WordTheme) {
		return fmt.Errorf("%w: %s", words.ErrUnknownTheme, p.flags.WordTheme)
	}

	speaker, cache, err := p.newSpeaker()
	if err != nil {
		return err
	}

	// The window's close handler and a failed gui.New both release these
	release := sync.OnceFunc(func() {
		speaker.Close()
		if err := cache.Close(); err != nil {
			p.log.Warn().Err(err).Msg("failed to close audio cache")
		}
	})

	app, err := gui.New(&gui.Config{
		Catalog:     catalog,
		WordTheme:   p.flags.WordTheme,
		Difficulty:  difficulty,
		VisualTheme: p.flags.VisualTheme,
		Speaker:     speaker,
		Logger:      log.Logger,
		OnClose:     release,
	})
	if err != nil {
		release()
		return err
	}

	app.Run()
	release()
	return nil
}

func (p *Processor) newSpeaker() (*audio.Speaker, *audio.Cache, error) {
	provider, err := p.buildProvider()
	if err != nil {
		return nil, nil, err
	}

	cache, err := audio.OpenCache(p.flags.CacheDir, p.flags.AudioFormat, p.log)
	if err != nil {
		return nil, nil, err
	}

	speaker, err := audio.NewSpeaker(audio.SpeakerConfig{
		Cache:          cache,
		Provider:       provider,
		DisableEffects: p.flags.NoEffects,
		Logger:         log.Logger,
	})
	if err != nil {
		cache.Close()
		return nil, nil, err
	}

	return speaker, cache, nil
}

// buildProvider creates the configured provider. When the primary cannot
// be created, e.g. for a missing API key, the fallback is used alone.
func (p *Processor) buildProvider() (audio.Provider, error) {
	if p.provider != nil {
		return p.provider, nil
	}

	config := p.AudioConfig()
	provider, err := audio.Build(config, p.log)
	if err == nil {
		p.log.Info().Str("provider", provider.Name()).Msg("audio provider ready")
		return provider, nil
	}

	if config.Fallback == "" || config.Fallback == config.Provider {
		return nil, fmt.Errorf("failed to create audio provider: %w", err)
	}

	p.log.Warn().Err(err).
		Str("provider", config.Provider).
		Str("fallback", config.Fallback).
		Msg("primary audio provider unavailable, using fallback")

	config.Provider = config.Fallback
	config.Fallback = ""
	provider, ferr := audio.NewProvider(config)
	if ferr != nil {
		return nil, fmt.Errorf("failed to create audio provider: %w (fallback: %v)", err, ferr)
	}
	return provider, nil
}
