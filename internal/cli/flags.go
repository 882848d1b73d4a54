package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	LogLevel   string
	ListThemes bool
	ClearCache bool
	ListCache  bool
	ListVoices bool
	Prefetch   bool

	// Game flags
	WordTheme   string
	Difficulty  string
	VisualTheme string
	WordsFiles  []string
	NoEffects   bool

	// Audio flags
	CacheDir         string
	AudioFormat      string
	AudioProvider    string
	FallbackProvider string

	// OpenAI flags
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// Gemini flags
	GeminiModel string
	GeminiVoice string

	// espeak-ng flags
	ESpeakVoice string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogLevel:         "info",
		WordTheme:        "High Frequency",
		Difficulty:       "easy",
		VisualTheme:      "Classic",
		CacheDir:         DefaultCacheDir(),
		AudioFormat:      "mp3",
		AudioProvider:    "openai",
		FallbackProvider: "espeak",
		OpenAIModel:      "gpt-4o-mini-tts",
		OpenAIVoice:      "nova",
		OpenAISpeed:      0.9,
		GeminiModel:      "gemini-2.5-flash-preview-tts",
		GeminiVoice:      "Kore",
		ESpeakVoice:      "en-us",
	}
}

// DefaultCacheDir returns the XDG cache location for synthesized audio
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "sightwords", "audio")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "sightwords", "audio")
}

// ApplyConfig overwrites the flag values with the merged viper view, so
// config file and environment values apply wherever no flag was given.
func (f *Flags) ApplyConfig() {
	f.LogLevel = viper.GetString("log.level")
	f.WordTheme = viper.GetString("game.theme")
	f.Difficulty = viper.GetString("game.difficulty")
	f.VisualTheme = viper.GetString("ui.visual_theme")
	f.WordsFiles = viper.GetStringSlice("game.words_files")
	f.NoEffects = viper.GetBool("audio.no_effects")
	f.CacheDir = viper.GetString("audio.cache_dir")
	f.AudioFormat = viper.GetString("audio.format")
	f.AudioProvider = viper.GetString("audio.provider")
	f.FallbackProvider = viper.GetString("audio.fallback")
	f.OpenAIModel = viper.GetString("audio.openai_model")
	f.OpenAIVoice = viper.GetString("audio.openai_voice")
	f.OpenAISpeed = viper.GetFloat64("audio.openai_speed")
	f.OpenAIInstruction = viper.GetString("audio.openai_instruction")
	f.GeminiModel = viper.GetString("audio.gemini_model")
	f.GeminiVoice = viper.GetString("audio.gemini_voice")
	f.ESpeakVoice = viper.GetString("audio.espeak_voice")
}
