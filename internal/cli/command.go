package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/sightwords/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sightwords",
		Short: "Sight word flashcards and listening quiz for early readers",
		Long: `sightwords shows a board of sight words and reads them aloud.

Click a word to hear it. Start a game and the app says a word; the child
finds and clicks it. Correct answers grow a streak, wrong answers reset it.

Examples:
  sightwords                              # Launch with the default word list
  sightwords --theme Animals --difficulty hard
  sightwords --words-file space.txt       # Add a custom word list as a theme
  sightwords --list-themes                # Show available word themes
  sightwords --prefetch                   # Generate audio for every word and exit`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.sightwords.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: trace, debug, info, warn, error")

	// Game flags
	cmd.Flags().StringVarP(&flags.WordTheme, "theme", "t", flags.WordTheme, "Word theme to load at startup")
	cmd.Flags().StringVarP(&flags.Difficulty, "difficulty", "d", flags.Difficulty, "Difficulty: easy, medium, hard")
	cmd.Flags().StringVar(&flags.VisualTheme, "visual-theme", flags.VisualTheme, "Color scheme: Classic, Night, Ocean, Sunshine, Forest")
	cmd.Flags().StringSliceVarP(&flags.WordsFiles, "words-file", "w", nil, "Word list file (one word per line) added as a theme; repeatable")
	cmd.Flags().BoolVar(&flags.NoEffects, "no-effects", false, "Disable the correct and wrong feedback sounds")
	cmd.Flags().BoolVar(&flags.ListThemes, "list-themes", false, "List word themes and exit")

	// Audio flags
	cmd.Flags().StringVar(&flags.CacheDir, "cache-dir", flags.CacheDir, "Directory for cached audio")
	cmd.Flags().StringVarP(&flags.AudioFormat, "format", "f", flags.AudioFormat, "Audio format (mp3 or wav)")
	cmd.Flags().StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "Speech provider: openai, gemini, espeak, google")
	cmd.Flags().StringVar(&flags.FallbackProvider, "fallback-provider", flags.FallbackProvider, "Provider used when the primary fails (empty disables)")
	cmd.Flags().BoolVar(&flags.ClearCache, "clear-cache", false, "Delete all cached audio and exit")
	cmd.Flags().BoolVar(&flags.ListCache, "list-cache", false, "List cached words with the provider that spoke them and exit")
	cmd.Flags().BoolVar(&flags.ListVoices, "list-voices", false, "List espeak-ng voice variants and exit")
	cmd.Flags().BoolVar(&flags.Prefetch, "prefetch", false, "Generate audio for every word of every theme and exit")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0, may be ignored by gpt-4o-mini-tts)")
	cmd.Flags().StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Voice instructions for gpt-4o-mini-tts model")

	// Gemini flags
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini TTS model")
	cmd.Flags().StringVar(&flags.GeminiVoice, "gemini-voice", flags.GeminiVoice, "Gemini prebuilt voice name")

	// espeak-ng flags
	cmd.Flags().StringVar(&flags.ESpeakVoice, "espeak-voice", flags.ESpeakVoice, "espeak-ng voice: en-us, en-us+f3, en-gb, ...")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("game.theme", cmd.Flags().Lookup("theme"))
	viper.BindPFlag("game.difficulty", cmd.Flags().Lookup("difficulty"))
	viper.BindPFlag("game.words_files", cmd.Flags().Lookup("words-file"))
	viper.BindPFlag("ui.visual_theme", cmd.Flags().Lookup("visual-theme"))
	viper.BindPFlag("audio.no_effects", cmd.Flags().Lookup("no-effects"))
	viper.BindPFlag("audio.cache_dir", cmd.Flags().Lookup("cache-dir"))
	viper.BindPFlag("audio.format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("audio.provider", cmd.Flags().Lookup("audio-provider"))
	viper.BindPFlag("audio.fallback", cmd.Flags().Lookup("fallback-provider"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("audio.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("audio.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("audio.openai_instruction", cmd.Flags().Lookup("openai-instruction"))
	viper.BindPFlag("audio.gemini_model", cmd.Flags().Lookup("gemini-model"))
	viper.BindPFlag("audio.gemini_voice", cmd.Flags().Lookup("gemini-voice"))
	viper.BindPFlag("audio.espeak_voice", cmd.Flags().Lookup("espeak-voice"))
}

// InitConfig initializes viper configuration. A .env file in the working
// directory is loaded first so API keys can live there.
func InitConfig(cfgFile string) {
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".sightwords" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sightwords")
	}

	// Environment variables, e.g. SIGHTWORDS_GAME_THEME
	viper.SetEnvPrefix("SIGHTWORDS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("audio.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}

	return viper.GetString("audio.gemini_key")
}

// WordTheme is a custom theme entry in the config file:
//
//	word_themes:
//	  - name: Space
//	    words: [moon, star, rocket]
type WordTheme struct {
	Name  string   `mapstructure:"name"`
	Words []string `mapstructure:"words"`
}

// GetWordThemes returns the custom word themes from the config file.
// A list is used instead of a map because viper lowercases map keys.
func GetWordThemes() (map[string][]string, error) {
	var entries []WordTheme
	if err := viper.UnmarshalKey("word_themes", &entries); err != nil {
		return nil, fmt.Errorf("invalid word_themes in config: %w", err)
	}

	themes := make(map[string][]string, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("word_themes[%d]: name is required", i)
		}
		themes[name] = append(themes[name], e.Words...)
	}
	return themes, nil
}
