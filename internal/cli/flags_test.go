package cli

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"LogLevel", flags.LogLevel, "info"},
		{"WordTheme", flags.WordTheme, "High Frequency"},
		{"Difficulty", flags.Difficulty, "easy"},
		{"VisualTheme", flags.VisualTheme, "Classic"},
		{"AudioFormat", flags.AudioFormat, "mp3"},
		{"AudioProvider", flags.AudioProvider, "openai"},
		{"FallbackProvider", flags.FallbackProvider, "espeak"},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini-tts"},
		{"OpenAIVoice", flags.OpenAIVoice, "nova"},
		{"OpenAISpeed", flags.OpenAISpeed, 0.9},
		{"GeminiVoice", flags.GeminiVoice, "Kore"},
		{"ESpeakVoice", flags.ESpeakVoice, "en-us"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"ListThemes", flags.ListThemes},
		{"ClearCache", flags.ClearCache},
		{"ListCache", flags.ListCache},
		{"ListVoices", flags.ListVoices},
		{"Prefetch", flags.Prefetch},
		{"NoEffects", flags.NoEffects},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	if flags.CfgFile != "" || flags.OpenAIInstruction != "" || len(flags.WordsFiles) != 0 {
		t.Errorf("expected empty CfgFile, OpenAIInstruction and WordsFiles, got %+v", flags)
	}
}

func TestDefaultCacheDir(t *testing.T) {
	dir := DefaultCacheDir()
	if !strings.HasSuffix(dir, "sightwords/audio") && !strings.HasSuffix(dir, `sightwords\audio`) {
		t.Errorf("DefaultCacheDir() = %s", dir)
	}
}

func TestApplyConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	viper.Reset()

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	viper.SetConfigType("yaml")
	err := viper.ReadConfig(strings.NewReader(`game:
  theme: Animals
ui:
  visual_theme: Night
audio:
  gemini_voice: Puck
`))
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}

	// Explicit flags win over config
	cmd.Flags().Set("difficulty", "hard")
	cmd.Flags().Set("visual-theme", "Ocean")

	flags.ApplyConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"WordTheme", flags.WordTheme, "Animals"},
		{"GeminiVoice", flags.GeminiVoice, "Puck"},
		{"Difficulty", flags.Difficulty, "hard"},
		{"VisualTheme", flags.VisualTheme, "Ocean"},
		{"AudioProvider", flags.AudioProvider, "openai"},
		{"OpenAISpeed", flags.OpenAISpeed, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestFlagsStructure(t *testing.T) {
	// Test that Flags struct has all expected fields
	flags := &Flags{}
	flagsType := reflect.TypeOf(*flags)

	expectedFields := []string{
		"CfgFile", "LogLevel", "ListThemes", "ClearCache", "ListCache", "ListVoices", "Prefetch",
		"WordTheme", "Difficulty", "VisualTheme", "WordsFiles", "NoEffects",
		"CacheDir", "AudioFormat", "AudioProvider", "FallbackProvider",
		"OpenAIModel", "OpenAIVoice", "OpenAISpeed", "OpenAIInstruction",
		"GeminiModel", "GeminiVoice", "ESpeakVoice",
	}

	for _, fieldName := range expectedFields {
		t.Run("has_field_"+fieldName, func(t *testing.T) {
			if _, ok := flagsType.FieldByName(fieldName); !ok {
				t.Errorf("Flags struct missing field: %s", fieldName)
			}
		})
	}
}
