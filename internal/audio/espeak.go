package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ESpeakConfig holds configuration for espeak-ng audio generation
type ESpeakConfig struct {
	Voice     string // Voice variant (e.g., "en-us", "en-us+f3", "en-gb")
	Speed     int    // Speech speed in words per minute
	Pitch     int    // Pitch adjustment, 0 to 99 (default: 50)
	Amplitude int    // Volume/amplitude, 0 to 200 (default: 100)
}

// DefaultESpeakConfig returns a slow, clear English voice
func DefaultESpeakConfig() *ESpeakConfig {
	return &ESpeakConfig{
		Voice:     "en-us",
		Speed:     130,
		Pitch:     50,
		Amplitude: 100,
	}
}

// ESpeak provides an interface to the espeak-ng text-to-speech engine
type ESpeak struct {
	config *ESpeakConfig
}

// NewESpeak creates a new ESpeak instance with the given configuration
func NewESpeak(config *ESpeakConfig) (*ESpeak, error) {
	if err := checkESpeakInstalled(); err != nil {
		return nil, err
	}

	return &ESpeak{config: normalizeESpeakConfig(config)}, nil
}

// normalizeESpeakConfig fills unset fields with defaults and clamps the rest
func normalizeESpeakConfig(config *ESpeakConfig) *ESpeakConfig {
	defaults := DefaultESpeakConfig()
	if config == nil {
		return defaults
	}

	c := *config
	if c.Voice == "" {
		c.Voice = defaults.Voice
	}
	if c.Speed == 0 {
		c.Speed = defaults.Speed
	}
	if c.Pitch == 0 {
		c.Pitch = defaults.Pitch
	}
	if c.Amplitude == 0 {
		c.Amplitude = defaults.Amplitude
	}

	c.Speed = min(max(c.Speed, 80), 450)
	c.Pitch = min(max(c.Pitch, 0), 99)
	c.Amplitude = min(max(c.Amplitude, 0), 200)
	return &c
}

// args builds the espeak-ng command line for writing text to outputFile
func (e *ESpeak) args(text, outputFile string) []string {
	return []string{
		"-v", e.config.Voice,
		"-s", strconv.Itoa(e.config.Speed),
		"-p", strconv.Itoa(e.config.Pitch),
		"-a", strconv.Itoa(e.config.Amplitude),
		"-w", outputFile,
		text,
	}
}

// GenerateWAV writes text as a WAV file
func (e *ESpeak) GenerateWAV(ctx context.Context, text string, outputFile string) error {
	if text == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if err := ensureDir(outputFile); err != nil {
		return err
	}

	output, err := exec.CommandContext(ctx, "espeak-ng", e.args(text, outputFile)...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

// Generate writes text to outputFile, converting through ffmpeg unless
// the target is WAV.
func (e *ESpeak) Generate(ctx context.Context, text string, outputFile string) error {
	if strings.ToLower(filepath.Ext(outputFile)) == ".wav" {
		return e.GenerateWAV(ctx, text, outputFile)
	}

	tempWAV := strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + "_temp.wav"
	if err := e.GenerateWAV(ctx, text, tempWAV); err != nil {
		return err
	}
	defer os.Remove(tempWAV)

	return ConvertAudio(ctx, tempWAV, outputFile)
}

// checkESpeakInstalled verifies that espeak-ng is available on the system
func checkESpeakInstalled() error {
	if _, err := exec.LookPath("espeak-ng"); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// ListVoices returns useful English voice variants
func ListVoices() []string {
	return []string{
		"en-us",    // American English
		"en-us+f3", // American English, female
		"en-us+m3", // American English, male
		"en-gb",    // British English
		"en-gb+f3", // British English, female
	}
}

// ConvertAudio converts between audio formats using ffmpeg; the output
// format follows the destination's extension.
func ConvertAudio(ctx context.Context, src, dst string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}

	output, err := exec.CommandContext(ctx, "ffmpeg", "-loglevel", "error", "-i", src, "-y", dst).CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}
