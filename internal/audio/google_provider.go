package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	googleTTSURL            = "https://translate.google.com/translate_tts"
	googleTTSRequestTimeout = 10 * time.Second
)

// GoogleProvider fetches speech from the Google Translate TTS endpoint.
// It needs no API key and always returns MP3.
type GoogleProvider struct {
	lang    string
	baseURL string
	client  *http.Client
}

// NewGoogleProvider creates a new Google Translate TTS provider
func NewGoogleProvider(config *Config) *GoogleProvider {
	lang := "en"
	if config != nil && config.GoogleLang != "" {
		lang = config.GoogleLang
	}
	return &GoogleProvider{
		lang:    lang,
		baseURL: googleTTSURL,
		client:  &http.Client{Timeout: googleTTSRequestTimeout},
	}
}

// GenerateAudio downloads the spoken word and stores it at outputFile
func (p *GoogleProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateWordText(text); err != nil {
		return err
	}

	word := preprocessWord(text)

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", word)
	params.Set("tl", p.lang)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(word)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := ensureDir(outputFile); err != nil {
		return err
	}

	if strings.ToLower(filepath.Ext(outputFile)) == ".mp3" {
		return writeBody(outputFile, resp.Body)
	}

	tempMP3 := strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + "_temp.mp3"
	if err := writeBody(tempMP3, resp.Body); err != nil {
		return err
	}
	defer os.Remove(tempMP3)

	return ConvertAudio(ctx, tempMP3, outputFile)
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return ProviderGoogle
}

// IsAvailable always succeeds; network errors surface on use
func (p *GoogleProvider) IsAvailable() error {
	return nil
}

func writeBody(path string, body io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, body)
	if err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if written == 0 {
		return fmt.Errorf("no audio data received")
	}
	return nil
}
