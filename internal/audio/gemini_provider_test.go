package audio

import (
	"bytes"
	"encoding/binary"
	"testing"

	"google.golang.org/genai"
)

func TestWriteWAVHeader(t *testing.T) {
	pcm := []byte{1, 2, 3, 4, 5, 6}

	var buf bytes.Buffer
	if err := writeWAV(&buf, pcm, 24000, 1, 16); err != nil {
		t.Fatalf("writeWAV() error = %v", err)
	}

	data := buf.Bytes()
	if len(data) != 44+len(pcm) {
		t.Fatalf("length = %d, want %d", len(data), 44+len(pcm))
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" || string(data[12:16]) != "fmt " || string(data[36:40]) != "data" {
		t.Errorf("bad chunk ids: %q", data[:40])
	}

	le := binary.LittleEndian
	if got := le.Uint32(data[4:8]); got != uint32(36+len(pcm)) {
		t.Errorf("RIFF size = %d", got)
	}
	if got := le.Uint32(data[24:28]); got != 24000 {
		t.Errorf("sample rate = %d", got)
	}
	if got := le.Uint32(data[28:32]); got != 48000 {
		t.Errorf("byte rate = %d", got)
	}
	if got := le.Uint16(data[32:34]); got != 2 {
		t.Errorf("block align = %d", got)
	}
	if got := le.Uint32(data[40:44]); got != uint32(len(pcm)) {
		t.Errorf("data size = %d", got)
	}
	if !bytes.Equal(data[44:], pcm) {
		t.Error("PCM payload not copied")
	}
}

func TestExtractPCM(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "ignored"},
						{InlineData: &genai.Blob{Data: []byte{1, 2}, MIMEType: "audio/L16;rate=24000"}},
						{InlineData: &genai.Blob{Data: []byte{3}}},
					},
				},
			},
			nil,
		},
	}

	if got := extractPCM(resp); !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("extractPCM() = %v", got)
	}
	if got := extractPCM(nil); got != nil {
		t.Errorf("extractPCM(nil) = %v", got)
	}
}

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(&Config{}); err == nil {
		t.Error("expected error without API key")
	}

	p, err := NewGeminiProvider(&Config{GeminiKey: "k"})
	if err != nil {
		t.Fatalf("NewGeminiProvider() error = %v", err)
	}
	if err := p.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() error = %v", err)
	}
}
