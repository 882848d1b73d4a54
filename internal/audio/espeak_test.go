package audio

import (
	"slices"
	"testing"
)

func TestNormalizeESpeakConfig(t *testing.T) {
	tests := []struct {
		name  string
		input *ESpeakConfig
		want  ESpeakConfig
	}{
		{
			name:  "nil uses defaults",
			input: nil,
			want:  ESpeakConfig{Voice: "en-us", Speed: 130, Pitch: 50, Amplitude: 100},
		},
		{
			name:  "zero fields filled",
			input: &ESpeakConfig{Voice: "en-gb"},
			want:  ESpeakConfig{Voice: "en-gb", Speed: 130, Pitch: 50, Amplitude: 100},
		},
		{
			name:  "values clamped",
			input: &ESpeakConfig{Voice: "en-us", Speed: 1000, Pitch: 150, Amplitude: 500},
			want:  ESpeakConfig{Voice: "en-us", Speed: 450, Pitch: 99, Amplitude: 200},
		},
		{
			name:  "slow speed raised",
			input: &ESpeakConfig{Speed: 10},
			want:  ESpeakConfig{Voice: "en-us", Speed: 80, Pitch: 50, Amplitude: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeESpeakConfig(tt.input)
			if *got != tt.want {
				t.Errorf("normalizeESpeakConfig() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestNormalizeESpeakConfigDoesNotMutateInput(t *testing.T) {
	in := &ESpeakConfig{Speed: 5}
	normalizeESpeakConfig(in)
	if in.Speed != 5 {
		t.Errorf("input mutated: Speed = %d", in.Speed)
	}
}

func TestESpeakArgs(t *testing.T) {
	e := &ESpeak{config: normalizeESpeakConfig(&ESpeakConfig{Voice: "en-us+f3", Speed: 120})}

	got := e.args("said", "/tmp/said.wav")
	want := []string{"-v", "en-us+f3", "-s", "120", "-p", "50", "-a", "100", "-w", "/tmp/said.wav", "said"}

	if !slices.Equal(got, want) {
		t.Errorf("args() = %v, want %v", got, want)
	}
}

func TestListVoices(t *testing.T) {
	voices := ListVoices()

	if len(voices) == 0 {
		t.Fatal("ListVoices() returned no voices")
	}
	if voices[0] != "en-us" {
		t.Errorf("first voice = %s, want en-us", voices[0])
	}
}
