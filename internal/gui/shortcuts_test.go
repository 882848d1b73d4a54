package gui

import (
	"testing"

	"codeberg.org/snonux/sightwords/internal/quiz"
)

func TestShortcutFor(t *testing.T) {
	tests := []struct {
		r    rune
		want shortcut
	}{
		{'g', shortcutToggleGame},
		{'G', shortcutToggleGame},
		{'r', shortcutRepeat},
		{' ', shortcutRepeat},
		{'1', shortcutEasy},
		{'2', shortcutMedium},
		{'3', shortcutHard},
		{'h', shortcutHelp},
		{'q', shortcutQuit},
		{'x', shortcutNone},
		{'4', shortcutNone},
	}

	for _, tt := range tests {
		if got := shortcutFor(tt.r); got != tt.want {
			t.Errorf("shortcutFor(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestShortcutDifficulty(t *testing.T) {
	tests := []struct {
		s      shortcut
		want   quiz.Difficulty
		wantOK bool
	}{
		{shortcutEasy, quiz.Easy, true},
		{shortcutMedium, quiz.Medium, true},
		{shortcutHard, quiz.Hard, true},
		{shortcutRepeat, 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.s.difficulty()
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("%v.difficulty() = %v, %v; want %v, %v", tt.s, got, ok, tt.want, tt.wantOK)
		}
	}
}
