package quiz

import "time"

// Highlight is the transient feedback color of a word button
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightCorrect
	HighlightWrong
)

func (h Highlight) String() string {
	switch h {
	case HighlightCorrect:
		return "correct"
	case HighlightWrong:
		return "wrong"
	default:
		return "none"
	}
}

// Sound effect identifiers passed to Speaker.PlayEffect
const (
	EffectCorrect = "correct"
	EffectWrong   = "wrong"
)

// Board is the word button grid as seen by the engine
type Board interface {
	// Rebuild replaces all buttons with one per word, in order.
	Rebuild(words []string)
	SetEnabled(word string, enabled bool)
	// SetHighlight colors a button; HighlightNone restores the theme colors.
	SetHighlight(word string, h Highlight)
	// ResetAll enables every button and restores the theme colors.
	ResetAll()
	SetScoreText(text string)
}

// Speaker pronounces words and plays effects. Both calls return
// immediately; failures stay inside the implementation.
type Speaker interface {
	Speak(word string)
	PlayEffect(id string)
}

// Scheduler runs f once after d on the same event loop as the engine
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}
