package quiz

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidDifficulty is returned for difficulty values outside Easy..Hard.
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Difficulty controls how many distractor buttons are hidden per round
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties lists the levels in menu order
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// Valid reports whether d is one of the defined levels
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

// HideRatio is the fraction of the word set disabled each round
func (d Difficulty) HideRatio() float64 {
	switch d {
	case Easy:
		return 0.75
	case Medium:
		return 0.5
	default:
		return 0.0
	}
}

// HideCount returns how many distractors to hide for a set of total words.
// The ratio applies to the full set size, target included; the result
// never exceeds the number of distractors.
func HideCount(d Difficulty, total int) int {
	if total <= 1 {
		return 0
	}
	n := int(math.Floor(d.HideRatio() * float64(total)))
	return min(n, total-1)
}

// ParseDifficulty converts a case-insensitive level name
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties() {
		if strings.EqualFold(strings.TrimSpace(s), d.String()) {
			return d, nil
		}
	}
	return Easy, fmt.Errorf("%w: %q (want easy, medium or hard)", ErrInvalidDifficulty, s)
}
