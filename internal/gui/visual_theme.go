package gui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/samber/lo"

	"codeberg.org/snonux/sightwords/internal/quiz"
)

// DefaultVisualTheme is used when none is configured
const DefaultVisualTheme = "Classic"

// VisualTheme is a named color scheme for the window and word buttons
type VisualTheme struct {
	Name       string
	Background color.NRGBA
	ButtonBG   color.NRGBA
	ButtonFG   color.NRGBA
}

// Highlight colors shared by every visual theme
var (
	CorrectBG  = color.NRGBA{R: 0x2e, G: 0xb8, B: 0x4f, A: 0xff}
	WrongBG    = color.NRGBA{R: 0xe0, G: 0x3c, B: 0x31, A: 0xff}
	FeedbackFG = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

var visualThemes = []VisualTheme{
	{
		Name:       "Classic",
		Background: color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff},
		ButtonBG:   color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		ButtonFG:   color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff},
	},
	{
		Name:       "Night",
		Background: color.NRGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff},
		ButtonBG:   color.NRGBA{R: 0x31, G: 0x32, B: 0x44, A: 0xff},
		ButtonFG:   color.NRGBA{R: 0xf5, G: 0xe0, B: 0xdc, A: 0xff},
	},
	{
		Name:       "Ocean",
		Background: color.NRGBA{R: 0xd6, G: 0xee, B: 0xf8, A: 0xff},
		ButtonBG:   color.NRGBA{R: 0x1e, G: 0x6f, B: 0xa8, A: 0xff},
		ButtonFG:   color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	},
	{
		Name:       "Sunshine",
		Background: color.NRGBA{R: 0xff, G: 0xf6, B: 0xd5, A: 0xff},
		ButtonBG:   color.NRGBA{R: 0xff, G: 0xc8, B: 0x3d, A: 0xff},
		ButtonFG:   color.NRGBA{R: 0x3d, G: 0x2c, B: 0x00, A: 0xff},
	},
	{
		Name:       "Forest",
		Background: color.NRGBA{R: 0xe3, G: 0xf0, B: 0xdc, A: 0xff},
		ButtonBG:   color.NRGBA{R: 0x3b, G: 0x6e, B: 0x3a, A: 0xff},
		ButtonFG:   color.NRGBA{R: 0xf4, G: 0xf1, B: 0xde, A: 0xff},
	},
}

// VisualThemeNames returns the theme names in menu order
func VisualThemeNames() []string {
	return lo.Map(visualThemes, func(t VisualTheme, _ int) string { return t.Name })
}

// LookupVisualTheme finds a theme by name, ignoring case
func LookupVisualTheme(name string) (VisualTheme, error) {
	t, ok := lo.Find(visualThemes, func(t VisualTheme) bool {
		return strings.EqualFold(t.Name, strings.TrimSpace(name))
	})
	if !ok {
		return VisualTheme{}, fmt.Errorf("unknown visual theme %q (available: %s)", name, strings.Join(VisualThemeNames(), ", "))
	}
	return t, nil
}

// ButtonColors returns the background and text color for a button in
// the given highlight state.
func (t VisualTheme) ButtonColors(h quiz.Highlight) (bg, fg color.NRGBA) {
	switch h {
	case quiz.HighlightCorrect:
		return CorrectBG, FeedbackFG
	case quiz.HighlightWrong:
		return WrongBG, FeedbackFG
	default:
		return t.ButtonBG, t.ButtonFG
	}
}
