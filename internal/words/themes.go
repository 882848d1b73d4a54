package words

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultTheme is the theme loaded at startup when nothing else is chosen
const DefaultTheme = "High Frequency"

// ErrUnknownTheme is returned when a theme name is not in the catalog.
var ErrUnknownTheme = errors.New("unknown word theme")

var builtinThemes = map[string][]string{
	"High Frequency": {
		"the", "and", "go", "had", "he", "see", "has", "you", "we", "of",
		"am", "at", "to", "as", "have", "in", "is", "it", "can", "his",
		"on", "did", "girl", "for", "up", "but", "all", "look", "with",
		"her", "what", "was", "were",
	},
	"Animals": {
		"cat", "dog", "pig", "cow", "hen", "fox", "owl", "bee", "ant",
		"bat", "fish", "frog", "duck", "goat", "lion", "bear", "deer",
		"horse", "sheep", "mouse",
	},
	"Colors": {
		"red", "blue", "green", "yellow", "orange", "purple", "pink",
		"brown", "black", "white", "gray", "gold",
	},
	"Family": {
		"mom", "dad", "baby", "sister", "brother", "aunt", "uncle",
		"grandma", "grandpa", "cousin", "family", "home",
	},
	"Numbers": {
		"one", "two", "three", "four", "five", "six", "seven", "eight",
		"nine", "ten", "eleven", "twelve",
	},
	"Nature": {
		"sun", "moon", "star", "tree", "leaf", "rain", "snow", "wind",
		"sky", "sea", "hill", "rock", "sand", "cloud", "flower",
	},
}

// Catalog maps theme names to their word lists
type Catalog struct {
	themes map[string][]string
}

// NewCatalog returns a catalog preloaded with the built-in themes
func NewCatalog() *Catalog {
	c := &Catalog{themes: make(map[string][]string, len(builtinThemes))}
	for name, list := range builtinThemes {
		c.themes[name] = append([]string(nil), list...)
	}
	return c
}

// Add registers a theme, replacing any theme with the same name.
func (c *Catalog) Add(name string, texts []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("theme name cannot be empty")
	}
	if _, err := NewSet(texts); err != nil {
		return fmt.Errorf("theme %q: %w", name, err)
	}
	c.themes[name] = append([]string(nil), texts...)
	return nil
}

// Merge adds every theme in the map. It stops at the first invalid theme.
func (c *Catalog) Merge(themes map[string][]string) error {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := c.Add(name, themes[name]); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the theme names, the default theme first and the rest sorted
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.themes))
	for name := range c.themes {
		if name != DefaultTheme {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if _, ok := c.themes[DefaultTheme]; ok {
		names = append([]string{DefaultTheme}, names...)
	}
	return names
}

// Has reports whether a theme exists
func (c *Catalog) Has(name string) bool {
	_, ok := c.themes[name]
	return ok
}

// Set builds a fresh word set for the named theme. Every call returns new
// Word values so click counters start from zero on each theme load.
func (c *Catalog) Set(name string) (*Set, error) {
	list, ok := c.themes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	return NewSet(list)
}
