package words

import (
	"errors"
	"sort"
	"strings"
)

// ErrEmptySet is returned when a word list contains no usable words.
var ErrEmptySet = errors.New("word set is empty")

// Word is a single sight word shown as a button
type Word struct {
	Text       string
	ClickCount int
}

// Set is an ordered-by-text collection of words without duplicates
type Set struct {
	words []*Word
	index map[string]*Word
}

// NewSet builds a set from raw strings. Entries are trimmed, blanks are
// dropped and duplicates collapse into one word.
func NewSet(texts []string) (*Set, error) {
	s := &Set{index: make(map[string]*Word, len(texts))}

	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if _, exists := s.index[text]; exists {
			continue
		}
		w := &Word{Text: text}
		s.index[text] = w
		s.words = append(s.words, w)
	}

	if len(s.words) == 0 {
		return nil, ErrEmptySet
	}

	sort.Slice(s.words, func(i, j int) bool {
		return s.words[i].Text < s.words[j].Text
	})

	return s, nil
}

// Len returns the number of words
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// Words returns the words in display order. The slice is shared.
func (s *Set) Words() []*Word {
	if s == nil {
		return nil
	}
	return s.words
}

// Texts returns the word texts in display order
func (s *Set) Texts() []string {
	if s == nil {
		return nil
	}
	texts := make([]string, len(s.words))
	for i, w := range s.words {
		texts[i] = w.Text
	}
	return texts
}

// Lookup finds a word by its text
func (s *Set) Lookup(text string) (*Word, bool) {
	if s == nil {
		return nil, false
	}
	w, ok := s.index[text]
	return w, ok
}
