package audio

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateWordText checks that text is something a speech engine can say
func ValidateWordText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			return nil
		}
	}

	return fmt.Errorf("text must contain at least one letter")
}
