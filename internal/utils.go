package internal

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode"
)

// CacheKey derives a stable identifier for a word's synthesized audio.
// Format: sanitized(word)_md5(word)[:8]
func CacheKey(word string) string {
	word = strings.TrimSpace(word)

	hash := md5.Sum([]byte(word))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return SanitizeFilename(strings.ToLower(word)) + "_" + hashStr
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// isAlphaNumeric checks if a rune is alphanumeric
func isAlphaNumeric(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
