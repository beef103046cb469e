// internal/util/util.go
package util

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// WriteFile writes data to path with 0o644 permissions, creating missing
// parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// WrapToWidth wraps text on word boundaries so no line exceeds width runes.
// Words longer than width are split. Blank lines are kept.
func WrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		var cur []rune
		flush := func() {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		for _, w := range words {
			word := []rune(w)
			if len(cur) > 0 && len(cur)+1+len(word) <= width {
				cur = append(append(cur, ' '), word...)
				continue
			}
			if len(cur) > 0 {
				flush()
			}
			for len(word) > width {
				cur = append(cur, word[:width]...)
				flush()
				word = word[width:]
			}
			cur = append(cur, word...)
		}
		if len(cur) > 0 {
			flush()
		}
	}
	return strings.Join(lines, "\n")
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
