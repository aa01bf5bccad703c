package render

import (
	"strings"

	"golang.org/x/image/math/fixed"
)

// Ellipsis marks a quote cut short by the line limit.
const Ellipsis = "..."

// MeasureFunc returns the rendered advance of s.
type MeasureFunc func(s string) fixed.Int26_6

// Wrap splits text into lines greedily: words are appended to the current line
// while it stays within maxWidth, otherwise a new line starts. A word wider than
// maxWidth on its own is broken between runes.
func Wrap(text string, maxWidth fixed.Int26_6, measure MeasureFunc) []string {
	var lines []string
	current := ""

	for _, word := range strings.Fields(text) {
		for _, piece := range splitLong(word, maxWidth, measure) {
			if current == "" {
				current = piece
				continue
			}
			if candidate := current + " " + piece; measure(candidate) <= maxWidth {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = piece
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	return lines
}

// Limit keeps at most maxLines lines. When lines are dropped the last kept line
// is shortened until it fits maxWidth together with Ellipsis.
func Limit(lines []string, maxLines int, maxWidth fixed.Int26_6, measure MeasureFunc) []string {
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}

	out := append([]string(nil), lines[:maxLines]...)
	last := []rune(out[maxLines-1])
	for len(last) > 0 && measure(string(last)+Ellipsis) > maxWidth {
		last = last[:len(last)-1]
	}
	out[maxLines-1] = strings.TrimRight(string(last), " ") + Ellipsis

	return out
}

func splitLong(word string, maxWidth fixed.Int26_6, measure MeasureFunc) []string {
	if measure(word) <= maxWidth {
		return []string{word}
	}

	var parts []string
	var current []rune
	for _, r := range word {
		if len(current) > 0 && measure(string(current)+string(r)) > maxWidth {
			parts = append(parts, string(current))
			current = current[:0]
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		parts = append(parts, string(current))
	}

	return parts
}
