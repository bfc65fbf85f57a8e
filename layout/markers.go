package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// bulletGlyphs are the characters that can appear alone as a bullet
// marker, or prefix a bullet list item.
var bulletGlyphs = []string{"•", "●", "○", "◦", "▪", "▸", "►", "-", "–", "—"}

// continuationArrow marks a line as a continuation of the previous
// logical line regardless of geometry.
const continuationArrow = "→"

// IsBulletMarker reports whether the trimmed text is exactly one bullet
// glyph with no content of its own.
func IsBulletMarker(text string) bool {
	for _, glyph := range bulletGlyphs {
		if text == glyph {
			return true
		}
	}
	return false
}

// NumberMarker reports whether the trimmed text is a standalone numbered
// list marker: digits followed by '.', ')' or ':' and nothing else. On a
// match it returns the numeral text.
func NumberMarker(text string) (string, bool) {
	if len(text) < 2 {
		return "", false
	}
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == 0 {
		return "", false
	}
	rest := text[i:]
	if rest != "." && rest != ")" && rest != ":" {
		return "", false
	}
	return text[:i], true
}

// IsArrowContinuation reports whether the trimmed text is a continuation
// arrow, alone or followed by content.
func IsArrowContinuation(text string) bool {
	return text == continuationArrow || strings.HasPrefix(text, continuationArrow+" ")
}

// StartsBulletItem reports whether the trimmed text begins a new bullet
// list item: a bullet glyph followed by whitespace and content.
func StartsBulletItem(text string) bool {
	for _, glyph := range bulletGlyphs {
		rest, ok := strings.CutPrefix(text, glyph)
		if !ok || rest == "" {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// StartsNumberedItem reports whether the trimmed text begins a new
// numbered list item: digits, then '.' or ')', then whitespace.
func StartsNumberedItem(text string) bool {
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(text) {
		return false
	}
	if text[i] != '.' && text[i] != ')' {
		return false
	}
	rest := text[i+1:]
	if rest == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsSpace(r)
}
