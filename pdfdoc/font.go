package pdfdoc

import "strings"

// monospaceIndicators are font-family substrings that identify code
// fonts. Matching is case-insensitive.
var monospaceIndicators = []string{
	"mono", "courier", "consolas", "menlo", "monaco", "inconsolata",
	"source code", "fira code", "jetbrains", "hack", "ubuntu mono",
	"dejavu sans mono", "liberation mono", "fixed", "terminal",
	"lucida console", "sf mono", "andale mono", "cascadia",
}

// isMonospaceFont reports whether a font family name looks like a
// monospace/code font.
func isMonospaceFont(fontName string) bool {
	lower := strings.ToLower(fontName)
	for _, indicator := range monospaceIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

func isBoldFont(fontName string) bool {
	return strings.Contains(strings.ToLower(fontName), "bold")
}

func isItalicFont(fontName string) bool {
	lower := strings.ToLower(fontName)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}
