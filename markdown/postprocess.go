package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// orphanLookahead is how many lines ahead the numbering repair searches
// for the next numbered item. Deliberately narrow; widening it trades
// missed repairs for false positives on legitimately unnumbered bold
// paragraphs.
const orphanLookahead = 15

var (
	trailingCommaDotRe = regexp.MustCompile(`(?m)\s*,\s*\.\s*$`)
	commaRunDotRe      = regexp.MustCompile(`\s*,\s*,\s*,\s*\.`)
	numberedLineRe     = regexp.MustCompile(`^(\d+)\.\s+`)
)

// PostProcess applies document-level cleanup after all pages are joined:
// orphaned punctuation left by extraction splitting punctuation runs, and
// numbered-list markers lost to page breaks.
func PostProcess(markdown string) string {
	markdown = trailingCommaDotRe.ReplaceAllString(markdown, ".")
	markdown = commaRunDotRe.ReplaceAllString(markdown, ".")
	return fixOrphanedNumbers(markdown)
}

// fixOrphanedNumbers repairs numbered items whose marker was lost at a
// page boundary. While a numbering context is active, a fully
// bold-wrapped line with no number is suspect: if a numbered line within
// the lookahead window skips past last+1, the missing number is
// reinserted before the bold line and the sequence continues from there.
func fixOrphanedNumbers(markdown string) string {
	lines := strings.Split(markdown, "\n")
	result := make([]string, 0, len(lines))
	lastNumber := 0

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		stripped := strings.TrimSpace(line)

		if m := numberedLineRe.FindStringSubmatch(stripped); m != nil {
			lastNumber, _ = strconv.Atoi(m[1])
			result = append(result, line)
			continue
		}

		if lastNumber > 0 && len(stripped) > 4 &&
			strings.HasPrefix(stripped, "**") && strings.HasSuffix(stripped, "**") {
			expected := lastNumber + 1
			handled := false

			limit := i + orphanLookahead
			if limit > len(lines) {
				limit = len(lines)
			}
			for j := i + 1; j < limit; j++ {
				m := numberedLineRe.FindStringSubmatch(strings.TrimSpace(lines[j]))
				if m == nil {
					continue
				}
				future, _ := strconv.Atoi(m[1])
				if future > expected {
					content := stripped[2 : len(stripped)-2]
					result = append(result, fmt.Sprintf("%d. **%s**", expected, content))
					lastNumber = expected
					handled = true
				}
				break
			}

			if !handled {
				result = append(result, line)
			}
			continue
		}

		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
