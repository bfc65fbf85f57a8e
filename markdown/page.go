package markdown

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/pagedown/model"
)

// RenderPage assembles one page's Markdown: blocks outside tables, the
// tables themselves, and image references, ordered by vertical position
// and joined with blank lines, then run through the page cleanup pass.
// imageDir is where images were saved; when empty, image references are
// rendered as unresolved placeholders.
func (r *Renderer) RenderPage(content model.PageContent, imageDir string) string {
	type positioned struct {
		y  float64
		md string
	}
	var elements []positioned

	for _, block := range content.Blocks {
		if blockInsideTable(block, content.Tables) {
			continue
		}
		md := r.RenderBlock(block, content.BaseFontSize, content.Links)
		if strings.TrimSpace(md) == "" {
			continue
		}
		elements = append(elements, positioned{block.BBox.Y0, md})
	}

	for _, table := range content.Tables {
		if md := RenderTable(table); md != "" {
			elements = append(elements, positioned{table.BBox.Y0, md})
		}
	}

	for _, img := range content.Images {
		var md string
		if imageDir != "" {
			md = "![Image](" + filepath.Join(imageDir, img.Filename) + ")"
		} else {
			md = "![Image " + img.Filename + "]()"
		}
		elements = append(elements, positioned{img.BBox.Y0, md})
	}

	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].y < elements[j].y
	})

	lines := make([]string, len(elements))
	for i, el := range elements {
		lines[i] = el.md
	}

	return CleanupPage(strings.Join(lines, "\n\n"))
}

// blockInsideTable reports whether a block belongs to a table's interior.
// Membership is decided by the block's center point, not edge overlap,
// so paragraph text that merely grazes a table border stays in the
// normal flow.
func blockInsideTable(block model.Block, tables []model.Table) bool {
	center := block.BBox.Center()
	for _, table := range tables {
		if table.BBox.Contains(center) {
			return true
		}
	}
	return false
}

var (
	excessNewlinesRe = regexp.MustCompile(`\n{4,}`)
	headingSpacingRe = regexp.MustCompile(`(?m)^(#{1,6} .+)\n([^#\n])`)
)

// CleanupPage normalizes a page's rendered Markdown: collapses runs of
// four or more newlines down to two blank lines, guarantees a blank line
// after headings, collapses internal whitespace on ordinary lines while
// preserving list-nesting indentation, and strips trailing whitespace.
func CleanupPage(markdown string) string {
	markdown = excessNewlinesRe.ReplaceAllString(markdown, "\n\n\n")
	markdown = headingSpacingRe.ReplaceAllString(markdown, "$1\n\n$2")

	lines := strings.Split(markdown, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "```") && !strings.HasPrefix(line, "    ") {
			stripped := strings.TrimLeft(line, " \t")
			leading := ""
			if strings.HasPrefix(stripped, "-") || leadingNumDotRe.MatchString(stripped) {
				leading = line[:len(line)-len(stripped)]
			}
			line = leading + normalizeSpace(stripped)
		}
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
