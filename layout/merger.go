package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/pagedown/model"
)

const (
	// markerJoinSlack is the extra vertical gap allowed between a
	// standalone list marker and its content line.
	markerJoinSlack = 5.0

	// listSizeRatio is the minimum smaller/larger font-size ratio for a
	// line to continue a list item. Looser than paragraphs: markers and
	// labels often differ in size from the item body.
	listSizeRatio = 0.5

	// paragraphSizeRatio is the minimum font-size ratio for paragraph
	// continuation; paragraph flow expects uniform type size.
	paragraphSizeRatio = 0.8

	// maxLeftEdgeDiff is the maximum left-edge difference for paragraph
	// continuation. Catches wrapped lines, rejects unrelated columns.
	maxLeftEdgeDiff = 50.0

	// shortBoldLimit is the text length under which a bold line followed
	// by non-bold text is treated as a heading and never merged.
	shortBoldLimit = 100
)

// MergerConfig holds configuration for block merging.
type MergerConfig struct {
	// LineMergeThreshold is the vertical gap, beyond one line height,
	// still accepted when fusing consecutive lines.
	// Default: 5 layout units.
	LineMergeThreshold float64
}

// DefaultMergerConfig returns the default merger configuration.
func DefaultMergerConfig() MergerConfig {
	return MergerConfig{LineMergeThreshold: 5.0}
}

// Merger fuses geometrically ordered line fragments into logical blocks:
// paragraphs, bulleted list items, and numbered list items. Standalone
// markers are joined with their content line, wrapped lines are merged
// with hyphenation repair, and lone markers with no content are dropped.
type Merger struct {
	config MergerConfig
}

// NewMerger creates a merger with default configuration.
func NewMerger() *Merger {
	return &Merger{config: DefaultMergerConfig()}
}

// NewMergerWithConfig creates a merger with the given configuration.
func NewMergerWithConfig(config MergerConfig) *Merger {
	return &Merger{config: config}
}

// Merge walks the page's fragments in (top-y, then x) order and returns
// the fused blocks. The input is not modified.
func (m *Merger) Merge(fragments []model.Fragment) []model.Block {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]model.Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].BBox.Y0 != sorted[j].BBox.Y0 {
			return sorted[i].BBox.Y0 < sorted[j].BBox.Y0
		}
		return sorted[i].BBox.X0 < sorted[j].BBox.X0
	})

	var blocks []model.Block
	i := 0
	for i < len(sorted) {
		current := sorted[i]
		text := strings.TrimSpace(current.Text)

		if IsBulletMarker(text) {
			if block, consumed, ok := m.fuseMarkerItem(sorted, i, "-"); ok {
				blocks = append(blocks, block)
				i += consumed
				continue
			}
			// Lone bullet with no content produces nothing.
			i++
			continue
		}

		if num, ok := NumberMarker(text); ok {
			if block, consumed, fused := m.fuseMarkerItem(sorted, i, num+"."); fused {
				blocks = append(blocks, block)
				i += consumed
				continue
			}
			i++
			continue
		}

		block, consumed := m.mergeParagraph(sorted, i)
		blocks = append(blocks, block)
		i += consumed
	}

	return blocks
}

// fuseMarkerItem joins the standalone marker at index i with the next
// fragment as its content, then keeps appending qualifying continuation
// lines. The marker donates its position and indent level; the first
// content fragment donates font size and style.
func (m *Merger) fuseMarkerItem(fragments []model.Fragment, i int, marker string) (model.Block, int, bool) {
	if i+1 >= len(fragments) {
		return model.Block{}, 0, false
	}
	markerFrag := fragments[i]
	content := fragments[i+1]
	if !m.canJoinMarker(markerFrag, content) {
		return model.Block{}, 0, false
	}

	text := marker + " " + strings.TrimSpace(content.Text)
	bbox := markerFrag.BBox.Union(content.BBox)
	consumed := 2

	for j := i + 2; j < len(fragments); j++ {
		candidate := fragments[j]
		if !m.canContinueListItem(content, candidate, fragments[j-1]) {
			break
		}
		text = joinLines(text, strings.TrimSpace(candidate.Text))
		bbox = bbox.Union(candidate.BBox)
		consumed++
	}

	return model.Block{
		Text:        text,
		FontSize:    content.FontSize,
		FontName:    content.FontName,
		Bold:        content.Bold,
		Italic:      content.Italic,
		Monospace:   content.Monospace,
		BBox:        bbox,
		Page:        markerFrag.Page,
		IndentLevel: markerFrag.IndentLevel,
	}, consumed, true
}

// mergeParagraph fuses the fragment at index i with subsequent fragments
// that qualify as paragraph continuation.
func (m *Merger) mergeParagraph(fragments []model.Fragment, i int) (model.Block, int) {
	first := fragments[i]
	text := strings.TrimSpace(first.Text)
	bbox := first.BBox
	consumed := 1

	for j := i + 1; j < len(fragments); j++ {
		candidate := fragments[j]
		if !m.shouldMergeLines(first, candidate, fragments[j-1]) {
			break
		}
		text = joinLines(text, strings.TrimSpace(candidate.Text))
		bbox = bbox.Union(candidate.BBox)
		consumed++
	}

	return model.Block{
		Text:        text,
		FontSize:    first.FontSize,
		FontName:    first.FontName,
		Bold:        first.Bold,
		Italic:      first.Italic,
		Monospace:   first.Monospace,
		BBox:        bbox,
		Page:        first.Page,
		IndentLevel: first.IndentLevel,
	}, consumed
}

// joinLines appends the next line to the running text. A trailing hyphen
// means the word was split by line wrapping: the hyphen is dropped and
// the halves concatenated directly.
func joinLines(text, next string) string {
	if strings.HasSuffix(text, "-") {
		return text[:len(text)-1] + next
	}
	return text + " " + next
}

// canJoinMarker reports whether a standalone marker and a content
// fragment belong to the same list item. They are usually on the same
// visual line, so the vertical gap from the marker's bottom to the
// content's top must stay within the marker's own line height plus a
// small slack.
func (m *Merger) canJoinMarker(marker, content model.Fragment) bool {
	if marker.Page != content.Page {
		return false
	}
	gap := content.BBox.Y0 - marker.BBox.Y1
	return gap <= marker.BBox.Height()+markerJoinSlack
}

// canContinueListItem reports whether candidate extends an already
// started list item whose first content fragment is first.
func (m *Merger) canContinueListItem(first, candidate, prev model.Fragment) bool {
	if first.Page != candidate.Page {
		return false
	}

	text := strings.TrimSpace(candidate.Text)
	if strings.HasPrefix(text, "#") {
		return false
	}
	if IsArrowContinuation(text) {
		return true
	}
	if IsBulletMarker(text) {
		return false
	}
	if _, ok := NumberMarker(text); ok {
		return false
	}
	if StartsBulletItem(text) || StartsNumberedItem(text) {
		return false
	}

	gap := candidate.BBox.Y0 - prev.BBox.Y1
	if gap > prev.BBox.Height()+m.config.LineMergeThreshold {
		return false
	}

	return sizeRatio(first.FontSize, candidate.FontSize) >= listSizeRatio
}

// shouldMergeLines reports whether candidate continues the paragraph
// anchored at first. prev is the most recently merged fragment.
func (m *Merger) shouldMergeLines(first, candidate, prev model.Fragment) bool {
	if first.Page != candidate.Page {
		return false
	}

	firstText := strings.TrimSpace(first.Text)
	candidateText := strings.TrimSpace(candidate.Text)

	if strings.HasPrefix(firstText, "#") || strings.HasPrefix(candidateText, "#") {
		return false
	}

	// A continuation arrow forces the merge in either direction.
	if IsArrowContinuation(candidateText) {
		return true
	}
	if strings.HasSuffix(firstText, continuationArrow) {
		return true
	}

	if IsBulletMarker(candidateText) {
		return false
	}
	if _, ok := NumberMarker(candidateText); ok {
		return false
	}
	if StartsBulletItem(candidateText) || StartsNumberedItem(candidateText) {
		return false
	}

	gap := candidate.BBox.Y0 - prev.BBox.Y1
	if gap > prev.BBox.Height()+m.config.LineMergeThreshold {
		return false
	}

	if sizeRatio(first.FontSize, candidate.FontSize) < paragraphSizeRatio {
		return false
	}

	if abs(first.BBox.X0-candidate.BBox.X0) > maxLeftEdgeDiff {
		return false
	}

	// A short bold line followed by non-bold text is a heading with its
	// body text; keep them separate.
	if first.Bold != candidate.Bold {
		if first.Bold && len(firstText) < shortBoldLimit {
			return false
		}
	}

	return true
}

func sizeRatio(a, b float64) float64 {
	larger := a
	smaller := b
	if b > a {
		larger, smaller = b, a
	}
	if larger <= 0 {
		return 1
	}
	return smaller / larger
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
