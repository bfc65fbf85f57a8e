package markdown

import (
	"strings"

	"github.com/tsawler/pagedown/model"
)

// applyLinks substitutes markdown link syntax into a block's text when
// the block's box overlaps a link region. Links are tried in page order;
// for each overlapping link three rules apply in priority order:
//
//  1. the whole text equals the link text after whitespace
//     normalization: wrap the whole text;
//  2. the link text occurs literally inside the block text: replace
//     just that occurrence;
//  3. the normalized link text occurs inside the normalized block
//     text: wrap the whole text.
//
// The first link for which any rule fires wins; a block is linked at
// most once.
func applyLinks(text string, bbox model.BBox, links []model.Link) string {
	textNorm := normalizeSpace(text)

	for _, link := range links {
		if !bbox.Intersects(link.BBox) {
			continue
		}
		linkNorm := normalizeSpace(link.Text)

		if textNorm == linkNorm {
			return "[" + text + "](" + link.URL + ")"
		}
		if strings.Contains(text, link.Text) {
			return strings.Replace(text, link.Text, "["+link.Text+"]("+link.URL+")", 1)
		}
		if strings.Contains(textNorm, linkNorm) {
			return "[" + text + "](" + link.URL + ")"
		}
	}

	return text
}

// normalizeSpace collapses runs of whitespace to single spaces and trims
// the ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
