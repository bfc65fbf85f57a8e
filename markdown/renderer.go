package markdown

import (
	"regexp"
	"strings"

	"github.com/tsawler/pagedown/model"
)

// Config holds configuration for markdown rendering.
type Config struct {
	// DetectHeadings enables font-size based heading detection.
	// Default: true.
	DetectHeadings bool

	// DetectLists enables normalization of bullet and number prefixes
	// into markdown list markers. Default: true.
	DetectLists bool

	// DetectEmphasis enables bold/italic wrapping. Default: true.
	DetectEmphasis bool

	// PreserveLinks enables hyperlink substitution. Default: true.
	PreserveLinks bool

	// HeadingSizeFloor is the absolute font size below which a block is
	// never a heading, regardless of ratio. Default: 14.
	HeadingSizeFloor float64

	// MinHeadingRatio is the minimum block-size / page-base-size ratio
	// for heading classification. Default: 1.2.
	MinHeadingRatio float64
}

// DefaultConfig returns the default rendering configuration.
func DefaultConfig() Config {
	return Config{
		DetectHeadings:   true,
		DetectLists:      true,
		DetectEmphasis:   true,
		PreserveLinks:    true,
		HeadingSizeFloor: 14.0,
		MinHeadingRatio:  1.2,
	}
}

// Renderer converts merged blocks into Markdown lines.
type Renderer struct {
	config Config
}

// NewRenderer creates a renderer with default configuration.
func NewRenderer() *Renderer {
	return &Renderer{config: DefaultConfig()}
}

// NewRendererWithConfig creates a renderer with the given configuration.
func NewRendererWithConfig(config Config) *Renderer {
	return &Renderer{config: config}
}

var (
	numberedListRe   = regexp.MustCompile(`^\d+\. `)
	leadingNumDotRe  = regexp.MustCompile(`^\d+\.`)
	freshNumberedRe  = regexp.MustCompile(`(?s)^(\d+)[.)]\s+(.+)$`)
	freshBulletRe    = regexp.MustCompile(`(?s)^[•●○◦▪▸►\-–—]\s+(.+)$`)
	bulletMarkerRe   = regexp.MustCompile(`^(-\s*)(.*)$`)
	numberMarkerRe   = regexp.MustCompile(`^(\d+\.\s*)(.*)$`)
)

// RenderBlock formats one merged block as a Markdown line. Processing
// order is fixed: monospace short-circuits everything, then the literal
// '#' escape, link substitution, heading detection (which short-circuits
// list and emphasis handling), list normalization, emphasis, and finally
// list-nesting indentation.
func (r *Renderer) RenderBlock(block model.Block, baseFontSize float64, links []model.Link) string {
	text := strings.TrimSpace(block.Text)
	if text == "" {
		return ""
	}

	if block.Monospace {
		return codeSpan(text, block.IndentLevel)
	}

	// Keep a leading '#' literal so downstream parsers do not read it as
	// a heading.
	if strings.HasPrefix(text, "#") {
		text = "\\" + text
	}

	if r.config.PreserveLinks {
		text = applyLinks(text, block.BBox, links)
	}

	if r.config.DetectHeadings {
		if level := r.headingLevel(block.FontSize, baseFontSize); level > 0 {
			return strings.Repeat("#", level) + " " + text
		}
	}

	isListItem := strings.HasPrefix(text, "-") || leadingNumDotRe.MatchString(text)

	if r.config.DetectEmphasis {
		if isListItem {
			text = styleListItem(text, block.Bold, block.Italic)
		} else if !strings.HasPrefix(text, "[") {
			// A leading bracket means a link was substituted; don't
			// wrap it again.
			text = wrapEmphasis(text, block.Bold, block.Italic)
		}
	}

	if r.config.DetectLists {
		text = normalizeListItem(text)
	}

	if block.IndentLevel > 0 && isListItem {
		text = strings.Repeat("    ", block.IndentLevel) + text
	}

	return text
}

// headingLevel maps a font size to a heading level 1-4, or 0 when the
// block is not a heading. The size must clear an absolute floor and the
// size/base ratio must clear the configured minimum.
func (r *Renderer) headingLevel(fontSize, baseFontSize float64) int {
	if fontSize < r.config.HeadingSizeFloor {
		return 0
	}

	ratio := 1.0
	if baseFontSize > 0 {
		ratio = fontSize / baseFontSize
	}

	switch {
	case ratio < r.config.MinHeadingRatio:
		return 0
	case ratio >= 2.0:
		return 1
	case ratio >= 1.7:
		return 2
	case ratio >= 1.4:
		return 3
	default:
		return 4
	}
}

// codeSpan renders monospace text as inline code with list-nesting
// indentation.
func codeSpan(text string, indentLevel int) string {
	return strings.Repeat("    ", indentLevel) + "`" + text + "`"
}

// wrapEmphasis wraps whole-block emphasis markers around the text.
func wrapEmphasis(text string, bold, italic bool) string {
	switch {
	case bold && italic:
		return "***" + text + "***"
	case bold:
		return "**" + text + "**"
	case italic:
		return "*" + text + "*"
	default:
		return text
	}
}

// styleListItem applies emphasis to a list item's content, leaving the
// marker itself unstyled.
func styleListItem(text string, bold, italic bool) string {
	var marker, content string
	if m := bulletMarkerRe.FindStringSubmatch(text); m != nil {
		marker, content = m[1], m[2]
	} else if m := numberMarkerRe.FindStringSubmatch(text); m != nil {
		marker, content = m[1], m[2]
	} else {
		return text
	}
	return marker + wrapEmphasis(content, bold, italic)
}

// normalizeListItem rewrites recognized bullet or number prefixes into
// canonical markdown list markers. Already normalized items pass through.
func normalizeListItem(text string) string {
	if strings.HasPrefix(text, "- ") || numberedListRe.MatchString(text) {
		return text
	}
	if m := freshNumberedRe.FindStringSubmatch(text); m != nil {
		return m[1] + ". " + m[2]
	}
	if m := freshBulletRe.FindStringSubmatch(text); m != nil {
		return "- " + m[1]
	}
	return text
}
