package markdown

import (
	"testing"

	"github.com/tsawler/pagedown/model"
)

func block(text string) model.Block {
	return model.Block{
		Text:     text,
		FontSize: 12,
		BBox:     model.NewBBox(72, 100, 300, 112),
		Page:     0,
	}
}

func TestHeadingLevelBoundaries(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		fontSize float64
		base     float64
		want     int
	}{
		{"ratio 2.0 is H1", 24, 12, 1},
		{"ratio 1.7 is H2", 20.4, 12, 2},
		{"ratio 1.4 is H3", 16.8, 12, 3},
		{"ratio 1.2 is H4", 14.4, 12, 4},
		{"ratio below 1.2", 14.3, 12, 0},
		{"below ratio and floor", 10, 12, 0},
		{"below absolute floor regardless of ratio", 13.9, 6, 0},
		{"zero base treated as ratio 1", 24, 0, 0},
	}

	for _, tt := range tests {
		if got := r.headingLevel(tt.fontSize, tt.base); got != tt.want {
			t.Errorf("%s: headingLevel(%f, %f) = %d, want %d",
				tt.name, tt.fontSize, tt.base, got, tt.want)
		}
	}
}

func TestRenderBlockHeading(t *testing.T) {
	r := NewRenderer()

	b := block("Chapter One")
	b.FontSize = 24
	got := r.RenderBlock(b, 12, nil)
	if got != "# Chapter One" {
		t.Errorf("RenderBlock = %q, want %q", got, "# Chapter One")
	}
}

func TestRenderBlockHeadingSkipsEmphasis(t *testing.T) {
	r := NewRenderer()

	b := block("Bold Title")
	b.FontSize = 24
	b.Bold = true
	got := r.RenderBlock(b, 12, nil)
	if got != "# Bold Title" {
		t.Errorf("heading should not get emphasis wrapping: %q", got)
	}
}

func TestRenderBlockHeadingsDisabled(t *testing.T) {
	config := DefaultConfig()
	config.DetectHeadings = false
	r := NewRendererWithConfig(config)

	b := block("Chapter One")
	b.FontSize = 24
	got := r.RenderBlock(b, 12, nil)
	if got != "Chapter One" {
		t.Errorf("RenderBlock = %q, want plain text", got)
	}
}

func TestRenderBlockMonospace(t *testing.T) {
	r := NewRenderer()

	b := block("func main() {}")
	b.Monospace = true
	b.FontSize = 24 // would otherwise be a heading
	got := r.RenderBlock(b, 12, nil)
	if got != "`func main() {}`" {
		t.Errorf("RenderBlock = %q, want code span", got)
	}
}

func TestRenderBlockMonospaceIndented(t *testing.T) {
	r := NewRenderer()

	b := block("ls -la")
	b.Monospace = true
	b.IndentLevel = 2
	got := r.RenderBlock(b, 12, nil)
	if got != "        `ls -la`" {
		t.Errorf("RenderBlock = %q, want 8-space indented code span", got)
	}
}

func TestRenderBlockEscapesLeadingHash(t *testing.T) {
	r := NewRenderer()

	got := r.RenderBlock(block("#include <stdio.h>"), 12, nil)
	if got != `\#include <stdio.h>` {
		t.Errorf("RenderBlock = %q, want escaped hash", got)
	}
}

func TestRenderBlockEmphasis(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name   string
		bold   bool
		italic bool
		want   string
	}{
		{"bold and italic", true, true, "***plain text***"},
		{"bold only", true, false, "**plain text**"},
		{"italic only", false, true, "*plain text*"},
		{"neither", false, false, "plain text"},
	}

	for _, tt := range tests {
		b := block("plain text")
		b.Bold = tt.bold
		b.Italic = tt.italic
		if got := r.RenderBlock(b, 12, nil); got != tt.want {
			t.Errorf("%s: RenderBlock = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRenderBlockListItemEmphasisAfterMarker(t *testing.T) {
	r := NewRenderer()

	b := block("- important point")
	b.Bold = true
	got := r.RenderBlock(b, 12, nil)
	if got != "- **important point**" {
		t.Errorf("RenderBlock = %q, want marker outside emphasis", got)
	}

	b = block("3. numbered point")
	b.Italic = true
	got = r.RenderBlock(b, 12, nil)
	if got != "3. *numbered point*" {
		t.Errorf("RenderBlock = %q, want %q", got, "3. *numbered point*")
	}
}

func TestRenderBlockLeadingBracketSkipsEmphasis(t *testing.T) {
	r := NewRenderer()

	b := block("[already a link](https://example.com)")
	b.Bold = true
	got := r.RenderBlock(b, 12, nil)
	if got != "[already a link](https://example.com)" {
		t.Errorf("RenderBlock = %q, want emphasis skipped", got)
	}
}

func TestRenderBlockNormalizesFreshListItems(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		in   string
		want string
	}{
		{"• bullet item", "- bullet item"},
		{"▸ arrow bullet", "- arrow bullet"},
		{"2) second item", "2. second item"},
		{"7. already fine", "7. already fine"},
		{"- already fine", "- already fine"},
		{"not a list", "not a list"},
	}

	for _, tt := range tests {
		if got := r.RenderBlock(block(tt.in), 12, nil); got != tt.want {
			t.Errorf("RenderBlock(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderBlockIndentation(t *testing.T) {
	r := NewRenderer()

	b := block("- nested item")
	b.IndentLevel = 1
	got := r.RenderBlock(b, 12, nil)
	if got != "    - nested item" {
		t.Errorf("RenderBlock = %q, want 4-space indent", got)
	}

	// Indentation applies only to list items.
	b = block("ordinary paragraph")
	b.IndentLevel = 2
	got = r.RenderBlock(b, 12, nil)
	if got != "ordinary paragraph" {
		t.Errorf("RenderBlock = %q, want no indent on paragraph", got)
	}
}

func TestRenderBlockEmpty(t *testing.T) {
	r := NewRenderer()
	if got := r.RenderBlock(block("   "), 12, nil); got != "" {
		t.Errorf("RenderBlock(whitespace) = %q, want empty", got)
	}
}
