package pagedown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"

	"github.com/tsawler/pagedown/imaging"
	"github.com/tsawler/pagedown/layout"
	"github.com/tsawler/pagedown/markdown"
	"github.com/tsawler/pagedown/model"
	"github.com/tsawler/pagedown/pdfdoc"
)

// Converter is a fluent conversion builder. Configure it with the
// chainable option methods, then call Convert or ConvertTo. A Converter
// holds no per-conversion state: Convert may be called repeatedly and
// each call gets its own image sequence.
type Converter struct {
	filename string
	source   Source
	options  ConversionOptions
	logger   log.Logger
}

// ExtractImages toggles image extraction. Enabled by default; without
// an output directory, images are still named and referenced as
// unresolved placeholders.
func (c *Converter) ExtractImages(enabled bool) *Converter {
	c.options = c.options.clone()
	c.options.extractImages = enabled
	return c
}

// ImageDir sets the directory extracted images are written to.
func (c *Converter) ImageDir(dir string) *Converter {
	c.options = c.options.clone()
	c.options.imageOutputDir = dir
	return c
}

// ImageFormat forces extracted images to be re-encoded in the given
// format ("png" or "jpeg"). By default each image keeps its native
// format.
func (c *Converter) ImageFormat(format string) *Converter {
	c.options = c.options.clone()
	c.options.imageFormat = format
	return c
}

// ImageDPI sets the target resolution for re-encoded images.
// Default: 150.
func (c *Converter) ImageDPI(dpi int) *Converter {
	c.options = c.options.clone()
	c.options.imageDPI = dpi
	return c
}

// PreserveHyperlinks toggles hyperlink substitution. Default: true.
func (c *Converter) PreserveHyperlinks(enabled bool) *Converter {
	c.options = c.options.clone()
	c.options.preserveHyperlinks = enabled
	return c
}

// DetectHeadings toggles font-size based heading detection.
// Default: true.
func (c *Converter) DetectHeadings(enabled bool) *Converter {
	c.options = c.options.clone()
	c.options.detectHeadings = enabled
	return c
}

// HeadingSizes sets the absolute font-size floor and the minimum
// size/base ratio for heading detection. Defaults: 14.0 and 1.2.
func (c *Converter) HeadingSizes(floor, minRatio float64) *Converter {
	c.options = c.options.clone()
	c.options.headingSizeFloor = floor
	c.options.minHeadingRatio = minRatio
	return c
}

// DetectLists toggles list-marker normalization. Default: true.
func (c *Converter) DetectLists(enabled bool) *Converter {
	c.options = c.options.clone()
	c.options.detectLists = enabled
	return c
}

// DetectEmphasis toggles bold/italic wrapping. Default: true.
func (c *Converter) DetectEmphasis(enabled bool) *Converter {
	c.options = c.options.clone()
	c.options.detectEmphasis = enabled
	return c
}

// DetectTables toggles table rendering. Default: true.
func (c *Converter) DetectTables(enabled bool) *Converter {
	c.options = c.options.clone()
	c.options.detectTables = enabled
	return c
}

// PageSeparator sets the string joining page outputs.
// Default: "\n\n---\n\n" (a horizontal rule).
func (c *Converter) PageSeparator(sep string) *Converter {
	c.options = c.options.clone()
	c.options.pageSeparator = sep
	return c
}

// LineMergeThreshold sets the extra vertical gap, beyond one line
// height, still accepted when merging lines. Default: 5 layout units.
func (c *Converter) LineMergeThreshold(threshold float64) *Converter {
	c.options = c.options.clone()
	c.options.lineMergeThreshold = threshold
	return c
}

// Logger replaces the logger used for recoverable-skip warnings.
func (c *Converter) Logger(logger log.Logger) *Converter {
	c.logger = logger
	return c
}

// Convert runs the conversion and returns the Markdown document. Pages
// are processed strictly in order; the document-level post-processing
// depends on global line order. Recoverable element failures are
// skipped and logged; anything else fails the whole conversion with no
// partial output.
func (c *Converter) Convert() (string, error) {
	src := c.source
	if src == nil {
		doc, err := pdfdoc.Open(c.filename)
		if err != nil {
			return "", err
		}
		defer doc.Close()
		src = doc
	}
	return c.run(src)
}

// ConvertTo runs the conversion and additionally writes the Markdown to
// the given path, creating parent directories as needed.
func (c *Converter) ConvertTo(outputPath string) (string, error) {
	md, err := c.Convert()
	if err != nil {
		return "", err
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("writing markdown: %w", err)
	}
	return md, nil
}

// run drives the per-page pipeline and the document-level passes. The
// image writer carries the only mutable conversion state (the filename
// sequence) and is created fresh here, never shared.
func (c *Converter) run(src Source) (string, error) {
	opts := c.options
	writer := imaging.NewWriter(src.Name(), opts.imageOutputDir, opts.imageFormat, opts.imageDPI)
	merger := layout.NewMergerWithConfig(layout.MergerConfig{
		LineMergeThreshold: opts.lineMergeThreshold,
	})
	renderer := markdown.NewRendererWithConfig(markdown.Config{
		DetectHeadings:   opts.detectHeadings,
		DetectLists:      opts.detectLists,
		DetectEmphasis:   opts.detectEmphasis,
		PreserveLinks:    opts.preserveHyperlinks,
		HeadingSizeFloor: opts.headingSizeFloor,
		MinHeadingRatio:  opts.minHeadingRatio,
	})

	var pages []string
	for n := 0; n < src.PageCount(); n++ {
		input, err := src.Page(n)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", n+1, err)
		}
		content := c.buildPage(input, merger, writer)
		if md := renderer.RenderPage(content, opts.imageOutputDir); strings.TrimSpace(md) != "" {
			pages = append(pages, md)
		}
	}

	return markdown.PostProcess(strings.Join(pages, opts.pageSeparator)), nil
}

// buildPage turns raw collaborator input into classified page content:
// indent levels, merged blocks, base font size, and the page's link,
// table, and image overlays.
func (c *Converter) buildPage(input model.PageInput, merger *layout.Merger, writer *imaging.Writer) model.PageContent {
	fragments := make([]model.Fragment, 0, len(input.Fragments))
	xs := make([]float64, 0, len(input.Fragments))
	for _, frag := range input.Fragments {
		if strings.TrimSpace(frag.Text) == "" {
			continue
		}
		fragments = append(fragments, frag)
		xs = append(xs, frag.BBox.X0)
	}

	thresholds := layout.IndentThresholds(xs)
	for i := range fragments {
		fragments[i].IndentLevel = layout.IndentLevel(fragments[i].BBox.X0, thresholds)
	}

	blocks := merger.Merge(fragments)

	content := model.PageContent{
		Page:         input.Page,
		Blocks:       blocks,
		BaseFontSize: 12.0,
	}

	sizes := make([]float64, 0, len(blocks))
	for _, block := range blocks {
		if strings.TrimSpace(block.Text) != "" {
			sizes = append(sizes, block.FontSize)
		}
	}
	if median := model.MedianFontSize(sizes); median > 0 {
		content.BaseFontSize = median
	}

	if c.options.preserveHyperlinks {
		content.Links = input.Links
	}

	if c.options.detectTables {
		for _, table := range input.Tables {
			// Re-pad through the constructor so short rows can't leak in.
			content.Tables = append(content.Tables, model.NewTable(table.Rows, table.BBox, input.Page))
		}
	}

	if c.options.extractImages {
		for _, img := range input.Images {
			filename, err := writer.Save(img.Data, img.Format, input.Page)
			if err != nil {
				c.logger.Warn().Err(err).Int("page", input.Page+1).Msg("skipping image")
				continue
			}
			content.Images = append(content.Images, model.ImageRef{
				XRef:     img.ID,
				BBox:     img.BBox,
				Page:     input.Page,
				Filename: filename,
				Width:    img.Width,
				Height:   img.Height,
			})
		}
	}

	return content
}
