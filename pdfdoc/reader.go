package pdfdoc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/phuslu/log"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pagedown/model"
)

// ErrNotFound indicates the input document does not exist.
var ErrNotFound = errors.New("document not found")

const (
	// baselineTolerance is the vertical distance within which text runs
	// are considered to share a line.
	baselineTolerance = 2.0

	// wordGap is the horizontal gap between runs beyond which a space
	// is inserted when assembling line text.
	wordGap = 1.5

	// defaultPageHeight is used when no MediaBox can be resolved
	// (US Letter, in points).
	defaultPageHeight = 792.0
)

// Document is an open native PDF exposing pages in the collaborator
// contract form.
type Document struct {
	file   *os.File
	reader *pdf.Reader
	path   string
	name   string

	images    map[int][]model.EmbeddedImage
	imagesErr bool
}

// Open opens a PDF file. The caller must Close the returned document.
func Open(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return &Document{
		file:   file,
		reader: reader,
		path:   path,
		name:   name,
	}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}

// Name returns the document's base name without extension, used for
// image filenames.
func (d *Document) Name() string {
	return d.name
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// Page extracts one page's content. n is zero-based. Pages that cannot
// be read yield empty input rather than failing the document; only the
// text layer is mandatory.
func (d *Document) Page(n int) (model.PageInput, error) {
	input := model.PageInput{Page: n}

	page := d.reader.Page(n + 1)
	if page.V.IsNull() {
		return input, nil
	}

	content := page.Content()
	height := mediaBoxHeight(page)
	input.Fragments = groupLines(content.Text, height, n)
	input.Images = d.pageImages(n)

	// ledongthuc/pdf has no table or link annotation surface; those
	// arrive only through sources that provide them. An absent table
	// finder is the same as a page with no tables.
	return input, nil
}

// pageImages lazily extracts the document's embedded images on first
// use. Extraction failure is recoverable: the document converts without
// images.
func (d *Document) pageImages(page int) []model.EmbeddedImage {
	if d.images == nil && !d.imagesErr {
		images, err := extractImages(d.path)
		if err != nil {
			d.imagesErr = true
			log.Warn().Err(err).Str("file", d.path).Msg("image extraction failed; continuing without images")
			return nil
		}
		d.images = images
	}
	return d.images[page]
}

// mediaBoxHeight resolves the page's MediaBox height, walking up the
// page tree for inherited boxes.
func mediaBoxHeight(page pdf.Page) float64 {
	v := page.V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			return mb.Index(3).Float64() - mb.Index(1).Float64()
		}
		v = v.Key("Parent")
	}
	return defaultPageHeight
}

// groupLines assembles positioned text runs into line fragments. Runs
// are grouped by baseline, ordered left to right, and joined with spaces
// where the horizontal gap indicates a word break. The PDF's bottom-up
// coordinates are flipped to the top-left origin the merge heuristics
// expect.
func groupLines(runs []pdf.Text, pageHeight float64, pageNum int) []model.Fragment {
	if len(runs) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y // top of page first
		}
		return sorted[i].X < sorted[j].X
	})

	var fragments []model.Fragment
	var line []pdf.Text

	flush := func() {
		if frag, ok := buildFragment(line, pageHeight, pageNum); ok {
			fragments = append(fragments, frag)
		}
		line = line[:0]
	}

	for _, run := range sorted {
		if len(line) > 0 && abs(run.Y-line[0].Y) > baselineTolerance {
			flush()
		}
		line = append(line, run)
	}
	flush()

	return fragments
}

// buildFragment fuses one baseline's runs into a Fragment. Empty or
// whitespace-only lines are dropped.
func buildFragment(line []pdf.Text, pageHeight float64, pageNum int) (model.Fragment, bool) {
	if len(line) == 0 {
		return model.Fragment{}, false
	}

	// Baseline jitter can disturb the global sort; restore left-to-right
	// order within the line.
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].X < line[j].X
	})

	var sb strings.Builder
	fontSize := 0.0
	fontName := ""
	bold := false
	italic := false
	mono := false

	prevEnd := line[0].X
	for i, run := range line {
		if i > 0 && run.X-prevEnd > wordGap && !strings.HasSuffix(sb.String(), " ") {
			sb.WriteString(" ")
		}
		sb.WriteString(run.S)
		prevEnd = run.X + run.W

		if run.FontSize > fontSize {
			fontSize = run.FontSize
		}
		fontName = run.Font
		bold = bold || isBoldFont(run.Font)
		italic = italic || isItalicFont(run.Font)
		mono = mono || isMonospaceFont(run.Font)
	}

	text := norm.NFC.String(sb.String())
	if strings.TrimSpace(text) == "" {
		return model.Fragment{}, false
	}

	x0 := line[0].X
	x1 := line[len(line)-1].X + line[len(line)-1].W
	baseline := line[0].Y
	bottom := pageHeight - baseline
	top := bottom - fontSize
	if top < 0 {
		top = 0
	}
	if bottom < top {
		bottom = top
	}

	return model.Fragment{
		Text:      text,
		FontSize:  fontSize,
		FontName:  fontName,
		Bold:      bold,
		Italic:    italic,
		Monospace: mono,
		BBox:      model.NewBBox(x0, top, x1, bottom),
		Page:      pageNum,
	}, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
