package model

import "sort"

// Fragment is one extracted line of text with font and position metadata.
// Fragments are produced once per page and never mutated; merging builds
// new Block values instead.
type Fragment struct {
	Text        string
	FontSize    float64
	FontName    string
	Bold        bool
	Italic      bool
	Monospace   bool
	BBox        BBox
	Page        int
	IndentLevel int
}

// Block is the result of fusing one or more fragments into a logical
// paragraph or list item. Its font size and style describe the item's
// content (a bullet marker donates its position and indent level, not
// its style), its bounding box is the union of the fused fragments, and
// it never spans pages.
type Block struct {
	Text        string
	FontSize    float64
	FontName    string
	Bold        bool
	Italic      bool
	Monospace   bool
	BBox        BBox
	Page        int
	IndentLevel int
}

// Link is a hyperlink annotation with its page region. Text holds the
// anchor text with whitespace collapsed to single spaces.
type Link struct {
	Text string
	URL  string
	BBox BBox
	Page int
}

// ImageRef describes an embedded image placed on a page, with the output
// filename assigned during conversion.
type ImageRef struct {
	XRef     int
	BBox     BBox
	Page     int
	Filename string
	Width    int
	Height   int
}

// EmbeddedImage is an image as handed over by the parsing collaborator,
// before any filename has been assigned.
type EmbeddedImage struct {
	ID     int
	Data   []byte
	Format string
	Width  int
	Height int
	BBox   BBox
}

// Table is a detected table grid. Rows are padded so that every row has
// exactly Cols cells; cells may be empty but are never absent.
type Table struct {
	Rows [][]string
	BBox BBox
	Page int
	Cols int
}

// NewTable builds a table from raw rows, padding short rows to the widest
// row's column count.
func NewTable(rows [][]string, bbox BBox, page int) Table {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	padded := make([][]string, len(rows))
	for i, row := range rows {
		padded[i] = make([]string, cols)
		copy(padded[i], row)
	}
	return Table{Rows: padded, BBox: bbox, Page: page, Cols: cols}
}

// RowCount returns the number of rows
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns
func (t Table) ColCount() int {
	return t.Cols
}

// PageContent aggregates everything extracted from a single page.
type PageContent struct {
	Page         int
	Blocks       []Block
	Links        []Link
	Images       []ImageRef
	Tables       []Table
	BaseFontSize float64
}

// PageInput is the hand-off record from the parsing collaborator: raw
// line fragments plus link, image, and table annotations for one page.
// Fragment indent levels are assigned later by the layout package.
type PageInput struct {
	Page      int
	Fragments []Fragment
	Links     []Link
	Images    []EmbeddedImage
	Tables    []Table
}

// MedianFontSize returns the median of the given sizes, or 0 for an
// empty slice. Used to derive a page's base font size, the denominator
// for heading-ratio detection.
func MedianFontSize(sizes []float64) float64 {
	if len(sizes) == 0 {
		return 0
	}
	sorted := make([]float64, len(sizes))
	copy(sorted, sizes)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
