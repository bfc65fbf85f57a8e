package pagedown

// ConversionOptions holds configuration for a PDF to Markdown conversion.
type ConversionOptions struct {
	// Image handling
	extractImages  bool
	imageOutputDir string
	imageFormat    string
	imageDPI       int

	// Structure detection
	preserveHyperlinks bool
	detectHeadings     bool
	detectLists        bool
	detectEmphasis     bool
	detectTables       bool

	// Heading thresholds
	headingSizeFloor float64
	minHeadingRatio  float64

	// Assembly
	pageSeparator      string
	lineMergeThreshold float64
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConversionOptions {
	return ConversionOptions{
		extractImages:      true,
		imageOutputDir:     "",
		imageFormat:        "",
		imageDPI:           150,
		preserveHyperlinks: true,
		detectHeadings:     true,
		detectLists:        true,
		detectEmphasis:     true,
		detectTables:       true,
		headingSizeFloor:   14.0,
		minHeadingRatio:    1.2,
		pageSeparator:      "\n\n---\n\n",
		lineMergeThreshold: 5.0,
	}
}

// clone creates a copy of the options.
func (o ConversionOptions) clone() ConversionOptions {
	return o
}
