package pdfdoc

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	// Register decoders for dimension probing.
	_ "image/jpeg"
	_ "image/png"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/phuslu/log"

	"github.com/tsawler/pagedown/model"
)

// extractedPageRe pulls the page number out of pdfcpu's extracted image
// filenames (basename_<page>_<resource>.<ext>).
var extractedPageRe = regexp.MustCompile(`_(\d+)_[^_]*\.[A-Za-z]+$`)

// extractImages pulls all embedded images from a PDF, keyed by
// zero-based page index. pdfcpu's extractor is file-based, so images
// pass through a temporary directory. Individual images that cannot be
// read or decoded are skipped; only a failure of the extraction
// subsystem itself is reported, and callers treat that as recoverable
// too.
func extractImages(path string) (map[int][]model.EmbeddedImage, error) {
	outDir, err := os.MkdirTemp("", "pagedown-images-")
	if err != nil {
		return nil, fmt.Errorf("creating image temp dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := pdfcpumodel.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(path, outDir, nil, conf); err != nil {
		return nil, fmt.Errorf("extracting images: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("reading image temp dir: %w", err)
	}

	images := make(map[int][]model.EmbeddedImage)
	id := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		pageNum, ok := pageFromFilename(entry.Name())
		if !ok {
			continue
		}

		data, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			log.Warn().Err(err).Str("image", entry.Name()).Msg("skipping unreadable image")
			continue
		}

		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(entry.Name())), ".")
		width, height := 0, 0
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			width, height = cfg.Width, cfg.Height
		}

		id++
		page := pageNum - 1 // pdfcpu filenames are 1-based
		images[page] = append(images[page], model.EmbeddedImage{
			ID:     id,
			Data:   data,
			Format: format,
			Width:  width,
			Height: height,
		})
	}

	return images, nil
}

// pageFromFilename parses the page number from an extracted image
// filename.
func pageFromFilename(name string) (int, bool) {
	m := extractedPageRe.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
