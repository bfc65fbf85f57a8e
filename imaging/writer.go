package imaging

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
	"golang.org/x/image/draw"
)

// defaultDPI is the reference resolution; requested DPIs scale images
// relative to it.
const defaultDPI = 150

// Writer names and saves one conversion's images. The sequence counter
// is scoped to a single conversion: create a new Writer per document
// and never share one across concurrent conversions.
type Writer struct {
	docName string
	outDir  string // empty: assign names only, write nothing
	format  string // "" keeps each image's native format
	dpi     int
	seq     int
}

// NewWriter creates a writer for one document conversion.
func NewWriter(docName, outDir, format string, dpi int) *Writer {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	return &Writer{
		docName: docName,
		outDir:  outDir,
		format:  format,
		dpi:     dpi,
	}
}

// Save assigns the next filename for an image and, when an output
// directory is configured, writes it there. The filename is
// deterministic given identical content and sequence:
// <doc>_p<page+1>_img<seq>_<8 hex chars of blake3>.<ext>.
// page is zero-based.
func (w *Writer) Save(data []byte, nativeFormat string, page int) (string, error) {
	w.seq++

	sum := blake3.Sum256(data)
	hash := hex.EncodeToString(sum[:4])

	ext := nativeFormat
	out := data
	if w.format != "" && w.format != nativeFormat {
		converted, err := convert(data, w.format, w.dpi)
		if err != nil {
			return "", fmt.Errorf("converting image to %s: %w", w.format, err)
		}
		out = converted
		ext = w.format
	}
	if ext == "" {
		ext = "png"
	}

	filename := fmt.Sprintf("%s_p%d_img%d_%s.%s", w.docName, page+1, w.seq, hash, ext)

	if w.outDir != "" {
		if err := os.MkdirAll(w.outDir, 0o755); err != nil {
			return "", fmt.Errorf("creating image directory: %w", err)
		}
		if err := os.WriteFile(filepath.Join(w.outDir, filename), out, 0o644); err != nil {
			return "", fmt.Errorf("writing image %s: %w", filename, err)
		}
	}

	return filename, nil
}

// convert re-encodes an image in the requested format, resampling when
// the DPI differs from the reference resolution.
func convert(data []byte, format string, dpi int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if dpi != defaultDPI {
		bounds := src.Bounds()
		width := bounds.Dx() * dpi / defaultDPI
		height := bounds.Dy() * dpi / defaultDPI
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, src)
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, src, nil)
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
