// Package pagedown converts parsed PDF pages into Markdown. It
// reconstructs logical structure (paragraphs, lists, headings, emphasis,
// hyperlinks, tables) from positioned line fragments and serializes it
// with deterministic whitespace and escaping rules.
//
// Basic usage:
//
//	md, err := pagedown.Open("document.pdf").Convert()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	md, err := pagedown.Open("report.pdf").
//	    ImageDir("out/images").
//	    DetectHeadings(false).
//	    PageSeparator("\n\n").
//	    Convert()
//
// Content can also come from any parser implementing Source, which is
// how pre-parsed page representations (or test fixtures) enter the
// pipeline without touching a file.
package pagedown

import (
	"github.com/phuslu/log"

	"github.com/tsawler/pagedown/model"
	"github.com/tsawler/pagedown/pdfdoc"
)

// ErrNotFound indicates the input document does not exist.
var ErrNotFound = pdfdoc.ErrNotFound

// Source provides parsed per-page content to a conversion. Page indices
// are zero-based. Implementations hand over raw line fragments plus
// link, image, and table annotations; structure reconstruction happens
// downstream.
type Source interface {
	// Name returns the document's base name, used for image filenames.
	Name() string

	// PageCount returns the number of pages.
	PageCount() int

	// Page returns one page's content. Recoverable per-element
	// failures (a bad image, a failed table) must be absorbed by the
	// implementation; a returned error fails the whole conversion.
	Page(n int) (model.PageInput, error)
}

// Open prepares a conversion of a PDF file. The file is opened when a
// terminal method (Convert, ConvertTo) runs.
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
		logger:   log.Logger{Level: log.WarnLevel},
	}
}

// FromSource prepares a conversion reading from an already-parsed
// source. The caller keeps ownership of the source's lifecycle.
func FromSource(src Source) *Converter {
	return &Converter{
		source:  src,
		options: defaultOptions(),
		logger:  log.Logger{Level: log.WarnLevel},
	}
}
