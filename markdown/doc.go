// Package markdown serializes reconstructed page content into Markdown:
// per-block rendering (headings, emphasis, list markers, code spans,
// hyperlinks), pipe-table rendering, per-page assembly in vertical order,
// and document-level cleanup passes.
package markdown
