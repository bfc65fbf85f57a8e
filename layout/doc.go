// Package layout reconstructs logical document structure from positioned
// line fragments: indentation levels via x-origin clustering, and
// paragraphs and list items via a forward-scanning merge state machine.
package layout
