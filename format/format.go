// Package format implements the document formatter. Formatting is currently
// an identity transform over lines: content is untouched, line terminators
// are normalised to the document's own EOL, and the presence of a final
// newline is preserved.
package format

import (
	"strings"

	"github.com/bnlang/bnls/document"
)

// TextEdit replaces Range with NewText.
type TextEdit struct {
	Range   document.Range `json:"range"`
	NewText string         `json:"new_text"`
}

// Lines is the per-line transform. It returns its input unchanged.
func Lines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// Text returns the formatted document text.
func Text(doc *document.Document) string {
	// a trailing EOL shows up as a final empty line, so joining alone
	// preserves it
	return strings.Join(Lines(doc.Lines()), string(doc.EOL()))
}

// Document returns one edit replacing the whole document with its formatted
// text.
func Document(doc *document.Document) []TextEdit {
	return []TextEdit{{
		Range:   doc.FullRange(),
		NewText: Text(doc),
	}}
}

// Changed reports whether formatting would alter the document.
func Changed(doc *document.Document) bool {
	return Text(doc) != doc.Text
}
