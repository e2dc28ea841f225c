package hover

import (
	"regexp"

	"github.com/bnlang/bnls/document"
)

// Words are ASCII identifiers or runs of Bengali-block characters, the same
// split the completion scanner uses.
var wordPattern = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*|[\x{0980}-\x{09FF}_][\x{0980}-\x{09FF}0-9_$]*`)

// WordAt finds the word touching pos on its line. A cursor just past the last
// character of a word still counts as on it.
func WordAt(doc *document.Document, pos document.Position) (string, document.Range, bool) {
	if pos.Line < 0 || pos.Line >= doc.LineCount() {
		return "", document.Range{}, false
	}
	line := doc.Line(pos.Line)
	col := len(doc.LeftOfCursor(pos)) // byte column within the line

	for _, loc := range wordPattern.FindAllStringIndex(line, -1) {
		if loc[0] > col {
			break
		}
		if col <= loc[1] {
			rng := document.Range{
				Start: document.Position{Line: pos.Line, Character: document.UTF16Len(line[:loc[0]])},
				End:   document.Position{Line: pos.Line, Character: document.UTF16Len(line[:loc[1]])},
			}
			return line[loc[0]:loc[1]], rng, true
		}
	}
	return "", document.Range{}, false
}
