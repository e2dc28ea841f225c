// Package document holds open editor buffers and converts between LSP
// positions (line, UTF-16 column) and byte offsets.
package document

import (
	"strings"
	"unicode/utf8"
)

// EOL is a line terminator.
type EOL string

const (
	LF   EOL = "\n"
	CRLF EOL = "\r\n"
)

// Position is a zero-based line and UTF-16 column, as LSP clients send them.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Document is an immutable snapshot of a buffer. Edits replace the snapshot.
type Document struct {
	URI     string
	Version int32
	Text    string

	lines []int // byte offset where each line starts
}

// New snapshots text. Version is the client's document version, if any.
func New(uri, text string, version int32) *Document {
	return &Document{
		URI:     uri,
		Version: version,
		Text:    text,
		lines:   lineOffsets(text),
	}
}

// FromText snapshots text that has no URI, such as a file read by the CLI.
func FromText(text string) *Document {
	return New("", text, 0)
}

func lineOffsets(text string) []int {
	offs := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offs = append(offs, i+1)
		}
	}
	return offs
}

// LineCount counts lines the way editors do: "a\n" has two, the second empty.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the text of line n without its terminator. Out-of-range lines
// are empty.
func (d *Document) Line(n int) string {
	if n < 0 || n >= len(d.lines) {
		return ""
	}
	start := d.lines[n]
	if n+1 == len(d.lines) {
		// a lone \r is content, not a terminator
		return d.Text[start:]
	}
	end := d.lines[n+1] - 1 // drop \n
	return strings.TrimSuffix(d.Text[start:end], "\r")
}

// Lines returns every line without terminators, LineCount entries long.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	for i := range d.lines {
		out[i] = d.Line(i)
	}
	return out
}

// EOL reports the document's line terminator, taken from its first line
// break. Documents without a line break use LF.
func (d *Document) EOL() EOL {
	return DetectEOL(d.Text)
}

// DetectEOL returns CRLF if the first line break in text is \r\n.
func DetectEOL(text string) EOL {
	i := strings.IndexByte(text, '\n')
	if i > 0 && text[i-1] == '\r' {
		return CRLF
	}
	return LF
}

// EndsWithEOL reports whether the text ends with its own line terminator.
func (d *Document) EndsWithEOL() bool {
	return strings.HasSuffix(d.Text, string(d.EOL()))
}

// Offset converts a position to a byte offset. Columns past the end of a
// line clamp to the line end; lines past the end clamp to the text end.
func (d *Document) Offset(p Position) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(d.lines) {
		return len(d.Text)
	}
	i := d.lines[p.Line]
	need := p.Character
	for i < len(d.Text) && need > 0 {
		r, sz := utf8.DecodeRuneInString(d.Text[i:])
		if r == '\n' || (r == '\r' && strings.HasPrefix(d.Text[i:], "\r\n")) {
			break
		}
		need -= utf16Len(r)
		i += sz
	}
	return i
}

// PositionAt converts a byte offset back to a position.
func (d *Document) PositionAt(off int) Position {
	if off <= 0 {
		return Position{}
	}
	if off > len(d.Text) {
		off = len(d.Text)
	}
	// last line starting at or before off
	lo, hi := 0, len(d.lines)
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if d.lines[mid] <= off {
			lo = mid
		} else {
			hi = mid
		}
	}
	return Position{Line: lo, Character: UTF16Len(d.Text[d.lines[lo]:off])}
}

// End is the position just past the last character.
func (d *Document) End() Position {
	return d.PositionAt(len(d.Text))
}

// FullRange spans the whole document.
func (d *Document) FullRange() Range {
	return Range{End: d.End()}
}

// LeftOfCursor returns the part of the cursor's line before the cursor.
func (d *Document) LeftOfCursor(p Position) string {
	if p.Line < 0 || p.Line >= len(d.lines) {
		return ""
	}
	start := d.lines[p.Line]
	return d.Text[start:d.Offset(p)]
}

// UTF16Len counts UTF-16 code units in s.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16Len(r)
	}
	return n
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
