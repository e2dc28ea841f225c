package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{""}},
		{"single line", "let x = 1", []string{"let x = 1"}},
		{"trailing newline", "a\nb\n", []string{"a", "b", ""}},
		{"CRLF", "a\r\nb", []string{"a", "b"}},
		{"lone CR kept", "a\rb", []string{"a\rb"}},
		{"trailing lone CR kept", "a\r", []string{"a\r"}},
		{"CRLF then trailing CR", "a\r\nb\r", []string{"a", "b\r"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromText(tt.text)
			assert.Equal(t, tt.want, d.Lines())
			assert.Equal(t, len(tt.want), d.LineCount())
		})
	}

	d := FromText("a\nb")
	assert.Equal(t, "", d.Line(-1))
	assert.Equal(t, "", d.Line(5))
}

func TestDetectEOL(t *testing.T) {
	assert.Equal(t, LF, DetectEOL(""))
	assert.Equal(t, LF, DetectEOL("a\nb\r\n"))
	assert.Equal(t, CRLF, DetectEOL("a\r\nb\n"))
	assert.Equal(t, LF, DetectEOL("\n"))

	assert.True(t, FromText("a\r\n").EndsWithEOL())
	assert.False(t, FromText("a\r\nb").EndsWithEOL())
	assert.True(t, FromText("a\n").EndsWithEOL())
}

func TestOffsetUTF16(t *testing.T) {
	// গণিত is four runes, three bytes each, one UTF-16 unit each
	text := "ধরি x = গণিত.\n😀ab\r\nend"
	d := FromText(text)

	tests := []struct {
		pos  Position
		want string // text left of the position on its line
	}{
		{Position{0, 0}, ""},
		{Position{0, 3}, "ধরি"},
		{Position{0, 13}, "ধরি x = গণিত."},
		{Position{0, 99}, "ধরি x = গণিত."},
		{Position{1, 2}, "😀"},
		{Position{1, 3}, "😀a"},
		{Position{1, 10}, "😀ab"},
		{Position{2, 3}, "end"},
		{Position{-1, 0}, ""},
		{Position{9, 0}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, d.LeftOfCursor(tt.pos), "position %+v", tt.pos)
	}

	assert.Equal(t, 0, d.Offset(Position{-1, 4}))
	assert.Equal(t, len(text), d.Offset(Position{10, 0}))
}

func TestPositionAtRoundTrip(t *testing.T) {
	d := FromText("এক\nদুই 😀 x\n")
	for _, p := range []Position{{0, 0}, {0, 2}, {1, 0}, {1, 4}, {1, 6}, {1, 8}, {2, 0}} {
		assert.Equal(t, p, d.PositionAt(d.Offset(p)), "position %+v", p)
	}
	assert.Equal(t, Position{}, d.PositionAt(-3))
	assert.Equal(t, Position{Line: 2}, d.End())
	assert.Equal(t, Range{End: Position{Line: 2}}, d.FullRange())
}

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, 0, UTF16Len(""))
	assert.Equal(t, 4, UTF16Len("গণিত"))
	assert.Equal(t, 3, UTF16Len("a😀"))
}

func TestStoreLRU(t *testing.T) {
	s := NewStore(2)

	assert.Empty(t, s.Put(New("file:///a.bnl", "a", 1)))
	assert.Empty(t, s.Put(New("file:///b.bnl", "b", 1)))

	// touch a so b becomes least recently used
	_, ok := s.Get("file:///a.bnl")
	require.True(t, ok)

	assert.Equal(t, "file:///b.bnl", s.Put(New("file:///c.bnl", "c", 1)))
	assert.Equal(t, 2, s.Len())

	_, ok = s.Get("file:///b.bnl")
	assert.False(t, ok)

	// replacing an existing URI never evicts
	assert.Empty(t, s.Put(New("file:///a.bnl", "a2", 2)))
	doc, ok := s.Get("file:///a.bnl")
	require.True(t, ok)
	assert.Equal(t, "a2", doc.Text)
	assert.Equal(t, int32(2), doc.Version)

	s.Delete("file:///a.bnl")
	s.Delete("file:///missing.bnl")
	assert.Equal(t, 1, s.Len())
}

func TestStoreDefaultSize(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < DefaultMaxDocuments+5; i++ {
		s.Put(New(string(rune('a'+i%26))+string(rune('0'+i/26)), "", 0))
	}
	assert.Equal(t, DefaultMaxDocuments, s.Len())
}
