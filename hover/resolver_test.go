package hover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnlang/bnls/document"
	"github.com/bnlang/bnls/vocab"
)

func TestResolveGroupSymmetry(t *testing.T) {
	reg := vocab.Default()
	r := NewResolver(reg)

	for _, group := range reg.KeywordGroups() {
		for _, spelling := range group.Spellings {
			got, ok := r.Resolve(spelling)
			require.True(t, ok, "spelling %q", spelling)
			assert.Equal(t, group.Spellings, got, "spelling %q", spelling)
		}
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver(vocab.Default())

	got, ok := r.Resolve("যদি")
	require.True(t, ok)
	assert.Equal(t, []string{"if", "যদি", "jodi"}, got)

	for _, word := range []string{"If", "Math", "abs", "গণিত", "", "foo"} {
		_, ok := r.Resolve(word)
		assert.False(t, ok, "word %q", word)
	}

	// callers own the returned slice
	got[0] = "changed"
	again, _ := r.Resolve("if")
	assert.Equal(t, "if", again[0])
}

func TestMarkdown(t *testing.T) {
	assert.Equal(t, "**jodi** — aliases: `if`, `যদি`, `jodi`",
		Markdown("jodi", []string{"if", "যদি", "jodi"}))
	assert.Equal(t, "**x** — aliases: `x`", Markdown("x", []string{"x"}))
}

func TestWordAt(t *testing.T) {
	doc := document.FromText("ধরি x = 5;\n  jodi (x) {\nfooযদি")

	tests := []struct {
		name string
		pos  document.Position
		word string
		ok   bool
		rng  document.Range
	}{
		{"start of Bengali word", document.Position{Line: 0, Character: 0}, "ধরি", true,
			document.Range{End: document.Position{Character: 3}}},
		{"end of Bengali word", document.Position{Line: 0, Character: 3}, "ধরি", true,
			document.Range{End: document.Position{Character: 3}}},
		{"single letter", document.Position{Line: 0, Character: 4}, "x", true,
			document.Range{Start: document.Position{Character: 4}, End: document.Position{Character: 5}}},
		{"on whitespace", document.Position{Line: 1, Character: 0}, "", false, document.Range{}},
		{"inside ascii word", document.Position{Line: 1, Character: 4}, "jodi", true,
			document.Range{Start: document.Position{Line: 1, Character: 2}, End: document.Position{Line: 1, Character: 6}}},
		{"mixed script splits", document.Position{Line: 2, Character: 4}, "যদি", true,
			document.Range{Start: document.Position{Line: 2, Character: 3}, End: document.Position{Line: 2, Character: 6}}},
		{"past last line", document.Position{Line: 7, Character: 0}, "", false, document.Range{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, rng, ok := WordAt(doc, tt.pos)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.word, word)
			assert.Equal(t, tt.rng, rng)
		})
	}
}

func TestAt(t *testing.T) {
	r := NewResolver(vocab.Default())
	doc := document.FromText("jodi (gonit.abs(x)) {}")

	h, ok := r.At(doc, document.Position{Character: 2})
	require.True(t, ok)
	assert.Equal(t, "jodi", h.Word)
	assert.Equal(t, []string{"if", "যদি", "jodi"}, h.Aliases)
	assert.Equal(t, "**jodi** — aliases: `if`, `যদি`, `jodi`", h.Markdown)
	assert.Equal(t, document.Range{End: document.Position{Character: 4}}, h.Range)

	// receiver aliases have no hover
	_, ok = r.At(doc, document.Position{Character: 8})
	assert.False(t, ok)
}
