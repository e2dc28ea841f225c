// Package hover answers "what else is this keyword called?" for the word
// under the cursor. Only keyword spellings are indexed; receiver and member
// names get no hover.
package hover

import (
	"strings"

	"github.com/bnlang/bnls/document"
	"github.com/bnlang/bnls/vocab"
)

// Resolver maps every keyword spelling to its full sibling group.
type Resolver struct {
	index map[string][]string
}

// NewResolver builds the reverse index once; it is read-only afterwards.
func NewResolver(reg *vocab.Registry) *Resolver {
	r := &Resolver{index: make(map[string][]string)}
	for _, group := range reg.KeywordGroups() {
		for _, spelling := range group.Spellings {
			r.index[spelling] = group.Spellings
		}
	}
	return r
}

// Resolve returns the spellings sharing word's concept, word included, in
// registry order. The match is exact and case-sensitive.
func (r *Resolver) Resolve(word string) ([]string, bool) {
	group, ok := r.index[word]
	if !ok {
		return nil, false
	}
	return append([]string(nil), group...), true
}

// Hover is the answer for one position.
type Hover struct {
	Word     string
	Aliases  []string
	Range    document.Range
	Markdown string
}

// At resolves the word under pos. It reports false when the cursor is not on
// a word or the word is not a keyword spelling.
func (r *Resolver) At(doc *document.Document, pos document.Position) (*Hover, bool) {
	word, rng, ok := WordAt(doc, pos)
	if !ok {
		return nil, false
	}
	aliases, ok := r.Resolve(word)
	if !ok {
		return nil, false
	}
	return &Hover{
		Word:     word,
		Aliases:  aliases,
		Range:    rng,
		Markdown: Markdown(word, aliases),
	}, true
}

// Markdown renders the word in bold followed by its aliases as code spans.
func Markdown(word string, aliases []string) string {
	return "**" + word + "** — aliases: `" + strings.Join(aliases, "`, `") + "`"
}
