package completion

import (
	"regexp"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
)

// An ASCII identifier, or a run of Bengali-block characters. Mixed-script
// words split into one token per script.
var symbolPattern = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*|[\x{0980}-\x{09FF}_][\x{0980}-\x{09FF}0-9_$]*`)

// SymbolIndex is the set of identifiers found in one document.
type SymbolIndex struct {
	trie  *patricia.Trie
	count int
}

// IndexSymbols scans text for identifiers of at least minLength characters
// for which skip returns false. skip may be nil.
func IndexSymbols(text string, minLength int, skip func(string) bool) *SymbolIndex {
	idx := &SymbolIndex{trie: patricia.NewTrie()}
	for _, word := range symbolPattern.FindAllString(text, -1) {
		if utf8.RuneCountInString(word) < minLength {
			continue
		}
		if skip != nil && skip(word) {
			continue
		}
		// item is the first-seen ordinal; Insert is a no-op for known words
		if idx.trie.Insert(patricia.Prefix(word), idx.count) {
			idx.count++
		}
	}
	return idx
}

// Len returns the number of distinct symbols.
func (idx *SymbolIndex) Len() int {
	return idx.count
}

// Contains reports whether word was indexed.
func (idx *SymbolIndex) Contains(word string) bool {
	return idx.trie.Match(patricia.Prefix(word))
}

// Symbols returns the distinct symbols in order of first appearance.
func (idx *SymbolIndex) Symbols() []string {
	return idx.collect()
}

func (idx *SymbolIndex) collect() []string {
	out := make([]string, idx.count)
	_ = idx.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		out[item.(int)] = string(p)
		return nil
	})
	return out
}
