// Package receiver guesses which built-in object a member access targets by
// looking only at the text to the left of the cursor on the current line.
//
// Detection is an ordered chain of named patterns; the first pattern that
// matches decides the result, even when the word it captured resolves to
// nothing. There is no scope tracking: `let s = "x"; s.` yields no receiver.
package receiver

import (
	"regexp"
	"sort"
	"strings"

	"github.com/bnlang/bnls/vocab"
)

// Pattern names, in chain order.
const (
	PatternLiteralReceiver = "literal-receiver" // Math.  গণিত.  gonit.
	PatternStringLiteral   = "string-literal"   // "x".  'x'.  `x`.
	PatternArrayLiteral    = "array-literal"    // [1, 2].  [].
	PatternNumberLiteral   = "number-literal"   // 42.  3.14.
	PatternIdentifier      = "identifier"       // foo.
)

const (
	identStart = `A-Za-z_$\x{0980}-\x{09FF}`
	identPart  = `A-Za-z0-9_$\x{0980}-\x{09FF}`
	partial    = `([` + identPart + `]*)$`
)

// Match describes a successful pattern match.
type Match struct {
	Pattern  string         // name of the pattern that matched
	Receiver string         // receiver text left of the dot
	Partial  string         // member prefix typed after the dot
	Category vocab.Category // empty when the receiver did not resolve
}

type pattern struct {
	name    string
	re      *regexp.Regexp
	resolve func(receiver string) (vocab.Category, bool)
}

// Detector is immutable once built and safe for concurrent use.
type Detector struct {
	patterns []pattern
}

// New builds the pattern chain from a registry's receiver words.
func New(reg *vocab.Registry) *Detector {
	resolveWord := reg.ResolveReceiverWord
	fixed := func(c vocab.Category) func(string) (vocab.Category, bool) {
		return func(string) (vocab.Category, bool) { return c, true }
	}

	d := &Detector{}
	if words := reg.ReceiverWords(); len(words) > 0 {
		d.patterns = append(d.patterns, pattern{
			name:    PatternLiteralReceiver,
			re:      regexp.MustCompile(`(?:^|[^` + identPart + `])(` + alternation(words) + `)\.` + partial),
			resolve: resolveWord,
		})
	}
	d.patterns = append(d.patterns,
		pattern{
			name:    PatternStringLiteral,
			re:      regexp.MustCompile(`('[^']*'|"[^"]*"|` + "`[^`]*`" + `)\.` + partial),
			resolve: fixed(vocab.CategoryString),
		},
		pattern{
			name:    PatternArrayLiteral,
			re:      regexp.MustCompile(`(\[[^\]]*\])\.` + partial),
			resolve: fixed(vocab.CategoryArray),
		},
		pattern{
			name:    PatternNumberLiteral,
			re:      regexp.MustCompile(`\b(\d+(?:\.\d+)?)\.` + partial),
			resolve: fixed(vocab.CategoryNumber),
		},
		pattern{
			// leftmost match start gives the longest trailing identifier
			name:    PatternIdentifier,
			re:      regexp.MustCompile(`([` + identStart + `][` + identPart + `]*)\.` + partial),
			resolve: resolveWord,
		},
	)
	return d
}

// Detect returns the receiver category targeted by the member access that
// ends at the cursor, if any.
func (d *Detector) Detect(left string) (vocab.Category, bool) {
	m, ok := d.Match(left)
	if !ok || m.Category == "" {
		return "", false
	}
	return m.Category, true
}

// Match runs the chain and reports which pattern decided the result. The
// boolean is false only when no pattern matched at all.
func (d *Detector) Match(left string) (Match, bool) {
	for _, p := range d.patterns {
		sub := p.re.FindStringSubmatch(left)
		if sub == nil {
			continue
		}
		m := Match{Pattern: p.name, Receiver: sub[1], Partial: sub[2]}
		if c, ok := p.resolve(m.Receiver); ok {
			m.Category = c
		}
		return m, true
	}
	return Match{}, false
}

// Patterns lists the pattern names in evaluation order.
func (d *Detector) Patterns() []string {
	names := make([]string, len(d.patterns))
	for i, p := range d.patterns {
		names[i] = p.name
	}
	return names
}

// alternation quotes words for a regexp alternation, longest first so that a
// word never loses to one of its own prefixes.
func alternation(words []string) string {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}
