package completion

import (
	"fmt"

	"github.com/bnlang/bnls/document"
	"github.com/bnlang/bnls/receiver"
	"github.com/bnlang/bnls/vocab"
)

const (
	detailBuiltinGlobal = "Built-in global"
	detailInFileSymbol  = "In-file symbol"
)

// Options tune the document-dependent part of generation.
type Options struct {
	FreeSymbols     bool // offer identifiers found in the document
	MinSymbolLength int  // shortest identifier offered, in characters
}

// DefaultOptions offers free symbols of two characters or more.
func DefaultOptions() Options {
	return Options{FreeSymbols: true, MinSymbolLength: 2}
}

// Generator produces candidates from an immutable registry. It holds no
// per-request state and is safe for concurrent use.
type Generator struct {
	registry *vocab.Registry
	detector *receiver.Detector
	opts     Options

	static  []Candidate                    // keywords, globals, timers
	members map[vocab.Category][]Candidate // member and member-alias candidates
}

// NewGenerator precomputes the candidates that do not depend on the document.
func NewGenerator(reg *vocab.Registry, det *receiver.Detector, opts Options) *Generator {
	if opts.MinSymbolLength < 1 {
		opts.MinSymbolLength = 1
	}
	g := &Generator{
		registry: reg,
		detector: det,
		opts:     opts,
		members:  make(map[vocab.Category][]Candidate),
	}

	for _, group := range reg.KeywordGroups() {
		detail := fmt.Sprintf("BNL keyword (%s)", group.Concept)
		for _, spelling := range group.Spellings {
			g.static = append(g.static, plain(spelling, detail, KindKeyword))
		}
	}

	for _, rec := range reg.Receivers() {
		if rec.Kind == vocab.KindStatic {
			g.static = append(g.static, plain(string(rec.Category), detailBuiltinGlobal, KindGlobal))
			for _, alias := range rec.Aliases {
				g.static = append(g.static, plain(alias, "Alias of "+string(rec.Category), KindGlobal))
			}
		}
		g.members[rec.Category] = memberCandidates(reg, rec)
	}

	g.static = append(g.static, timerCandidates()...)
	return g
}

func memberCandidates(reg *vocab.Registry, rec vocab.Receiver) []Candidate {
	var out []Candidate
	for _, m := range rec.Members {
		signature := m.Signature
		if signature == "" {
			signature = m.Name + "()"
		}
		template := m.Snippet
		if template == "" {
			template = m.Name + "($0)"
		}
		out = append(out, snippet(m.Name, fmt.Sprintf("%s.%s", rec.Category, signature), KindMethod, template, m.Doc))

		for _, alias := range reg.MemberAliases(rec.Category, m.Name) {
			detail := fmt.Sprintf("%s → %s.%s", alias, rec.Category, m.Name)
			out = append(out, snippet(alias, detail, KindMethod, alias+"($0)", m.Doc))
		}
	}
	return out
}

// Generate returns every candidate for a cursor in text.
func (g *Generator) Generate(text string, pos document.Position) []Candidate {
	return g.GenerateFor(document.FromText(text), pos)
}

// GenerateFor is Generate on an already indexed document.
func (g *Generator) GenerateFor(doc *document.Document, pos document.Position) []Candidate {
	out := make([]Candidate, len(g.static), len(g.static)+64)
	copy(out, g.static)

	if g.opts.FreeSymbols {
		out = append(out, g.FreeSymbols(doc.Text)...)
	}

	if category, ok := g.detector.Detect(doc.LeftOfCursor(pos)); ok {
		out = append(out, g.Members(category)...)
	}
	return out
}

// FreeSymbols returns one candidate per distinct identifier in text that is
// not a keyword spelling.
func (g *Generator) FreeSymbols(text string) []Candidate {
	idx := IndexSymbols(text, g.opts.MinSymbolLength, g.registry.IsKeyword)
	words := idx.Symbols()
	out := make([]Candidate, len(words))
	for i, w := range words {
		out[i] = plain(w, detailInFileSymbol, KindSymbol)
	}
	return out
}

// Members returns the candidates for one receiver: each member in registry
// order, followed by its aliases. Unknown categories yield nil.
func (g *Generator) Members(category vocab.Category) []Candidate {
	src := g.members[category]
	if src == nil {
		return nil
	}
	out := make([]Candidate, len(src))
	copy(out, src)
	return out
}

// Static returns the document-independent candidates.
func (g *Generator) Static() []Candidate {
	out := make([]Candidate, len(g.static))
	copy(out, g.static)
	return out
}
