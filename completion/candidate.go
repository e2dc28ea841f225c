// Package completion builds the candidate list for a completion request:
// keywords in every spelling, built-in globals and their aliases, timer
// functions, identifiers already present in the document and, when the cursor
// follows a recognised receiver, that receiver's members.
package completion

// Kind tags a candidate so transports can map it to their own item kinds.
type Kind string

const (
	KindKeyword  Kind = "keyword"
	KindGlobal   Kind = "global"
	KindFunction Kind = "function"
	KindMethod   Kind = "method"
	KindSymbol   Kind = "free-symbol"
)

// Candidate is one completion suggestion. Candidates are request-owned values.
type Candidate struct {
	Label         string `json:"label"`
	Kind          Kind   `json:"kind"`
	Detail        string `json:"detail,omitempty"`
	InsertText    string `json:"insert_text,omitempty"`
	Snippet       bool   `json:"snippet,omitempty"` // InsertText uses ${n} placeholders
	Documentation string `json:"documentation,omitempty"`
}

func plain(label, detail string, kind Kind) Candidate {
	return Candidate{Label: label, Kind: kind, Detail: detail, InsertText: label}
}

func snippet(label, detail string, kind Kind, template, doc string) Candidate {
	return Candidate{
		Label:         label,
		Kind:          kind,
		Detail:        detail,
		InsertText:    template,
		Snippet:       true,
		Documentation: doc,
	}
}
