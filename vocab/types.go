package vocab

// Category identifies a built-in object type a member access can target.
type Category string

// Built-in receiver categories. The canonical spelling of each category is
// also the word that names it in source code.
const (
	CategoryMath    Category = "Math"
	CategoryJSON    Category = "JSON"
	CategoryConsole Category = "console"
	CategoryString  Category = "String"
	CategoryArray   Category = "Array"
	CategoryNumber  Category = "Number"
)

// Kind tells whether a receiver is a global namespace or a value type.
type Kind string

const (
	KindStatic   Kind = "static"   // global object, offered as a completion on its own
	KindInstance Kind = "instance" // value type, only reachable through literals
)

// KeywordGroup is one keyword concept and all of its interchangeable spellings.
type KeywordGroup struct {
	Concept   string   `yaml:"concept" json:"concept"`
	Spellings []string `yaml:"spellings" json:"spellings"`
}

// Member is a method or property of a receiver.
type Member struct {
	Name      string   `yaml:"name" json:"name"`
	Signature string   `yaml:"signature,omitempty" json:"signature,omitempty"`
	Snippet   string   `yaml:"snippet,omitempty" json:"snippet,omitempty"` // LSP snippet, ${1:x} placeholders
	Doc       string   `yaml:"doc,omitempty" json:"doc,omitempty"`
	Aliases   []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// Receiver is a built-in category with its ordered member list.
type Receiver struct {
	Category Category `yaml:"category" json:"category"`
	Kind     Kind     `yaml:"kind" json:"kind"`
	Aliases  []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Members  []Member `yaml:"members" json:"members"`
}

// Schema is the declarative form a Registry is built from.
type Schema struct {
	Version   string         `yaml:"version" json:"version"`
	Keywords  []KeywordGroup `yaml:"keywords" json:"keywords"`
	Receivers []Receiver     `yaml:"receivers" json:"receivers"`
}

// Clone returns a deep copy so callers can extend a schema without touching
// the one a live registry was built from.
func (s Schema) Clone() Schema {
	out := Schema{
		Version:   s.Version,
		Keywords:  make([]KeywordGroup, len(s.Keywords)),
		Receivers: make([]Receiver, len(s.Receivers)),
	}
	for i, g := range s.Keywords {
		out.Keywords[i] = g.clone()
	}
	for i, r := range s.Receivers {
		out.Receivers[i] = r.clone()
	}
	return out
}

func (g KeywordGroup) clone() KeywordGroup {
	return KeywordGroup{Concept: g.Concept, Spellings: cloneStrings(g.Spellings)}
}

func (r Receiver) clone() Receiver {
	members := make([]Member, len(r.Members))
	for j, m := range r.Members {
		m.Aliases = cloneStrings(m.Aliases)
		members[j] = m
	}
	return Receiver{
		Category: r.Category,
		Kind:     r.Kind,
		Aliases:  cloneStrings(r.Aliases),
		Members:  members,
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
