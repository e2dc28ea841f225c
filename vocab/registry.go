// Package vocab holds the bilingual Bnlang vocabulary: keyword groups whose
// English, Bengali and transliterated spellings are interchangeable, and the
// built-in receivers (Math, JSON, console, String, Array, Number) with their
// members and localized aliases.
//
// A Registry is built once from a Schema and never mutated afterwards, so it
// can be shared by concurrent requests without locking. Every spelling must
// resolve to exactly one target; New rejects collisions instead of letting
// registration order pick a winner.
package vocab

import (
	"github.com/bnlang/bnls/errors"
)

// Registry is the immutable, validated vocabulary.
type Registry struct {
	schema Schema

	spellings     []string          // flattened keyword spellings, registry order
	spellingIndex map[string]string // spelling → concept

	byCategory    map[Category]int                 // category → index into schema.Receivers
	receiverWords []string                         // canonical names then aliases, registry order
	receiverIndex map[string]Category              // canonical name or alias → category
	memberAliases map[Category]map[string][]string // category → member → aliases
}

// New validates a schema and builds the lookup tables.
func New(schema Schema) (*Registry, error) {
	schema = schema.Clone()
	r := &Registry{
		schema:        schema,
		spellingIndex: make(map[string]string),
		byCategory:    make(map[Category]int, len(schema.Receivers)),
		receiverIndex: make(map[string]Category),
		memberAliases: make(map[Category]map[string][]string, len(schema.Receivers)),
	}

	if err := r.indexKeywords(); err != nil {
		return nil, err
	}
	if err := r.indexReceivers(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) indexKeywords() error {
	concepts := make(map[string]bool, len(r.schema.Keywords))
	for _, group := range r.schema.Keywords {
		if group.Concept == "" {
			return errors.NewInvalidRequestError("keyword group with empty concept")
		}
		if concepts[group.Concept] {
			return errors.WithHint(
				errors.NewCollisionError("keyword concept %q declared twice", group.Concept),
				"merge the spellings into a single group")
		}
		concepts[group.Concept] = true

		if len(group.Spellings) == 0 {
			return errors.NewInvalidRequestError("keyword concept %q has no spellings", group.Concept)
		}
		for _, spelling := range group.Spellings {
			if spelling == "" {
				return errors.NewInvalidRequestError("keyword concept %q has an empty spelling", group.Concept)
			}
			if owner, ok := r.spellingIndex[spelling]; ok {
				return errors.WithHintf(
					errors.NewCollisionError("keyword spelling %q belongs to both %q and %q", spelling, owner, group.Concept),
					"a spelling may name one concept only; remove %q from one group", spelling)
			}
			r.spellingIndex[spelling] = group.Concept
			r.spellings = append(r.spellings, spelling)
		}
	}
	return nil
}

func (r *Registry) indexReceivers() error {
	for i, rec := range r.schema.Receivers {
		if rec.Category == "" {
			return errors.NewInvalidRequestError("receiver with empty category")
		}
		if rec.Kind != KindStatic && rec.Kind != KindInstance {
			return errors.NewInvalidRequestError("receiver %q has unknown kind %q (want static or instance)", rec.Category, rec.Kind)
		}
		if _, dup := r.byCategory[rec.Category]; dup {
			return errors.NewCollisionError("receiver %q declared twice", rec.Category)
		}
		r.byCategory[rec.Category] = i
	}

	// Canonical names first so an alias can never shadow a category name
	for _, rec := range r.schema.Receivers {
		if err := r.addReceiverWord(string(rec.Category), rec.Category); err != nil {
			return err
		}
	}
	for _, rec := range r.schema.Receivers {
		for _, alias := range rec.Aliases {
			if err := r.addReceiverWord(alias, rec.Category); err != nil {
				return err
			}
		}
	}

	for _, rec := range r.schema.Receivers {
		names := make(map[string]int, len(rec.Members))
		aliases := make(map[string][]string)
		taken := make(map[string]string) // member name or alias → member it resolves to

		for j, m := range rec.Members {
			if m.Name == "" {
				return errors.NewInvalidRequestError("receiver %q has a member with an empty name", rec.Category)
			}
			if _, dup := names[m.Name]; dup {
				return errors.NewCollisionError("member %s.%s declared twice", rec.Category, m.Name)
			}
			names[m.Name] = j
			taken[m.Name] = m.Name
		}
		for _, m := range rec.Members {
			for _, alias := range m.Aliases {
				if alias == "" {
					return errors.NewInvalidRequestError("member %s.%s has an empty alias", rec.Category, m.Name)
				}
				if owner, ok := taken[alias]; ok {
					return errors.WithHintf(
						errors.NewCollisionError("member alias %q of %s.%s already resolves to %s.%s",
							alias, rec.Category, m.Name, rec.Category, owner),
						"member aliases must be unique within %s", rec.Category)
				}
				taken[alias] = m.Name
				aliases[m.Name] = append(aliases[m.Name], alias)
			}
		}
		r.memberAliases[rec.Category] = aliases
	}
	return nil
}

func (r *Registry) addReceiverWord(word string, category Category) error {
	if word == "" {
		return errors.NewInvalidRequestError("receiver %q has an empty alias", category)
	}
	if owner, ok := r.receiverIndex[word]; ok {
		return errors.WithHintf(
			errors.NewCollisionError("receiver word %q registered for both %q and %q", word, owner, category),
			"each receiver spelling must resolve to a single category")
	}
	r.receiverIndex[word] = category
	r.receiverWords = append(r.receiverWords, word)
	return nil
}

// Version returns the schema version the registry was built from.
func (r *Registry) Version() string {
	return r.schema.Version
}

// Schema returns a copy of the schema the registry was built from.
func (r *Registry) Schema() Schema {
	return r.schema.Clone()
}

// KeywordGroups returns every keyword concept with its spellings, in schema order.
func (r *Registry) KeywordGroups() []KeywordGroup {
	out := make([]KeywordGroup, len(r.schema.Keywords))
	for i, g := range r.schema.Keywords {
		out[i] = g.clone()
	}
	return out
}

// AllKeywordSpellings returns the deduplicated union of every group's spellings.
func (r *Registry) AllKeywordSpellings() []string {
	return cloneStrings(r.spellings)
}

// IsKeyword reports whether word is a spelling of any keyword concept.
func (r *Registry) IsKeyword(word string) bool {
	_, ok := r.spellingIndex[word]
	return ok
}

// ConceptOf returns the canonical concept a keyword spelling belongs to.
func (r *Registry) ConceptOf(spelling string) (string, bool) {
	concept, ok := r.spellingIndex[spelling]
	return concept, ok
}

// Receivers returns every receiver with its members, in schema order.
func (r *Registry) Receivers() []Receiver {
	out := make([]Receiver, len(r.schema.Receivers))
	for i, rec := range r.schema.Receivers {
		out[i] = rec.clone()
	}
	return out
}

// Receiver returns a single receiver by category.
func (r *Registry) Receiver(category Category) (Receiver, bool) {
	i, ok := r.byCategory[category]
	if !ok {
		return Receiver{}, false
	}
	return r.schema.Receivers[i].clone(), true
}

// ReceiverAliases returns the localized spellings of a receiver name. May be empty.
func (r *Registry) ReceiverAliases(category Category) []string {
	i, ok := r.byCategory[category]
	if !ok {
		return nil
	}
	return cloneStrings(r.schema.Receivers[i].Aliases)
}

// MemberAliases returns the localized spellings of one member. May be empty.
func (r *Registry) MemberAliases(category Category, member string) []string {
	return cloneStrings(r.memberAliases[category][member])
}

// ResolveReceiverWord maps a canonical receiver name or one of its aliases to
// its category. The match is exact and case-sensitive.
func (r *Registry) ResolveReceiverWord(word string) (Category, bool) {
	category, ok := r.receiverIndex[word]
	return category, ok
}

// ReceiverWords returns every word that names a receiver: canonical names
// first, then aliases, each in schema order.
func (r *Registry) ReceiverWords() []string {
	return cloneStrings(r.receiverWords)
}
