package vocab

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/bnlang/bnls/errors"
)

// Extension adds spellings to a vocabulary without redefining it. Example:
//
//	name = "dhaka-dialect"
//	requires = ">= 1.0.0, < 2.0.0"
//
//	[keywords]
//	if = ["jadi"]
//
//	[receivers.Math]
//	aliases = ["ganit"]
//
//	[receivers.Math.members]
//	floor = ["মেঝে"]
//
// Keyword spellings may name a new concept. Receivers and members must
// already exist; an extension only adds localized spellings for them.
type Extension struct {
	Name      string                       `toml:"name"`
	Requires  string                       `toml:"requires"`
	Keywords  map[string][]string          `toml:"keywords"`
	Receivers map[string]ReceiverExtension `toml:"receivers"`

	// Path is set by LoadExtensionFile.
	Path string `toml:"-"`
}

// ReceiverExtension holds the extra spellings for one receiver.
type ReceiverExtension struct {
	Aliases []string            `toml:"aliases"`
	Members map[string][]string `toml:"members"`
}

// ParseExtension decodes an extension document. Keys the decoder does not
// recognise are reported as errors so typos do not pass silently.
func ParseExtension(data string) (*Extension, error) {
	var ext Extension
	md, err := toml.Decode(data, &ext)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse vocabulary extension")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.WithHint(
			errors.NewInvalidRequestError("unknown keys in vocabulary extension: %s", strings.Join(keys, ", ")),
			"allowed top-level keys are name, requires, keywords and receivers")
	}
	if ext.Name == "" {
		return nil, errors.NewInvalidRequestError("vocabulary extension has no name")
	}
	return &ext, nil
}

// LoadExtensionFile reads and parses an extension file.
func LoadExtensionFile(path string) (*Extension, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read vocabulary extension %s", path)
	}
	ext, err := ParseExtension(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	ext.Path = path
	return ext, nil
}

// CheckCompatible verifies the extension's requires constraint against a
// vocabulary version. An empty constraint accepts any version.
func (e *Extension) CheckCompatible(version string) error {
	if e.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(e.Requires)
	if err != nil {
		return errors.Wrapf(errors.Mark(err, errors.ErrInvalidRequest),
			"extension %q has an invalid requires constraint %q", e.Name, e.Requires)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.Wrapf(err, "vocabulary version %q is not a semantic version", version)
	}
	if ok, reasons := constraint.Validate(v); !ok {
		msgs := make([]string, len(reasons))
		for i, r := range reasons {
			msgs[i] = r.Error()
		}
		return errors.WithDetail(
			errors.Mark(errors.Newf("extension %q requires vocabulary %s, have %s", e.Name, e.Requires, version),
				errors.ErrIncompatible),
			strings.Join(msgs, "; "))
	}
	return nil
}

// Apply merges the extension into a copy of schema. The result still has to
// pass New, which rejects any spelling the extension made ambiguous.
func (e *Extension) Apply(schema Schema) (Schema, error) {
	if err := e.CheckCompatible(schema.Version); err != nil {
		return Schema{}, err
	}
	out := schema.Clone()

	concepts := make(map[string]int, len(out.Keywords))
	for i, g := range out.Keywords {
		concepts[g.Concept] = i
	}
	for _, concept := range sortedKeys(e.Keywords) {
		spellings := e.Keywords[concept]
		if i, ok := concepts[concept]; ok {
			out.Keywords[i].Spellings = append(out.Keywords[i].Spellings, spellings...)
			continue
		}
		concepts[concept] = len(out.Keywords)
		out.Keywords = append(out.Keywords, KeywordGroup{Concept: concept, Spellings: cloneStrings(spellings)})
	}

	categories := make(map[Category]int, len(out.Receivers))
	for i, r := range out.Receivers {
		categories[r.Category] = i
	}
	for _, name := range sortedKeys(e.Receivers) {
		recExt := e.Receivers[name]
		i, ok := categories[Category(name)]
		if !ok {
			return Schema{}, errors.NewNotFoundError("extension %q: unknown receiver %q", e.Name, name)
		}
		rec := &out.Receivers[i]
		rec.Aliases = append(rec.Aliases, recExt.Aliases...)

		for _, member := range sortedKeys(recExt.Members) {
			j := memberPosition(rec.Members, member)
			if j < 0 {
				return Schema{}, errors.NewNotFoundError("extension %q: unknown member %s.%s", e.Name, name, member)
			}
			rec.Members[j].Aliases = append(rec.Members[j].Aliases, recExt.Members[member]...)
		}
	}
	return out, nil
}

// Extend builds a registry from schema with every extension applied in order.
func Extend(schema Schema, exts ...*Extension) (*Registry, error) {
	merged := schema.Clone()
	for _, ext := range exts {
		var err error
		if merged, err = ext.Apply(merged); err != nil {
			return nil, err
		}
	}
	reg, err := New(merged)
	if err != nil {
		if len(exts) > 0 {
			return nil, errors.WithHint(err, "a vocabulary extension introduced a conflicting spelling")
		}
		return nil, err
	}
	return reg, nil
}

func memberPosition(members []Member, name string) int {
	for i, m := range members {
		if m.Name == name {
			return i
		}
	}
	return -1
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
