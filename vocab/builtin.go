package vocab

import (
	"bytes"
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/bnlang/bnls/errors"
)

//go:embed builtin.yaml
var builtinYAML []byte

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry built from the embedded vocabulary. The
// embedded data is validated by tests, so a failure here is a build defect.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Load(builtinYAML)
	})
	if defaultErr != nil {
		panic(errors.Wrap(defaultErr, "embedded vocabulary is invalid"))
	}
	return defaultRegistry
}

// BuiltinSchema parses the embedded vocabulary without building a registry.
func BuiltinSchema() (Schema, error) {
	return ParseSchema(builtinYAML)
}

// BuiltinYAML returns the raw embedded vocabulary document.
func BuiltinYAML() []byte {
	return append([]byte(nil), builtinYAML...)
}

// ParseSchema decodes a YAML vocabulary document. Unknown fields are rejected.
func ParseSchema(data []byte) (Schema, error) {
	var schema Schema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil {
		return Schema{}, errors.Wrap(err, "failed to parse vocabulary")
	}
	return schema, nil
}

// Load parses a YAML vocabulary document and builds a registry from it.
func Load(data []byte) (*Registry, error) {
	schema, err := ParseSchema(data)
	if err != nil {
		return nil, err
	}
	return New(schema)
}
