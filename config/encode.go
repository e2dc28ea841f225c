package config

import (
	"encoding/json"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bnlang/bnls/errors"
)

// Output formats for Encode
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode writes the effective settings to w in the given format.
func (l *Loaded) Encode(w io.Writer, format string) error {
	settings := l.AllSettings()

	switch format {
	case FormatTOML, "":
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return errors.Wrap(enc.Encode(settings), "failed to encode config as toml")
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(settings), "failed to encode config as json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(settings); err != nil {
			return errors.Wrap(err, "failed to encode config as yaml")
		}
		return errors.Wrap(enc.Close(), "failed to encode config as yaml")
	default:
		return errors.WithHint(
			errors.NewInvalidRequestError("unknown format %q", format),
			"use toml, json or yaml",
		)
	}
}
