package lsp

import (
	"github.com/bnlang/bnls/completion"
	"github.com/bnlang/bnls/hover"
	"github.com/bnlang/bnls/receiver"
	"github.com/bnlang/bnls/vocab"
)

// Engine bundles the components built from one registry. An engine is never
// modified; reloads build a new one.
type Engine struct {
	Registry  *vocab.Registry
	Detector  *receiver.Detector
	Generator *completion.Generator
	Hover     *hover.Resolver

	// Extensions lists the extension names merged into Registry.
	Extensions []string
}

// NewEngine wires the detector, generator and hover index to reg.
func NewEngine(reg *vocab.Registry, opts completion.Options) *Engine {
	det := receiver.New(reg)
	return &Engine{
		Registry:  reg,
		Detector:  det,
		Generator: completion.NewGenerator(reg, det, opts),
		Hover:     hover.NewResolver(reg),
	}
}

// BuildEngine loads extension files, merges them into base and builds an
// engine from the result.
func BuildEngine(base vocab.Schema, extensionPaths []string, opts completion.Options) (*Engine, error) {
	exts := make([]*vocab.Extension, 0, len(extensionPaths))
	names := make([]string, 0, len(extensionPaths))
	for _, path := range extensionPaths {
		ext, err := vocab.LoadExtensionFile(path)
		if err != nil {
			return nil, err
		}
		exts = append(exts, ext)
		names = append(names, ext.Name)
	}

	reg, err := vocab.Extend(base, exts...)
	if err != nil {
		return nil, err
	}
	engine := NewEngine(reg, opts)
	engine.Extensions = names
	return engine, nil
}
