// Package lsp is the editor-agnostic language service for Bnlang. Transports
// (the JSON-RPC server, the CLI) call into a Service; the Service answers from
// the current Engine snapshot, which Reload swaps atomically when vocabulary
// extensions change.
package lsp

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/bnlang/bnls/completion"
	"github.com/bnlang/bnls/document"
	"github.com/bnlang/bnls/errors"
	"github.com/bnlang/bnls/format"
	"github.com/bnlang/bnls/hover"
	"github.com/bnlang/bnls/logger"
	"github.com/bnlang/bnls/vocab"
)

// Options configure a Service.
type Options struct {
	Completion completion.Options
	Extensions []string // vocabulary extension files, applied in order
}

// Service provides completions, hover and formatting for Bnlang documents
type Service struct {
	base   vocab.Schema
	opts   Options
	engine atomic.Pointer[Engine]
	logger *zap.SugaredLogger

	mu sync.Mutex // serialises reloads and guards opts.Extensions
}

// NewService builds a service on the embedded vocabulary plus the configured
// extensions. A broken extension is an error here; after startup, Reload
// keeps serving the previous engine instead.
func NewService(opts Options, log *zap.SugaredLogger) (*Service, error) {
	base, err := vocab.BuiltinSchema()
	if err != nil {
		return nil, err
	}
	return NewServiceWithSchema(base, opts, log)
}

// NewServiceWithSchema is NewService on a caller-supplied base vocabulary.
func NewServiceWithSchema(base vocab.Schema, opts Options, log *zap.SugaredLogger) (*Service, error) {
	if log == nil {
		log = logger.Logger
	}
	s := &Service{base: base, opts: opts, logger: log}

	engine, err := BuildEngine(base, opts.Extensions, opts.Completion)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build vocabulary")
	}
	s.engine.Store(engine)

	log.Infow("Language service ready",
		"vocabulary", engine.Registry.Version(),
		"extensions", engine.Extensions,
		logger.FieldCount, len(engine.Registry.AllKeywordSpellings()),
	)
	return s, nil
}

// Engine returns the current snapshot.
func (s *Service) Engine() *Engine {
	return s.engine.Load()
}

// Registry returns the current vocabulary.
func (s *Service) Registry() *vocab.Registry {
	return s.Engine().Registry
}

// Extensions returns the configured extension paths.
func (s *Service) Extensions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.opts.Extensions...)
}

// CompletionRequest is a cursor in a document.
type CompletionRequest struct {
	Document *document.Document
	Position document.Position
}

// Complete returns the candidates for a cursor.
func (s *Service) Complete(ctx context.Context, req CompletionRequest) ([]completion.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Document == nil {
		return nil, errors.NewInvalidRequestError("completion request without a document")
	}
	engine := s.Engine()
	items := engine.Generator.GenerateFor(req.Document, req.Position)

	if s.logger.Desugar().Core().Enabled(zap.DebugLevel) {
		category, _ := engine.Detector.Detect(req.Document.LeftOfCursor(req.Position))
		s.logger.Debugw("Completion",
			logger.FieldURI, req.Document.URI,
			logger.FieldLine, req.Position.Line,
			logger.FieldCharacter, req.Position.Character,
			logger.FieldCategory, string(category),
			logger.FieldCount, len(items),
		)
	}
	return items, nil
}

// Hover resolves the keyword under the cursor. A nil result with no error
// means there is nothing to show.
func (s *Service) Hover(ctx context.Context, doc *document.Document, pos document.Position) (*hover.Hover, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.NewInvalidRequestError("hover request without a document")
	}
	h, ok := s.Engine().Hover.At(doc, pos)
	if !ok {
		return nil, nil
	}
	s.logger.Debugw("Hover", logger.FieldURI, doc.URI, logger.FieldWord, h.Word)
	return h, nil
}

// Format returns the edits that format doc.
func (s *Service) Format(ctx context.Context, doc *document.Document) ([]format.TextEdit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.NewInvalidRequestError("format request without a document")
	}
	return format.Document(doc), nil
}

// Reload rebuilds the engine from the configured extension files and swaps
// it in. On error the current engine stays in place.
func (s *Service) Reload() error {
	return s.ReloadWith(s.Extensions())
}

// ReloadWith replaces the extension list and reloads.
func (s *Service) ReloadWith(extensions []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, err := BuildEngine(s.base, extensions, s.opts.Completion)
	if err != nil {
		s.logger.Warnw("Vocabulary reload failed, keeping previous vocabulary",
			logger.FieldError, err,
			"hints", errors.FlattenHints(err),
		)
		return err
	}
	s.opts.Extensions = append([]string(nil), extensions...)
	s.engine.Store(engine)
	s.logger.Infow("Vocabulary reloaded",
		"extensions", engine.Extensions,
		logger.FieldCount, len(engine.Registry.AllKeywordSpellings()),
	)
	return nil
}
