// Package langserver exposes the Bnlang language service over the Language
// Server Protocol using glsp, on stdio, TCP or WebSocket.
package langserver

import (
	"context"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/zap"

	"github.com/bnlang/bnls/completion"
	"github.com/bnlang/bnls/document"
	"github.com/bnlang/bnls/format"
	"github.com/bnlang/bnls/logger"
	"github.com/bnlang/bnls/lsp"
	"github.com/bnlang/bnls/version"
)

// ServerName is reported to clients in the initialize response.
const ServerName = "Bnlang Language Server"

// TriggerCharacters open the completion list without an explicit request.
var TriggerCharacters = []string{".", "_"}

// Handler implements LSP protocol handlers for one client session.
// Document state is per handler; the language service is shared.
type Handler struct {
	service   *lsp.Service
	documents *document.Store
	logger    *zap.SugaredLogger
	ctx       context.Context
}

// NewHandler creates a handler caching at most maxDocuments open documents.
func NewHandler(ctx context.Context, service *lsp.Service, maxDocuments int, log *zap.SugaredLogger) *Handler {
	return &Handler{
		service:   service,
		documents: document.NewStore(maxDocuments),
		logger:    log,
		ctx:       ctx,
	}
}

// Protocol returns the glsp dispatch table for this handler.
func (h *Handler) Protocol() *protocol.Handler {
	return &protocol.Handler{
		Initialize:             h.Initialize,
		Initialized:            h.Initialized,
		Shutdown:               h.Shutdown,
		SetTrace:               h.SetTrace,
		TextDocumentDidOpen:    h.TextDocumentDidOpen,
		TextDocumentDidChange:  h.TextDocumentDidChange,
		TextDocumentDidClose:   h.TextDocumentDidClose,
		TextDocumentCompletion: h.TextDocumentCompletion,
		TextDocumentHover:      h.TextDocumentHover,
		TextDocumentFormatting: h.TextDocumentFormatting,
	}
}

// Initialize handles LSP initialize request
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	h.logger.Infow("LSP client initializing",
		"client", params.ClientInfo,
		"capabilities", "completion, hover, formatting",
	)

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities := protocol.ServerCapabilities{
		CompletionProvider: &protocol.CompletionOptions{
			TriggerCharacters: TriggerCharacters,
		},
		HoverProvider:              &protocol.HoverOptions{},
		DocumentFormattingProvider: true,
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: ptr(true),
			Change:    &syncKind,
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: ptr(version.Get().ServerVersion()),
		},
	}, nil
}

// Initialized is called after client receives InitializeResult
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	h.logger.Infow("LSP client initialized successfully")
	return nil
}

// Shutdown handles LSP shutdown request
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	h.logger.Infow("LSP client shutting down", "open_documents", h.documents.Len())
	return nil
}

// SetTrace accepts trace level changes; server logging is configured by flags.
func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	h.logger.Debugw("Trace level change ignored", "value", params.Value)
	return nil
}

// TextDocumentDidOpen handles document open notifications
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	doc := document.New(uri, params.TextDocument.Text, params.TextDocument.Version)

	if evicted := h.documents.Put(doc); evicted != "" {
		h.logger.Infow("Document cache limit reached, evicted oldest document",
			"evicted_uri", evicted,
			"new_uri", uri,
		)
	}

	h.logger.Debugw("Document opened",
		logger.FieldURI, uri,
		logger.FieldLength, len(params.TextDocument.Text),
		logger.FieldVersion, params.TextDocument.Version,
	)
	return nil
}

// TextDocumentDidChange handles document change notifications. Full sync is
// advertised, but ranged changes are applied too.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)

	doc, ok := h.documents.Get(uri)
	if !ok {
		doc = document.New(uri, "", 0)
	}
	text := doc.Text
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			cur := document.FromText(text)
			start := cur.Offset(fromProtocolPosition(c.Range.Start))
			end := cur.Offset(fromProtocolPosition(c.Range.End))
			if end < start {
				start, end = end, start
			}
			text = text[:start] + c.Text + text[end:]
		}
	}
	h.documents.Put(document.New(uri, text, params.TextDocument.Version))

	h.logger.Debugw("Document changed",
		logger.FieldURI, uri,
		"changes", len(params.ContentChanges),
		logger.FieldVersion, params.TextDocument.Version,
	)
	return nil
}

// TextDocumentDidClose handles document close notifications
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	h.documents.Delete(uri)
	h.logger.Debugw("Document closed", logger.FieldURI, uri)
	return nil
}

// TextDocumentCompletion provides context-aware completions
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (result any, err error) {
	// Panic recovery: if completion logic panics, return empty list instead of crashing
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("Panic in completion handler",
				"panic", r,
				logger.FieldURI, params.TextDocument.URI,
			)
			result = []protocol.CompletionItem{}
			err = nil
		}
	}()

	doc, ok := h.documents.Get(string(params.TextDocument.URI))
	if !ok {
		return []protocol.CompletionItem{}, nil
	}

	items, err := h.service.Complete(h.ctx, lsp.CompletionRequest{
		Document: doc,
		Position: fromProtocolPosition(params.Position),
	})
	if err != nil {
		h.logger.Errorw("Completion error", logger.FieldError, err)
		return nil, err
	}

	completionItems := make([]protocol.CompletionItem, len(items))
	for i, item := range items {
		completionItems[i] = toCompletionItem(item)
	}

	h.logger.Debugw("LSP completion result", logger.FieldCount, len(completionItems))
	return completionItems, nil
}

// TextDocumentHover provides hover information
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (result *protocol.Hover, err error) {
	// Panic recovery: if hover logic panics, return nil instead of crashing
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("Panic in hover handler",
				"panic", r,
				logger.FieldURI, params.TextDocument.URI,
			)
			result = nil
			err = nil
		}
	}()

	doc, ok := h.documents.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}

	hv, err := h.service.Hover(h.ctx, doc, fromProtocolPosition(params.Position))
	if err != nil || hv == nil {
		return nil, nil // Silently fail for hover
	}

	rng := toProtocolRange(hv.Range)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: hv.Markdown,
		},
		Range: &rng,
	}, nil
}

// TextDocumentFormatting handles document formatting requests
func (h *Handler) TextDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) (result []protocol.TextEdit, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("Panic in formatting handler", "panic", r, logger.FieldURI, params.TextDocument.URI)
			result = []protocol.TextEdit{}
			err = nil
		}
	}()

	uri := string(params.TextDocument.URI)
	doc, ok := h.documents.Get(uri)
	if !ok {
		return []protocol.TextEdit{}, nil
	}

	edits, err := h.service.Format(h.ctx, doc)
	if err != nil {
		h.logger.Errorw("Format failed", logger.FieldError, err, logger.FieldURI, uri)
		return []protocol.TextEdit{}, nil
	}
	return toTextEdits(edits), nil
}

// Helper functions

func fromProtocolPosition(p protocol.Position) document.Position {
	return document.Position{Line: int(p.Line), Character: int(p.Character)}
}

func toProtocolPosition(p document.Position) protocol.Position {
	return protocol.Position{Line: uint32(p.Line), Character: uint32(p.Character)}
}

func toProtocolRange(r document.Range) protocol.Range {
	return protocol.Range{Start: toProtocolPosition(r.Start), End: toProtocolPosition(r.End)}
}

func toTextEdits(edits []format.TextEdit) []protocol.TextEdit {
	out := make([]protocol.TextEdit, len(edits))
	for i, e := range edits {
		out[i] = protocol.TextEdit{Range: toProtocolRange(e.Range), NewText: e.NewText}
	}
	return out
}

func toCompletionItem(c completion.Candidate) protocol.CompletionItem {
	item := protocol.CompletionItem{
		Label:      c.Label,
		Kind:       mapCompletionKind(c.Kind),
		Detail:     stringPtrOrNil(c.Detail),
		InsertText: stringPtrOrNil(c.InsertText),
	}
	if c.Snippet {
		item.InsertTextFormat = ptr(protocol.InsertTextFormatSnippet)
	}
	if c.Documentation != "" {
		item.Documentation = protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: c.Documentation,
		}
	}
	return item
}

func ptr[T any](v T) *T {
	return &v
}

func stringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// mapCompletionKind maps candidate kinds to LSP CompletionItemKind
func mapCompletionKind(kind completion.Kind) *protocol.CompletionItemKind {
	var k protocol.CompletionItemKind
	switch kind {
	case completion.KindKeyword:
		k = protocol.CompletionItemKindKeyword
	case completion.KindGlobal:
		k = protocol.CompletionItemKindVariable
	case completion.KindFunction:
		k = protocol.CompletionItemKindFunction
	case completion.KindMethod:
		k = protocol.CompletionItemKindMethod
	default:
		k = protocol.CompletionItemKindText
	}
	return &k
}
