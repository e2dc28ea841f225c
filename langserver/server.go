package langserver

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	glspserver "github.com/tliron/glsp/server"
	"go.uber.org/zap"

	"github.com/bnlang/bnls/errors"
	"github.com/bnlang/bnls/logger"
	"github.com/bnlang/bnls/lsp"
)

// Transports accepted by Options.Transport.
const (
	TransportStdio     = "stdio"
	TransportTCP       = "tcp"
	TransportWebSocket = "websocket"
)

// Options configure a Server.
type Options struct {
	Transport      string
	Address        string   // listen address for tcp and websocket
	MaxDocuments   int      // open documents cached per session
	AllowedOrigins []string // origin prefixes accepted for websocket upgrades
	Debug          bool     // log JSON-RPC traffic through glsp
}

// Server runs the language service on a transport.
type Server struct {
	service *lsp.Service
	opts    Options
	logger  *zap.SugaredLogger

	upgrader websocket.Upgrader
}

// New creates a server for service.
func New(service *lsp.Service, opts Options, log *zap.SugaredLogger) *Server {
	s := &Server{service: service, opts: opts, logger: log}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	return s
}

// Run serves until the transport closes or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	switch s.opts.Transport {
	case TransportStdio, "":
		return s.runStdio(ctx)
	case TransportTCP:
		return s.runTCP(ctx)
	case TransportWebSocket:
		return s.runWebSocket(ctx)
	default:
		return errors.WithHint(
			errors.NewInvalidRequestError("unknown transport %q", s.opts.Transport),
			"use stdio, tcp or websocket")
	}
}

// newSession builds a glsp server around a fresh handler with its own
// document cache.
func (s *Server) newSession(ctx context.Context, transport string) (*glspserver.Server, *zap.SugaredLogger) {
	session := uuid.New().String()
	log := logger.ChildLogger(s.logger, logger.FieldSession, session, logger.FieldTransport, transport)

	handler := NewHandler(ctx, s.service, s.opts.MaxDocuments, log)
	srv := glspserver.NewServer(handler.Protocol(), ServerName, s.opts.Debug)
	srv.Context = ctx
	return srv, log
}

func (s *Server) runStdio(ctx context.Context) error {
	srv, log := s.newSession(ctx, TransportStdio)
	log.Infow("Serving LSP on stdio")

	done := make(chan error, 1)
	go func() { done <- srv.RunStdio() }()

	select {
	case err := <-done:
		log.Infow("stdio connection closed")
		return err
	case <-ctx.Done():
		return nil
	}
}

func (s *Server) runTCP(ctx context.Context) error {
	// glsp shares one handler across TCP connections
	srv, log := s.newSession(ctx, TransportTCP)
	log.Infow("Serving LSP over TCP", logger.FieldAddress, s.opts.Address)

	done := make(chan error, 1)
	go func() { done <- srv.RunTCP(s.opts.Address) }()

	select {
	case err := <-done:
		return errors.Wrapf(err, "tcp listener on %s", s.opts.Address)
	case <-ctx.Done():
		return nil
	}
}

// Handler returns the HTTP handler that upgrades to an LSP WebSocket session.
// Every path is accepted.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	ws := func(w http.ResponseWriter, r *http.Request) { s.HandleWebSocket(ctx, w, r) }
	mux.HandleFunc("/", ws)
	return mux
}

func (s *Server) runWebSocket(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.opts.Address)
	}
	return s.ServeWebSocket(ctx, ln)
}

// ServeWebSocket accepts WebSocket sessions on ln until ctx is cancelled.
func (s *Server) ServeWebSocket(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Infow("Serving LSP over WebSocket", logger.FieldAddress, ln.Addr().String())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx) // Error ignored: listener is closing either way
	}()

	if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "websocket server failed")
	}
	return nil
}

// HandleWebSocket upgrades HTTP to WebSocket and serves one LSP session
func (s *Server) HandleWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	s.logger.Infow("LSP WebSocket connection request", logger.FieldRemote, r.RemoteAddr)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorw("Failed to upgrade WebSocket", logger.FieldError, err)
		return
	}

	srv, log := s.newSession(ctx, TransportWebSocket)
	log.Infow("Serving LSP over WebSocket", logger.FieldRemote, r.RemoteAddr)

	// Blocks until the connection closes
	srv.ServeWebSocket(conn)

	log.Infow("LSP WebSocket connection closed", logger.FieldRemote, r.RemoteAddr)
}

// checkOrigin allows requests without an Origin header (native clients) and
// origins matching a configured entry on any port.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.opts.AllowedOrigins {
		if originAllowed(origin, allowed) {
			return true
		}
	}
	s.logger.Warnw("Rejected WebSocket origin", "origin", origin)
	return false
}

// originAllowed matches origin against one allow-list entry. An entry ending
// in "://" admits every origin of that scheme; otherwise the host must match
// exactly, with or without a port.
func originAllowed(origin, allowed string) bool {
	if strings.HasSuffix(allowed, "://") {
		return strings.HasPrefix(origin, allowed)
	}
	return origin == allowed || strings.HasPrefix(origin, allowed+":")
}
