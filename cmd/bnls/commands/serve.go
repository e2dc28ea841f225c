package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnlang/bnls/config"
	"github.com/bnlang/bnls/langserver"
	"github.com/bnlang/bnls/logger"
	"github.com/bnlang/bnls/lsp"
)

func newServeCmd(st *state) *cobra.Command {
	var (
		transport string
		address   string
		debug     bool
	)

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server", "lsp"},
		Short:   "Run the language server",
		Long: `Run the Bnlang language server.

The default transport is stdio, which editors spawn directly. Use tcp for
editors that connect to a running server and websocket for browser editors.
Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := st.service()
			if err != nil {
				return err
			}

			opts := langserver.Options{
				Transport:      cfg.Server.Transport,
				Address:        cfg.Server.Address,
				MaxDocuments:   cfg.Server.MaxDocuments,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				Debug:          debug,
			}
			if cmd.Flags().Changed("transport") {
				opts.Transport = transport
			}
			if cmd.Flags().Changed("address") {
				opts.Address = address
			}

			ctx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Vocabulary.Watch {
				w, err := st.watch(svc)
				if err != nil {
					logger.Warnw("Config watching disabled", logger.FieldError, err)
				} else {
					defer w.Stop()
				}
			}

			log := logger.ComponentLogger("server")
			log.Infow("Starting language server",
				logger.FieldTransport, opts.Transport,
				logger.FieldAddress, opts.Address,
			)
			return langserver.New(svc, opts, log).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", config.DefaultTransport, "Transport: stdio, tcp or websocket")
	cmd.Flags().StringVar(&address, "address", config.DefaultAddress, "Listen address for tcp and websocket")
	cmd.Flags().BoolVar(&debug, "debug-rpc", false, "Log JSON-RPC traffic")
	return cmd
}

// watch reloads the vocabulary when config or extension files change
func (st *state) watch(svc *lsp.Service) (*config.Watcher, error) {
	paths := st.loadPaths()
	w, err := config.NewWatcher(st.loaded, func() (*config.Loaded, error) {
		return config.LoadFrom(paths)
	})
	if err != nil {
		return nil, err
	}
	w.OnReload(func(l *config.Loaded) error {
		return svc.ReloadWith(l.Config.Vocabulary.Extensions)
	})
	w.Start()
	return w, nil
}

// runContext is the command context, or Background when run outside Execute
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
