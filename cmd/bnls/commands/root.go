// Package commands implements the bnls command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/bnlang/bnls/completion"
	"github.com/bnlang/bnls/config"
	"github.com/bnlang/bnls/errors"
	"github.com/bnlang/bnls/logger"
	"github.com/bnlang/bnls/lsp"
)

// state is shared by every command of one root
type state struct {
	configPath string
	jsonLogs   bool
	verbosity  int

	loaded  *config.Loaded
	loadErr error
}

// NewRootCmd builds the bnls command tree
func NewRootCmd() *cobra.Command {
	st := &state{}

	root := &cobra.Command{
		Use:   "bnls",
		Short: "Bnlang language server and editor tooling",
		Long: `bnls - editor tooling for Bnlang, the bilingual (English/Bengali) JavaScript dialect.

It serves completions, keyword hover and formatting over the Language Server
Protocol and exposes the same features on the command line.

Examples:
  bnls serve                          # LSP over stdio
  bnls serve --transport websocket    # LSP for browser editors
  bnls complete app.bnl --line 3 --col 8
  bnls hover jodi                     # show the alias group of a keyword
  bnls vocab show --format table
  bnls config where`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.setup(cmd)
		},
	}

	root.PersistentFlags().CountVarP(&st.verbosity, "verbose", "v", "Increase log verbosity (-v, -vv, -vvv)")
	root.PersistentFlags().BoolVar(&st.jsonLogs, "json-logs", false, "Write logs as JSON")
	root.PersistentFlags().StringVar(&st.configPath, "config", "", "Project config file (default: nearest bnls.toml)")

	root.AddCommand(
		newServeCmd(st),
		newCompleteCmd(st),
		newHoverCmd(st),
		newFormatCmd(),
		newVocabCmd(st),
		newConfigCmd(st),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and starts the logger. A broken config does not
// stop commands that never read it; config() reports the error to those that do.
func (st *state) setup(cmd *cobra.Command) error {
	paths := config.DefaultPaths()
	if st.configPath != "" {
		paths.Project = st.configPath
	}
	st.loaded, st.loadErr = config.LoadFrom(paths)

	jsonLogs := st.jsonLogs
	if !cmd.Flags().Changed("json-logs") && st.loaded != nil {
		jsonLogs = st.loaded.Config.Log.JSON
	}
	if err := logger.Initialize(jsonLogs, st.verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	return nil
}

// config returns the loaded configuration or the error that prevented it
func (st *state) config() (*config.Loaded, error) {
	if st.loadErr != nil {
		return nil, st.loadErr
	}
	return st.loaded, nil
}

// loadPaths returns the paths used for the initial load, for reloads
func (st *state) loadPaths() config.Paths {
	if st.loaded != nil {
		return st.loaded.Paths
	}
	return config.DefaultPaths()
}

// service builds a language service from the loaded configuration
func (st *state) service() (*lsp.Service, *config.Config, error) {
	loaded, err := st.config()
	if err != nil {
		return nil, nil, err
	}
	cfg := loaded.Config
	if err := cfg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid configuration")
	}
	svc, err := lsp.NewService(serviceOptions(cfg), logger.ComponentLogger("lsp"))
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

func serviceOptions(cfg *config.Config) lsp.Options {
	return lsp.Options{
		Completion: completion.Options{
			FreeSymbols:     cfg.Completion.FreeSymbols,
			MinSymbolLength: cfg.Completion.MinSymbolLength,
		},
		Extensions: cfg.Vocabulary.Extensions,
	}
}
