package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bnlang/bnls/config"
	"github.com/bnlang/bnls/display"
	"github.com/bnlang/bnls/errors"
)

func newConfigCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and validate bnls configuration",
		Long: `Display and check bnls configuration.

Configuration sources (later overrides earlier):
  1. Built-in defaults
  2. System config (` + config.SystemPath + `)
  3. User config (~/.bnls/config.toml)
  4. Project config (nearest bnls.toml, searching up from the working directory)
  5. Environment variables (BNLS_* prefix, e.g. BNLS_SERVER_TRANSPORT)

Examples:
  bnls config show                   # effective configuration as TOML
  bnls config show --format json
  bnls config get server.transport
  bnls config validate
  bnls config where                  # which file set each value`,
	}
	cmd.AddCommand(
		newConfigShowCmd(st),
		newConfigGetCmd(st),
		newConfigValidateCmd(st),
		newConfigWhereCmd(st),
	)
	return cmd
}

func newConfigShowCmd(st *state) *cobra.Command {
	var outputFormat string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := st.config()
			if err != nil {
				return err
			}
			return loaded.Encode(cmd.OutOrStdout(), outputFormat)
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "format", "f", config.FormatTOML, "Output format: toml, json, yaml")
	return cmd
}

func newConfigGetCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value by dotted key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := st.config()
			if err != nil {
				return err
			}
			value, err := loaded.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigValidateCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and its extension files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := st.config()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			for _, key := range loaded.Unknown {
				pterm.Warning.WithWriter(out).Printfln("unknown key %s (ignored)", key)
			}
			if err := loaded.Config.Validate(); err != nil {
				return errors.Wrap(err, "configuration validation failed")
			}
			for _, path := range loaded.Config.Vocabulary.Extensions {
				if _, err := os.Stat(path); err != nil {
					return errors.WithHint(
						errors.NewNotFoundError("vocabulary extension %s does not exist", path),
						"fix vocabulary.extensions")
				}
			}
			if _, _, err := st.service(); err != nil {
				return errors.Wrap(err, "vocabulary extensions are invalid")
			}

			pterm.Success.WithWriter(out).Println("Configuration is valid")
			return nil
		},
	}
}

func newConfigWhereCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		Long:  "List the configuration files checked, which exist, and the source of every setting.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := st.config()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var files [][]string
			for _, f := range []struct {
				source config.Source
				path   string
			}{
				{config.SourceSystem, loaded.Paths.System},
				{config.SourceUser, loaded.Paths.User},
				{config.SourceProject, loaded.Paths.Project},
			} {
				status := "missing"
				switch {
				case f.path == "":
					status = "not found"
				case fileExists(f.path):
					status = "loaded"
				}
				files = append(files, []string{string(f.source), f.path, status})
			}
			if err := display.Table(out, []string{"Layer", "Path", "Status"}, files); err != nil {
				return err
			}
			fmt.Fprintln(out)

			var settings [][]string
			for _, s := range loaded.Settings() {
				settings = append(settings, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.Path})
			}
			return display.Table(out, []string{"Key", "Value", "Source", "From"}, settings)
		},
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
