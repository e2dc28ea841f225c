package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bnlang/bnls/display"
	"github.com/bnlang/bnls/errors"
	"github.com/bnlang/bnls/vocab"
)

func newVocabCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect the keyword and alias vocabulary",
		Long: `Inspect the vocabulary: keyword alias groups, built-in receivers and their
member aliases, including configured extensions.`,
	}
	cmd.AddCommand(newVocabShowCmd(st), newVocabCheckCmd())
	return cmd
}

func newVocabShowCmd(st *state) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := st.service()
			if err != nil {
				return err
			}
			reg := svc.Registry()
			out := cmd.OutOrStdout()

			switch outputFormat {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(reg.Schema()); err != nil {
					return errors.Wrap(err, "failed to encode vocabulary as yaml")
				}
				return enc.Close()
			case "json":
				return display.JSON(out, reg.Schema())
			case "table":
				return renderVocabTables(out, reg)
			default:
				return errors.WithHint(
					errors.NewInvalidRequestError("unknown format %q", outputFormat),
					"use yaml, json or table")
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml", "Output format: yaml, json, table")
	return cmd
}

func renderVocabTables(out io.Writer, reg *vocab.Registry) error {
	fmt.Fprintf(out, "Vocabulary %s\n\n", reg.Version())

	var keywords [][]string
	for _, g := range reg.KeywordGroups() {
		keywords = append(keywords, []string{g.Concept, strings.Join(g.Spellings, ", ")})
	}
	if err := display.Table(out, []string{"Concept", "Spellings"}, keywords); err != nil {
		return err
	}
	fmt.Fprintln(out)

	var receivers [][]string
	for _, r := range reg.Receivers() {
		receivers = append(receivers, []string{
			string(r.Category),
			string(r.Kind),
			strings.Join(r.Aliases, ", "),
			strconv.Itoa(len(r.Members)),
		})
	}
	return display.Table(out, []string{"Receiver", "Kind", "Aliases", "Members"}, receivers)
}

func newVocabCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <extension.toml>...",
		Short: "Check vocabulary extension files",
		Long: `Check that extension files parse, match the built-in vocabulary version and
introduce no ambiguous spellings, alone and applied together in order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := vocab.BuiltinSchema()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var (
				exts   []*vocab.Extension
				failed []error
			)
			for _, path := range args {
				ext, err := vocab.LoadExtensionFile(path)
				if err == nil {
					_, err = vocab.Extend(base, ext)
				}
				if err != nil {
					pterm.Error.WithWriter(out).Printfln("%s: %v", path, err)
					failed = append(failed, err)
					continue
				}
				pterm.Success.WithWriter(out).Printfln("%s: %s", path, ext.Name)
				exts = append(exts, ext)
			}
			if len(failed) > 0 {
				return errors.Newf("%d of %d extensions failed", len(failed), len(args))
			}

			if len(exts) > 1 {
				if _, err := vocab.Extend(base, exts...); err != nil {
					return errors.Wrap(err, "extensions conflict when combined")
				}
				pterm.Success.WithWriter(out).Printfln("%d extensions combine cleanly", len(exts))
			}
			return nil
		},
	}
}
