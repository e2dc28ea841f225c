package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bnlang/bnls/document"
	"github.com/bnlang/bnls/errors"
	"github.com/bnlang/bnls/format"
)

func newFormatCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Format a Bnlang file",
		Long: `Format a file and print the result. Line endings follow the file's first
line break. With --write the file is rewritten in place when it changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			text, err := readSource(cmd, path)
			if err != nil {
				return err
			}
			doc := document.FromText(text)
			formatted := format.Text(doc)

			if !write || path == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), formatted)
				return err
			}

			if !format.Changed(doc) {
				pterm.Info.WithWriter(cmd.OutOrStdout()).Printfln("%s already formatted", path)
				return nil
			}
			info, err := os.Stat(path)
			if err != nil {
				return errors.Wrapf(err, "failed to stat %s", path)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return errors.Wrapf(err, "failed to write %s", path)
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Formatted %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite the file in place")
	return cmd
}
