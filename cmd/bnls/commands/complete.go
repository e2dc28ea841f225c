package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnlang/bnls/display"
	"github.com/bnlang/bnls/document"
	"github.com/bnlang/bnls/errors"
	"github.com/bnlang/bnls/lsp"
)

func newCompleteCmd(st *state) *cobra.Command {
	var line, col int

	cmd := &cobra.Command{
		Use:   "complete <file>",
		Short: "Print completion candidates at a cursor",
		Long: `Print the completion candidates for a cursor in a file, as an editor would
receive them. Line and column are 1-based; the column counts UTF-16 units.
Use - to read the file from stdin.`,
		Example: `  bnls complete app.bnl --line 3 --col 9
  echo 'Math.' | bnls complete - --line 1 --col 6 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if line < 1 || col < 1 {
				return errors.WithHint(
					errors.NewInvalidRequestError("--line and --col must be >= 1, got %d:%d", line, col),
					"positions are 1-based")
			}
			text, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			svc, _, err := st.service()
			if err != nil {
				return err
			}

			items, err := svc.Complete(runContext(cmd), lsp.CompletionRequest{
				Document: document.New(args[0], text, 0),
				Position: document.Position{Line: line - 1, Character: col - 1},
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if display.ShouldOutputJSON(cmd) {
				return display.JSON(out, items)
			}

			rows := make([][]string, len(items))
			for i, c := range items {
				rows[i] = []string{c.Label, string(c.Kind), c.Detail, c.InsertText}
			}
			return display.Table(out, []string{"Label", "Kind", "Detail", "Insert"}, rows)
		},
	}

	cmd.Flags().IntVarP(&line, "line", "l", 1, "Cursor line (1-based)")
	cmd.Flags().IntVarP(&col, "col", "c", 1, "Cursor column (1-based)")
	cmd.Flags().BoolP("json", "j", false, "Output candidates as JSON")
	return cmd
}

// readSource reads a file argument, or stdin for "-"
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(err, "failed to read stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	return string(data), nil
}
