package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnlang/bnls/display"
	"github.com/bnlang/bnls/errors"
	"github.com/bnlang/bnls/hover"
)

func newHoverCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hover <word>",
		Short: "Show the alias group of a keyword",
		Long:  "Show every spelling of the keyword concept that word belongs to, as the editor hover does.",
		Example: `  bnls hover if
  bnls hover যদি --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := st.service()
			if err != nil {
				return err
			}

			word := args[0]
			aliases, ok := svc.Engine().Hover.Resolve(word)
			if !ok {
				return errors.WithHint(
					errors.NewNotFoundError("%q is not a Bnlang keyword", word),
					"run 'bnls vocab show --format table' to list keywords")
			}

			out := cmd.OutOrStdout()
			if display.ShouldOutputJSON(cmd) {
				return display.JSON(out, struct {
					Word    string   `json:"word"`
					Aliases []string `json:"aliases"`
				}{word, aliases})
			}
			fmt.Fprintln(out, hover.Markdown(word, aliases))
			return nil
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Output as JSON")
	return cmd
}
