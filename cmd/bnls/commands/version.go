package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnlang/bnls/display"
	"github.com/bnlang/bnls/version"
	"github.com/bnlang/bnls/vocab"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show bnls version information",
		Long:  `Display version, build time, commit hash, vocabulary version and platform information.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			vocabVersion := vocab.Default().Version()
			out := cmd.OutOrStdout()

			if display.ShouldOutputJSON(cmd) {
				return display.JSON(out, struct {
					version.Info
					Vocabulary string `json:"vocabulary"`
				}{info, vocabVersion})
			}
			fmt.Fprintln(out, info.String())
			fmt.Fprintf(out, "Vocabulary: %s\n", vocabVersion)
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
			return nil
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
	return cmd
}
