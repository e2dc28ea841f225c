// Package display renders command output as indented JSON or pterm tables.
package display

import (
	"encoding/json"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bnlang/bnls/errors"
)

// ShouldOutputJSON reports whether the command's --json flag is set
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		return false
	}
	on, _ := cmd.Flags().GetBool("json")
	return on
}

// JSON writes v to w as indented JSON followed by a newline
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return errors.Wrap(enc.Encode(v), "failed to encode JSON")
}

// Table renders rows under a header row
func Table(w io.Writer, header []string, rows [][]string) error {
	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}
