package main

import (
	"fmt"
	"os"

	"github.com/bnlang/bnls/cmd/bnls/commands"
	"github.com/bnlang/bnls/errors"
	"github.com/bnlang/bnls/logger"
)

func main() {
	defer logger.Cleanup()

	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
