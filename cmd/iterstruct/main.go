// Command iterstruct generates field introspection methods for Go structs.
//
// Typical use is through go generate:
//
//	//go:generate go run github.com/roach88/iterstruct/cmd/iterstruct generate
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/iterstruct/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// ExitErrors have already been reported by the command.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
