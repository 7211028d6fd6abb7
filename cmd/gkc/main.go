// Command gkc compiles the TypeScript packages of a workspace to
// JavaScript.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/gkc/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Run failures were already reported by the command's formatter.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
