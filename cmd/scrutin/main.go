package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/scrutin/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands render guard and command failures themselves (as
		// ExitError). Anything else - flag parsing, format validation -
		// still needs printing here.
		var ee *cli.ExitError
		if !errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
