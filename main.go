// Command raydiant renders a scene with the path tracer described by
// internal/cliapp, taking its nineteen positional arguments directly
// from the command line (spec §6). Exit code 0 on success, 1 and a
// stderr message on any configuration, loading, or render error.
package main

import (
	"fmt"
	"os"

	"github.com/tholcomb/raydiant/internal/cliapp"
)

func main() {
	if err := cliapp.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
