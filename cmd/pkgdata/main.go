package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/pkgdata/internal/cli"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

func main() {
	os.Exit(run())
}

// run executes the command tree and returns the process exit code.
// A panic becomes pkgdata.ExitPanic with its stack on stderr.
func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "pkgdata: internal error: %v\n%s", r, debug.Stack())
			code = pkgdata.ExitPanic
		}
	}()

	if os.Getenv("PKGDATA_TEST_PANIC") == "1" {
		panic("PKGDATA_TEST_PANIC is set")
	}

	return pkgdata.ExitCodeForError(cli.Execute())
}
