package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/fcount/internal/cli"
	"github.com/vvka-141/fcount/pkg/fcount"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(fcount.ExitPanic)
		}
	}()

	if os.Getenv("FCOUNT_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(fcount.ExitCodeForError(err))
	}
}
