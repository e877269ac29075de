package main

import (
	"fmt"
	"os"
)

// Version is set by the build system via ldflags.
var Version = "v0.0.0-dev"

func main() {
	if err := getRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
