package main

import (
	"fmt"
	"os"

	"github.com/studyscope/studyscope/internal/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "studyscope: %v\n", err)
		os.Exit(1)
	}
}
