package main

import (
	"fmt"
	"os"

	"github.com/ppiankov/azspectre/internal/commands"
)

// Overridden by GoReleaser ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := commands.Execute(version, commit, date); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
