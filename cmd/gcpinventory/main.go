package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/gcpinventory/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := commands.Execute(version, commit, date)
	if err == nil {
		return 0
	}
	var exitErr commands.ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(os.Stderr, "gcpinventory: %v\n", err)
	return 1
}
