package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/aidot/cmd/aidot"
	"github.com/arthur-debert/aidot/internal/version"
)

func main() {
	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer) error {
	rootCmd := aidot.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "AIDOT",
		Section: "1",
		Source:  "aidot " + version.Version,
		Manual:  "aidot manual",
	}
	return doc.GenMan(rootCmd, header, w)
}
