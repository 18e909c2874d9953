package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/aidot/cmd/aidot"
	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/style"
)

func main() {
	rootCmd := aidot.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))

		// Usage errors get the full help, runtime failures do not
		if aierrors.GetErrorCode(err) == aierrors.ErrUnknown {
			fmt.Fprintln(os.Stderr)
			_ = rootCmd.Help()
		}

		os.Exit(1)
	}
}
