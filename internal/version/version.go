package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/aidot/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/aidot/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/aidot/internal/version.Date={{.Date}}
)

// String returns the version line printed by --version
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
