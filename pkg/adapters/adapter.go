package adapters

import (
	"os/exec"

	"github.com/arthur-debert/aidot/pkg/conflict"
	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/types"
)

// Adapter is the contract every target tool implements
type Adapter interface {
	// Name is the human readable tool name
	Name() string
	// ID is the short identifier used on the command line
	ID() string
	// Supports reports whether the adapter has a mapping for section
	Supports(section types.Section) bool
	// Mappings returns the section table
	Mappings() []Mapping
	// Detect checks targetDir and the search path for signs of the tool
	Detect(env *Env, targetDir string) bool
	// Scan computes the pending changes without touching the filesystem
	Scan(env *Env, preset *types.Preset, targetDir string) (*types.ScanResult, error)
	// Apply writes the preset, resolving collisions through mode
	Apply(env *Env, preset *types.Preset, targetDir string, mode *conflict.Mode) (*types.ApplyResult, error)
}

// Env carries the collaborators shared by every adapter call in one run
type Env struct {
	FS      types.FS
	Console conflict.Console
	// LookPath finds executables; exec.LookPath in production
	LookPath func(file string) (string, error)
}

// NewEnv returns an environment on the real filesystem
func NewEnv(console conflict.Console) *Env {
	return &Env{
		FS:       filesystem.NewOS(),
		Console:  console,
		LookPath: exec.LookPath,
	}
}
