package source

import (
	"context"
	"os/exec"
	"strings"

	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/logging"
)

// GitClient performs the git operations needed to cache a preset
type GitClient interface {
	// Clone makes a shallow clone of url into dir
	Clone(ctx context.Context, url, dir string) error
	// Update brings the clone in dir up to date with its remote
	Update(ctx context.Context, dir string) error
}

// ShellGit implements GitClient by running the git executable
type ShellGit struct {
	// Binary defaults to "git"
	Binary string
}

func (g ShellGit) binary() string {
	if g.Binary == "" {
		return "git"
	}
	return g.Binary
}

func (g ShellGit) Clone(ctx context.Context, url, dir string) error {
	return g.run(ctx, "", "clone", "--depth", "1", url, dir)
}

func (g ShellGit) Update(ctx context.Context, dir string) error {
	if err := g.run(ctx, dir, "fetch", "--depth", "1", "origin"); err != nil {
		return err
	}
	return g.run(ctx, dir, "reset", "--hard", "FETCH_HEAD")
}

func (g ShellGit) run(ctx context.Context, dir string, args ...string) error {
	logger := logging.GetLogger("source")

	cmd := exec.CommandContext(ctx, g.binary(), args...) //nolint:gosec // arguments come from the registry or the command line
	cmd.Dir = dir
	cmd.Env = append(cmd.Environ(), "GIT_TERMINAL_PROMPT=0")

	logger.Debug().Strs("args", args).Str("dir", dir).Msg("Running git")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return aierrors.Wrapf(err, aierrors.ErrGit, "git %s failed", args[0]).
			WithDetail("output", strings.TrimSpace(string(output)))
	}
	return nil
}
