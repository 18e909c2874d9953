package source

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/arthur-debert/aidot/pkg/config"
	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/logging"
	"github.com/arthur-debert/aidot/pkg/paths"
	"github.com/arthur-debert/aidot/pkg/types"
)

// Kind says how a source argument was resolved
type Kind int

const (
	KindLocal Kind = iota
	KindRegistered
	KindGit
)

func (k Kind) String() string {
	switch k {
	case KindRegistered:
		return "registered"
	case KindGit:
		return "git"
	default:
		return "local"
	}
}

// Resolved is a preset source ready to load
type Resolved struct {
	Input string
	Kind  Kind
	// Name is the registry or cache name; empty for local directories
	Name string
	URL  string
	// Dir is the preset directory, including any subdirectory
	Dir string
}

// Resolver resolves source arguments against the filesystem, the
// registry and the cache
type Resolver struct {
	FS     types.FS
	Config *config.Config
	Paths  paths.Paths
	Git    GitClient
	// Now defaults to time.Now
	Now func() time.Time
}

// Resolve finds the preset directory for input
func (r *Resolver) Resolve(ctx context.Context, input string) (*Resolved, error) {
	logger := logging.GetLogger("source")
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, aierrors.New(aierrors.ErrInvalidInput, "no preset source given")
	}

	// 1. A directory on disk
	if dir := paths.ExpandHome(input); filesystem.IsDir(r.FS, dir) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			abs = dir
		}
		logger.Debug().Str("dir", abs).Msg("Resolved local preset")
		return &Resolved{Input: input, Kind: KindLocal, Dir: abs}, nil
	}

	// 2. A registered repository, optionally with a subdirectory
	if !config.IsGitURL(input) && r.Config != nil {
		name, sub, _ := strings.Cut(filepath.ToSlash(input), "/")
		if repo, ok := r.Config.Get(name); ok {
			root, err := r.repositoryDir(ctx, repo)
			if err != nil {
				return nil, err
			}
			dir := filepath.Join(root, filepath.FromSlash(sub))
			if !filesystem.IsDir(r.FS, dir) {
				return nil, aierrors.Newf(aierrors.ErrPresetNotFound, "%s is not a directory in repository '%s'", sub, name).
					WithDetail("dir", dir)
			}
			logger.Debug().Str("repository", name).Str("dir", dir).Msg("Resolved registered preset")
			return &Resolved{Input: input, Kind: KindRegistered, Name: repo.Name, URL: repo.URL, Dir: dir}, nil
		}
	}

	// 3. A git URL
	if config.IsGitURL(input) {
		name := CacheName(input)
		dir, err := r.fetch(ctx, name, input)
		if err != nil {
			return nil, err
		}
		return &Resolved{Input: input, Kind: KindGit, Name: name, URL: input, Dir: dir}, nil
	}

	return nil, aierrors.Newf(aierrors.ErrSourceResolve,
		"cannot resolve '%s': not a directory, a registered repository or a git URL", input).
		WithDetail("input", input)
}

func (r *Resolver) repositoryDir(ctx context.Context, repo *config.Repository) (string, error) {
	if repo.SourceType != config.SourceGit {
		dir := paths.ExpandHome(repo.URL)
		if !filesystem.IsDir(r.FS, dir) {
			return "", aierrors.Newf(aierrors.ErrPresetNotFound, "repository '%s' points to missing directory %s", repo.Name, dir)
		}
		return dir, nil
	}
	dir, err := r.fetch(ctx, repo.Name, repo.URL)
	if err != nil {
		return "", err
	}
	r.Config.MarkCached(repo.Name, r.now())
	return dir, nil
}

// fetch clones url into the cache on first use and updates it afterwards.
// A failed update falls back to the cached copy.
func (r *Resolver) fetch(ctx context.Context, name, url string) (string, error) {
	logger := logging.GetLogger("source").With().Str("repository", name).Logger()
	dir := r.Paths.RepoCacheDir(name)

	if r.Git == nil {
		return "", aierrors.New(aierrors.ErrGit, "git support is not available")
	}

	if filesystem.IsDir(r.FS, filepath.Join(dir, ".git")) {
		if err := r.Git.Update(ctx, dir); err != nil {
			logger.Warn().Err(err).Msg("Update failed, using cached copy")
		}
		return dir, nil
	}

	if err := r.FS.MkdirAll(filepath.Dir(dir), filesystem.DirPerm); err != nil {
		return "", aierrors.Wrapf(err, aierrors.ErrDirCreate, "cannot create cache directory")
	}
	logger.Info().Str("url", url).Msg("Cloning preset repository")
	if err := r.Git.Clone(ctx, url, dir); err != nil {
		_ = r.FS.RemoveAll(dir)
		return "", err
	}
	return dir, nil
}

// Update refreshes the cached clone of a registered git repository
func (r *Resolver) Update(ctx context.Context, name string) error {
	repo, ok := r.Config.Get(name)
	if !ok {
		return aierrors.Newf(aierrors.ErrNotFound, "repository '%s' not found", name)
	}
	if repo.SourceType != config.SourceGit {
		return nil
	}
	if _, err := r.fetch(ctx, repo.Name, repo.URL); err != nil {
		return err
	}
	r.Config.MarkCached(repo.Name, r.now())
	return nil
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// CacheName derives a directory name for an unregistered git URL
func CacheName(url string) string {
	name := url
	for _, prefix := range []string{"https://", "http://", "ssh://", "git://", "git@"} {
		name = strings.TrimPrefix(name, prefix)
	}
	name = strings.TrimSuffix(strings.TrimSuffix(name, "/"), ".git")
	name = unsafeNameChars.ReplaceAllString(name, "-")
	return "url-" + strings.Trim(name, "-.")
}
