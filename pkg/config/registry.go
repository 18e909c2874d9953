package config

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	aierrors "github.com/arthur-debert/aidot/pkg/errors"
)

// SourceType says how a repository is fetched
type SourceType string

const (
	SourceLocal SourceType = "local"
	SourceGit   SourceType = "git"
)

// Repository is a registered preset source
type Repository struct {
	Name        string     `koanf:"name" toml:"name"`
	URL         string     `koanf:"url" toml:"url"`
	SourceType  SourceType `koanf:"source_type" toml:"source_type"`
	Default     bool       `koanf:"default" toml:"default"`
	Description string     `koanf:"description" toml:"description,omitempty"`
	// CachedAt is the RFC 3339 time of the last clone or update
	CachedAt string `koanf:"cached_at" toml:"cached_at,omitempty"`
}

// IsGitURL reports whether url names a git remote
func IsGitURL(url string) bool {
	for _, prefix := range []string{"http://", "https://", "git@", "ssh://", "git://"} {
		if strings.HasPrefix(url, prefix) {
			return true
		}
	}
	return strings.HasSuffix(url, ".git")
}

// InferSourceType picks the source type for url
func InferSourceType(url string) SourceType {
	if IsGitURL(url) {
		return SourceGit
	}
	return SourceLocal
}

func sourceTypeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(SourceType("")) {
			return data, nil
		}
		switch value := SourceType(strings.ToLower(reflect.ValueOf(data).String())); value {
		case "", SourceLocal, SourceGit:
			return value, nil
		default:
			return nil, aierrors.Newf(aierrors.ErrConfigParse, "unknown source_type %q", value)
		}
	}
}

// Add registers repo. Names are unique.
func (c *Config) Add(repo Repository) error {
	repo.Name = strings.TrimSpace(repo.Name)
	if repo.Name == "" || repo.URL == "" {
		return aierrors.New(aierrors.ErrInvalidInput, "repository name and url are required")
	}
	if strings.ContainsAny(repo.Name, `/\`) {
		return aierrors.Newf(aierrors.ErrInvalidInput, "repository name %q must not contain path separators", repo.Name)
	}
	if _, ok := c.Get(repo.Name); ok {
		return aierrors.Newf(aierrors.ErrAlreadyExists, "repository '%s' already exists", repo.Name).
			WithDetail("name", repo.Name)
	}
	if repo.SourceType == "" {
		repo.SourceType = InferSourceType(repo.URL)
	}
	c.Repositories = append(c.Repositories, repo)
	return nil
}

// Remove unregisters the named repository
func (c *Config) Remove(name string) error {
	for i, r := range c.Repositories {
		if r.Name == name {
			c.Repositories = append(c.Repositories[:i], c.Repositories[i+1:]...)
			return nil
		}
	}
	return notFound(name)
}

// SetDefault marks or unmarks the named repository as a default source
func (c *Config) SetDefault(name string, isDefault bool) error {
	r, ok := c.Get(name)
	if !ok {
		return notFound(name)
	}
	r.Default = isDefault
	return nil
}

// MarkCached records that the named repository was fetched at t
func (c *Config) MarkCached(name string, t time.Time) {
	if r, ok := c.Get(name); ok {
		r.CachedAt = t.UTC().Format(time.RFC3339)
	}
}

// Get returns the named repository
func (c *Config) Get(name string) (*Repository, bool) {
	for i := range c.Repositories {
		if c.Repositories[i].Name == name {
			return &c.Repositories[i], true
		}
	}
	return nil, false
}

// Defaults returns the repositories pulled when no preset is named
func (c *Config) Defaults() []Repository {
	var out []Repository
	for _, r := range c.Repositories {
		if r.Default {
			out = append(out, r)
		}
	}
	return out
}

// List returns every registered repository in registration order
func (c *Config) List() []Repository {
	return append([]Repository(nil), c.Repositories...)
}

func notFound(name string) error {
	return aierrors.Newf(aierrors.ErrNotFound, "repository '%s' not found", name).
		WithDetail("name", name)
}
