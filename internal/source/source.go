// Package source acquires a blueprint collection: a local directory or a shallow git clone,
// plus its registry file.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/aretw0/kopye/internal/blueprint"
	git "github.com/go-git/go-git/v5"
)

// gitRef matches the references cloned instead of read from disk.
var gitRef = regexp.MustCompile(`^(?:` +
	`gh:[^/]+/[^/]+` +
	`|gl:[^/]+/[^/]+` +
	`|git@[A-Za-z0-9._-]+:[^/]+/[^/]+\.git` +
	`|git\+https?://.*` +
	`)$`)

// SourceError reports a failure to acquire a blueprint collection.
type SourceError struct {
	Ref string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source '%s': %v", e.Ref, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Source is a resolved blueprint collection.
type Source struct {
	Ref      string
	Dir      string
	Registry *blueprint.Registry

	cloned bool
}

// Cloner fetches url into dir.
type Cloner interface {
	Clone(ctx context.Context, url, dir string) error
}

// ClonerFunc adapts a function to the Cloner interface.
type ClonerFunc func(ctx context.Context, url, dir string) error

func (f ClonerFunc) Clone(ctx context.Context, url, dir string) error { return f(ctx, url, dir) }

// GitCloner performs shallow clones with go-git.
type GitCloner struct{}

func (GitCloner) Clone(ctx context.Context, url, dir string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   url,
		Depth: 1,
	})
	return err
}

type config struct {
	cloner Cloner
	logger *slog.Logger
}

// Option configures Resolve.
type Option func(*config)

// WithCloner replaces the git implementation.
func WithCloner(c Cloner) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.cloner = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// IsGit reports whether ref designates a remote repository.
func IsGit(ref string) bool {
	return gitRef.MatchString(ref)
}

// ExpandURL turns a git reference into a clone URL.
func ExpandURL(ref string) (string, error) {
	switch {
	case strings.HasPrefix(ref, "gh:"):
		return "https://github.com/" + strings.TrimPrefix(ref, "gh:") + ".git", nil
	case strings.HasPrefix(ref, "gl:"):
		return "https://gitlab.com/" + strings.TrimPrefix(ref, "gl:") + ".git", nil
	case strings.HasPrefix(ref, "git+"):
		return strings.TrimPrefix(ref, "git+"), nil
	case strings.HasPrefix(ref, "git@"):
		return ref, nil
	}
	return "", fmt.Errorf("invalid git prefix in '%s' (valid prefixes: gh:, gl:, git@, git+http(s)://)", ref)
}

// Resolve acquires ref and loads its registry. Remote references are cloned into a
// temporary directory that Cleanup removes.
func Resolve(ctx context.Context, ref string, opts ...Option) (*Source, error) {
	cfg := config{
		cloner: GitCloner{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	src := &Source{Ref: ref, Dir: ref}
	if IsGit(ref) {
		url, err := ExpandURL(ref)
		if err != nil {
			return nil, &SourceError{Ref: ref, Err: err}
		}
		dir, err := os.MkdirTemp("", "kopye-*")
		if err != nil {
			return nil, &SourceError{Ref: ref, Err: err}
		}
		src.Dir, src.cloned = dir, true

		cfg.logger.Debug("cloning blueprint source", "url", url, "dir", dir)
		if err := cfg.cloner.Clone(ctx, url, dir); err != nil {
			src.Cleanup()
			return nil, &SourceError{Ref: ref, Err: fmt.Errorf("unable to clone %s: %w", url, err)}
		}
	} else if info, err := os.Stat(ref); err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("not a directory")
		}
		return nil, &SourceError{Ref: ref, Err: err}
	}

	reg, err := blueprint.LoadRegistry(src.Dir)
	if err != nil {
		src.Cleanup()
		return nil, err
	}
	src.Registry = reg
	return src, nil
}

// Blueprint looks up name and returns its entry and directory.
func (s *Source) Blueprint(name string) (blueprint.Entry, string, error) {
	entry, err := s.Registry.Lookup(name)
	if err != nil {
		return blueprint.Entry{}, "", err
	}
	dir, err := s.Registry.Dir(entry)
	if err != nil {
		return blueprint.Entry{}, "", err
	}
	return entry, dir, nil
}

// Cleanup removes a temporary clone. It is safe to call on local sources.
func (s *Source) Cleanup() {
	if s != nil && s.cloned {
		_ = os.RemoveAll(s.Dir)
		s.cloned = false
	}
}
