package runtime

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/kopye/internal/blueprint"
	"github.com/aretw0/kopye/internal/metrics"
	"github.com/aretw0/kopye/internal/render"
	"github.com/aretw0/kopye/pkg/domain"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// DefaultTemplateSuffix marks files whose content is rendered.
const DefaultTemplateSuffix = ".tera"

// alwaysIgnored never reaches the output tree.
var alwaysIgnored = []string{".git", ".git/**"}

type buildConfig struct {
	suffix  string
	ignore  []string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// BuildOption configures BuildVFS.
type BuildOption func(*buildConfig)

// WithTemplateSuffix changes the marker extension. Empty keeps the default.
func WithTemplateSuffix(suffix string) BuildOption {
	return func(c *buildConfig) {
		if suffix != "" {
			c.suffix = suffix
		}
	}
}

// WithIgnore skips paths matching any doublestar pattern, relative to the blueprint dir.
func WithIgnore(patterns ...string) BuildOption {
	return func(c *buildConfig) {
		c.ignore = append(c.ignore, patterns...)
	}
}

// WithBuildLogger sets the logger.
func WithBuildLogger(logger *slog.Logger) BuildOption {
	return func(c *buildConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBuildMetrics counts staged entries.
func WithBuildMetrics(m *metrics.Metrics) BuildOption {
	return func(c *buildConfig) {
		c.metrics = m
	}
}

// sourceEntry is one walked path of the blueprint.
type sourceEntry struct {
	rel    string // slash separated, relative to the blueprint dir
	isFile bool
}

// BuildVFS stages the output tree of the blueprint at dir without touching the destination.
//
// Every path component is rendered on its own. A component rendering to blank text removes
// the entry, and for directories the whole subtree. Files whose rendered name ends with the
// template suffix lose the suffix and have their content rendered; other files are copied
// verbatim. Entries are returned sorted by destination.
func BuildVFS(ctx context.Context, dir string, engine render.Engine, data map[string]any, opts ...BuildOption) (*domain.VirtualFS, error) {
	cfg := buildConfig{
		suffix: DefaultTemplateSuffix,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	patterns := append(slices.Clone(alwaysIgnored), cfg.ignore...)
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
	}

	sources, err := walkBlueprint(ctx, dir, patterns)
	if err != nil {
		return nil, err
	}

	vfs := &domain.VirtualFS{}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dest, err := renderPath(src.rel, engine, data)
		if err != nil {
			return nil, err
		}
		if dest == "" {
			cfg.logger.Debug("path elided", "path", src.rel)
			continue
		}

		entry := domain.VirtualEntry{IsFile: src.isFile}
		if src.isFile {
			dest, entry.Content, err = stageFile(filepath.Join(dir, filepath.FromSlash(src.rel)), src.rel, dest, cfg.suffix, engine, data)
			if err != nil {
				return nil, err
			}
		}
		entry.Destination = dest

		cfg.metrics.Staged(entry.IsFile)
		vfs.Entries = append(vfs.Entries, entry)
	}

	slices.SortFunc(vfs.Entries, func(a, b domain.VirtualEntry) int {
		return strings.Compare(a.Destination, b.Destination)
	})
	cfg.logger.Debug("output tree staged", "entries", len(vfs.Entries))
	return vfs, nil
}

// walkBlueprint lists the blueprint entries, sorted by path. The walk itself is parallel.
func walkBlueprint(ctx context.Context, dir string, ignore []string) ([]sourceEntry, error) {
	var (
		mu      sync.Mutex
		entries []sourceEntry
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return &domain.IOError{Op: domain.OpWalk, Path: path, Err: err}
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return &domain.IOError{Op: domain.OpWalk, Path: path, Err: err}
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		isDir := d.IsDir()
		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				return &domain.IOError{Op: domain.OpRead, Path: path, Err: err}
			}
			if info.IsDir() {
				return &domain.IOError{Op: domain.OpWalk, Path: path, Err: errors.New("symlinked directories are not supported")}
			}
		} else if !isDir && !d.Type().IsRegular() {
			return nil
		}

		if ignored(rel, ignore) {
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !isDir && blueprint.IsQuestionFile(filepath.Base(path)) {
			return nil
		}

		mu.Lock()
		entries = append(entries, sourceEntry{rel: rel, isFile: !isDir})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(a, b sourceEntry) int {
		return strings.Compare(a.rel, b.rel)
	})
	return entries, nil
}

func ignored(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// renderPath renders each component of rel. It returns "" when any component is blank.
// A component must render to a plain name: no separators, no "." or "..".
func renderPath(rel string, engine render.Engine, data map[string]any) (string, error) {
	parts := strings.Split(rel, "/")
	rendered := make([]string, 0, len(parts))
	for _, part := range parts {
		out, err := engine.Render(part, data)
		if err != nil {
			return "", err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			return "", nil
		}
		if !plainName(out) {
			return "", &domain.UnsafePathError{Template: part, Rendered: out}
		}
		rendered = append(rendered, out)
	}
	return filepath.Join(rendered...), nil
}

func plainName(s string) bool {
	return s != "." && s != ".." && !strings.ContainsAny(s, `/\`) && !filepath.IsAbs(s) && filepath.VolumeName(s) == ""
}

// stageFile reads a blueprint file and renders it when its destination carries the suffix.
func stageFile(path, rel, dest, suffix string, engine render.Engine, data map[string]any) (string, []byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &domain.IOError{Op: domain.OpRead, Path: path, Err: err}
	}

	base := filepath.Base(dest)
	if !strings.HasSuffix(base, suffix) || base == suffix {
		return dest, content, nil
	}

	out, err := engine.Render(string(content), data)
	if err != nil {
		var re *domain.RenderError
		if errors.As(err, &re) {
			re.Template = rel
		}
		return "", nil, err
	}
	return strings.TrimSuffix(dest, suffix), []byte(out), nil
}
