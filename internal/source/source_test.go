package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/kopye/internal/source"
	"github.com/aretw0/kopye/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registry = `
[rust]
path = "templates/rust"
description = "Rust binary"

[go]
path = "../../templates/go"
`

func TestIsGit(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"gh:owner/repo", true},
		{"gl:owner/repo", true},
		{"git@github.com:owner/repo.git", true},
		{"git+https://example.com/x.git", true},
		{"git+http://example.com/x.git", true},
		{"gh:owner/repo/extra", false},
		{"git@github.com:owner/repo", false},
		{"./blueprints", false},
		{"https://github.com/owner/repo.git", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, source.IsGit(tt.ref))
		})
	}
}

func TestExpandURL(t *testing.T) {
	tests := map[string]string{
		"gh:owner/repo":                 "https://github.com/owner/repo.git",
		"gl:owner/repo":                 "https://gitlab.com/owner/repo.git",
		"git+https://example.com/x.git": "https://example.com/x.git",
		"git@github.com:owner/repo.git": "git@github.com:owner/repo.git",
	}
	for ref, want := range tests {
		got, err := source.ExpandURL(ref)
		require.NoError(t, err, ref)
		assert.Equal(t, want, got)
	}

	_, err := source.ExpandURL("bb:owner/repo")
	assert.Error(t, err)
}

func TestResolve_Local(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blueprints.toml"), []byte(registry), 0o644))

	src, err := source.Resolve(context.Background(), dir)
	require.NoError(t, err)
	defer src.Cleanup()

	assert.Equal(t, []string{"rust", "go"}, src.Registry.Names())

	entry, bpDir, err := src.Blueprint("rust")
	require.NoError(t, err)
	assert.Equal(t, "Rust binary", entry.Description)
	assert.Equal(t, filepath.Join(dir, "templates", "rust"), bpDir)

	_, bpDir, err = src.Blueprint("go")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "templates", "go"), bpDir, "paths never escape the source root")

	_, _, err = src.Blueprint("python")
	assert.ErrorIs(t, err, domain.ErrBlueprintNotFound)

	src.Cleanup()
	assert.DirExists(t, dir, "local sources are never removed")
}

func TestResolve_MissingDirectory(t *testing.T) {
	_, err := source.Resolve(context.Background(), filepath.Join(t.TempDir(), "nope"))
	var se *source.SourceError
	require.ErrorAs(t, err, &se)
}

func TestResolve_MissingRegistry(t *testing.T) {
	_, err := source.Resolve(context.Background(), t.TempDir())
	var ioErr *domain.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve_Clone(t *testing.T) {
	var clonedInto, clonedURL string
	cloner := source.ClonerFunc(func(_ context.Context, url, dir string) error {
		clonedURL, clonedInto = url, dir
		return os.WriteFile(filepath.Join(dir, "blueprints.toml"), []byte(registry), 0o644)
	})

	src, err := source.Resolve(context.Background(), "gh:owner/repo", source.WithCloner(cloner))
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/owner/repo.git", clonedURL)
	assert.Equal(t, clonedInto, src.Dir)
	assert.DirExists(t, src.Dir)

	src.Cleanup()
	assert.NoDirExists(t, clonedInto)
}

func TestResolve_CloneFailureCleansUp(t *testing.T) {
	var clonedInto string
	cloner := source.ClonerFunc(func(_ context.Context, _, dir string) error {
		clonedInto = dir
		return errors.New("network down")
	})

	_, err := source.Resolve(context.Background(), "gl:owner/repo", source.WithCloner(cloner))
	var se *source.SourceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "gl:owner/repo", se.Ref)
	assert.ErrorContains(t, err, "network down")
	assert.NoDirExists(t, clonedInto)
}
