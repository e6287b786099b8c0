package runtime_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/kopye/internal/render"
	"github.com/aretw0/kopye/internal/runtime"
	"github.com/aretw0/kopye/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newEngine(t *testing.T, dir string) render.Engine {
	t.Helper()
	engine, err := render.NewPongo(dir)
	require.NoError(t, err)
	return engine
}

func destinations(vfs *domain.VirtualFS) []string {
	var out []string
	for _, e := range vfs.Entries {
		out = append(out, e.Destination)
	}
	return out
}

func TestBuildVFS_ElidesConditionalSubtree(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"{% if show %}dir{% endif %}/file.txt":        "hello",
		"{% if show %}dir{% endif %}/nested/deep.txt": "deep",
	})

	vfs, err := runtime.BuildVFS(context.Background(), dir, newEngine(t, dir), map[string]any{"show": false})
	require.NoError(t, err)
	assert.Empty(t, vfs.Entries)

	vfs, err = runtime.BuildVFS(context.Background(), dir, newEngine(t, dir), map[string]any{"show": true})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"dir",
		filepath.Join("dir", "file.txt"),
		filepath.Join("dir", "nested"),
		filepath.Join("dir", "nested", "deep.txt"),
	}, destinations(vfs))
}

func TestBuildVFS_TemplateMarker(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/main.rs.tera": `fn main() { println!("{{ name }}"); }`,
		"README.md":        "# {{ name }}",
	})

	vfs, err := runtime.BuildVFS(context.Background(), dir, newEngine(t, dir), map[string]any{"name": "demo"})
	require.NoError(t, err)

	files := vfs.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "README.md", files[0].Destination)
	assert.Equal(t, "# {{ name }}", string(files[0].Content), "non-template files are copied verbatim")
	assert.Equal(t, filepath.Join("src", "main.rs"), files[1].Destination)
	assert.Equal(t, `fn main() { println!("demo"); }`, string(files[1].Content))
	assert.True(t, files[1].IsFile)
}

func TestBuildVFS_RenderedPathSegments(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"{{ name }}/ {{ module }} .go.tera": "package {{ module }}",
	})

	vfs, err := runtime.BuildVFS(context.Background(), dir, newEngine(t, dir), map[string]any{"name": "app", "module": "core"})
	require.NoError(t, err)
	assert.Equal(t, []string{"app", filepath.Join("app", "core .go")}, destinations(vfs))
}

func TestBuildVFS_RejectsUnsafeRenderedNames(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"{{ name }}/file.txt": "x",
	})

	for _, name := range []string{"..", ".", "com/example", `a\b`, "/etc"} {
		t.Run(name, func(t *testing.T) {
			_, err := runtime.BuildVFS(context.Background(), dir, newEngine(t, dir), map[string]any{"name": name})
			var unsafe *domain.UnsafePathError
			require.ErrorAs(t, err, &unsafe)
			assert.Equal(t, "{{ name }}", unsafe.Template)
			assert.Equal(t, name, unsafe.Rendered)
		})
	}
}

func TestBuildVFS_CustomSuffix(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt.tmpl": "{{ v }}",
		"b.txt.tera": "{{ v }}",
	})

	vfs, err := runtime.BuildVFS(context.Background(), dir, newEngine(t, dir), map[string]any{"v": "x"}, runtime.WithTemplateSuffix(".tmpl"))
	require.NoError(t, err)

	files := vfs.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "a.txt", files[0].Destination)
	assert.Equal(t, "x", string(files[0].Content))
	assert.Equal(t, "b.txt.tera", files[1].Destination)
	assert.Equal(t, "{{ v }}", string(files[1].Content))
}

func TestBuildVFS_SkipsQuestionFilesAndIgnored(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"blueprint.toml":     "[name]\ntype = \"text\"\n",
		"sub/blueprint.toml": "skipped",
		"sub/blueprint.yml":  "skipped",
		"sub/keep.txt":       "kept",
		".git/HEAD":          "ref",
		"target/debug/app":   "bin",
		"notes/draft.md":     "draft",
		"notes/published.md": "ok",
	})

	vfs, err := runtime.BuildVFS(context.Background(), dir, newEngine(t, dir), map[string]any{},
		runtime.WithIgnore("target/**", "notes/draft.md"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"notes",
		filepath.Join("notes", "published.md"),
		"sub",
		filepath.Join("sub", "keep.txt"),
	}, destinations(vfs))
}

func TestBuildVFS_InvalidIgnorePattern(t *testing.T) {
	dir := t.TempDir()
	_, err := runtime.BuildVFS(context.Background(), dir, newEngine(t, dir), map[string]any{}, runtime.WithIgnore("[unclosed"))
	assert.Error(t, err)
}

func TestBuildVFS_BrokenSymlink(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "link")))

	_, err := runtime.BuildVFS(context.Background(), dir, newEngine(t, dir), map[string]any{})
	var ioErr *domain.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, domain.OpRead, ioErr.Op)
}

func TestBuildVFS_RenderErrorNamesTemplate(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"bad.txt.tera": "{% if %}"})

	_, err := runtime.BuildVFS(context.Background(), dir, newEngine(t, dir), map[string]any{"k": "v"})
	var re *domain.RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "bad.txt.tera", re.Template)
	assert.Equal(t, map[string]any{"k": "v"}, re.Context)
}

func TestBuildVFS_Canceled(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runtime.BuildVFS(ctx, dir, newEngine(t, dir), map[string]any{})
	assert.ErrorIs(t, err, context.Canceled)
}
