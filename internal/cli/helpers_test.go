package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func greetingSource(t *testing.T) string {
	return writeTree(t, map[string]string{
		"blueprints.toml": `
[greeting]
path = "greeting"
description = "Says hello"
`,
		"greeting/blueprint.toml": `
[name]
type = "Text"
help = "Who to greet"

[loud]
type = "Confirm"
help = "Shout?"
depends_on = "name:world"
`,
		"greeting/hello.txt.tera": "Hello, {{ name }}!",
	})
}
