package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/kopye/internal/cli"
	"github.com/aretw0/kopye/internal/config"
	"github.com/aretw0/kopye/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = "../../examples/blueprints"

func TestExamples_Validate(t *testing.T) {
	findings, err := cli.ValidateSource(context.Background(), sampleSource, logging.NewNop())
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestExamples_GoCLI(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "tool")
	cfg := config.Default()
	cfg.NoColor = true
	cfg.Answers.Store = config.StoreNone

	input := strings.Join([]string{
		"github.com/acme/tool", // module
		"tool",                 // binary
		"MIT",                  // license
		"y",                    // ci
		"test,vet",             // ci_checks
		"y",                    // confirm
	}, "\n") + "\n"

	err := cli.RunCopy(context.Background(), cli.CopyOptions{
		Source:      sampleSource,
		Blueprint:   "go-cli",
		Destination: dest,
		Config:      cfg,
		Stdin:       strings.NewReader(input),
		Stdout:      &bytes.Buffer{},
	})
	require.NoError(t, err)

	gomod, err := os.ReadFile(filepath.Join(dest, "go.mod"))
	require.NoError(t, err)
	assert.Contains(t, string(gomod), "module github.com/acme/tool")

	assert.FileExists(t, filepath.Join(dest, "cmd", "tool", "main.go"))

	workflow, err := os.ReadFile(filepath.Join(dest, ".github", "workflows", "ci.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(workflow), "go test ./...")
	assert.Contains(t, string(workflow), "go vet ./...")
	assert.NotContains(t, string(workflow), "-race")
}
