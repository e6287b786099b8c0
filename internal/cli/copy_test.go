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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.NoColor = true
	cfg.Answers.Store = t.TempDir()
	return cfg
}

func TestRunCopy_Commits(t *testing.T) {
	src := greetingSource(t)
	dest := filepath.Join(t.TempDir(), "out")
	cfg := testConfig(t)
	cfg.MetricsFile = filepath.Join(t.TempDir(), "kopye.prom")
	var out bytes.Buffer

	err := cli.RunCopy(context.Background(), cli.CopyOptions{
		Source:      src,
		Blueprint:   "greeting",
		Destination: dest,
		Config:      cfg,
		Stdin:       strings.NewReader("Gopher\ny\n"),
		Stdout:      &out,
	})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dest, "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello, Gopher!", string(content))

	assert.Contains(t, out.String(), "Preview")
	assert.Contains(t, out.String(), "create")
	assert.FileExists(t, filepath.Join(cfg.Answers.Store, "last:greeting.json"))

	metrics, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `kopye_runs_total{outcome="committed"} 1`)
}

func TestRunCopy_Declined(t *testing.T) {
	src := greetingSource(t)
	dest := filepath.Join(t.TempDir(), "out")
	var out bytes.Buffer

	err := cli.RunCopy(context.Background(), cli.CopyOptions{
		Source:      src,
		Blueprint:   "greeting",
		Destination: dest,
		Config:      testConfig(t),
		Stdin:       strings.NewReader("Gopher\nn\n"),
		Stdout:      &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No changes made.")
	assert.NoDirExists(t, dest)
}

func TestRunCopy_EOFCancels(t *testing.T) {
	src := greetingSource(t)
	dest := filepath.Join(t.TempDir(), "out")

	err := cli.RunCopy(context.Background(), cli.CopyOptions{
		Source:      src,
		Blueprint:   "greeting",
		Destination: dest,
		Config:      testConfig(t),
		Stdin:       strings.NewReader(""),
		Stdout:      &bytes.Buffer{},
	})
	assert.ErrorIs(t, err, cli.ErrCanceled)
	assert.NoDirExists(t, dest)
}

func TestRunCopy_ReplayLast(t *testing.T) {
	src := greetingSource(t)
	cfg := testConfig(t)
	cfg.AssumeYes = true

	first := cli.CopyOptions{
		Source: src, Blueprint: "greeting", Destination: filepath.Join(t.TempDir(), "one"),
		Config: cfg, Stdin: strings.NewReader("Gopher\n"), Stdout: &bytes.Buffer{},
	}
	require.NoError(t, cli.RunCopy(context.Background(), first))

	dest := filepath.Join(t.TempDir(), "two")
	second := cli.CopyOptions{
		Source: src, Blueprint: "greeting", Destination: dest, Replay: "last:greeting",
		Config: cfg, Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{},
	}
	require.NoError(t, cli.RunCopy(context.Background(), second))

	content, err := os.ReadFile(filepath.Join(dest, "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello, Gopher!", string(content))
}
