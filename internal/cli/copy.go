package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/kopye"
	"github.com/aretw0/kopye/internal/config"
	"github.com/aretw0/kopye/internal/logging"
	"github.com/aretw0/kopye/internal/metrics"
	"github.com/aretw0/kopye/internal/presentation/tui"
	"github.com/aretw0/kopye/pkg/prompt"
)

// ErrCanceled is returned when the user interrupted a prompt.
var ErrCanceled = errors.New("canceled")

// CopyOptions contains all the configuration for the copy command.
type CopyOptions struct {
	Source      string
	Blueprint   string
	Destination string
	Replay      string

	Config *config.Config

	// Stdin and Stdout default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
}

// CreateLogger configures the process logger. Records go to stderr so they never mix with
// the preview on stdout.
func CreateLogger(debug bool) *slog.Logger {
	return logging.New(logging.Level(debug))
}

// RunCopy materializes one blueprint interactively. A declined confirmation is not an error.
func RunCopy(ctx context.Context, opts CopyOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	stdin, stdout := opts.Stdin, opts.Stdout
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := CreateLogger(cfg.Debug)

	store, closeStore, err := OpenAnswerStore(cfg.Answers)
	if err != nil {
		return err
	}
	defer closeStore()

	var textOpts []prompt.TextOption
	if cfg.NoColor {
		textOpts = append(textOpts, prompt.WithColor(false))
	}
	prompter := prompt.NewText(stdin, stdout, textOpts...)
	previewer := tui.NewPreviewer(stdout, cfg.NoColor)
	m := metrics.New()

	eng := kopye.New(
		kopye.WithLogger(logger),
		kopye.WithPrompter(prompter),
		kopye.WithPreviewer(previewer),
		kopye.WithNotifier(kopye.Notifier(noticeFunc(previewer.Notice))),
		kopye.WithAnswerStore(store),
		kopye.WithMetrics(m),
		kopye.WithTemplateSuffix(cfg.TemplateSuffix),
		kopye.WithAssumeYes(cfg.AssumeYes),
	)

	outcome, err := eng.Copy(ctx, kopye.CopyRequest{
		Source:      opts.Source,
		Blueprint:   opts.Blueprint,
		Destination: opts.Destination,
		Replay:      opts.Replay,
	})

	if cfg.MetricsFile != "" {
		if werr := m.WriteFile(cfg.MetricsFile); werr != nil {
			logger.Warn("failed to write metrics", "path", cfg.MetricsFile, "error", werr)
		}
	}

	if err != nil {
		if errors.Is(err, prompt.ErrCanceled) {
			return ErrCanceled
		}
		return err
	}
	if outcome == kopye.OutcomeCanceled {
		fmt.Fprintln(stdout, "No changes made.")
	}
	return nil
}

type noticeFunc func(path string, isFile bool)

func (f noticeFunc) Created(path string, isFile bool) { f(path, isFile) }
