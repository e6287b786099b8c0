package kopye

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/kopye/internal/blueprint"
	"github.com/aretw0/kopye/internal/logging"
	"github.com/aretw0/kopye/internal/metrics"
	"github.com/aretw0/kopye/internal/render"
	"github.com/aretw0/kopye/internal/runtime"
	"github.com/aretw0/kopye/internal/source"
	"github.com/aretw0/kopye/pkg/domain"
	"github.com/aretw0/kopye/pkg/ports"
	"github.com/aretw0/kopye/pkg/prompt"
	"github.com/aretw0/kopye/pkg/transaction"
)

// Version is the kopye release.
const Version = "0.4.0"

// ConfirmMessage is the final question asked before anything is written.
const ConfirmMessage = "Proceed with these changes?"

// Outcome is the result of a run that did not fail.
type Outcome int

const (
	// OutcomeCommitted means every staged entry was written.
	OutcomeCommitted Outcome = iota
	// OutcomeCanceled means the user declined and the destination was not touched.
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Notifier is told about each entry created in the destination.
type Notifier interface {
	Created(path string, isFile bool)
}

// Previewer shows the staged filesystem before confirmation.
type Previewer interface {
	Preview(vfs *domain.VirtualFS, destination string)
}

// Cloner fetches a remote blueprint source into a directory.
type Cloner interface {
	Clone(ctx context.Context, url, dir string) error
}

// CopyRequest describes one materialization.
// Blueprint and Destination are asked interactively when empty.
// Replay names a stored answer record whose answers are reused.
type CopyRequest struct {
	Source      string
	Blueprint   string
	Destination string
	Replay      string
}

// Engine runs the copy pipeline: resolve, ask, render, preview, confirm, apply.
type Engine struct {
	logger         *slog.Logger
	prompter       prompt.Prompter
	confirmer      prompt.Confirmer
	chooser        prompt.Chooser
	notifier       Notifier
	previewer      Previewer
	store          ports.AnswerStore
	metrics        *metrics.Metrics
	cloner         Cloner
	templateSuffix string
	assumeYes      bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPrompter sets how blueprint questions are asked.
// If p also implements prompt.Confirmer or prompt.Chooser it is used for those too,
// unless they are set explicitly.
func WithPrompter(p prompt.Prompter) Option {
	return func(e *Engine) {
		e.prompter = p
	}
}

// WithConfirmer sets the final confirmation collaborator.
func WithConfirmer(c prompt.Confirmer) Option {
	return func(e *Engine) {
		e.confirmer = c
	}
}

// WithChooser sets the collaborator used to pick a blueprint or a destination.
func WithChooser(c prompt.Chooser) Option {
	return func(e *Engine) {
		e.chooser = c
	}
}

// WithNotifier receives a notice per created entry.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithPreviewer renders the staged tree before confirmation.
func WithPreviewer(p Previewer) Option {
	return func(e *Engine) {
		e.previewer = p
	}
}

// WithAnswerStore persists answers of committed runs and enables replay.
func WithAnswerStore(s ports.AnswerStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithMetrics records run counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithCloner replaces the git cloner used for remote sources.
func WithCloner(c Cloner) Option {
	return func(e *Engine) {
		e.cloner = c
	}
}

// WithTemplateSuffix sets the marker that enables content rendering (default ".tera").
func WithTemplateSuffix(suffix string) Option {
	return func(e *Engine) {
		e.templateSuffix = suffix
	}
}

// WithAssumeYes skips the final confirmation. The preview is still shown.
func WithAssumeYes(yes bool) Option {
	return func(e *Engine) {
		e.assumeYes = yes
	}
}

// New creates an Engine. Without a prompter it asks on stdin and stdout.
func New(opts ...Option) *Engine {
	e := &Engine{templateSuffix: runtime.DefaultTemplateSuffix}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.prompter == nil {
		e.prompter = prompt.NewText(os.Stdin, os.Stdout)
	}
	if e.confirmer == nil {
		if c, ok := e.prompter.(prompt.Confirmer); ok {
			e.confirmer = c
		}
	}
	if e.chooser == nil {
		if c, ok := e.prompter.(prompt.Chooser); ok {
			e.chooser = c
		}
	}
	if e.templateSuffix == "" {
		e.templateSuffix = runtime.DefaultTemplateSuffix
	}
	return e
}

// Copy materializes one blueprint. A declined confirmation returns OutcomeCanceled and a
// nil error. Any failure after writing started rolls the destination back before the
// error is returned.
func (e *Engine) Copy(ctx context.Context, req CopyRequest) (outcome Outcome, err error) {
	start := time.Now()
	runID := logging.NewRunID()
	logger := logging.WithRun(e.logger, runID)
	defer func() {
		label := metrics.OutcomeCommitted
		switch {
		case err != nil:
			label = metrics.OutcomeFailed
		case outcome == OutcomeCanceled:
			label = metrics.OutcomeCanceled
		}
		e.metrics.Finished(label, start)
	}()

	srcOpts := []source.Option{source.WithLogger(logger)}
	if e.cloner != nil {
		srcOpts = append(srcOpts, source.WithCloner(e.cloner))
	}
	src, err := source.Resolve(ctx, req.Source, srcOpts...)
	if err != nil {
		return OutcomeCanceled, err
	}
	defer src.Cleanup()

	name, err := e.selectBlueprint(ctx, src, req.Blueprint)
	if err != nil {
		return OutcomeCanceled, err
	}
	entry, dir, err := src.Blueprint(name)
	if err != nil {
		return OutcomeCanceled, err
	}
	logger = logger.With("blueprint", name)

	dest, err := e.destination(ctx, req.Destination)
	if err != nil {
		return OutcomeCanceled, err
	}

	qs, err := blueprint.LoadQuestions(dir)
	if err != nil {
		return OutcomeCanceled, err
	}

	prompter := e.prompter
	if req.Replay != "" {
		replayed, err := e.loadReplay(ctx, logger, req.Replay, name)
		if err != nil {
			return OutcomeCanceled, err
		}
		prompter = prompt.NewReplay(replayed, e.prompter, logger)
	}

	collector := runtime.NewCollector(prompter,
		runtime.WithCollectorLogger(logger),
		runtime.WithCollectorMetrics(e.metrics),
	)
	answers, err := collector.Collect(ctx, qs)
	if err != nil {
		return OutcomeCanceled, err
	}

	engine, err := render.NewPongo(dir)
	if err != nil {
		return OutcomeCanceled, err
	}
	vfs, err := runtime.BuildVFS(ctx, dir, engine, runtime.NewRenderContext(answers),
		runtime.WithTemplateSuffix(e.templateSuffix),
		runtime.WithIgnore(entry.Ignore...),
		runtime.WithBuildLogger(logger),
		runtime.WithBuildMetrics(e.metrics),
	)
	if err != nil {
		return OutcomeCanceled, err
	}

	if e.previewer != nil {
		e.previewer.Preview(vfs, dest)
	}

	confirmed, err := e.confirm(ctx)
	if err != nil {
		return OutcomeCanceled, err
	}

	// A decline cancels an empty transaction; only an interrupted apply is a rollback.
	applying := false
	tx := transaction.New(
		transaction.WithLogger(logger),
		transaction.OnFinalize(func(s transaction.State) {
			if s == transaction.Canceled && applying {
				e.metrics.RolledBack()
			}
		}),
	)
	defer tx.Close()

	if !confirmed {
		if err := tx.Cancel(); err != nil {
			return OutcomeCanceled, err
		}
		logger.Info("no changes made")
		return OutcomeCanceled, nil
	}

	applying = true
	notify := runtime.NotifierFunc(func(path string, isFile bool) {
		e.metrics.Wrote(isFile)
		if e.notifier != nil {
			e.notifier.Created(path, isFile)
		}
	})
	if err := runtime.ApplyVFS(tx, vfs, dest, notify); err != nil {
		logger.Error("apply failed, rolling back", "error", err)
		return OutcomeCanceled, err
	}
	if err := tx.Commit(); err != nil {
		return OutcomeCanceled, err
	}
	logger.Info("blueprint materialized", "destination", dest, "entries", len(vfs.Entries))

	e.saveAnswers(ctx, logger, domain.NewAnswerRecord(runID, req.Source, name, dest, answers))
	return OutcomeCommitted, nil
}

func (e *Engine) selectBlueprint(ctx context.Context, src *source.Source, name string) (string, error) {
	if name != "" {
		return name, nil
	}
	names := src.Registry.Names()
	if len(names) == 0 {
		return "", fmt.Errorf("no blueprints declared in %s", src.Ref)
	}
	if e.chooser == nil {
		return "", &domain.PromptError{Question: "blueprint", Err: errors.New("no blueprint given and no chooser configured")}
	}
	choice, err := e.chooser.Choose(ctx, "Select a blueprint", names)
	if err != nil {
		return "", &domain.PromptError{Question: "blueprint", Err: err}
	}
	return choice, nil
}

func (e *Engine) destination(ctx context.Context, dest string) (string, error) {
	if dest != "" {
		return dest, nil
	}
	if e.chooser == nil {
		return "", &domain.PromptError{Question: "destination", Err: errors.New("no destination given and no chooser configured")}
	}
	dest, err := e.chooser.Input(ctx, "Destination directory")
	if err != nil {
		return "", &domain.PromptError{Question: "destination", Err: err}
	}
	return dest, nil
}

func (e *Engine) confirm(ctx context.Context) (bool, error) {
	if e.assumeYes {
		return true, nil
	}
	if e.confirmer == nil {
		return false, &domain.PromptError{Question: "confirm", Err: errors.New("no confirmer configured")}
	}
	ok, err := e.confirmer.Confirm(ctx, ConfirmMessage)
	if err != nil {
		return false, &domain.PromptError{Question: "confirm", Err: err}
	}
	return ok, nil
}

func (e *Engine) loadReplay(ctx context.Context, logger *slog.Logger, id, blueprintName string) (*domain.Answers, error) {
	if e.store == nil {
		return nil, fmt.Errorf("cannot replay %q: answer store disabled", id)
	}
	rec, err := e.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cannot replay %q: %w", id, err)
	}
	if rec.Blueprint != blueprintName {
		logger.Warn("replaying answers recorded for another blueprint", "recorded", rec.Blueprint)
	}
	logger.Debug("replaying answers", "record", rec.ID, "answers", len(rec.Answers))
	return domain.AnswersFromEntries(rec.Answers), nil
}

// saveAnswers stores the record under its run id and as the latest run of its blueprint.
// The destination is already committed, so failures are logged only.
func (e *Engine) saveAnswers(ctx context.Context, logger *slog.Logger, rec *domain.AnswerRecord) {
	if e.store == nil {
		return
	}
	for _, id := range []string{rec.ID, domain.LastRecordKey(rec.Blueprint)} {
		if err := e.store.Save(ctx, id, rec); err != nil {
			logger.Warn("failed to save answers", "id", id, "error", err)
			return
		}
	}
	logger.Info("answers saved", "id", rec.ID, "replay", domain.LastRecordKey(rec.Blueprint))
}
