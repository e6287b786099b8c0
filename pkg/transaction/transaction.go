package transaction

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"
)

// ErrFinalized is returned when Commit or Cancel is called on a finalized transaction.
var ErrFinalized = errors.New("transaction already finalized")

// State is the lifecycle stage of a Transaction.
type State int

const (
	Active State = iota
	Committed
	Canceled
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Committed:
		return "committed"
	case Canceled:
		return "canceled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// OpKind names an undo operation.
type OpKind string

const (
	RemoveFile OpKind = "remove_file"
	RemoveDir  OpKind = "remove_dir"
)

// Op is one entry of the undo log.
type Op struct {
	Kind OpKind
	Path string
}

// Remover performs undo operations. The default uses the os package.
type Remover interface {
	Remove(path string) error
	RemoveAll(path string) error
}

type osRemover struct{}

func (osRemover) Remove(path string) error    { return os.Remove(path) }
func (osRemover) RemoveAll(path string) error { return os.RemoveAll(path) }

// Option configures a Transaction.
type Option func(*Transaction)

// WithLogger sets the logger used for undo steps.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transaction) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithRemover replaces the filesystem used to undo operations.
func WithRemover(r Remover) Option {
	return func(t *Transaction) {
		if r != nil {
			t.remover = r
		}
	}
}

// OnFinalize registers a callback invoked once with the final state.
func OnFinalize(fn func(State)) Option {
	return func(t *Transaction) {
		t.onFinalize = fn
	}
}

// Transaction is an undo log plus a finalize-once state machine.
type Transaction struct {
	mu         sync.Mutex
	state      State
	log        []Op
	logger     *slog.Logger
	remover    Remover
	onFinalize func(State)
}

// New opens an Active transaction.
func New(opts ...Option) *Transaction {
	t := &Transaction{
		state:   Active,
		logger:  slog.New(slog.DiscardHandler),
		remover: osRemover{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RecordRemoveFile registers the removal of a file created by the caller.
func (t *Transaction) RecordRemoveFile(path string) {
	t.record(Op{Kind: RemoveFile, Path: path})
}

// RecordRemoveDir registers the recursive removal of a directory created by the caller.
func (t *Transaction) RecordRemoveDir(path string) {
	t.record(Op{Kind: RemoveDir, Path: path})
}

func (t *Transaction) record(op Op) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Active {
		// Nothing can be undone after finalization.
		t.logger.Warn("ignoring mutation recorded after finalization", "op", op.Kind, "path", op.Path, "state", t.state)
		return
	}
	t.log = append(t.log, op)
}

// State returns the current lifecycle stage.
func (t *Transaction) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Pending returns a copy of the undo log in recording order.
func (t *Transaction) Pending() []Op {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.log)
}

// Commit keeps every recorded mutation.
func (t *Transaction) Commit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Active {
		return fmt.Errorf("commit: %w (%s)", ErrFinalized, t.state)
	}
	t.log = nil
	t.finalize(Committed)
	return nil
}

// Cancel undoes every recorded mutation, newest first.
// Undo failures are logged and do not stop the remaining steps.
func (t *Transaction) Cancel() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Active {
		return fmt.Errorf("cancel: %w (%s)", ErrFinalized, t.state)
	}
	t.rollback()
	t.finalize(Canceled)
	return nil
}

// Close cancels an Active transaction and is a no-op otherwise.
func (t *Transaction) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Active {
		return nil
	}
	t.rollback()
	t.finalize(Canceled)
	return nil
}

func (t *Transaction) finalize(s State) {
	t.state = s
	if t.onFinalize != nil {
		t.onFinalize(s)
	}
}

func (t *Transaction) rollback() {
	for i := len(t.log) - 1; i >= 0; i-- {
		op := t.log[i]
		var err error
		switch op.Kind {
		case RemoveFile:
			t.logger.Debug("removing file", "path", op.Path)
			err = t.remover.Remove(op.Path)
		case RemoveDir:
			t.logger.Debug("removing dir", "path", op.Path)
			err = t.remover.RemoveAll(op.Path)
		}
		if err != nil {
			t.logger.Warn("rollback step failed", "op", op.Kind, "path", op.Path, "error", err)
		}
	}
	t.log = nil
}
