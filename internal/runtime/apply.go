package runtime

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aretw0/kopye/pkg/domain"
	"github.com/aretw0/kopye/pkg/transaction"
)

// Notifier is told about every path created on disk.
type Notifier interface {
	Created(path string, isFile bool)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(path string, isFile bool)

func (f NotifierFunc) Created(path string, isFile bool) { f(path, isFile) }

var errNotDir = errors.New("not a directory")

type nopNotifier struct{}

func (nopNotifier) Created(string, bool) {}

// ApplyVFS materializes the staged tree under destRoot, recording each creation in tx.
// Directories are created before files. On error the caller finalizes tx, which removes
// everything created so far.
func ApplyVFS(tx *transaction.Transaction, vfs *domain.VirtualFS, destRoot string, n Notifier) error {
	if n == nil {
		n = nopNotifier{}
	}

	created, err := makeDirs(destRoot)
	for _, dir := range created {
		tx.RecordRemoveDir(dir)
	}
	if err != nil {
		return err
	}

	for _, e := range vfs.Dirs() {
		path := filepath.Join(destRoot, e.Destination)
		created, err := makeDirs(path)
		if err == nil && len(created) == 0 {
			// Staged directories belong to the run even when they already exist.
			created = []string{path}
		}
		for _, dir := range created {
			tx.RecordRemoveDir(dir)
			n.Created(dir, false)
		}
		if err != nil {
			return err
		}
	}

	for _, e := range vfs.Files() {
		path := filepath.Join(destRoot, e.Destination)

		created, err := makeDirs(filepath.Dir(path))
		for _, dir := range created {
			tx.RecordRemoveDir(dir)
			n.Created(dir, false)
		}
		if err != nil {
			return err
		}

		if err := os.WriteFile(path, e.Content, 0o644); err != nil {
			return &domain.IOError{Op: domain.OpWrite, Path: path, Err: err}
		}
		tx.RecordRemoveFile(path)
		n.Created(path, true)
	}

	return nil
}

// makeDirs creates dir and every missing ancestor one level at a time. It returns the
// directories it created, outermost first, so an undo log unwinds them innermost first.
func makeDirs(dir string) ([]string, error) {
	var missing []string
	for cur := filepath.Clean(dir); ; {
		info, err := os.Stat(cur)
		if err == nil {
			if !info.IsDir() {
				return nil, &domain.IOError{Op: domain.OpMkdir, Path: cur, Err: errNotDir}
			}
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.IOError{Op: domain.OpMkdir, Path: cur, Err: err}
		}
		missing = append(missing, cur)
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}

	created := make([]string, 0, len(missing))
	for i := len(missing) - 1; i >= 0; i-- {
		if err := os.Mkdir(missing[i], 0o755); err != nil {
			if errors.Is(err, fs.ErrExist) {
				continue
			}
			return created, &domain.IOError{Op: domain.OpMkdir, Path: missing[i], Err: err}
		}
		created = append(created, missing[i])
	}
	return created, nil
}
