package domain

import (
	"errors"
	"fmt"
)

// ErrBlueprintNotFound is returned when a blueprint name is missing from the registry.
var ErrBlueprintNotFound = errors.New("blueprint not found")

// ErrAnswersNotFound is returned when an answer record cannot be found in a store.
var ErrAnswersNotFound = errors.New("answers not found")

// FileOp names the filesystem operation that failed.
type FileOp string

const (
	OpRead  FileOp = "read"
	OpWrite FileOp = "write"
	OpMkdir FileOp = "mkdir"
	OpWalk  FileOp = "walk"
)

// IOError is a filesystem failure on a specific path.
type IOError struct {
	Op   FileOp
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("i/o error: %s on path '%s': %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FileFormat names the structured format of a parsed file.
type FileFormat string

const (
	FormatTOML FileFormat = "toml"
	FormatYAML FileFormat = "yaml"
)

// ParseError is a decoding failure of a question or registry file.
type ParseError struct {
	Format FileFormat
	Path   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s on '%s': %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// PromptError wraps a failure of the prompt collaborator, including user cancellation.
type PromptError struct {
	Question string
	Err      error
}

func (e *PromptError) Error() string {
	return fmt.Sprintf("prompt failed for '%s': %v", e.Question, e.Err)
}

func (e *PromptError) Unwrap() error { return e.Err }

// RenderError is a template engine failure. Context is the data the template saw.
type RenderError struct {
	Template string
	Context  map[string]any
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error in %q (context keys: %v): %v", e.Template, contextKeys(e.Context), e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

func contextKeys(ctx map[string]any) []string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	return keys
}

// LookupError reports a blueprint name missing from the registry.
type LookupError struct {
	Name      string
	Available []string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("blueprint '%s' not found (available: %v)", e.Name, e.Available)
}

func (e *LookupError) Unwrap() error { return ErrBlueprintNotFound }

// EncodingError reports a path that cannot be represented as valid text.
type EncodingError struct {
	Path string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("path is not valid UTF-8: %q", e.Path)
}

// UnsafePathError reports a path component that renders to something other than a plain
// name, which would place output outside its parent directory.
type UnsafePathError struct {
	Template string
	Rendered string
}

func (e *UnsafePathError) Error() string {
	return fmt.Sprintf("path component %q rendered to %q, which is not a plain name", e.Template, e.Rendered)
}

// ValidationError reports an invalid question definition.
type ValidationError struct {
	Question string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question '%s': %s", e.Question, e.Reason)
}
