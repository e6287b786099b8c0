package prompt

import (
	"context"
	"errors"

	"github.com/aretw0/kopye/pkg/domain"
)

// ErrCanceled is returned when the user aborts a prompt (EOF, Ctrl+C).
var ErrCanceled = errors.New("prompt canceled")

// Prompter asks a blueprint question and blocks until it is answered or canceled.
// The returned Answer kind follows the question type: Confirm yields a Bool answer,
// MultiSelect an Array answer, every other type a String answer.
type Prompter interface {
	Ask(ctx context.Context, q domain.Question) (domain.Answer, error)
}

// Confirmer asks a final yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// Chooser asks for free text or one item of a list, outside of a blueprint.
type Chooser interface {
	Choose(ctx context.Context, message string, choices []string) (string, error)
	Input(ctx context.Context, message string) (string, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(ctx context.Context, q domain.Question) (domain.Answer, error)

func (f PrompterFunc) Ask(ctx context.Context, q domain.Question) (domain.Answer, error) {
	return f(ctx, q)
}

// Compatible reports whether an answer has the kind a question type produces.
func Compatible(t domain.QuestionType, a domain.Answer) bool {
	switch t {
	case domain.QuestionConfirm:
		return a.Kind == domain.AnswerBool
	case domain.QuestionMultiSelect:
		return a.Kind == domain.AnswerArray
	default:
		return a.Kind == domain.AnswerString
	}
}
