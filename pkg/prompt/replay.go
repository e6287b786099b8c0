package prompt

import (
	"context"
	"log/slog"
	"slices"

	"github.com/aretw0/kopye/pkg/domain"
)

// Replay answers questions from a previously stored answer set and falls back to
// another Prompter for questions it cannot answer.
type Replay struct {
	answers  *domain.Answers
	fallback Prompter
	logger   *slog.Logger
}

// NewReplay wraps fallback. A nil logger discards.
func NewReplay(answers *domain.Answers, fallback Prompter, logger *slog.Logger) *Replay {
	if answers == nil {
		answers = domain.NewAnswers()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Replay{answers: answers, fallback: fallback, logger: logger}
}

func (r *Replay) Ask(ctx context.Context, q domain.Question) (domain.Answer, error) {
	if a, ok := r.answers.Get(q.ID); ok && Compatible(q.Type, a) && r.acceptable(q, a) {
		r.logger.Debug("replaying answer", "question", q.ID, "answer", a.String())
		return a, nil
	}
	if r.fallback == nil {
		return domain.Answer{}, ErrCanceled
	}
	return r.fallback.Ask(ctx, q)
}

// acceptable rejects stored choices that the blueprint no longer offers.
func (r *Replay) acceptable(q domain.Question, a domain.Answer) bool {
	switch q.Type {
	case domain.QuestionSelect:
		return slices.Contains(q.Choices, a.Str)
	case domain.QuestionMultiSelect:
		for _, item := range a.Array {
			if !slices.Contains(q.Choices, item) {
				return false
			}
		}
		return len(a.Array) > 0
	}
	return true
}
