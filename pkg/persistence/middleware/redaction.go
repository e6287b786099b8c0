package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/kopye/pkg/domain"
	"github.com/aretw0/kopye/pkg/ports"
)

type redactionMiddleware struct {
	next     ports.AnswerStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that drops answers whose question id matches
// any of the patterns before they are stored. Replays ask those questions again.
func NewRedactionMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.AnswerStore) ports.AnswerStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactionMiddleware) redacted(question string) bool {
	for _, p := range m.patterns {
		if p.MatchString(question) {
			return true
		}
	}
	return false
}

func (m *redactionMiddleware) Save(ctx context.Context, id string, record *domain.AnswerRecord) error {
	// Copy, the caller keeps using its record.
	cloned := *record
	cloned.Answers = make([]domain.AnswerEntry, 0, len(record.Answers))
	for _, e := range record.Answers {
		if !m.redacted(e.Question) {
			cloned.Answers = append(cloned.Answers, e)
		}
	}

	return m.next.Save(ctx, id, &cloned)
}

func (m *redactionMiddleware) Load(ctx context.Context, id string) (*domain.AnswerRecord, error) {
	return m.next.Load(ctx, id)
}

func (m *redactionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
