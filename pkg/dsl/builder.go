package dsl

import (
	"errors"

	"github.com/aretw0/kopye/pkg/domain"
)

// Builder manages the question set construction.
type Builder struct {
	order     []string
	questions map[string]*QuestionBuilder
}

// New creates a new question set builder.
func New() *Builder {
	return &Builder{
		questions: make(map[string]*QuestionBuilder),
	}
}

// Add declares a question. Declaration order is the order of the first Add call.
// If the question already exists, it returns the existing builder.
func (b *Builder) Add(id string) *QuestionBuilder {
	if qb, ok := b.questions[id]; ok {
		return qb
	}
	qb := &QuestionBuilder{
		question: domain.Question{ID: id, Type: domain.QuestionText},
	}
	b.questions[id] = qb
	b.order = append(b.order, id)
	return qb
}

// Build validates every question and returns them as a set in declaration order.
// Malformed predicates are reported together.
func (b *Builder) Build() (*domain.QuestionSet, error) {
	questions := make([]domain.Question, 0, len(b.order))
	var errs []error
	for _, id := range b.order {
		qb := b.questions[id]
		errs = append(errs, qb.errs...)
		questions = append(questions, qb.question)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	qs, err := domain.NewQuestionSet(questions...)
	if err != nil {
		return nil, err
	}
	if err := qs.Validate(); err != nil {
		return nil, err
	}
	return qs, nil
}

// MustBuild is like Build but panics on error. Intended for tests and static definitions.
func (b *Builder) MustBuild() *domain.QuestionSet {
	qs, err := b.Build()
	if err != nil {
		panic(err)
	}
	return qs
}
