package dsl

import (
	"github.com/aretw0/kopye/pkg/domain"
)

// QuestionBuilder provides a fluent API for configuring a question.
type QuestionBuilder struct {
	question domain.Question
	errs     []error
}

// Text marks the question as a single-line input.
func (q *QuestionBuilder) Text(help string) *QuestionBuilder {
	return q.typed(domain.QuestionText, help)
}

// Paragraph marks the question as a multi-line input.
func (q *QuestionBuilder) Paragraph(help string) *QuestionBuilder {
	return q.typed(domain.QuestionParagraph, help)
}

// Confirm marks the question as a yes/no prompt.
func (q *QuestionBuilder) Confirm(help string) *QuestionBuilder {
	return q.typed(domain.QuestionConfirm, help)
}

// Select offers exactly one of choices.
func (q *QuestionBuilder) Select(help string, choices ...string) *QuestionBuilder {
	q.question.Choices = choices
	return q.typed(domain.QuestionSelect, help)
}

// MultiSelect offers any non-empty subset of choices.
func (q *QuestionBuilder) MultiSelect(help string, choices ...string) *QuestionBuilder {
	q.question.Choices = choices
	return q.typed(domain.QuestionMultiSelect, help)
}

func (q *QuestionBuilder) typed(t domain.QuestionType, help string) *QuestionBuilder {
	q.question.Type = t
	q.question.Help = help
	return q
}

// When shows the question only if the predicate "question:value" holds.
func (q *QuestionBuilder) When(predicate string) *QuestionBuilder {
	return q.depends(domain.DependsCondition, predicate)
}

// WhenAll shows the question only if every predicate holds.
func (q *QuestionBuilder) WhenAll(predicates ...string) *QuestionBuilder {
	return q.depends(domain.DependsAll, predicates...)
}

// WhenAny shows the question if at least one predicate holds.
func (q *QuestionBuilder) WhenAny(predicates ...string) *QuestionBuilder {
	return q.depends(domain.DependsAny, predicates...)
}

func (q *QuestionBuilder) depends(kind domain.DependencyKind, raw ...string) *QuestionBuilder {
	dep := &domain.Dependency{Kind: kind}
	for _, r := range raw {
		p, err := domain.ParsePredicate(r)
		if err != nil {
			q.errs = append(q.errs, &domain.ValidationError{Question: q.question.ID, Reason: err.Error()})
			continue
		}
		dep.Predicates = append(dep.Predicates, p)
	}
	q.question.DependsOn = dep
	return q
}

// Build returns the underlying domain.Question.
func (q *QuestionBuilder) Build() domain.Question {
	return q.question
}
