package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/kopye/internal/presentation/graph"
	"github.com/aretw0/kopye/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pred(q, v string) domain.Predicate {
	return domain.Predicate{Question: q, Expected: v}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name      string
		questions []domain.Question
		order     []string
		contains  []string
	}{
		{
			name: "Shapes",
			questions: []domain.Question{
				{ID: "name", Type: domain.QuestionText},
				{ID: "ci", Type: domain.QuestionConfirm},
				{ID: "lang", Type: domain.QuestionSelect, Choices: []string{"go"}},
			},
			contains: []string{
				`name["name"]`,
				`ci{"ci"}`,
				`lang[/"lang"/]`,
			},
		},
		{
			name: "Edges",
			questions: []domain.Question{
				{ID: "ci", Type: domain.QuestionConfirm},
				{ID: "lang", Type: domain.QuestionSelect, Choices: []string{"go"}},
				{ID: "runner", Type: domain.QuestionText, DependsOn: domain.Condition(pred("ci", "true"))},
				{ID: "both", Type: domain.QuestionText, DependsOn: domain.All(pred("ci", "true"), pred("lang", "go"))},
				{ID: "either", Type: domain.QuestionText, DependsOn: domain.Any(pred("ci", "true"), pred("lang", "go"))},
			},
			contains: []string{
				`ci -- "true" --> runner`,
				`ci -- "all: true" --> both`,
				`lang -- "all: go" --> both`,
				`ci -. "any: true" .-> either`,
				`lang -. "any: go" .-> either`,
			},
		},
		{
			name: "Order Prefix And Sanitized IDs",
			questions: []domain.Question{
				{ID: "project-name", Type: domain.QuestionText},
				{ID: "use.ci", Type: domain.QuestionConfirm},
			},
			order: []string{"use.ci", "project-name"},
			contains: []string{
				`project_name["2. project-name"]`,
				`use_ci{"1. use.ci"}`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := domain.NewQuestionSet(tt.questions...)
			require.NoError(t, err)

			out := graph.GenerateMermaid(qs, tt.order, nil)
			assert.True(t, strings.HasPrefix(out, "graph TD\n"))
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	qs, err := domain.NewQuestionSet(
		domain.Question{ID: "a", Type: domain.QuestionText},
		domain.Question{ID: "b-c", Type: domain.QuestionText},
	)
	require.NoError(t, err)

	out := graph.GenerateMermaid(qs, nil, &graph.GraphOverlay{Answered: []string{"a", "b-c", "a"}})
	assert.Contains(t, out, "classDef answered")
	assert.Equal(t, 1, strings.Count(out, "class a answered;"))
	assert.Contains(t, out, "class b_c answered;")
}
