package prompt_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/kopye/pkg/domain"
	"github.com/aretw0/kopye/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newText(input string) (*prompt.TextPrompter, *bytes.Buffer) {
	var out bytes.Buffer
	return prompt.NewText(strings.NewReader(input), &out, prompt.WithColor(false), prompt.WithEcho(false)), &out
}

func TestAsk_ByType(t *testing.T) {
	tests := []struct {
		name     string
		question domain.Question
		input    string
		want     domain.Answer
	}{
		{
			name:     "text",
			question: domain.Question{ID: "name", Type: domain.QuestionText},
			input:    "  demo \n",
			want:     domain.StringAnswer("demo"),
		},
		{
			name:     "text retries when empty",
			question: domain.Question{ID: "name", Type: domain.QuestionText},
			input:    "\ndemo\n",
			want:     domain.StringAnswer("demo"),
		},
		{
			name:     "paragraph",
			question: domain.Question{ID: "about", Type: domain.QuestionParagraph},
			input:    "line one\n\nline three\n.\n",
			want:     domain.StringAnswer("line one\n\nline three"),
		},
		{
			name:     "paragraph ends at eof",
			question: domain.Question{ID: "about", Type: domain.QuestionParagraph},
			input:    "only line",
			want:     domain.StringAnswer("only line"),
		},
		{
			name:     "confirm",
			question: domain.Question{ID: "ci", Type: domain.QuestionConfirm},
			input:    "maybe\nYes\n",
			want:     domain.BoolAnswer(true),
		},
		{
			name:     "select by index",
			question: domain.Question{ID: "lang", Type: domain.QuestionSelect, Choices: []string{"go", "rust"}},
			input:    "2\n",
			want:     domain.StringAnswer("rust"),
		},
		{
			name:     "select by name after invalid",
			question: domain.Question{ID: "lang", Type: domain.QuestionSelect, Choices: []string{"go", "rust"}},
			input:    "3\ngo\n",
			want:     domain.StringAnswer("go"),
		},
		{
			name:     "multiselect keeps choice order",
			question: domain.Question{ID: "features", Type: domain.QuestionMultiSelect, Choices: []string{"docker", "ci", "lint"}},
			input:    "lint, 1,lint\n",
			want:     domain.ArrayAnswer([]string{"docker", "lint"}),
		},
		{
			name:     "multiselect requires one",
			question: domain.Question{ID: "features", Type: domain.QuestionMultiSelect, Choices: []string{"docker"}},
			input:    "\n1\n",
			want:     domain.ArrayAnswer([]string{"docker"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newText(tt.input)
			got, err := p.Ask(context.Background(), tt.question)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsk_EOFCancels(t *testing.T) {
	p, _ := newText("")
	_, err := p.Ask(context.Background(), domain.Question{ID: "name", Type: domain.QuestionText})
	assert.ErrorIs(t, err, prompt.ErrCanceled)
}

func TestAsk_ContextCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, _ := newBlockingReader()
	p := prompt.NewText(r, &bytes.Buffer{}, prompt.WithColor(false))
	_, err := p.Ask(ctx, domain.Question{ID: "name", Type: domain.QuestionText})
	assert.ErrorIs(t, err, prompt.ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAsk_RendersHelpAndChoices(t *testing.T) {
	p, out := newText("1\n")
	_, err := p.Ask(context.Background(), domain.Question{
		ID:      "lang",
		Type:    domain.QuestionSelect,
		Help:    "Pick one",
		Choices: []string{"go", "rust"},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "? lang (Pick one)")
	assert.Contains(t, out.String(), "1) go")
	assert.Contains(t, out.String(), "2) rust")
}

func TestConfirm_DefaultsToNo(t *testing.T) {
	p, _ := newText("\n")
	ok, err := p.Confirm(context.Background(), "Apply?")
	require.NoError(t, err)
	assert.False(t, ok)

	p, _ = newText("y\n")
	ok, err = p.Confirm(context.Background(), "Apply?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChooseAndInput(t *testing.T) {
	p, _ := newText("rust\n./out\n")

	choice, err := p.Choose(context.Background(), "Blueprint", []string{"go", "rust"})
	require.NoError(t, err)
	assert.Equal(t, "rust", choice)

	dest, err := p.Input(context.Background(), "Destination")
	require.NoError(t, err)
	assert.Equal(t, "./out", dest)
}

func TestEcho(t *testing.T) {
	var out bytes.Buffer
	p := prompt.NewText(strings.NewReader("demo\n"), &out, prompt.WithColor(false), prompt.WithEcho(true))
	_, err := p.Ask(context.Background(), domain.Question{ID: "name", Type: domain.QuestionText})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "> demo\n")
}
