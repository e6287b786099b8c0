package dsl_test

import (
	"testing"

	"github.com/aretw0/kopye/pkg/domain"
	"github.com/aretw0/kopye/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_DeclarationOrderAndTypes(t *testing.T) {
	b := dsl.New()
	b.Add("name").Text("Project name")
	b.Add("ci").Confirm("Add CI?")
	b.Add("provider").Select("CI provider", "github", "gitlab").When("ci:true")
	b.Add("badges").MultiSelect("Badges", "coverage", "license").WhenAny("provider:github", "provider:gitlab")
	b.Add("notes").Paragraph("Notes").WhenAll("ci:true", "provider:github")
	b.Add("name").Text("Renamed help")

	qs, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "ci", "provider", "badges", "notes"}, qs.IDs())

	name, _ := qs.Get("name")
	assert.Equal(t, "Renamed help", name.Help, "Add returns the existing builder")

	provider, _ := qs.Get("provider")
	assert.Equal(t, domain.QuestionSelect, provider.Type)
	assert.Equal(t, []string{"github", "gitlab"}, provider.Choices)
	assert.Equal(t, domain.Condition(domain.Predicate{Question: "ci", Expected: "true"}), provider.DependsOn)

	badges, _ := qs.Get("badges")
	assert.Equal(t, domain.DependsAny, badges.DependsOn.Kind)
	assert.Len(t, badges.DependsOn.Predicates, 2)

	notes, _ := qs.Get("notes")
	assert.Equal(t, domain.QuestionParagraph, notes.Type)
	assert.Equal(t, domain.DependsAll, notes.DependsOn.Kind)
}

func TestBuilder_DefaultsToText(t *testing.T) {
	b := dsl.New()
	b.Add("plain")
	qs := b.MustBuild()

	q, ok := qs.Get("plain")
	require.True(t, ok)
	assert.Equal(t, domain.QuestionText, q.Type)
	assert.Nil(t, q.DependsOn)
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("Malformed predicates are joined", func(t *testing.T) {
		b := dsl.New()
		b.Add("a").Text("A").When("nocolon")
		b.Add("b").Text("B").WhenAll(":x", "a:y")

		_, err := b.Build()
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, err.Error(), "nocolon")
		assert.Contains(t, err.Error(), `":x"`)
	})

	t.Run("Select without choices", func(t *testing.T) {
		b := dsl.New()
		b.Add("pick").Select("Pick one")

		_, err := b.Build()
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "pick", verr.Question)
	})

	t.Run("MustBuild panics", func(t *testing.T) {
		b := dsl.New()
		b.Add("pick").MultiSelect("Pick some")
		assert.Panics(t, func() { b.MustBuild() })
	})
}
