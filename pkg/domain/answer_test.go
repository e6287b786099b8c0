package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/kopye/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswers_InsertionOrder(t *testing.T) {
	a := domain.NewAnswers()
	a.Set("zeta", domain.StringAnswer("z"))
	a.Set("alpha", domain.BoolAnswer(true))
	a.Set("zeta", domain.StringAnswer("again"))

	assert.Equal(t, []string{"zeta", "alpha"}, a.Keys())
	got, ok := a.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, "again", got.Str)
}

func TestAnswerEntries_JSON(t *testing.T) {
	a := domain.NewAnswers()
	a.Set("name", domain.StringAnswer("demo"))
	a.Set("ci", domain.BoolAnswer(false))
	a.Set("features", domain.ArrayAnswer([]string{"docker"}))

	data, err := json.Marshal(a.Entries())
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"question":"name","answer":"demo"},
		{"question":"ci","answer":false},
		{"question":"features","answer":["docker"]}
	]`, string(data))

	var entries []domain.AnswerEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	restored := domain.AnswersFromEntries(entries)
	assert.Equal(t, a.Keys(), restored.Keys())
	features, _ := restored.Get("features")
	assert.Equal(t, domain.AnswerArray, features.Kind)
}

func TestAnswer_UnmarshalRejectsNumbers(t *testing.T) {
	var a domain.Answer
	assert.Error(t, json.Unmarshal([]byte(`42`), &a))
}

func TestVirtualFS_SplitsLiveEntries(t *testing.T) {
	vfs := &domain.VirtualFS{Entries: []domain.VirtualEntry{
		{Destination: "out"},
		{Destination: "out/a.txt", IsFile: true},
		{IsFile: true},
		{Destination: "out/sub"},
	}}
	assert.Len(t, vfs.Dirs(), 2)
	assert.Len(t, vfs.Files(), 1)
}
