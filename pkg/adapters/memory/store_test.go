package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/kopye/pkg/adapters/memory"
	"github.com/aretw0/kopye/pkg/domain"
	"github.com/aretw0/kopye/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunAnswerStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	answers := domain.NewAnswers()
	answers.Set("features", domain.ArrayAnswer([]string{"docker"}))
	record := domain.NewAnswerRecord("run", "src", "bp", "out", answers)
	require.NoError(t, store.Save(ctx, "run", record))

	record.Answers[0].Answer.Array[0] = "mutated"

	loaded, err := store.Load(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, []string{"docker"}, loaded.Answers[0].Answer.Array)
}
