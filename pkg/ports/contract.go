package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/kopye/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunAnswerStoreContract runs a suite of tests to verify that an AnswerStore implementation
// adheres to the defined interface contract.
func RunAnswerStoreContract(t *testing.T, store AnswerStore) {
	ctx := context.Background()
	runID := "contract-run-" + time.Now().Format("20060102150405")

	newRecord := func(id string) *domain.AnswerRecord {
		answers := domain.NewAnswers()
		answers.Set("name", domain.StringAnswer("demo"))
		answers.Set("ci", domain.BoolAnswer(true))
		answers.Set("features", domain.ArrayAnswer([]string{"docker", "lint"}))
		return domain.NewAnswerRecord(id, "./blueprints", "rust", "out", answers)
	}

	t.Run("Save and Load", func(t *testing.T) {
		record := newRecord(runID)

		err := store.Save(ctx, runID, record)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, record.ID, loaded.ID)
		assert.Equal(t, record.Blueprint, loaded.Blueprint)
		assert.Equal(t, record.Destination, loaded.Destination)
		assert.True(t, record.CreatedAt.Equal(loaded.CreatedAt))

		// Order and variants must survive the round trip.
		assert.Equal(t, record.Answers, loaded.Answers)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		record := newRecord(runID)
		record.Destination = "elsewhere"
		require.NoError(t, store.Save(ctx, runID, record))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, "elsewhere", loaded.Destination)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrAnswersNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, runID, newRecord(runID)))

		err := store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrAnswersNotFound, "Load after Delete should return ErrAnswersNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := domain.LastRecordKey("rust")
		_ = store.Save(ctx, id1, newRecord(id1))
		_ = store.Save(ctx, id2, newRecord(id1))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
