package ports

import (
	"context"

	"github.com/aretw0/kopye/pkg/domain"
)

// AnswerStore defines the interface for persisting answer records.
// Records are keyed by run id; the engine also saves the latest run of each blueprint under
// domain.LastRecordKey.
type AnswerStore interface {
	// Save persists the record under id, replacing any previous one.
	Save(ctx context.Context, id string, record *domain.AnswerRecord) error

	// Load retrieves the record for id.
	// Returns domain.ErrAnswersNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.AnswerRecord, error)

	// Delete removes the record for id. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored records.
	List(ctx context.Context) ([]string, error)
}
