package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/kopye/pkg/domain"
)

// Store implements ports.AnswerStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.AnswerRecord
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.AnswerRecord),
	}
}

func cloneRecord(r *domain.AnswerRecord) *domain.AnswerRecord {
	out := *r
	out.Answers = make([]domain.AnswerEntry, len(r.Answers))
	for i, e := range r.Answers {
		e.Answer.Array = slices.Clone(e.Answer.Array)
		out.Answers[i] = e
	}
	return &out
}

// Save keeps a copy of the record.
func (s *Store) Save(ctx context.Context, id string, record *domain.AnswerRecord) error {
	copied := cloneRecord(record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = copied
	return nil
}

// Load returns a copy so callers cannot mutate stored records.
func (s *Store) Load(ctx context.Context, id string) (*domain.AnswerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.data[id]
	if !ok {
		return nil, domain.ErrAnswersNotFound
	}
	return cloneRecord(record), nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored ids in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
