package domain

import "time"

// AnswerRecord is the persisted outcome of a committed run, used for replay.
type AnswerRecord struct {
	ID          string        `json:"id"`
	Source      string        `json:"source"`
	Blueprint   string        `json:"blueprint"`
	Destination string        `json:"destination"`
	CreatedAt   time.Time     `json:"created_at"`
	Answers     []AnswerEntry `json:"answers"`
}

// NewAnswerRecord snapshots answers for a run.
func NewAnswerRecord(id, source, blueprint, destination string, answers *Answers) *AnswerRecord {
	return &AnswerRecord{
		ID:          id,
		Source:      source,
		Blueprint:   blueprint,
		Destination: destination,
		CreatedAt:   time.Now().UTC(),
		Answers:     answers.Entries(),
	}
}

// LastRecordKey is the alias under which the latest record of a blueprint is also saved.
func LastRecordKey(blueprint string) string {
	return "last:" + blueprint
}
