package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// AnswerKind tags the variant of an Answer.
type AnswerKind string

const (
	AnswerString AnswerKind = "string"
	AnswerBool   AnswerKind = "bool"
	AnswerArray  AnswerKind = "array"
)

// Answer is the value collected for a question.
type Answer struct {
	Kind  AnswerKind
	Str   string
	Bool  bool
	Array []string
}

// StringAnswer wraps a Text, Paragraph or Select answer.
func StringAnswer(s string) Answer { return Answer{Kind: AnswerString, Str: s} }

// BoolAnswer wraps a Confirm answer.
func BoolAnswer(b bool) Answer { return Answer{Kind: AnswerBool, Bool: b} }

// ArrayAnswer wraps a MultiSelect answer.
func ArrayAnswer(items []string) Answer { return Answer{Kind: AnswerArray, Array: items} }

// Matches compares the answer with the textual expectation of a predicate.
func (a Answer) Matches(expected string) bool {
	switch a.Kind {
	case AnswerString:
		return a.Str == expected
	case AnswerBool:
		switch expected {
		case "true":
			return a.Bool
		case "false":
			return !a.Bool
		}
		return false
	case AnswerArray:
		return slices.Contains(a.Array, expected)
	}
	return false
}

// Value returns the plain Go value used by template contexts.
func (a Answer) Value() any {
	switch a.Kind {
	case AnswerBool:
		return a.Bool
	case AnswerArray:
		return a.Array
	default:
		return a.Str
	}
}

func (a Answer) String() string {
	return fmt.Sprint(a.Value())
}

// MarshalJSON encodes the answer as its natural JSON value.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Kind == AnswerArray && a.Array == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a.Value())
}

// UnmarshalJSON infers the variant from the JSON value.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		*a = StringAnswer(v)
	case bool:
		*a = BoolAnswer(v)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("answer array contains non-string value %v", item)
			}
			items = append(items, s)
		}
		*a = ArrayAnswer(items)
	default:
		return fmt.Errorf("unsupported answer value %s", string(data))
	}
	return nil
}

// AnswerEntry is a single question/answer pair.
type AnswerEntry struct {
	Question string `json:"question"`
	Answer   Answer `json:"answer"`
}

// Answers is an insertion-ordered map from question identifier to answer.
type Answers struct {
	order  []string
	values map[string]Answer
}

// NewAnswers returns an empty answer map.
func NewAnswers() *Answers {
	return &Answers{values: make(map[string]Answer)}
}

// AnswersFromEntries rebuilds an answer map from persisted entries.
func AnswersFromEntries(entries []AnswerEntry) *Answers {
	a := NewAnswers()
	for _, e := range entries {
		a.Set(e.Question, e.Answer)
	}
	return a
}

// Set stores an answer. Re-setting a key keeps its original position.
func (a *Answers) Set(question string, ans Answer) {
	if _, exists := a.values[question]; !exists {
		a.order = append(a.order, question)
	}
	a.values[question] = ans
}

// Get returns the answer for question, if any.
func (a *Answers) Get(question string) (Answer, bool) {
	if a == nil {
		return Answer{}, false
	}
	ans, ok := a.values[question]
	return ans, ok
}

// Keys returns the question identifiers in insertion order.
func (a *Answers) Keys() []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.order)
}

// Len returns the number of answers.
func (a *Answers) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// Entries returns the answers in insertion order.
func (a *Answers) Entries() []AnswerEntry {
	if a == nil {
		return nil
	}
	entries := make([]AnswerEntry, 0, len(a.order))
	for _, k := range a.order {
		entries = append(entries, AnswerEntry{Question: k, Answer: a.values[k]})
	}
	return entries
}
