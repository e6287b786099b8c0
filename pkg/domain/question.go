package domain

import (
	"fmt"
	"strings"
)

// QuestionType selects the prompt widget used for a question.
type QuestionType string

const (
	// QuestionText is a single-line text input.
	QuestionText QuestionType = "Text"
	// QuestionParagraph is a multi-line text input.
	QuestionParagraph QuestionType = "Paragraph"
	// QuestionConfirm is a yes/no prompt.
	QuestionConfirm QuestionType = "Confirm"
	// QuestionSelect picks exactly one of Choices.
	QuestionSelect QuestionType = "Select"
	// QuestionMultiSelect picks one or more of Choices.
	QuestionMultiSelect QuestionType = "MultiSelect"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionParagraph, QuestionConfirm, QuestionSelect, QuestionMultiSelect:
		return true
	}
	return false
}

// NeedsChoices reports whether the type requires a choice list.
func (t QuestionType) NeedsChoices() bool {
	return t == QuestionSelect || t == QuestionMultiSelect
}

// Question is a single entry of a blueprint question file.
type Question struct {
	ID        string
	Type      QuestionType
	Help      string
	Choices   []string
	DependsOn *Dependency
}

// Validate checks the structural rules of a question definition.
func (q Question) Validate() error {
	if q.ID == "" {
		return &ValidationError{Question: q.ID, Reason: "empty question identifier"}
	}
	if !q.Type.Valid() {
		return &ValidationError{Question: q.ID, Reason: fmt.Sprintf("unknown type %q", q.Type)}
	}
	if q.Type.NeedsChoices() && len(q.Choices) == 0 {
		return &ValidationError{Question: q.ID, Reason: fmt.Sprintf("type %s requires choices", q.Type)}
	}
	return nil
}

// QuestionSet is the ordered list of questions of a blueprint.
// The order is the declaration order of the question file.
type QuestionSet struct {
	questions []Question
	index     map[string]int
}

// NewQuestionSet builds a set, rejecting duplicate identifiers.
func NewQuestionSet(questions ...Question) (*QuestionSet, error) {
	qs := &QuestionSet{index: make(map[string]int, len(questions))}
	for _, q := range questions {
		if _, dup := qs.index[q.ID]; dup {
			return nil, &ValidationError{Question: q.ID, Reason: "duplicate question identifier"}
		}
		qs.index[q.ID] = len(qs.questions)
		qs.questions = append(qs.questions, q)
	}
	return qs, nil
}

// All returns the questions in declaration order.
func (qs *QuestionSet) All() []Question {
	if qs == nil {
		return nil
	}
	return qs.questions
}

// IDs returns the question identifiers in declaration order.
func (qs *QuestionSet) IDs() []string {
	if qs == nil {
		return nil
	}
	ids := make([]string, len(qs.questions))
	for i, q := range qs.questions {
		ids[i] = q.ID
	}
	return ids
}

// Get looks up a question by identifier.
func (qs *QuestionSet) Get(id string) (Question, bool) {
	if qs == nil {
		return Question{}, false
	}
	i, ok := qs.index[id]
	if !ok {
		return Question{}, false
	}
	return qs.questions[i], true
}

// Len returns the number of questions.
func (qs *QuestionSet) Len() int {
	if qs == nil {
		return 0
	}
	return len(qs.questions)
}

// Validate runs Question.Validate on every question.
func (qs *QuestionSet) Validate() error {
	for _, q := range qs.All() {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DependencyKind tags the variant of a Dependency.
type DependencyKind string

const (
	// DependsCondition holds exactly one predicate.
	DependsCondition DependencyKind = "condition"
	// DependsAll requires every predicate to hold.
	DependsAll DependencyKind = "all"
	// DependsAny requires at least one predicate to hold.
	DependsAny DependencyKind = "any"
)

// Predicate is a parsed "question:expected" pair.
type Predicate struct {
	Question string
	Expected string
}

func (p Predicate) String() string {
	return p.Question + ":" + p.Expected
}

// ParsePredicate splits raw at its first ':'.
func ParsePredicate(raw string) (Predicate, error) {
	question, expected, ok := strings.Cut(raw, ":")
	if !ok || question == "" {
		return Predicate{}, fmt.Errorf("malformed predicate %q (expected \"question:value\")", raw)
	}
	return Predicate{Question: question, Expected: expected}, nil
}

// Dependency is the visibility expression of a question.
type Dependency struct {
	Kind       DependencyKind
	Predicates []Predicate
}

// Condition builds a single-predicate dependency.
func Condition(p Predicate) *Dependency {
	return &Dependency{Kind: DependsCondition, Predicates: []Predicate{p}}
}

// All builds a dependency satisfied when every predicate holds.
func All(ps ...Predicate) *Dependency {
	return &Dependency{Kind: DependsAll, Predicates: ps}
}

// Any builds a dependency satisfied when at least one predicate holds.
func Any(ps ...Predicate) *Dependency {
	return &Dependency{Kind: DependsAny, Predicates: ps}
}

// Evaluate reports whether the dependency holds against the answers collected so far.
// A nil dependency is always satisfied.
func (d *Dependency) Evaluate(answers *Answers) bool {
	if d == nil {
		return true
	}
	switch d.Kind {
	case DependsCondition:
		return len(d.Predicates) > 0 && d.Predicates[0].Holds(answers)
	case DependsAll:
		for _, p := range d.Predicates {
			if !p.Holds(answers) {
				return false
			}
		}
		return true
	case DependsAny:
		for _, p := range d.Predicates {
			if p.Holds(answers) {
				return true
			}
		}
		return false
	}
	return false
}

// Holds reports whether the referenced answer exists and matches Expected.
// Missing answers and unparsable booleans evaluate to false.
func (p Predicate) Holds(answers *Answers) bool {
	ans, ok := answers.Get(p.Question)
	if !ok {
		return false
	}
	return ans.Matches(p.Expected)
}
