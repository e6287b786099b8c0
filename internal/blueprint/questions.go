package blueprint

import (
	"fmt"
	"strings"

	"github.com/aretw0/kopye/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// QuestionFiles are the reserved question file names, in lookup order.
// They are never copied to the destination.
var QuestionFiles = []string{"blueprint.toml", "blueprint.yaml", "blueprint.yml"}

// IsQuestionFile reports whether name is a reserved question file name.
func IsQuestionFile(name string) bool {
	for _, f := range QuestionFiles {
		if name == f {
			return true
		}
	}
	return false
}

// questionSpec mirrors one question table of the question file.
type questionSpec struct {
	Type      string   `mapstructure:"type"`
	Help      string   `mapstructure:"help"`
	Choices   []string `mapstructure:"choices"`
	DependsOn any      `mapstructure:"depends_on"`
}

// dependencySpec is the table form of depends_on.
type dependencySpec struct {
	All []string `mapstructure:"all"`
	Any []string `mapstructure:"any"`
}

// LoadQuestions reads the question file of a blueprint directory.
func LoadQuestions(dir string) (*domain.QuestionSet, error) {
	path, err := findFile(dir, QuestionFiles)
	if err != nil {
		return nil, err
	}
	return LoadQuestionFile(path)
}

// LoadQuestionFile reads and validates a question file, preserving declaration order.
func LoadQuestionFile(path string) (*domain.QuestionSet, error) {
	entries, err := readEntries(path)
	if err != nil {
		return nil, err
	}

	questions := make([]domain.Question, 0, len(entries))
	for _, e := range entries {
		q, err := decodeQuestion(e)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	qs, err := domain.NewQuestionSet(questions...)
	if err != nil {
		return nil, err
	}
	if err := qs.Validate(); err != nil {
		return nil, err
	}
	return qs, nil
}

func decodeQuestion(e entry) (domain.Question, error) {
	var spec questionSpec
	if err := mapstructure.Decode(e.Fields, &spec); err != nil {
		return domain.Question{}, &domain.ValidationError{Question: e.Key, Reason: err.Error()}
	}

	dep, err := decodeDependency(spec.DependsOn)
	if err != nil {
		return domain.Question{}, &domain.ValidationError{Question: e.Key, Reason: err.Error()}
	}

	return domain.Question{
		ID:        e.Key,
		Type:      normalizeType(spec.Type),
		Help:      spec.Help,
		Choices:   spec.Choices,
		DependsOn: dep,
	}, nil
}

// normalizeType accepts the canonical type names case-insensitively.
func normalizeType(raw string) domain.QuestionType {
	for _, t := range []domain.QuestionType{
		domain.QuestionText,
		domain.QuestionParagraph,
		domain.QuestionConfirm,
		domain.QuestionSelect,
		domain.QuestionMultiSelect,
	} {
		if strings.EqualFold(raw, string(t)) {
			return t
		}
	}
	return domain.QuestionType(raw)
}

// decodeDependency turns the depends_on value into a Dependency.
// Accepted shapes: "id:value", {all = [...]}, {any = [...]}.
func decodeDependency(raw any) (*domain.Dependency, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		p, err := domain.ParsePredicate(v)
		if err != nil {
			return nil, err
		}
		return domain.Condition(p), nil
	case map[string]any:
		var spec dependencySpec
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &spec,
			ErrorUnused: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(v); err != nil {
			return nil, fmt.Errorf("depends_on: %w", err)
		}
		switch {
		case len(spec.All) > 0 && len(spec.Any) > 0:
			return nil, fmt.Errorf("depends_on: 'all' and 'any' are mutually exclusive")
		case len(spec.All) > 0:
			ps, err := parsePredicates(spec.All)
			if err != nil {
				return nil, err
			}
			return domain.All(ps...), nil
		case len(spec.Any) > 0:
			ps, err := parsePredicates(spec.Any)
			if err != nil {
				return nil, err
			}
			return domain.Any(ps...), nil
		}
		return nil, fmt.Errorf("depends_on: table needs a non-empty 'all' or 'any' list")
	}
	return nil, fmt.Errorf("depends_on: unsupported value %v", raw)
}

func parsePredicates(raw []string) ([]domain.Predicate, error) {
	ps := make([]domain.Predicate, 0, len(raw))
	for _, r := range raw {
		p, err := domain.ParsePredicate(r)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}
