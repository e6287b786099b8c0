package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/aretw0/kopye/internal/blueprint"
	"github.com/aretw0/kopye/internal/presentation/graph"
	"github.com/aretw0/kopye/internal/presentation/tui"
	"github.com/aretw0/kopye/internal/source"
	"github.com/aretw0/kopye/pkg/domain"
	kgraph "github.com/aretw0/kopye/pkg/graph"
	"github.com/aretw0/kopye/pkg/ports"
)

// ListBlueprints renders the registry of ref as a Markdown table.
func ListBlueprints(ctx context.Context, ref string, plain bool, logger *slog.Logger) (string, error) {
	src, err := source.Resolve(ctx, ref, source.WithLogger(logger))
	if err != nil {
		return "", err
	}
	defer src.Cleanup()

	return tui.NewRenderer(plain)(tui.RegistryMarkdown(ref, src.Registry.Entries()))
}

// QuestionReport is the introspection result of one blueprint.
type QuestionReport struct {
	Order   []string
	Mermaid string
}

// DescribeQuestions resolves the question order of a blueprint and draws its dependency
// graph. When replay names a stored record, its answered questions are highlighted.
func DescribeQuestions(ctx context.Context, ref, name, replay string, store ports.AnswerStore, logger *slog.Logger) (*QuestionReport, error) {
	src, err := source.Resolve(ctx, ref, source.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	defer src.Cleanup()

	_, dir, err := src.Blueprint(name)
	if err != nil {
		return nil, err
	}
	qs, err := blueprint.LoadQuestions(dir)
	if err != nil {
		return nil, err
	}
	order, err := kgraph.Order(kgraph.FromQuestions(qs))
	if err != nil {
		return nil, err
	}

	var overlay *graph.GraphOverlay
	if replay != "" {
		if store == nil {
			return nil, fmt.Errorf("cannot load %q: answer store disabled", replay)
		}
		rec, err := store.Load(ctx, replay)
		if err != nil {
			return nil, fmt.Errorf("cannot load %q: %w", replay, err)
		}
		overlay = &graph.GraphOverlay{}
		for _, e := range rec.Answers {
			overlay.Answered = append(overlay.Answered, e.Question)
		}
	}

	return &QuestionReport{Order: order, Mermaid: graph.GenerateMermaid(qs, order, overlay)}, nil
}

// Finding is a problem found in one blueprint. Warnings do not fail validation.
type Finding struct {
	Blueprint string
	Err       error
	Warning   bool
}

func (f Finding) String() string {
	level := "error"
	if f.Warning {
		level = "warning"
	}
	return fmt.Sprintf("%s: %s: %v", f.Blueprint, level, f.Err)
}

// ValidateSource checks every blueprint in the registry of ref: the question file parses,
// every question is well formed, and the dependency graph has no cycle. Dependencies on
// undeclared questions are reported as warnings, since they only hide the dependent.
func ValidateSource(ctx context.Context, ref string, logger *slog.Logger) ([]Finding, error) {
	src, err := source.Resolve(ctx, ref, source.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	defer src.Cleanup()

	var findings []Finding
	for _, entry := range src.Registry.Entries() {
		dir, err := src.Registry.Dir(entry)
		if err != nil {
			findings = append(findings, Finding{Blueprint: entry.Name, Err: err})
			continue
		}
		qs, err := blueprint.LoadQuestions(dir)
		if err != nil {
			findings = append(findings, Finding{Blueprint: entry.Name, Err: err})
			continue
		}
		if _, err := kgraph.Order(kgraph.FromQuestions(qs)); err != nil {
			findings = append(findings, Finding{Blueprint: entry.Name, Err: err})
		}
		for _, missing := range unknownReferences(qs) {
			findings = append(findings, Finding{
				Blueprint: entry.Name,
				Err:       fmt.Errorf("question '%s' depends on undeclared question '%s'", missing[0], missing[1]),
				Warning:   true,
			})
		}
		logger.Debug("blueprint checked", "blueprint", entry.Name, "questions", qs.Len())
	}
	return findings, nil
}

// unknownReferences returns (question, reference) pairs whose reference is not declared.
func unknownReferences(qs *domain.QuestionSet) [][2]string {
	var out [][2]string
	for _, q := range qs.All() {
		if q.DependsOn == nil {
			continue
		}
		var seen []string
		for _, p := range q.DependsOn.Predicates {
			if _, ok := qs.Get(p.Question); ok || slices.Contains(seen, p.Question) {
				continue
			}
			seen = append(seen, p.Question)
			out = append(out, [2]string{q.ID, p.Question})
		}
	}
	return out
}
