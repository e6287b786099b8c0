package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/kopye/internal/metrics"
	"github.com/aretw0/kopye/pkg/domain"
	"github.com/aretw0/kopye/pkg/graph"
	"github.com/aretw0/kopye/pkg/prompt"
)

// Collector asks the visible questions of a blueprint in a stable dependency order.
type Collector struct {
	prompter prompt.Prompter
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithCollectorLogger sets the logger.
func WithCollectorLogger(logger *slog.Logger) CollectorOption {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCollectorMetrics counts asked and skipped questions.
func WithCollectorMetrics(m *metrics.Metrics) CollectorOption {
	return func(c *Collector) {
		c.metrics = m
	}
}

// NewCollector creates a collector that prompts through p.
func NewCollector(p prompt.Prompter, opts ...CollectorOption) *Collector {
	c := &Collector{
		prompter: p,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect orders the questions, then walks the order once. A question is asked only when
// its dependency holds against the answers gathered so far; hidden questions get no answer.
// A dependency cycle fails before anything is asked.
func (c *Collector) Collect(ctx context.Context, qs *domain.QuestionSet) (*domain.Answers, error) {
	order, err := graph.Order(graph.FromQuestions(qs))
	if err != nil {
		return nil, err
	}
	c.logger.Debug("question order resolved", "order", order)

	answers := domain.NewAnswers()
	for _, id := range order {
		q, ok := qs.Get(id)
		if !ok {
			continue
		}

		if !q.DependsOn.Evaluate(answers) {
			c.logger.Debug("skipping question", "question", id)
			c.metrics.Skipped()
			continue
		}

		ans, err := c.prompter.Ask(ctx, q)
		if err != nil {
			return nil, &domain.PromptError{Question: id, Err: err}
		}
		if !prompt.Compatible(q.Type, ans) {
			return nil, &domain.PromptError{
				Question: id,
				Err:      fmt.Errorf("answer of kind %s does not fit question type %s", ans.Kind, q.Type),
			}
		}

		c.metrics.Asked()
		answers.Set(id, ans)
	}

	return answers, nil
}

// NewRenderContext exposes every answer to templates under its question id.
// Strings, booleans and string lists keep their native Go types.
func NewRenderContext(answers *domain.Answers) map[string]any {
	data := make(map[string]any, answers.Len())
	for _, e := range answers.Entries() {
		data[e.Question] = e.Answer.Value()
	}
	return data
}
