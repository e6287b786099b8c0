package graph

import (
	"github.com/aretw0/kopye/pkg/domain"
)

// Edge is a directed "must come before" pair.
type Edge[N comparable] struct {
	From N
	To   N
}

// Graph is a node list plus an edge list.
type Graph[N comparable] struct {
	Nodes []N
	Edges []Edge[N]
}

// FromQuestions derives the dependency graph of a question set.
// Every predicate of a question's dependency contributes one edge from the referenced
// question to the dependent one. Duplicate edges and unknown references are kept as is.
func FromQuestions(qs *domain.QuestionSet) Graph[string] {
	g := Graph[string]{Nodes: qs.IDs()}
	for _, q := range qs.All() {
		if q.DependsOn == nil {
			continue
		}
		for _, p := range q.DependsOn.Predicates {
			g.Edges = append(g.Edges, Edge[string]{From: p.Question, To: q.ID})
		}
	}
	return g
}

// inDegrees counts incoming edges between known nodes. An edge whose source is not a node
// comes from a predicate on an unknown question; it can never be satisfied and imposes no
// ordering.
func (g Graph[N]) inDegrees() map[N]int {
	deg := make(map[N]int, len(g.Nodes))
	for _, n := range g.Nodes {
		deg[n] = 0
	}
	for _, e := range g.Edges {
		if _, ok := deg[e.From]; !ok {
			continue
		}
		if _, ok := deg[e.To]; ok {
			deg[e.To]++
		}
	}
	return deg
}

// Sort runs Kahn's algorithm. The queue is seeded in node order, so the result is
// deterministic for a given graph. If nodes remain with a positive in-degree once the queue
// drains, a *CycleError carrying every edge of g is returned.
func Sort[N comparable](g Graph[N]) ([]N, error) {
	deg := g.inDegrees()
	dependents := make(map[N][]N, len(g.Nodes))
	for _, e := range g.Edges {
		dependents[e.From] = append(dependents[e.From], e.To)
	}

	queue := make([]N, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if deg[n] == 0 {
			queue = append(queue, n)
		}
	}

	sorted := make([]N, 0, len(g.Nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		sorted = append(sorted, n)

		for _, d := range dependents[n] {
			if _, ok := deg[d]; !ok {
				continue
			}
			deg[d]--
			if deg[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(sorted) != len(g.Nodes) {
		return nil, &CycleError[N]{Edges: append([]Edge[N](nil), g.Edges...)}
	}
	return sorted, nil
}

// Stabilize reorders a topological sort so that nodes without incoming edges in g come
// first, in declaration order, followed by the remaining nodes in sorted order.
func Stabilize[N comparable](g Graph[N], sorted []N) []N {
	deg := g.inDegrees()

	stable := make([]N, 0, len(sorted))
	for _, n := range g.Nodes {
		if deg[n] == 0 {
			stable = append(stable, n)
		}
	}
	for _, n := range sorted {
		if deg[n] != 0 {
			stable = append(stable, n)
		}
	}
	return stable
}

// Order sorts and stabilizes g in one step.
func Order[N comparable](g Graph[N]) ([]N, error) {
	sorted, err := Sort(g)
	if err != nil {
		return nil, err
	}
	return Stabilize(g, sorted), nil
}
