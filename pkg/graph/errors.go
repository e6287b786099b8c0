package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCycleDetected is matched by every CycleError.
var ErrCycleDetected = errors.New("cycle detected")

// CycleError carries the full edge list of the graph that failed to sort.
// The whole list is kept, not only the offending subset, to ease debugging.
type CycleError[N comparable] struct {
	Edges []Edge[N]
}

func (e *CycleError[N]) Error() string {
	var sb strings.Builder
	sb.WriteString("cycle detected in question dependencies\nnodes:")

	seen := make(map[string]struct{})
	var nodes []string
	for _, edge := range e.Edges {
		for _, n := range []string{fmt.Sprint(edge.From), fmt.Sprint(edge.To)} {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				nodes = append(nodes, n)
			}
		}
	}
	sort.Strings(nodes)
	for _, n := range nodes {
		sb.WriteString(" " + n)
	}

	sb.WriteString("\nedges:")
	for _, edge := range e.Edges {
		fmt.Fprintf(&sb, "\n  %v -> %v", edge.From, edge.To)
	}
	return sb.String()
}

func (e *CycleError[N]) Unwrap() error { return ErrCycleDetected }
