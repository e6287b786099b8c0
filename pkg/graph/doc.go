/*
Package graph orders blueprint questions by their answer dependencies.

A Graph is kept as two plain containers, the node list (in declaration order) and the edge
list, so the stabilization pass can re-derive in-degrees from the edges without a richer
adjacency structure.

	g := graph.FromQuestions(questions)
	order, err := graph.Order(g) // Kahn sort, then stabilize

The stabilized order puts every dependency-free node first, in declaration order, followed by
the dependent nodes in a valid topological order.
*/
package graph
