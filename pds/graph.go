package pds

import (
	"fmt"
	"maps"
	"slices"
)

// DirectedGraph validation flags.
const (
	GraphAcyclic    uint = 0x1 // no cycles
	GraphRooted     uint = 0x2 // every node is reachable from the roots set
	GraphSingleRoot uint = 0x4 // exactly one node without incoming edges
)

const (
	graphRootsKey = "Roots"
	graphEdgesKey = "Edges"
)

// Edge is a directed edge of a DirectedGraph.
type Edge[T Value] struct {
	From, To T
}

// DirectedGraph is a set of directed edges plus a set of root nodes.
type DirectedGraph[T Value] struct {
	roots map[T]struct{}
	edges map[Edge[T]]struct{}
}

// InsertEdge adds the edge from -> to unless it exists.
func (x *DirectedGraph[T]) InsertEdge(from, to T) {
	if x.edges == nil {
		x.edges = make(map[Edge[T]]struct{})
	}

	x.edges[Edge[T]{From: from, To: to}] = struct{}{}
}

// HasEdge reports whether the edge from -> to exists.
func (x *DirectedGraph[T]) HasEdge(from, to T) bool {
	_, ok := x.edges[Edge[T]{From: from, To: to}]
	return ok
}

// RemoveEdge deletes the edge from -> to.
func (x *DirectedGraph[T]) RemoveEdge(from, to T) {
	delete(x.edges, Edge[T]{From: from, To: to})
}

// AddRoot adds n to the roots set.
func (x *DirectedGraph[T]) AddRoot(n T) {
	if x.roots == nil {
		x.roots = make(map[T]struct{})
	}

	x.roots[n] = struct{}{}
}

// IsRoot reports whether n is in the roots set.
func (x *DirectedGraph[T]) IsRoot(n T) bool {
	_, ok := x.roots[n]
	return ok
}

// Roots returns the roots set in stream order.
func (x *DirectedGraph[T]) Roots() []T {
	return sortedValues(x.roots)
}

// Edges returns the edges ordered by source, then target.
func (x *DirectedGraph[T]) Edges() []Edge[T] {
	out := slices.Collect(maps.Keys(x.edges))

	slices.SortFunc(out, func(a, b Edge[T]) int {
		if c := compareValues(a.From, b.From); c != 0 {
			return c
		}

		return compareValues(a.To, b.To)
	})

	return out
}

// Successors returns the targets of the edges leaving from, in stream order.
func (x *DirectedGraph[T]) Successors(from T) []T {
	set := make(map[T]struct{})

	for e := range x.edges {
		if e.From == from {
			set[e.To] = struct{}{}
		}
	}

	return sortedValues(set)
}

func (x *DirectedGraph[T]) Clear() {
	clear(x.roots)
	clear(x.edges)
}

func (x *DirectedGraph[T]) DeepCopy(src *DirectedGraph[T]) {
	x.roots, x.edges = nil, nil

	if src == nil {
		return
	}

	x.roots = maps.Clone(src.roots)
	x.edges = maps.Clone(src.edges)
}

func (x *DirectedGraph[T]) Equals(o *DirectedGraph[T]) bool {
	if x == o {
		return true
	}

	if x == nil || o == nil {
		return false
	}

	return maps.Equal(x.roots, o.roots) && maps.Equal(x.edges, o.edges)
}

func (x *DirectedGraph[T]) Write(w *Writer) error {
	if err := WriteVector(w, graphRootsKey, x.Roots()); err != nil {
		return err
	}

	edges := x.Edges()
	pairs := make([]T, 0, 2*len(edges))

	for _, e := range edges {
		pairs = append(pairs, e.From, e.To)
	}

	return WriteVector(w, graphEdgesKey, pairs)
}

func (x *DirectedGraph[T]) Read(r *Reader) error {
	x.roots, x.edges = nil, nil

	var roots, pairs []T

	if err := ReadVector(r, graphRootsKey, &roots); err != nil {
		return err
	}

	if err := ReadVector(r, graphEdgesKey, &pairs); err != nil {
		return err
	}

	if len(pairs)%2 != 0 {
		return fmt.Errorf("%w: %s has an odd number of nodes", ErrCorrupt, graphEdgesKey)
	}

	for _, n := range roots {
		x.AddRoot(n)
	}

	for i := 0; i < len(pairs); i += 2 {
		x.InsertEdge(pairs[i], pairs[i+1])
	}

	return nil
}

// Validate validates the graph with no flags set, which always passes.
func (x *DirectedGraph[T]) Validate(v *Validator) error {
	return x.ValidateFlags(v, 0)
}

// ValidateFlags checks the root and cycle constraints the flags ask for.
func (x *DirectedGraph[T]) ValidateFlags(v *Validator, flags uint) error {
	downstream := make(map[T]struct{})
	for e := range x.edges {
		downstream[e.To] = struct{}{}
	}

	sources := make(map[T]struct{})
	for e := range x.edges {
		if _, ok := downstream[e.From]; !ok {
			sources[e.From] = struct{}{}
		}
	}

	if flags&GraphSingleRoot != 0 && len(sources) != 1 {
		v.ReportError(InvalidCount, "the graph has %d nodes without incoming edges but must have exactly one root", len(sources))
	}

	if flags&GraphRooted != 0 {
		if flags&GraphSingleRoot != 0 && len(x.roots) != 1 {
			v.ReportError(InvalidCount, "the graph is single rooted but the roots set has %d nodes", len(x.roots))
		}

		for _, n := range x.Roots() {
			if _, ok := downstream[n]; ok {
				v.ReportError(InvalidObject, "root node %v has incoming edges", n)
			}
		}

		for _, n := range sortedValues(sources) {
			if !x.IsRoot(n) {
				v.ReportError(MissingObject, "node %v has no incoming edges but is not in the roots set", n)
			}
		}

		x.validateReachable(v, downstream)
	}

	if flags&GraphAcyclic != 0 {
		x.validateAcyclic(v)
	}

	return nil
}

func (x *DirectedGraph[T]) validateReachable(v *Validator, downstream map[T]struct{}) {
	reached := make(map[T]struct{})
	queue := x.Roots()

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if _, ok := reached[n]; ok {
			continue
		}

		reached[n] = struct{}{}
		queue = append(queue, x.Successors(n)...)
	}

	for _, n := range sortedValues(downstream) {
		if _, ok := reached[n]; !ok {
			v.ReportError(InvalidSetup, "node %v cannot be reached from the roots set", n)
		}
	}
}

// validateAcyclic reports the first cycle found.
func (x *DirectedGraph[T]) validateAcyclic(v *Validator) {
	const (
		unvisited = iota
		onPath
		done
	)

	state := make(map[T]int)

	var visit func(n T) bool

	visit = func(n T) bool {
		state[n] = onPath

		for _, next := range x.Successors(n) {
			switch state[next] {
			case onPath:
				v.ReportError(InvalidSetup, "node %v is part of a cycle but the graph must be acyclic", next)
				return false
			case unvisited:
				if !visit(next) {
					return false
				}
			}
		}

		state[n] = done

		return true
	}

	for _, e := range x.Edges() {
		if state[e.From] == unvisited && !visit(e.From) {
			return
		}
	}
}
