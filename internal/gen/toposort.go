package gen

import (
	"errors"
	"fmt"
)

// errCycle is returned by topoSort when the dependencies form a cycle.
var errCycle = errors.New("cycle detected")

// topoSort orders the nodes 0..n-1 so that every node follows the nodes
// depsFn returns for it. Nodes are taken in index order and each is preceded
// only by the dependencies it still lacks, so independent nodes keep their
// relative order. A cycle fails with errCycle listing the nodes on it.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make([]int, n)
	order := make([]int, 0, n)

	var stack []int

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			for k, j := range stack {
				if j == i {
					return fmt.Errorf("%w: %v", errCycle, append(stack[k:len(stack):len(stack)], i))
				}
			}

			return errCycle
		}

		state[i] = visiting
		stack = append(stack, i)

		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			if err := visit(d); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		state[i] = done
		order = append(order, i)

		return nil
	}

	for i := range n {
		if err := visit(i); err != nil {
			return nil, err
		}
	}

	return order, nil
}
