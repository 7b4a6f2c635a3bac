package skeleton

import (
	"errors"
	"fmt"

	"smd-loader/internal/smd"
)

var (
	// ErrDanglingParent marks nodes whose parent id was never declared.
	ErrDanglingParent = errors.New("skeleton: parent id not declared")

	// ErrCycle marks nodes that cannot be reached from any root because
	// their parent chain loops.
	ErrCycle = errors.New("skeleton: parent cycle")
)

// BuildHierarchy links every node to its parent and collects the roots.
// Parents are resolved through the declared id, so ids need not be
// contiguous. Nodes with an undeclared parent are left detached and
// reported with ErrDanglingParent; the rest of the hierarchy is still built.
func BuildHierarchy(m *smd.Model) error {
	m.Skeleton.RootNodes = m.Skeleton.RootNodes[:0]
	for i := range m.Nodes {
		m.Nodes[i].Children = nil
	}

	var dangling []int
	for i := range m.Nodes {
		parent := m.Nodes[i].Parent
		if parent == -1 {
			m.Skeleton.RootNodes = append(m.Skeleton.RootNodes, i)
			continue
		}
		p, ok := m.NodeIndex(parent)
		if !ok {
			dangling = append(dangling, i)
			continue
		}
		m.Nodes[p].Children = append(m.Nodes[p].Children, i)
	}
	if len(dangling) > 0 {
		return fmt.Errorf("%w: nodes %v", ErrDanglingParent, dangling)
	}
	return nil
}

// visit is one step of the pre-order walk: a node and its parent's storage
// index (-1 for roots).
type visit struct {
	node, parent int
}

// walkOrder lists every node reachable from the roots in pre-order, parents
// before children. It walks with an explicit stack and a visited set, so a
// deep or malformed hierarchy cannot exhaust the goroutine stack. Nodes
// that are never reached because of a parent loop are reported with ErrCycle.
func walkOrder(m *smd.Model) ([]visit, error) {
	visited := make([]bool, len(m.Nodes))
	order := make([]visit, 0, len(m.Nodes))
	stack := make([]visit, 0, len(m.Skeleton.RootNodes))
	for i := len(m.Skeleton.RootNodes) - 1; i >= 0; i-- {
		stack = append(stack, visit{node: m.Skeleton.RootNodes[i], parent: -1})
	}

	revisited := -1
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v.node < 0 || v.node >= len(m.Nodes) {
			continue
		}
		if visited[v.node] {
			if revisited < 0 {
				revisited = v.node
			}
			continue
		}
		visited[v.node] = true
		order = append(order, v)
		children := m.Nodes[v.node].Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, visit{node: children[i], parent: v.node})
		}
	}

	cyclic := loopedNodes(m, visited)
	if len(cyclic) == 0 && revisited >= 0 {
		cyclic = []int{revisited}
	}
	if len(cyclic) > 0 {
		return order, fmt.Errorf("%w: nodes %v", ErrCycle, cyclic)
	}
	return order, nil
}

// loopedNodes returns the unvisited nodes whose parent chain never ends at
// a root or an undeclared parent.
func loopedNodes(m *smd.Model, visited []bool) []int {
	var out []int
	for i := range m.Nodes {
		if visited[i] {
			continue
		}
		cur := i
		ends := false
		for step := 0; step <= len(m.Nodes); step++ {
			parent := m.Nodes[cur].Parent
			if parent == -1 {
				ends = true
				break
			}
			p, ok := m.NodeIndex(parent)
			if !ok {
				ends = true
				break
			}
			cur = p
		}
		if !ends {
			out = append(out, i)
		}
	}
	return out
}
