package circuit

import "slices"

// DAGNode represents a gate in the circuit as a node in a DAG.
// Dependencies represent ordering constraints - a gate cannot execute before
// the gates that affect the same qubits earlier in the circuit.
type DAGNode struct {
	ID           int   // Position of the gate in the source circuit
	Gate         Gate  // The gate itself
	Step         int   // ASAP layer: 1 + the largest step among dependencies
	TDepth       int   // Number of T gates on the longest path ending here
	Dependencies []int // IDs of nodes that must execute before this one
}

// CircuitDAG is the dependency graph of a circuit.
type CircuitDAG struct {
	Nodes     []*DAGNode
	NumQubits int
}

// DAGOption configures FromCircuit.
type DAGOption func(*dagConfig)

type dagConfig struct {
	spanning bool
}

// WithSpanning makes a multi-qubit gate occupy every wire between its lowest
// and highest qubit, so gates drawn in one step never overlap on screen.
func WithSpanning() DAGOption {
	return func(c *dagConfig) { c.spanning = true }
}

// FromCircuit creates a DAG from a circuit.
func FromCircuit(c *Circuit, opts ...DAGOption) *CircuitDAG {
	var cfg dagConfig
	for _, o := range opts {
		o(&cfg)
	}

	dag := &CircuitDAG{NumQubits: c.NumQubits, Nodes: make([]*DAGNode, 0, len(c.Gates))}

	// Track the last gate on each qubit to establish dependencies
	lastGateOnQubit := make(map[int]int)

	for id, g := range c.Gates {
		node := &DAGNode{ID: id, Gate: g}

		qubitsUsed := g.Qubits()
		if cfg.spanning && len(qubitsUsed) > 1 {
			lo, hi := slices.Min(qubitsUsed), slices.Max(qubitsUsed)
			qubitsUsed = nil
			for q := lo; q <= hi; q++ {
				qubitsUsed = append(qubitsUsed, q)
			}
		}

		depSet := make(map[int]bool)
		for _, q := range qubitsUsed {
			if lastID, ok := lastGateOnQubit[q]; ok {
				depSet[lastID] = true
			}
		}
		for depID := range depSet {
			node.Dependencies = append(node.Dependencies, depID)
		}
		slices.Sort(node.Dependencies)

		for _, depID := range node.Dependencies {
			dep := dag.Nodes[depID]
			node.Step = max(node.Step, dep.Step+1)
			node.TDepth = max(node.TDepth, dep.TDepth)
		}
		if g.IsT() {
			node.TDepth++
		}

		dag.Nodes = append(dag.Nodes, node)
		for _, q := range qubitsUsed {
			lastGateOnQubit[q] = id
		}
	}

	return dag
}

// TopologicalSort returns nodes ordered by step, ties broken by source order.
func (dag *CircuitDAG) TopologicalSort() []*DAGNode {
	out := slices.Clone(dag.Nodes)
	slices.SortStableFunc(out, func(a, b *DAGNode) int {
		if a.Step != b.Step {
			return a.Step - b.Step
		}
		return a.ID - b.ID
	})
	return out
}

// ToCircuit converts the DAG back to a circuit in layer order.
func (dag *CircuitDAG) ToCircuit() *Circuit {
	c := New(dag.NumQubits)
	for _, node := range dag.TopologicalSort() {
		c.Append(node.Gate)
	}
	return c
}

// MaxStep returns the number of layers.
func (dag *CircuitDAG) MaxStep() int {
	steps := 0
	for _, node := range dag.Nodes {
		steps = max(steps, node.Step+1)
	}
	return steps
}

// TDepth returns the largest number of T gates on any dependency path.
func (dag *CircuitDAG) TDepth() int {
	depth := 0
	for _, node := range dag.Nodes {
		depth = max(depth, node.TDepth)
	}
	return depth
}

// GetNodesAtStep returns all nodes at a specific step.
func (dag *CircuitDAG) GetNodesAtStep(step int) []*DAGNode {
	var result []*DAGNode
	for _, node := range dag.Nodes {
		if node.Step == step {
			result = append(result, node)
		}
	}
	return result
}

// GetNodeAt returns the node touching qubit at the given step, or nil.
func (dag *CircuitDAG) GetNodeAt(step, qubit int) *DAGNode {
	for _, node := range dag.Nodes {
		if node.Step == step && node.Gate.Touches(qubit) {
			return node
		}
	}
	return nil
}
