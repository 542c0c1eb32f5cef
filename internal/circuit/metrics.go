package circuit

// Metrics summarises the cost of a circuit.
type Metrics struct {
	Qubits    int
	Gates     int
	TCount    int
	TwoQubit  int
	Toffoli   int
	Hadamard  int
	InternalH int // H gates strictly between the first and last T gate
	Depth     int
	TDepth    int
}

// TCount returns the number of T and T† gates.
func (c *Circuit) TCount() int {
	n := 0
	for _, g := range c.Gates {
		if g.IsT() {
			n++
		}
	}
	return n
}

// Count returns the number of gates of the given kind.
func (c *Circuit) Count(k Kind) int {
	n := 0
	for _, g := range c.Gates {
		if g.Kind == k {
			n++
		}
	}
	return n
}

// TRange returns the indices of the first and last T gate, or (-1, -1).
func (c *Circuit) TRange() (first, last int) {
	first, last = -1, -1
	for i, g := range c.Gates {
		if !g.IsT() {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return first, last
}

// InternalHCount returns the number of H gates strictly between the first
// and last T gate.
func (c *Circuit) InternalHCount() int {
	first, last := c.TRange()
	n := 0
	for i := first + 1; first >= 0 && i < last; i++ {
		if c.Gates[i].Kind == KindH {
			n++
		}
	}
	return n
}

// Metrics computes every metric of the circuit.
func (c *Circuit) Metrics() Metrics {
	dag := FromCircuit(c)
	return Metrics{
		Qubits:    c.NumQubits,
		Gates:     len(c.Gates),
		TCount:    c.TCount(),
		TwoQubit:  c.Count(KindCNOT) + c.Count(KindCZ),
		Toffoli:   c.Count(KindTof),
		Hadamard:  c.Count(KindH),
		InternalH: c.InternalHCount(),
		Depth:     dag.MaxStep(),
		TDepth:    dag.TDepth(),
	}
}
