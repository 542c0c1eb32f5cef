package optimize

import "qtcount/internal/circuit"

// Gadgetized is a circuit whose interior Hadamards were replaced by gadgets.
// Logical qubit q ends on wire Mapping[q]; the Retired wires must be
// measured in the X basis with outcome + for the circuit to equal the input.
type Gadgetized struct {
	Circuit *circuit.Circuit
	Mapping []int
	Retired []int
}

// GadgetizeHadamards replaces every H strictly between the first and last T
// gate on qubit q with a fresh ancilla a prepared in |+> and CZ(q, a); the
// logical qubit continues on a and the old wire is retired.
func GadgetizeHadamards(c *circuit.Circuit) *Gadgetized {
	first, last := c.TRange()
	mapping := make([]int, c.NumQubits)
	for q := range mapping {
		mapping[q] = q
	}

	var init, body []circuit.Gate
	var retired []int
	wires := c.NumQubits
	for i, g := range c.Gates {
		if g.Kind == circuit.KindH && first < i && i < last {
			from, a := mapping[g.Target], wires
			wires++
			init = append(init, circuit.H(a))
			body = append(body, circuit.CZ(from, a))
			retired = append(retired, from)
			mapping[g.Target] = a
			continue
		}
		body = append(body, g.Remap(func(q int) int { return mapping[q] }))
	}

	out := circuit.New(wires)
	out.Append(init...)
	out.Append(body...)
	return &Gadgetized{Circuit: out, Mapping: mapping, Retired: retired}
}
