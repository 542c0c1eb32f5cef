package optimize

import (
	"qtcount/internal/circuit"
)

// cczDirty computes CCZ on any input with seven T gates.
func cczDirty(a, b, c int) []circuit.Gate {
	return []circuit.Gate{
		circuit.T(a), circuit.T(b), circuit.T(c),
		circuit.CNOT(b, a), circuit.Tdg(a),
		circuit.CNOT(c, a), circuit.T(a),
		circuit.CNOT(b, a), circuit.Tdg(a),
		circuit.CNOT(c, a),
		circuit.CNOT(c, b), circuit.Tdg(b), circuit.CNOT(c, b),
	}
}

// cczClean is only correct when wire c enters in |+>, i.e. the Toffoli
// target was |0> before the surrounding H.
func cczClean(a, b, c int) []circuit.Gate {
	return []circuit.Gate{
		circuit.T(c),
		circuit.CNOT(a, c), circuit.CNOT(b, c),
		circuit.CNOT(c, b), circuit.CNOT(c, a),
		circuit.Tdg(a), circuit.Tdg(b), circuit.T(c),
		circuit.CNOT(c, a), circuit.CNOT(c, b),
	}
}

// DecomposeToffoli expands Tof(c1, c2, t) into H(t), a CCZ ladder and H(t).
// The clean ladder requires t to be |0> on entry.
func DecomposeToffoli(c1, c2, t int, clean bool) []circuit.Gate {
	out := []circuit.Gate{circuit.H(t)}
	if clean {
		out = append(out, cczClean(c1, c2, t)...)
	} else {
		out = append(out, cczDirty(c1, c2, t)...)
	}
	return append(out, circuit.H(t))
}

// ToBasicGates decomposes every Toffoli and cancels the Hadamard pairs that
// adjacent decompositions leave behind.
func ToBasicGates(c *circuit.Circuit, cleanAncillas []int) *circuit.Circuit {
	fresh := make(map[int]bool, len(cleanAncillas))
	for _, q := range cleanAncillas {
		fresh[q] = true
	}
	out := circuit.New(c.NumQubits)
	for _, g := range c.Gates {
		if g.Kind == circuit.KindTof {
			out.Append(DecomposeToffoli(g.Control, g.Control2, g.Target, fresh[g.Target])...)
		} else {
			out.Append(g)
		}
		for _, q := range g.Qubits() {
			delete(fresh, q)
		}
	}
	return CleanupDanglingHadamards(out)
}

// CleanupDanglingHadamards defers every H until the next gate on its qubit,
// so back-to-back H pairs vanish.
func CleanupDanglingHadamards(c *circuit.Circuit) *circuit.Circuit {
	pending := make([]bool, c.NumQubits)
	out := circuit.New(c.NumQubits)
	for _, g := range c.Gates {
		if g.Kind == circuit.KindH {
			pending[g.Target] = !pending[g.Target]
			continue
		}
		for _, q := range g.Qubits() {
			if pending[q] {
				out.Append(circuit.H(q))
				pending[q] = false
			}
		}
		out.Append(g)
	}
	for q, p := range pending {
		if p {
			out.Append(circuit.H(q))
		}
	}
	return out
}
