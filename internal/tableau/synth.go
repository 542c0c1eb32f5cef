package tableau

import (
	"fmt"

	"qtcount/internal/circuit"
)

// Circuit synthesizes the tableau into H, S, X, Z, CNOT and CZ gates.
//
// Qubits are reduced one at a time: the image of Z_i is brought to Z_i with
// S/H on its X support and a CNOT cascade onto i, then the image of X_i is
// brought to X_i with gates that leave Z_i fixed (CNOT out of i, S on i and
// CZ), and finally both signs are cleared with X and Z. The recorded gates
// take U to the identity, so they form a circuit for U†; that list is
// returned when inverse is true. Otherwise the list is reversed with each S
// replaced by S Z (= S†), giving a circuit for U.
func (t *Tableau) Circuit(inverse bool) *circuit.Circuit {
	w := t.Clone()
	n := t.n
	var gates []circuit.Gate
	emit := func(g circuit.Gate) {
		gates = append(gates, g)
		if err := w.Apply(g); err != nil {
			panic(err)
		}
	}

	for i := 0; i < n; i++ {
		stab, destab := i, n+i

		for j := i; j < n; j++ {
			if w.x[j].Bit(stab) {
				if w.z[j].Bit(stab) {
					emit(circuit.S(j))
				}
				emit(circuit.H(j))
			}
		}
		if !w.z[i].Bit(stab) {
			k := -1
			for j := i + 1; j < n; j++ {
				if w.z[j].Bit(stab) {
					k = j
					break
				}
			}
			if k < 0 {
				panic(fmt.Sprintf("tableau: generator %d has no support on qubits >= %d", stab, i))
			}
			emit(circuit.CNOT(i, k))
		}
		for j := i + 1; j < n; j++ {
			if w.z[j].Bit(stab) {
				emit(circuit.CNOT(j, i))
			}
		}

		for j := i + 1; j < n; j++ {
			if w.x[j].Bit(destab) {
				emit(circuit.CNOT(i, j))
			}
		}
		if w.z[i].Bit(destab) {
			emit(circuit.S(i))
		}
		for j := i + 1; j < n; j++ {
			if w.z[j].Bit(destab) {
				emit(circuit.CZ(i, j))
			}
		}

		if w.signs.Bit(stab) {
			emit(circuit.X(i))
		}
		if w.signs.Bit(destab) {
			emit(circuit.Z(i))
		}
	}

	out := circuit.New(n)
	if inverse {
		out.Gates = gates
		return out
	}
	for k := len(gates) - 1; k >= 0; k-- {
		g := gates[k]
		out.Append(g)
		if g.Kind == circuit.KindS {
			out.Append(circuit.Z(g.Target))
		}
	}
	return out
}
