package optimize

import (
	"github.com/pkg/errors"

	"qtcount/internal/circuit"
	"qtcount/internal/tableau"
)

// InternalHOpt rewrites a circuit over {H, S, X, Z, CNOT, CZ, T, T†} as an
// initial Clifford, a sequence of diagonal T rotations and a final Clifford.
// Every T rotation is conjugated back to the Z basis by gates absorbed into
// the running tableau, which moves the Hadamards out of the T region.
func InternalHOpt(c *circuit.Circuit) (*circuit.Circuit, error) {
	tab := tableau.NewColumns(c.NumQubits)
	for _, g := range c.Gates {
		if g.IsT() {
			continue
		}
		if err := tab.PrependAdjoint(g); err != nil {
			return nil, errors.Wrapf(ErrUnsupportedGate, "%s", g)
		}
	}
	if err := hOptReverse(tab, c); err != nil {
		return nil, err
	}

	out := tab.RowMajor().Circuit(false)
	for _, g := range c.Gates {
		if g.IsT() {
			out.Append(rotation(tab, g.Target, g.Kind == circuit.KindTdg)...)
			continue
		}
		if err := tab.PrependAdjoint(g); err != nil {
			return nil, errors.Wrapf(ErrUnsupportedGate, "%s", g)
		}
	}
	out.Append(tab.RowMajor().Circuit(true).Gates...)
	return out, nil
}

// hOptReverse walks the circuit backwards undoing the Clifford frame and
// replaying every rotation's diagonalization, which leaves tab holding the
// Clifford the forward pass has to start from.
func hOptReverse(tab *tableau.Columns, c *circuit.Circuit) error {
	for i := len(c.Gates) - 1; i >= 0; i-- {
		g := c.Gates[i]
		if g.IsT() {
			rotation(tab, g.Target, g.Kind == circuit.KindTdg)
			continue
		}
		if err := tab.Prepend(g); err != nil {
			return errors.Wrapf(ErrUnsupportedGate, "%s", g)
		}
	}
	return nil
}

// rotation diagonalizes the image of Z_q, applying the basis change to tab,
// and returns the change followed by a CNOT ladder, T (or T S Z for a
// negative phase) and the mirrored ladder.
func rotation(tab *tableau.Columns, q int, dagger bool) []circuit.Gate {
	n := tab.N()
	var out []circuit.Gate

	if p := tab.Stabilizer(q); !p.X.IsZero() {
		pivot := p.X.FirstOne()
		for _, j := range p.X.Ones() {
			if j != pivot {
				tab.ApplyCX(pivot, j)
				out = append(out, circuit.CNOT(pivot, j))
			}
		}
		if tab.Stabilizer(q).Z.Bit(pivot) {
			tab.ApplyS(pivot)
			out = append(out, circuit.S(pivot))
		}
		tab.ApplyH(pivot)
		out = append(out, circuit.H(pivot))
	}

	p := tab.Stabilizer(q)
	pivot := p.Z.FirstOne()
	var ladder []circuit.Gate
	for j := 0; j < n; j++ {
		if j != pivot && p.Z.Bit(j) {
			ladder = append(ladder, circuit.CNOT(j, pivot))
		}
	}
	out = append(out, ladder...)
	out = append(out, circuit.T(pivot))
	if p.Sign != dagger {
		out = append(out, circuit.S(pivot), circuit.Z(pivot))
	}
	for i := len(ladder) - 1; i >= 0; i-- {
		out = append(out, ladder[i])
	}
	return out
}
