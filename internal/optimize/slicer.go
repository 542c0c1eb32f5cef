package optimize

import (
	"github.com/pkg/errors"

	"qtcount/internal/circuit"
	"qtcount/internal/phasepoly"
	"qtcount/internal/tableau"
)

// Sliced splits a circuit into a Clifford prefix and alternating phase
// polynomial segments and Clifford boundaries. Segment i is followed by
// Tableaus[i], which holds the adjoint of the Clifford frame accumulated up
// to the point where the next segment starts (or the end of the circuit).
type Sliced struct {
	Init     *circuit.Circuit
	Segments []phasepoly.Table
	Tableaus []*tableau.Columns
}

// Slice runs the circuit through a column-major tableau tracking the
// adjoint of the Clifford frame. Each T reads its parity from the image of
// Z_q; an H closes the open segment.
func Slice(c *circuit.Circuit) (*Sliced, error) {
	n := c.NumQubits
	first, _ := c.TRange()
	if first < 0 {
		first = len(c.Gates)
	}
	out := &Sliced{Init: circuit.New(n)}
	out.Init.Append(c.Gates[:first]...)

	tab := tableau.NewColumns(n)
	cur := phasepoly.Table{N: n}
	closeSegment := func() {
		if cur.Len() > 0 {
			out.Segments = append(out.Segments, cur)
			cur = phasepoly.Table{N: n}
		}
	}

	for _, g := range c.Gates[first:] {
		switch {
		case g.IsT():
			q := g.Target
			if cur.Len() == 0 && len(out.Segments) > 0 {
				out.Tableaus = append(out.Tableaus, tab)
				tab = tableau.NewColumns(n)
			}
			p := tab.Stabilizer(q)
			if !p.X.IsZero() {
				return nil, errors.Errorf("optimize: T on qubit %d is not diagonal in the current frame", q)
			}
			cur.Rows = append(cur.Rows, p.Z)
			if p.Sign {
				tab.PrependS(q)
				tab.PrependZ(q)
			}
			if g.Kind == circuit.KindTdg {
				tab.PrependS(q)
			}
		case g.Kind == circuit.KindH:
			closeSegment()
			tab.PrependH(g.Target)
		default:
			if err := tab.PrependAdjoint(g); err != nil {
				return nil, errors.Wrapf(ErrUnsupportedGate, "%s", g)
			}
		}
	}
	closeSegment()
	if len(out.Segments) > 0 {
		out.Tableaus = append(out.Tableaus, tab)
	}
	return out, nil
}
