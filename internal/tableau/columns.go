package tableau

import (
	"github.com/pkg/errors"

	"qtcount/internal/circuit"
	"qtcount/internal/pauli"
)

// Columns is the column-major layout: one Pauli product per generator.
// Right composition only touches the generators it combines, which makes
// this the layout of choice for long runs of Prepend.
type Columns struct {
	n    int
	gens []pauli.Product
}

// NewColumns returns the identity on n qubits.
func NewColumns(n int) *Columns {
	t := &Columns{n: n, gens: make([]pauli.Product, 2*n)}
	for q := 0; q < n; q++ {
		t.gens[q] = pauli.SingleZ(n, q)
		t.gens[n+q] = pauli.SingleX(n, q)
	}
	return t
}

func (t *Columns) N() int { return t.n }

// Stabilizer returns the image of Z_q.
func (t *Columns) Stabilizer(q int) pauli.Product { return t.gens[q] }

// Destabilizer returns the image of X_q.
func (t *Columns) Destabilizer(q int) pauli.Product { return t.gens[t.n+q] }

func (t *Columns) Clone() *Columns {
	return &Columns{n: t.n, gens: append([]pauli.Product(nil), t.gens...)}
}

// RowMajor transposes into a row-major tableau.
func (t *Columns) RowMajor() *Tableau {
	out := New(t.n)
	for c, p := range t.gens {
		out.SetColumn(c, p)
	}
	return out
}

// Equal reports whether both hold the same Clifford.
func (t *Columns) Equal(o *Columns) bool {
	if t.n != o.n {
		return false
	}
	for c := range t.gens {
		if !t.gens[c].Equal(o.gens[c]) {
			return false
		}
	}
	return true
}

// ──────────────────────────── Right composition ────────────────────────────

func (t *Columns) PrependX(q int) { t.gens[q] = t.gens[q].Negate() }

func (t *Columns) PrependZ(q int) { t.gens[t.n+q] = t.gens[t.n+q].Negate() }

func (t *Columns) PrependS(q int) {
	t.gens[t.n+q] = t.gens[t.n+q].Mul(t.gens[q], 1)
}

func (t *Columns) PrependH(q int) {
	t.gens[q], t.gens[t.n+q] = t.gens[t.n+q], t.gens[q]
}

func (t *Columns) PrependCX(c, tg int) {
	t.gens[tg] = t.gens[tg].Mul(t.gens[c], 0)
	t.gens[t.n+c] = t.gens[t.n+c].Mul(t.gens[t.n+tg], 0)
}

func (t *Columns) PrependCZ(a, b int) {
	t.gens[t.n+a] = t.gens[t.n+a].Mul(t.gens[b], 0)
	t.gens[t.n+b] = t.gens[t.n+b].Mul(t.gens[a], 0)
}

// Prepend composes a Clifford gate on the right.
func (t *Columns) Prepend(g circuit.Gate) error {
	switch g.Kind {
	case circuit.KindH:
		t.PrependH(g.Target)
	case circuit.KindS:
		t.PrependS(g.Target)
	case circuit.KindX:
		t.PrependX(g.Target)
	case circuit.KindZ:
		t.PrependZ(g.Target)
	case circuit.KindCNOT:
		t.PrependCX(g.Control, g.Target)
	case circuit.KindCZ:
		t.PrependCZ(g.Control, g.Target)
	default:
		return errors.Wrapf(ErrNonClifford, "%s", g)
	}
	return nil
}

// PrependAdjoint composes g† on the right.
func (t *Columns) PrependAdjoint(g circuit.Gate) error {
	if err := t.Prepend(g); err != nil {
		return err
	}
	if g.Kind == circuit.KindS {
		t.PrependZ(g.Target)
	}
	return nil
}

// ──────────────────────────── Left composition ────────────────────────────

func (t *Columns) conjugate(f func(p pauli.Product) pauli.Product) {
	for c := range t.gens {
		t.gens[c] = f(t.gens[c])
	}
}

func (t *Columns) ApplyX(q int) {
	t.conjugate(func(p pauli.Product) pauli.Product {
		if p.Z.Bit(q) {
			p.Sign = !p.Sign
		}
		return p
	})
}

func (t *Columns) ApplyZ(q int) {
	t.conjugate(func(p pauli.Product) pauli.Product {
		if p.X.Bit(q) {
			p.Sign = !p.Sign
		}
		return p
	})
}

func (t *Columns) ApplyS(q int) {
	t.conjugate(func(p pauli.Product) pauli.Product {
		if p.X.Bit(q) {
			if p.Z.Bit(q) {
				p.Sign = !p.Sign
			}
			p.Z = p.Z.Flip(q)
		}
		return p
	})
}

func (t *Columns) ApplyH(q int) {
	t.conjugate(func(p pauli.Product) pauli.Product {
		xb, zb := p.X.Bit(q), p.Z.Bit(q)
		if xb == zb {
			if xb {
				p.Sign = !p.Sign
			}
			return p
		}
		p.X = p.X.Flip(q)
		p.Z = p.Z.Flip(q)
		return p
	})
}

func (t *Columns) ApplyCX(c, tg int) {
	t.conjugate(func(p pauli.Product) pauli.Product {
		xc, zc, xt, zt := p.X.Bit(c), p.Z.Bit(c), p.X.Bit(tg), p.Z.Bit(tg)
		if xc && zt && xt == zc {
			p.Sign = !p.Sign
		}
		if xc {
			p.X = p.X.Flip(tg)
		}
		if zt {
			p.Z = p.Z.Flip(c)
		}
		return p
	})
}

func (t *Columns) ApplyCZ(a, b int) {
	t.ApplyH(b)
	t.ApplyCX(a, b)
	t.ApplyH(b)
}

// Apply composes a Clifford gate on the left.
func (t *Columns) Apply(g circuit.Gate) error {
	switch g.Kind {
	case circuit.KindH:
		t.ApplyH(g.Target)
	case circuit.KindS:
		t.ApplyS(g.Target)
	case circuit.KindX:
		t.ApplyX(g.Target)
	case circuit.KindZ:
		t.ApplyZ(g.Target)
	case circuit.KindCNOT:
		t.ApplyCX(g.Control, g.Target)
	case circuit.KindCZ:
		t.ApplyCZ(g.Control, g.Target)
	default:
		return errors.Wrapf(ErrNonClifford, "%s", g)
	}
	return nil
}
