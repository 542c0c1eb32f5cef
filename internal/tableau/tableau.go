// Package tableau implements stabilizer tableaus for n-qubit Clifford
// operators in row-major and column-major layouts, together with gate
// synthesis.
//
// A tableau for U stores 2n generator images. Generator c < n is U Z_c U†,
// generator n+c is U X_c U†. Apply composes on the left (U <- gU), Prepend
// on the right (U <- Ug).
package tableau

import (
	"strings"

	"github.com/pkg/errors"

	"qtcount/internal/circuit"
	"qtcount/internal/gf2"
	"qtcount/internal/pauli"
)

// ErrNonClifford indicates a gate outside the Clifford group was applied.
var ErrNonClifford = errors.New("tableau: gate is not Clifford")

// Tableau is the row-major layout: per qubit q, z[q] and x[q] hold bit q of
// every generator, and signs holds every generator's sign.
type Tableau struct {
	n     int
	z     []gf2.Row
	x     []gf2.Row
	signs gf2.Row
}

// New returns the identity tableau on n qubits.
func New(n int) *Tableau {
	t := &Tableau{
		n:     n,
		z:     make([]gf2.Row, n),
		x:     make([]gf2.Row, n),
		signs: gf2.NewRow(2 * n),
	}
	for q := 0; q < n; q++ {
		t.z[q] = gf2.Unit(2*n, q)
		t.x[q] = gf2.Unit(2*n, n+q)
	}
	return t
}

// FromCircuit applies every gate of a Clifford circuit to the identity.
func FromCircuit(c *circuit.Circuit) (*Tableau, error) {
	t := New(c.NumQubits)
	for i, g := range c.Gates {
		if err := t.Apply(g); err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
	}
	return t, nil
}

// N returns the number of qubits.
func (t *Tableau) N() int { return t.n }

// Clone returns an independent copy. Rows are immutable, so only the
// slices are copied.
func (t *Tableau) Clone() *Tableau {
	out := &Tableau{n: t.n, signs: t.signs}
	out.z = append([]gf2.Row(nil), t.z...)
	out.x = append([]gf2.Row(nil), t.x...)
	return out
}

// Equal reports whether both tableaus hold the same Clifford, signs included.
func (t *Tableau) Equal(o *Tableau) bool {
	if t.n != o.n || !t.signs.Equal(o.signs) {
		return false
	}
	for q := 0; q < t.n; q++ {
		if !t.z[q].Equal(o.z[q]) || !t.x[q].Equal(o.x[q]) {
			return false
		}
	}
	return true
}

// IsIdentity reports whether the tableau is the identity.
func (t *Tableau) IsIdentity() bool {
	return t.Equal(New(t.n))
}

// ──────────────────────────── Left composition ────────────────────────────

func (t *Tableau) ApplyX(q int) {
	t.signs = t.signs.Xor(t.z[q])
}

func (t *Tableau) ApplyZ(q int) {
	t.signs = t.signs.Xor(t.x[q])
}

func (t *Tableau) ApplyS(q int) {
	t.signs = t.signs.Xor(t.z[q].And(t.x[q]))
	t.z[q] = t.z[q].Xor(t.x[q])
}

func (t *Tableau) ApplyH(q int) {
	t.signs = t.signs.Xor(t.z[q].And(t.x[q]))
	t.z[q], t.x[q] = t.x[q], t.z[q]
}

// ApplyV applies sqrt(X) = H S H.
func (t *Tableau) ApplyV(q int) {
	t.ApplyH(q)
	t.ApplyS(q)
	t.ApplyH(q)
}

func (t *Tableau) ApplyCX(c, tg int) {
	flip := t.z[c].Xor(t.x[tg]).Not().And(t.z[tg]).And(t.x[c])
	t.signs = t.signs.Xor(flip)
	t.z[c] = t.z[c].Xor(t.z[tg])
	t.x[tg] = t.x[tg].Xor(t.x[c])
}

func (t *Tableau) ApplyCZ(a, b int) {
	t.ApplyH(b)
	t.ApplyCX(a, b)
	t.ApplyH(b)
}

// Apply composes a Clifford gate on the left.
func (t *Tableau) Apply(g circuit.Gate) error {
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

// ──────────────────────────── Columns ────────────────────────────

// Column returns generator c as a Pauli product.
func (t *Tableau) Column(c int) pauli.Product {
	var zs, xs []int
	for q := 0; q < t.n; q++ {
		if t.z[q].Bit(c) {
			zs = append(zs, q)
		}
		if t.x[q].Bit(c) {
			xs = append(xs, q)
		}
	}
	return pauli.Product{
		Z:    gf2.NewRow(t.n, zs...),
		X:    gf2.NewRow(t.n, xs...),
		Sign: t.signs.Bit(c),
	}
}

// SetColumn overwrites generator c.
func (t *Tableau) SetColumn(c int, p pauli.Product) {
	for q := 0; q < t.n; q++ {
		if t.z[q].Bit(c) != p.Z.Bit(q) {
			t.z[q] = t.z[q].Flip(c)
		}
		if t.x[q].Bit(c) != p.X.Bit(q) {
			t.x[q] = t.x[q].Flip(c)
		}
	}
	if t.signs.Bit(c) != p.Sign {
		t.signs = t.signs.Flip(c)
	}
}

// Columns converts to the column-major layout.
func (t *Tableau) Columns() *Columns {
	out := &Columns{n: t.n, gens: make([]pauli.Product, 2*t.n)}
	for c := range out.gens {
		out.gens[c] = t.Column(c)
	}
	return out
}

// ──────────────────────────── Right composition ────────────────────────────

func (t *Tableau) PrependX(q int) {
	t.signs = t.signs.Flip(q)
}

func (t *Tableau) PrependZ(q int) {
	t.signs = t.signs.Flip(t.n + q)
}

func (t *Tableau) PrependS(q int) {
	t.SetColumn(t.n+q, t.Column(t.n+q).Mul(t.Column(q), 1))
}

func (t *Tableau) PrependH(q int) {
	zc, xc := t.Column(q), t.Column(t.n+q)
	t.SetColumn(q, xc)
	t.SetColumn(t.n+q, zc)
}

func (t *Tableau) PrependCX(c, tg int) {
	t.SetColumn(tg, t.Column(tg).Mul(t.Column(c), 0))
	t.SetColumn(t.n+c, t.Column(t.n+c).Mul(t.Column(t.n+tg), 0))
}

func (t *Tableau) PrependCZ(a, b int) {
	t.SetColumn(t.n+a, t.Column(t.n+a).Mul(t.Column(b), 0))
	t.SetColumn(t.n+b, t.Column(t.n+b).Mul(t.Column(a), 0))
}

// Prepend composes a Clifford gate on the right.
func (t *Tableau) Prepend(g circuit.Gate) error {
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

func (t *Tableau) String() string {
	var sb strings.Builder
	for c := 0; c < 2*t.n; c++ {
		if c == t.n {
			sb.WriteString("--\n")
		}
		sb.WriteString(t.Column(c).String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
