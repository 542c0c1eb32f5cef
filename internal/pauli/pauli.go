// Package pauli implements signed Pauli products in the symplectic (z, x)
// encoding.
package pauli

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"qtcount/internal/gf2"
)

// Product is a Hermitian Pauli product (-1)^Sign * P_0 ⊗ ... ⊗ P_{n-1}.
// Per qubit, (x, z) = (0,0) is I, (1,0) is X, (0,1) is Z and (1,1) is Y.
type Product struct {
	Z    gf2.Row
	X    gf2.Row
	Sign bool
}

// Identity returns the n-qubit identity.
func Identity(n int) Product {
	return Product{Z: gf2.NewRow(n), X: gf2.NewRow(n)}
}

// SingleZ returns Z on qubit q.
func SingleZ(n, q int) Product {
	return Product{Z: gf2.Unit(n, q), X: gf2.NewRow(n)}
}

// SingleX returns X on qubit q.
func SingleX(n, q int) Product {
	return Product{Z: gf2.NewRow(n), X: gf2.Unit(n, q)}
}

// Len returns the number of qubits.
func (p Product) Len() int { return p.Z.Len() }

// IsDiagonal reports whether the product has no X or Y factor.
func (p Product) IsDiagonal() bool { return p.X.IsZero() }

// Negate returns -p.
func (p Product) Negate() Product {
	p.Sign = !p.Sign
	return p
}

// Equal reports whether both products are identical including sign.
func (p Product) Equal(o Product) bool {
	return p.Sign == o.Sign && p.Z.Equal(o.Z) && p.X.Equal(o.X)
}

// Commutes reports whether p and o commute.
func (p Product) Commutes(o Product) bool {
	return (p.X.And(o.Z).Count()+p.Z.And(o.X).Count())%2 == 0
}

// Mul returns i^k * p * o. The result must be Hermitian; a non-Hermitian
// phase means the caller combined anticommuting products with the wrong k
// and panics.
func (p Product) Mul(o Product, k int) Product {
	y1 := p.X.And(p.Z)
	x1 := p.X.AndNot(p.Z)
	z1 := p.Z.AndNot(p.X)
	y2 := o.X.And(o.Z)
	x2 := o.X.AndNot(o.Z)
	z2 := o.Z.AndNot(o.X)

	// XY = iZ, YZ = iX, ZX = iY and the reverse orders give -i.
	plus := y1.And(z2).Count() + x1.And(y2).Count() + z1.And(x2).Count()
	minus := y1.And(x2).Count() + x1.And(z2).Count() + z1.And(y2).Count()

	e := 2*b2i(p.Sign) + 2*b2i(o.Sign) + plus - minus + k
	e = ((e % 4) + 4) % 4
	if e%2 != 0 {
		panic(fmt.Sprintf("pauli: non-Hermitian product %s * %s (k=%d)", p, o, k))
	}
	return Product{
		Z:    p.Z.Xor(o.Z),
		X:    p.X.Xor(o.X),
		Sign: e == 2,
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// String renders the product as a sign followed by one letter per qubit.
func (p Product) String() string {
	var sb strings.Builder
	if p.Sign {
		sb.WriteByte('-')
	} else {
		sb.WriteByte('+')
	}
	for q := 0; q < p.Len(); q++ {
		switch x, z := p.X.Bit(q), p.Z.Bit(q); {
		case x && z:
			sb.WriteByte('Y')
		case x:
			sb.WriteByte('X')
		case z:
			sb.WriteByte('Z')
		default:
			sb.WriteByte('I')
		}
	}
	return sb.String()
}

// Parse reads a product written as an optional sign followed by I/X/Y/Z
// letters, one per qubit.
func Parse(s string) (Product, error) {
	sign := false
	switch {
	case strings.HasPrefix(s, "-"):
		sign = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	n := len(s)
	var zs, xs []int
	for q, ch := range s {
		switch ch {
		case 'I':
		case 'X':
			xs = append(xs, q)
		case 'Z':
			zs = append(zs, q)
		case 'Y':
			xs = append(xs, q)
			zs = append(zs, q)
		default:
			return Product{}, errors.Errorf("pauli: invalid letter %q in %q", ch, s)
		}
	}
	return Product{Z: gf2.NewRow(n, zs...), X: gf2.NewRow(n, xs...), Sign: sign}, nil
}
