// Package gf2 implements bit rows over GF(2) and an incremental kernel
// (null space) search over a list of rows.
package gf2

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Row is a fixed-length bit row. Rows are immutable: every operation returns
// a fresh row, so a Row can be stored or shared without cloning.
type Row struct {
	n    int
	bits *bitset.BitSet
}

// NewRow returns a row of length n with the given indices set.
func NewRow(n int, ones ...int) Row {
	b := bitset.New(uint(n))
	for _, i := range ones {
		if i < 0 || i >= n {
			panic(fmt.Sprintf("gf2: index %d out of range for row of length %d", i, n))
		}
		b.Set(uint(i))
	}
	return Row{n: n, bits: b}
}

// Parse builds a row from a string of '0' and '1'; character i is bit i.
func Parse(s string) Row {
	var ones []int
	for i, ch := range s {
		switch ch {
		case '1':
			ones = append(ones, i)
		case '0':
		default:
			panic(fmt.Sprintf("gf2: invalid bit %q in %q", ch, s))
		}
	}
	return NewRow(len(s), ones...)
}

// FromInts builds a row from 0/1 values.
func FromInts(vals ...int) Row {
	var ones []int
	for i, v := range vals {
		if v&1 == 1 {
			ones = append(ones, i)
		}
	}
	return NewRow(len(vals), ones...)
}

// Unit returns the row of length n with only bit i set.
func Unit(n, i int) Row {
	return NewRow(n, i)
}

func (r Row) set() *bitset.BitSet {
	if r.bits == nil {
		return bitset.New(uint(r.n))
	}
	return r.bits
}

func (r Row) mustMatch(o Row) {
	if r.n != o.n {
		panic(fmt.Sprintf("gf2: row length mismatch %d != %d", r.n, o.n))
	}
}

// Len returns the declared length of the row.
func (r Row) Len() int { return r.n }

// Bit reports whether bit i is set.
func (r Row) Bit(i int) bool {
	if i < 0 || i >= r.n {
		panic(fmt.Sprintf("gf2: index %d out of range for row of length %d", i, r.n))
	}
	return r.bits != nil && r.bits.Test(uint(i))
}

// With returns a copy of the row with bit i set to v.
func (r Row) With(i int, v bool) Row {
	if i < 0 || i >= r.n {
		panic(fmt.Sprintf("gf2: index %d out of range for row of length %d", i, r.n))
	}
	b := r.set().Clone()
	b.SetTo(uint(i), v)
	return Row{n: r.n, bits: b}
}

// Flip returns a copy of the row with bit i toggled.
func (r Row) Flip(i int) Row {
	return r.With(i, !r.Bit(i))
}

// Xor returns r ^ o.
func (r Row) Xor(o Row) Row {
	r.mustMatch(o)
	return Row{n: r.n, bits: r.set().SymmetricDifference(o.set())}
}

// And returns r & o.
func (r Row) And(o Row) Row {
	r.mustMatch(o)
	return Row{n: r.n, bits: r.set().Intersection(o.set())}
}

// AndNot returns r & ^o.
func (r Row) AndNot(o Row) Row {
	r.mustMatch(o)
	return Row{n: r.n, bits: r.set().Difference(o.set())}
}

// Not returns the complement of r within its length.
func (r Row) Not() Row {
	return Row{n: r.n, bits: r.set().Complement()}
}

// Count returns the number of set bits.
func (r Row) Count() int {
	if r.bits == nil {
		return 0
	}
	return int(r.bits.Count())
}

// IsZero reports whether no bit is set.
func (r Row) IsZero() bool {
	return r.bits == nil || !r.bits.Any()
}

// FirstOne returns the lowest set index. It returns 0 for the zero row;
// callers that care must check IsZero first.
func (r Row) FirstOne() int {
	if r.bits == nil {
		return 0
	}
	i, ok := r.bits.NextSet(0)
	if !ok {
		return 0
	}
	return int(i)
}

// Ones returns the set indices in increasing order.
func (r Row) Ones() []int {
	if r.bits == nil {
		return nil
	}
	out := make([]int, 0, r.Count())
	for i, ok := r.bits.NextSet(0); ok; i, ok = r.bits.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// Extend returns the concatenation r ++ o.
func (r Row) Extend(o Row) Row {
	ones := r.Ones()
	for _, i := range o.Ones() {
		ones = append(ones, r.n+i)
	}
	return NewRow(r.n+o.n, ones...)
}

// Equal reports whether both rows have the same length and bits.
func (r Row) Equal(o Row) bool {
	return r.n == o.n && r.Key() == o.Key()
}

// Less orders rows lexicographically starting from bit 0: at the first
// differing index the smaller row has the bit cleared.
func (r Row) Less(o Row) bool {
	d := r.Xor(o)
	if d.IsZero() {
		return false
	}
	return !r.Bit(d.FirstOne())
}

// Key returns a compact string usable as a map key. Rows of different
// lengths may share a key.
func (r Row) Key() string {
	buf := make([]byte, (r.n+7)/8)
	for _, i := range r.Ones() {
		buf[i/8] |= 1 << (i % 8)
	}
	return string(buf)
}

// String renders the row as '0'/'1' characters, bit 0 first.
func (r Row) String() string {
	var sb strings.Builder
	sb.Grow(r.n)
	for i := 0; i < r.n; i++ {
		if r.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Tensor returns the pairwise products r[a]&r[b] for a < b in a-major order,
// as a row of length n(n-1)/2.
func (r Row) Tensor() Row {
	n := r.n
	ones := r.Ones()
	var out []int
	for ai, a := range ones {
		for _, b := range ones[ai+1:] {
			out = append(out, pairIndex(n, a, b))
		}
	}
	return NewRow(n*(n-1)/2, out...)
}

// pairIndex maps a < b to its position in a-major pair order.
func pairIndex(n, a, b int) int {
	return a*(2*n-a-1)/2 + (b - a - 1)
}
