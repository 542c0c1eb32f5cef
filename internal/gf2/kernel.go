package gf2

// Kernel enumerates linear dependencies among a list of rows by incremental
// Gaussian elimination. Each row is processed once: it either becomes a
// pivot row or reduces to zero, in which case the combination of original
// rows that produced the zero is returned by Next.
type Kernel struct {
	// Matrix holds the partially reduced rows.
	Matrix []Row
	// Augmented records, per row, which original rows were XORed into it.
	Augmented []Row
	// Pivots maps a pivot row index to its pivot column.
	Pivots map[int]int

	order []int
	next  int
}

// NewKernel prepares a kernel search over rows. The rows are not modified.
func NewKernel(rows []Row) *Kernel {
	m := len(rows)
	k := &Kernel{
		Matrix:    make([]Row, m),
		Augmented: make([]Row, m),
		Pivots:    make(map[int]int, m),
	}
	copy(k.Matrix, rows)
	for i := range rows {
		k.Augmented[i] = Unit(m, i)
	}
	return k
}

// Next returns the next dependency over the original rows, or false once
// every remaining row has become a pivot. The XOR of the original rows
// flagged by a returned dependency is zero.
func (k *Kernel) Next() (Row, bool) {
	for k.next < len(k.Matrix) {
		i := k.next
		k.next++

		for _, p := range k.order {
			if k.Matrix[i].Bit(k.Pivots[p]) {
				k.Matrix[i] = k.Matrix[i].Xor(k.Matrix[p])
				k.Augmented[i] = k.Augmented[i].Xor(k.Augmented[p])
			}
		}

		if k.Matrix[i].IsZero() {
			return k.Augmented[i], true
		}

		c := k.Matrix[i].FirstOne()
		for _, p := range k.order {
			if k.Matrix[p].Bit(c) {
				k.Matrix[p] = k.Matrix[p].Xor(k.Matrix[i])
				k.Augmented[p] = k.Augmented[p].Xor(k.Augmented[i])
			}
		}
		k.Pivots[i] = c
		k.order = append(k.order, i)
	}
	return Row{}, false
}

// Dependencies drains the kernel and returns every remaining dependency.
func (k *Kernel) Dependencies() []Row {
	var out []Row
	for {
		y, ok := k.Next()
		if !ok {
			return out
		}
		out = append(out, y)
	}
}
