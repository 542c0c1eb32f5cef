// Package phasepoly represents the phase polynomial of a CNOT+T segment as a
// table of parity rows and turns tables back into circuits.
package phasepoly

import (
	"strings"

	"qtcount/internal/circuit"
	"qtcount/internal/gf2"
)

// Table is a phase polynomial over N qubits: each row is the parity a T
// gate is applied to. Row order only matters for reproducibility.
type Table struct {
	N    int
	Rows []gf2.Row
}

// NewTable builds a table from rows of length n.
func NewTable(n int, rows ...gf2.Row) Table {
	return Table{N: n, Rows: rows}
}

// ParseTable builds a table from '0'/'1' strings, one per row.
func ParseTable(rows ...string) Table {
	t := Table{}
	for _, r := range rows {
		row := gf2.Parse(r)
		t.N = row.Len()
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Len returns the number of rows, which is the T-count of the segment.
func (t Table) Len() int { return len(t.Rows) }

// Clone copies the row slice. Rows are immutable and shared.
func (t Table) Clone() Table {
	return Table{N: t.N, Rows: append([]gf2.Row(nil), t.Rows...)}
}

// Proper drops zero rows and cancels duplicate pairs: a row value survives,
// once, at its first position exactly when it occurs an odd number of times.
func (t Table) Proper() Table {
	counts := make(map[string]int, len(t.Rows))
	for _, r := range t.Rows {
		counts[r.Key()]++
	}
	out := Table{N: t.N}
	seen := make(map[string]bool, len(counts))
	for _, r := range t.Rows {
		k := r.Key()
		if r.IsZero() || seen[k] {
			continue
		}
		seen[k] = true
		if counts[k]%2 == 1 {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Count returns the number of rows that contain every bit of mask.
func (t Table) Count(mask gf2.Row) int {
	n := 0
	for _, r := range t.Rows {
		if r.And(mask).Equal(mask) {
			n++
		}
	}
	return n
}

// Key identifies the table contents for caching.
func (t Table) Key() string {
	var sb strings.Builder
	for _, r := range t.Rows {
		sb.WriteString(r.String())
		sb.WriteByte('|')
	}
	return sb.String()
}

// Circuit emits, per row, a CNOT fan-in onto the row's lowest qubit, a T on
// that qubit and the mirrored fan-out.
func (t Table) Circuit() *circuit.Circuit {
	out := circuit.New(t.N)
	for _, r := range t.Rows {
		if r.IsZero() {
			continue
		}
		pivot := r.FirstOne()
		var ladder []circuit.Gate
		for _, q := range r.Ones() {
			if q != pivot {
				ladder = append(ladder, circuit.CNOT(q, pivot))
			}
		}
		out.Append(ladder...)
		out.Append(circuit.T(pivot))
		for i := len(ladder) - 1; i >= 0; i-- {
			out.Append(ladder[i])
		}
	}
	return out
}

// SignatureEqual reports whether two tables have the same signature tensor
// S_abc = sum_k r_ka r_kb r_kc mod 2, i.e. whether they differ only by a
// Clifford phase.
func SignatureEqual(a, b Table) bool {
	if a.N != b.N {
		return false
	}
	n := a.N
	odd := func(ones ...int) bool {
		m := gf2.NewRow(n, ones...)
		return (a.Count(m)-b.Count(m))%2 != 0
	}
	for i := 0; i < n; i++ {
		if odd(i) {
			return false
		}
		for j := i + 1; j < n; j++ {
			if odd(i, j) {
				return false
			}
			for k := j + 1; k < n; k++ {
				if odd(i, j, k) {
					return false
				}
			}
		}
	}
	return true
}
