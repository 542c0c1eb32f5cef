package phasepoly

import (
	"github.com/pkg/errors"

	"qtcount/internal/circuit"
	"qtcount/internal/gf2"
	"qtcount/internal/tableau"
)

// ErrInconsistentCorrection indicates the optimized table does not share the
// signature tensor of the original, so no Clifford can make up the difference.
var ErrInconsistentCorrection = errors.New("phasepoly: tables differ by more than a Clifford")

// Correction returns the CZ/S Clifford C with orig = C · opt on every
// computational basis state, up to global phase. For every qubit pair the
// difference in rows covering both bits, mod 8, must be even and gives the
// number of CZ gates; single qubits likewise give S gates.
func Correction(orig, opt Table) (*circuit.Circuit, error) {
	if orig.N != opt.N {
		return nil, errors.Wrapf(ErrInconsistentCorrection, "qubit counts %d and %d", orig.N, opt.N)
	}
	if !SignatureEqual(orig, opt) {
		return nil, errors.WithStack(ErrInconsistentCorrection)
	}
	n := orig.N
	diff := func(ones ...int) (int, error) {
		m := gf2.NewRow(n, ones...)
		d := ((orig.Count(m)-opt.Count(m))%8 + 8) % 8
		if d%2 != 0 {
			return 0, errors.Wrapf(ErrInconsistentCorrection, "odd difference %d on qubits %v", d, ones)
		}
		return d / 2, nil
	}

	tab := tableau.New(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			k, err := diff(i, j)
			if err != nil {
				return nil, err
			}
			for ; k > 0; k-- {
				tab.ApplyCZ(i, j)
			}
		}
	}
	for i := 0; i < n; i++ {
		k, err := diff(i)
		if err != nil {
			return nil, err
		}
		for ; k > 0; k-- {
			tab.ApplyS(i)
		}
	}
	return tab.Circuit(false), nil
}
