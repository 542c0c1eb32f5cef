// Package sim is a dense state-vector simulator for the Clifford+T gate set,
// used to check that rewritten circuits implement the same unitary.
package sim

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"

	"qtcount/internal/circuit"
)

// MaxQubits bounds the register size accepted by the simulator.
const MaxQubits = 20

// ErrTooLarge indicates a circuit is too wide to simulate.
var ErrTooLarge = errors.New("sim: too many qubits to simulate")

type Complex = complex128

type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

func NewStateVector(numQubits int) *StateVector {
	return Basis(numQubits, 0)
}

// Basis returns the computational basis state |k>.
func Basis(numQubits, k int) *StateVector {
	amps := make([]Complex, 1<<numQubits)
	amps[k] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

func (s *StateVector) ApplyGate(g circuit.Gate) {
	switch g.Kind {
	case circuit.KindH:
		s.applyH(g.Target)
	case circuit.KindX:
		s.applyX(g.Target)
	case circuit.KindZ:
		s.applyZ(g.Target)
	case circuit.KindS:
		s.applyPhase(g.Target, 1i)
	case circuit.KindT:
		s.applyPhase(g.Target, cmplx.Exp(complex(0, math.Pi/4)))
	case circuit.KindTdg:
		s.applyPhase(g.Target, cmplx.Exp(complex(0, -math.Pi/4)))
	case circuit.KindCNOT:
		s.applyCX(g.Control, g.Target)
	case circuit.KindCZ:
		s.applyCZ(g.Control, g.Target)
	case circuit.KindTof:
		s.applyCCX(g.Control, g.Control2, g.Target)
	}
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = hFactor * (a + b)
			s.Amplitudes[j] = hFactor * (a - b)
		}
	}
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q int) {
	s.applyPhase(q, -1)
}

func (s *StateVector) applyPhase(q int, factor Complex) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(a, b int) {
	n := len(s.Amplitudes)
	aBit := 1 << a
	bBit := 1 << b
	for i := 0; i < n; i++ {
		if i&aBit != 0 && i&bBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyCCX(c1, c2, target int) {
	n := len(s.Amplitudes)
	cMask := 1<<c1 | 1<<c2
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cMask == cMask && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// Run applies every gate of the circuit in order.
func (s *StateVector) Run(c *circuit.Circuit) *StateVector {
	for _, g := range c.Gates {
		s.ApplyGate(g)
	}
	return s
}

// Norm returns the Euclidean norm of the state.
func (s *StateVector) Norm() float64 {
	sum := 0.0
	for _, a := range s.Amplitudes {
		sum += real(a * cmplx.Conj(a))
	}
	return math.Sqrt(sum)
}

// Probability returns |<k|s>|^2.
func (s *StateVector) Probability(k int) float64 {
	a := s.Amplitudes[k]
	return real(a * cmplx.Conj(a))
}

// Unitary returns the columns U|k> for every basis state k.
func Unitary(c *circuit.Circuit) ([]*StateVector, error) {
	if c.NumQubits > MaxQubits {
		return nil, errors.Wrapf(ErrTooLarge, "%d qubits", c.NumQubits)
	}
	cols := make([]*StateVector, 1<<c.NumQubits)
	for k := range cols {
		cols[k] = Basis(c.NumQubits, k).Run(c)
	}
	return cols, nil
}

// EqualUpToPhase reports whether two lists of vectors agree up to a single
// global phase.
func EqualUpToPhase(a, b []*StateVector, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	var phase Complex
	havePhase := false
	for i := range a {
		if len(a[i].Amplitudes) != len(b[i].Amplitudes) {
			return false
		}
		for j, x := range a[i].Amplitudes {
			y := b[i].Amplitudes[j]
			if cmplx.Abs(x) <= eps && cmplx.Abs(y) <= eps {
				continue
			}
			if math.Abs(cmplx.Abs(x)-cmplx.Abs(y)) > eps {
				return false
			}
			if !havePhase {
				phase = y / x
				havePhase = true
			} else if cmplx.Abs(x*phase-y) > eps {
				return false
			}
		}
	}
	return true
}

// Equivalent reports whether two circuits on the same register implement the
// same unitary up to global phase.
func Equivalent(a, b *circuit.Circuit) (bool, error) {
	if a.NumQubits != b.NumQubits {
		return false, nil
	}
	ua, err := Unitary(a)
	if err != nil {
		return false, err
	}
	ub, err := Unitary(b)
	if err != nil {
		return false, err
	}
	return EqualUpToPhase(ua, ub, 1e-7), nil
}

// PostSelect measures the retired qubits in the X basis, keeps the all-plus
// outcome and returns the renormalised state of the logical qubits, where
// logical qubit q lives on wire mapping[q]. Every other wire must be |0>.
func (s *StateVector) PostSelect(mapping, retired []int) *StateVector {
	work := s.Clone()
	for _, r := range retired {
		work.applyH(r)
	}

	used := make(map[int]bool, len(mapping)+len(retired))
	for _, w := range mapping {
		used[w] = true
	}
	for _, r := range retired {
		used[r] = true
	}
	retiredMask := 0
	for _, r := range retired {
		retiredMask |= 1 << r
	}
	idleMask := 0
	for w := 0; w < work.NumQubits; w++ {
		if !used[w] {
			idleMask |= 1 << w
		}
	}

	out := NewStateVector(len(mapping))
	out.Amplitudes[0] = 0
	for i, a := range work.Amplitudes {
		if i&retiredMask != 0 || i&idleMask != 0 {
			continue
		}
		k := 0
		for q, w := range mapping {
			if i&(1<<w) != 0 {
				k |= 1 << q
			}
		}
		out.Amplitudes[k] += a
	}

	if norm := out.Norm(); norm > 0 {
		for i := range out.Amplitudes {
			out.Amplitudes[i] /= complex(norm, 0)
		}
	}
	return out
}
