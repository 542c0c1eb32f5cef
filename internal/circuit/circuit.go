// Package circuit holds the Clifford+T circuit representation together with
// its OpenQASM and .qc encodings, metrics and a dependency DAG.
package circuit

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies a gate in the circuit vocabulary.
type Kind int

const (
	KindCNOT Kind = iota
	KindCZ
	KindTof
	KindH
	KindS
	KindT
	KindTdg
	KindX
	KindZ
)

var kindNames = [...]string{
	KindCNOT: "CNOT",
	KindCZ:   "CZ",
	KindTof:  "Tof",
	KindH:    "HAD",
	KindS:    "S",
	KindT:    "T",
	KindTdg:  "Tdg",
	KindX:    "X",
	KindZ:    "Z",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Arity returns the number of qubits a gate of this kind acts on.
func (k Kind) Arity() int {
	switch k {
	case KindTof:
		return 3
	case KindCNOT, KindCZ:
		return 2
	default:
		return 1
	}
}

// IsClifford reports whether the kind is a Clifford gate.
func (k Kind) IsClifford() bool {
	return k != KindT && k != KindTdg && k != KindTof
}

// Gate is a single gate. Kind fixes which qubit fields are meaningful:
// single-qubit gates use Target, CNOT uses Control and Target, CZ uses
// Control and Target symmetrically, Toffoli uses Control, Control2 and
// Target. Unused fields are -1.
type Gate struct {
	Kind     Kind
	Target   int
	Control  int
	Control2 int
}

// Single returns a single-qubit gate of the given kind.
func Single(k Kind, q int) Gate {
	return Gate{Kind: k, Target: q, Control: -1, Control2: -1}
}

func H(q int) Gate   { return Single(KindH, q) }
func S(q int) Gate   { return Single(KindS, q) }
func T(q int) Gate   { return Single(KindT, q) }
func Tdg(q int) Gate { return Single(KindTdg, q) }
func X(q int) Gate   { return Single(KindX, q) }
func Z(q int) Gate   { return Single(KindZ, q) }

// CNOT returns a controlled-X with control c and target t.
func CNOT(c, t int) Gate {
	return Gate{Kind: KindCNOT, Target: t, Control: c, Control2: -1}
}

// CZ returns a controlled-Z on a and b.
func CZ(a, b int) Gate {
	return Gate{Kind: KindCZ, Target: b, Control: a, Control2: -1}
}

// Toffoli returns a doubly controlled X.
func Toffoli(c1, c2, t int) Gate {
	return Gate{Kind: KindTof, Target: t, Control: c1, Control2: c2}
}

// Qubits returns the qubits the gate acts on, controls first.
func (g Gate) Qubits() []int {
	switch g.Kind.Arity() {
	case 3:
		return []int{g.Control, g.Control2, g.Target}
	case 2:
		return []int{g.Control, g.Target}
	default:
		return []int{g.Target}
	}
}

// Touches reports whether the gate acts on qubit q.
func (g Gate) Touches(q int) bool {
	for _, p := range g.Qubits() {
		if p == q {
			return true
		}
	}
	return false
}

// IsT reports whether the gate is T or T†.
func (g Gate) IsT() bool {
	return g.Kind == KindT || g.Kind == KindTdg
}

// Remap returns the gate with every qubit index passed through f.
func (g Gate) Remap(f func(int) int) Gate {
	out := g
	out.Target = f(g.Target)
	if g.Kind.Arity() >= 2 {
		out.Control = f(g.Control)
	}
	if g.Kind.Arity() == 3 {
		out.Control2 = f(g.Control2)
	}
	return out
}

// Validate checks qubit indices against a register of n qubits.
func (g Gate) Validate(n int) error {
	qs := g.Qubits()
	for i, q := range qs {
		if q < 0 || q >= n {
			return errors.Wrapf(ErrQubitRange, "%s qubit %d (register has %d)", g, q, n)
		}
		for _, p := range qs[:i] {
			if p == q {
				return errors.Wrapf(ErrDuplicateQubit, "%s", g)
			}
		}
	}
	return nil
}

func (g Gate) String() string {
	switch g.Kind.Arity() {
	case 3:
		return fmt.Sprintf("%s(%d,%d,%d)", g.Kind, g.Control, g.Control2, g.Target)
	case 2:
		return fmt.Sprintf("%s(%d,%d)", g.Kind, g.Control, g.Target)
	default:
		return fmt.Sprintf("%s(%d)", g.Kind, g.Target)
	}
}

// Circuit is an ordered gate list over NumQubits qubits.
type Circuit struct {
	NumQubits int
	Gates     []Gate
}

// New returns an empty circuit on n qubits.
func New(n int) *Circuit {
	return &Circuit{NumQubits: n}
}

// Append adds gates to the end of the circuit.
func (c *Circuit) Append(gates ...Gate) *Circuit {
	c.Gates = append(c.Gates, gates...)
	return c
}

// AddQubits grows the register by k qubits and returns the first new index.
func (c *Circuit) AddQubits(k int) int {
	first := c.NumQubits
	c.NumQubits += k
	return first
}

// Clone returns a deep copy.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{NumQubits: c.NumQubits, Gates: make([]Gate, len(c.Gates))}
	copy(out.Gates, c.Gates)
	return out
}

// Validate checks every gate against the register size.
func (c *Circuit) Validate() error {
	for i, g := range c.Gates {
		if err := g.Validate(c.NumQubits); err != nil {
			return errors.Wrapf(err, "gate %d", i)
		}
	}
	return nil
}

// Inverse returns the adjoint circuit.
func (c *Circuit) Inverse() *Circuit {
	out := New(c.NumQubits)
	for i := len(c.Gates) - 1; i >= 0; i-- {
		g := c.Gates[i]
		switch g.Kind {
		case KindS:
			out.Append(g, Z(g.Target))
		case KindT:
			out.Append(Tdg(g.Target))
		case KindTdg:
			out.Append(T(g.Target))
		default:
			out.Append(g)
		}
	}
	return out
}
