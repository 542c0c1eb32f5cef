package circuit

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ToQC renders the circuit in the .qc format used by reversible-circuit
// benchmark suites. Qubits are named q0, q1, ...
func (c *Circuit) ToQC() string {
	names := make([]string, c.NumQubits)
	for i := range names {
		names[i] = fmt.Sprintf("q%d", i)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, ".v %s\n", strings.Join(names, " "))
	fmt.Fprintf(&sb, ".i %s\n\n", strings.Join(names, " "))
	sb.WriteString("BEGIN\n\n")
	for _, g := range c.Gates {
		switch g.Kind {
		case KindCNOT:
			fmt.Fprintf(&sb, "tof %s %s\n", names[g.Control], names[g.Target])
		case KindCZ:
			fmt.Fprintf(&sb, "Z %s %s\n", names[g.Control], names[g.Target])
		case KindTof:
			fmt.Fprintf(&sb, "tof %s %s %s\n", names[g.Control], names[g.Control2], names[g.Target])
		case KindH:
			fmt.Fprintf(&sb, "H %s\n", names[g.Target])
		case KindS:
			fmt.Fprintf(&sb, "S %s\n", names[g.Target])
		case KindT:
			fmt.Fprintf(&sb, "T %s\n", names[g.Target])
		case KindTdg:
			fmt.Fprintf(&sb, "T* %s\n", names[g.Target])
		case KindX:
			fmt.Fprintf(&sb, "X %s\n", names[g.Target])
		case KindZ:
			fmt.Fprintf(&sb, "Z %s\n", names[g.Target])
		}
	}
	sb.WriteString("\nEND\n")
	return sb.String()
}

// ParseQC parses .qc text and rebuilds the circuit from it. Qubits are
// numbered in the order of the .v declaration.
func (c *Circuit) ParseQC(text string) error {
	c.Gates = nil
	c.NumQubits = 0
	index := make(map[string]int)
	inBody := false

	for lineNo, line := range strings.Split(text, "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		wrap := func(err error) error { return errors.Wrapf(err, "line %d", lineNo+1) }

		switch {
		case fields[0] == ".v":
			for _, name := range fields[1:] {
				if _, dup := index[name]; dup {
					return wrap(errors.Wrapf(ErrDuplicateQubit, "variable %q declared twice", name))
				}
				index[name] = c.NumQubits
				c.NumQubits++
			}
			continue
		case strings.HasPrefix(fields[0], "."):
			continue
		case fields[0] == "BEGIN":
			inBody = true
			continue
		case fields[0] == "END":
			inBody = false
			continue
		}
		if !inBody {
			return wrap(errors.Wrapf(ErrParse, "gate %q outside BEGIN/END", fields[0]))
		}

		qs := make([]int, 0, len(fields)-1)
		for _, name := range fields[1:] {
			q, ok := index[name]
			if !ok {
				return wrap(errors.Wrapf(ErrParse, "undeclared qubit %q", name))
			}
			qs = append(qs, q)
		}
		gates, err := qcGate(fields[0], qs)
		if err != nil {
			return wrap(err)
		}
		for _, g := range gates {
			if err := g.Validate(c.NumQubits); err != nil {
				return wrap(err)
			}
		}
		c.Append(gates...)
	}
	return nil
}

func qcGate(name string, qs []int) ([]Gate, error) {
	arity := func(n int) error {
		if len(qs) != n {
			return errors.Wrapf(ErrParse, "%s expects %d qubits, got %d", name, n, len(qs))
		}
		return nil
	}

	switch name {
	case "H", "S", "S*", "P", "P*", "T", "T*", "Y":
		if err := arity(1); err != nil {
			return nil, err
		}
		q := qs[0]
		switch name {
		case "H":
			return []Gate{H(q)}, nil
		case "S", "P":
			return []Gate{S(q)}, nil
		case "S*", "P*":
			return []Gate{S(q), Z(q)}, nil
		case "T":
			return []Gate{T(q)}, nil
		case "T*":
			return []Gate{Tdg(q)}, nil
		default:
			return []Gate{Z(q), X(q)}, nil
		}
	case "X", "tof", "cnot", "not":
		switch len(qs) {
		case 1:
			return []Gate{X(qs[0])}, nil
		case 2:
			return []Gate{CNOT(qs[0], qs[1])}, nil
		case 3:
			return []Gate{Toffoli(qs[0], qs[1], qs[2])}, nil
		}
	case "Z":
		switch len(qs) {
		case 1:
			return []Gate{Z(qs[0])}, nil
		case 2:
			return []Gate{CZ(qs[0], qs[1])}, nil
		case 3:
			return []Gate{H(qs[2]), Toffoli(qs[0], qs[1], qs[2]), H(qs[2])}, nil
		}
	default:
		return nil, errors.Wrapf(ErrParse, "unsupported gate %q", name)
	}
	return nil, errors.Wrapf(ErrParse, "%s with %d qubits is not supported", name, len(qs))
}
