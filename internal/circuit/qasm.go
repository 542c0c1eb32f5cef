package circuit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+(\w+)\[(\d+)\]$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+(\w+)\[(\d+)\]$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+(\w+)\[(\d+)\]\s*,\s*(\w+)\[(\d+)\]$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+(\w+)\[(\d+)\]\s*,\s*(\w+)\[(\d+)\]\s*,\s*(\w+)\[(\d+)\]$`)
	qregRegex            = regexp.MustCompile(`^qreg\s+(\w+)\s*\[(\d+)\]$`)
)

// ToQASM generates OpenQASM 2.0 output from the circuit.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", max(c.NumQubits, 1))

	for _, g := range c.Gates {
		switch g.Kind {
		case KindCNOT:
			fmt.Fprintf(&sb, "cx q[%d], q[%d];\n", g.Control, g.Target)
		case KindCZ:
			fmt.Fprintf(&sb, "cz q[%d], q[%d];\n", g.Control, g.Target)
		case KindTof:
			fmt.Fprintf(&sb, "ccx q[%d], q[%d], q[%d];\n", g.Control, g.Control2, g.Target)
		case KindH:
			fmt.Fprintf(&sb, "h q[%d];\n", g.Target)
		case KindS:
			fmt.Fprintf(&sb, "s q[%d];\n", g.Target)
		case KindT:
			fmt.Fprintf(&sb, "t q[%d];\n", g.Target)
		case KindTdg:
			fmt.Fprintf(&sb, "tdg q[%d];\n", g.Target)
		case KindX:
			fmt.Fprintf(&sb, "x q[%d];\n", g.Target)
		case KindZ:
			fmt.Fprintf(&sb, "z q[%d];\n", g.Target)
		}
	}

	return sb.String()
}

// qasmParser tracks quantum registers while statements are read.
type qasmParser struct {
	regs  map[string][2]int // name -> offset, size
	total int
}

func (p *qasmParser) qubit(name, idx string) (int, error) {
	reg, ok := p.regs[name]
	if !ok {
		return 0, errors.Wrapf(ErrParse, "unknown register %q", name)
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i >= reg[1] {
		return 0, errors.Wrapf(ErrQubitRange, "%s[%s]", name, idx)
	}
	return reg[0] + i, nil
}

// ParseQASM parses OpenQASM 2.0 text and rebuilds the circuit from it.
// Multiple qreg declarations are concatenated in declaration order.
// Measurements, barriers and classical registers are skipped.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Gates = nil
	c.NumQubits = 0
	p := &qasmParser{regs: make(map[string][2]int)}

	for lineNo, line := range strings.Split(qasm, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		for _, stmt := range strings.Split(line, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if err := c.parseStatement(p, stmt); err != nil {
				return errors.Wrapf(err, "line %d", lineNo+1)
			}
		}
	}
	c.NumQubits = p.total
	return nil
}

func (c *Circuit) parseStatement(p *qasmParser, stmt string) error {
	switch {
	case strings.HasPrefix(stmt, "OPENQASM"),
		strings.HasPrefix(stmt, "include"),
		strings.HasPrefix(stmt, "creg"),
		strings.HasPrefix(stmt, "barrier"),
		strings.HasPrefix(stmt, "measure"):
		return nil
	}

	if matches := qregRegex.FindStringSubmatch(stmt); matches != nil {
		n, _ := strconv.Atoi(matches[2])
		p.regs[matches[1]] = [2]int{p.total, n}
		p.total += n
		return nil
	}

	// Three-qubit gates (Toffoli)
	if matches := threeQubitRegex.FindStringSubmatch(stmt); matches != nil {
		qs, err := p.operands(matches[2:])
		if err != nil {
			return err
		}
		switch strings.ToLower(matches[1]) {
		case "ccx", "toffoli":
			c.Append(Toffoli(qs[0], qs[1], qs[2]))
		case "ccz":
			c.Append(H(qs[2]), Toffoli(qs[0], qs[1], qs[2]), H(qs[2]))
		default:
			return errors.Wrapf(ErrParse, "unsupported gate %q", matches[1])
		}
		return nil
	}

	// Two-qubit gates: cx, cz, swap
	if matches := twoQubitRegex.FindStringSubmatch(stmt); matches != nil {
		qs, err := p.operands(matches[2:])
		if err != nil {
			return err
		}
		switch strings.ToLower(matches[1]) {
		case "cx", "cnot":
			c.Append(CNOT(qs[0], qs[1]))
		case "cz":
			c.Append(CZ(qs[0], qs[1]))
		case "swap":
			c.Append(CNOT(qs[0], qs[1]), CNOT(qs[1], qs[0]), CNOT(qs[0], qs[1]))
		default:
			return errors.Wrapf(ErrParse, "unsupported gate %q", matches[1])
		}
		return nil
	}

	// Z-axis rotations by multiples of pi/4
	if matches := singleGateParamRegex.FindStringSubmatch(stmt); matches != nil {
		switch strings.ToLower(matches[1]) {
		case "rz", "u1", "p":
		default:
			return errors.Wrapf(ErrParse, "unsupported gate %q", matches[1])
		}
		theta, ok := parseParamExpr(matches[2])
		if !ok {
			return errors.Wrapf(ErrParse, "bad angle %q", matches[2])
		}
		q, err := p.qubit(matches[3], matches[4])
		if err != nil {
			return err
		}
		gates, err := phaseGates(theta, q)
		if err != nil {
			return err
		}
		c.Append(gates...)
		return nil
	}

	// Single-qubit gate (including dagger gates)
	if matches := singleGateRegex.FindStringSubmatch(stmt); matches != nil {
		q, err := p.qubit(matches[2], matches[3])
		if err != nil {
			return err
		}
		switch strings.ToLower(matches[1]) {
		case "h":
			c.Append(H(q))
		case "s":
			c.Append(S(q))
		case "sdg":
			c.Append(S(q), Z(q))
		case "t":
			c.Append(T(q))
		case "tdg":
			c.Append(Tdg(q))
		case "x":
			c.Append(X(q))
		case "y":
			// Y = iXZ
			c.Append(Z(q), X(q))
		case "z":
			c.Append(Z(q))
		case "id":
		default:
			return errors.Wrapf(ErrParse, "unsupported gate %q", matches[1])
		}
		return nil
	}

	return errors.Wrapf(ErrParse, "unrecognised statement %q", stmt)
}

func (p *qasmParser) operands(m []string) ([]int, error) {
	qs := make([]int, 0, len(m)/2)
	for i := 0; i+1 < len(m); i += 2 {
		q, err := p.qubit(m[i], m[i+1])
		if err != nil {
			return nil, err
		}
		for _, prev := range qs {
			if prev == q {
				return nil, errors.Wrapf(ErrDuplicateQubit, "%s[%s]", m[i], m[i+1])
			}
		}
		qs = append(qs, q)
	}
	return qs, nil
}
