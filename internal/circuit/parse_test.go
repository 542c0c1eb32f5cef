package circuit

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestParseQASMBasic(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[3];
creg c[3];

h q[1];
cx q[1], q[2];
ccx q[0], q[1], q[2];
tdg q[0];
sdg q[2]; t q[1];
measure q[0] -> c[0];`

	var c Circuit
	if err := c.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	if c.NumQubits != 3 {
		t.Fatalf("expected 3 qubits, got %d", c.NumQubits)
	}

	want := []Gate{H(1), CNOT(1, 2), Toffoli(0, 1, 2), Tdg(0), S(2), Z(2), T(1)}
	if len(c.Gates) != len(want) {
		t.Fatalf("expected %d gates, got %d: %v", len(want), len(c.Gates), c.Gates)
	}
	for i := range want {
		if c.Gates[i] != want[i] {
			t.Errorf("gate %d: expected %s, got %s", i, want[i], c.Gates[i])
		}
	}
}

func TestParseQASMMultipleRegisters(t *testing.T) {
	qasm := `OPENQASM 2.0;
qreg a[2];
qreg b[2];
cx a[1], b[0];
h b[1];`

	var c Circuit
	if err := c.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	if c.NumQubits != 4 {
		t.Fatalf("expected 4 qubits, got %d", c.NumQubits)
	}
	if c.Gates[0] != CNOT(1, 2) || c.Gates[1] != H(3) {
		t.Errorf("unexpected gates %v", c.Gates)
	}
}

func TestParseQASMRotations(t *testing.T) {
	tests := []struct {
		line string
		want []Gate
	}{
		{"rz(pi/4) q[0];", []Gate{T(0)}},
		{"u1(pi/2) q[0];", []Gate{S(0)}},
		{"p(3*pi/4) q[0];", []Gate{S(0), T(0)}},
		{"rz(pi) q[0];", []Gate{Z(0)}},
		{"rz(-pi/4) q[0];", []Gate{Tdg(0)}},
		{"rz(0) q[0];", nil},
		{"rz(5*pi/4) q[0];", []Gate{Z(0), T(0)}},
	}

	for _, tt := range tests {
		var c Circuit
		if err := c.ParseQASM("qreg q[1];\n" + tt.line); err != nil {
			t.Fatalf("%s: %v", tt.line, err)
		}
		if len(c.Gates) != len(tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.line, tt.want, c.Gates)
			continue
		}
		for i := range tt.want {
			if c.Gates[i] != tt.want[i] {
				t.Errorf("%s: gate %d expected %s, got %s", tt.line, i, tt.want[i], c.Gates[i])
			}
		}
	}
}

func TestParseQASMErrors(t *testing.T) {
	tests := []struct {
		name string
		qasm string
		want error
	}{
		{"unknown gate", "qreg q[2];\nrx(pi) q[0];", ErrParse},
		{"bad angle", "qreg q[2];\nrz(pi/8) q[0];", ErrParse},
		{"range", "qreg q[2];\nh q[5];", ErrQubitRange},
		{"duplicate", "qreg q[2];\ncx q[1], q[1];", ErrDuplicateQubit},
		{"unknown register", "qreg q[2];\nh r[0];", ErrParse},
		{"garbage", "qreg q[2];\nhello world", ErrParse},
	}

	for _, tt := range tests {
		var c Circuit
		err := c.ParseQASM(tt.qasm)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestQASMRoundTrip(t *testing.T) {
	c := New(3).Append(H(0), CNOT(0, 1), CZ(1, 2), Toffoli(0, 1, 2), S(0), T(1), Tdg(2), X(0), Z(1))

	var back Circuit
	if err := back.ParseQASM(c.ToQASM()); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	if back.NumQubits != c.NumQubits || len(back.Gates) != len(c.Gates) {
		t.Fatalf("round trip changed shape: %d/%d gates", len(back.Gates), len(c.Gates))
	}
	for i := range c.Gates {
		if back.Gates[i] != c.Gates[i] {
			t.Errorf("gate %d: expected %s, got %s", i, c.Gates[i], back.Gates[i])
		}
	}
}

func TestQCRoundTrip(t *testing.T) {
	c := New(3).Append(H(0), CNOT(0, 1), CZ(1, 2), Toffoli(0, 1, 2), S(0), T(1), Tdg(2), X(0), Z(1))

	var back Circuit
	if err := back.ParseQC(c.ToQC()); err != nil {
		t.Fatalf("ParseQC error: %v", err)
	}
	if len(back.Gates) != len(c.Gates) {
		t.Fatalf("round trip changed shape: %v", back.Gates)
	}
	for i := range c.Gates {
		if back.Gates[i] != c.Gates[i] {
			t.Errorf("gate %d: expected %s, got %s", i, c.Gates[i], back.Gates[i])
		}
	}
}

func TestParseQC(t *testing.T) {
	text := `# toy
.v a b c
.i a b

BEGIN
tof a b c
Z a b c
S* a
X b
tof a b
Z a b
END`

	var c Circuit
	if err := c.ParseQC(text); err != nil {
		t.Fatalf("ParseQC error: %v", err)
	}
	want := []Gate{
		Toffoli(0, 1, 2),
		H(2), Toffoli(0, 1, 2), H(2),
		S(0), Z(0),
		X(1),
		CNOT(0, 1),
		CZ(0, 1),
	}
	if len(c.Gates) != len(want) {
		t.Fatalf("expected %d gates, got %v", len(want), c.Gates)
	}
	for i := range want {
		if c.Gates[i] != want[i] {
			t.Errorf("gate %d: expected %s, got %s", i, want[i], c.Gates[i])
		}
	}

	if err := c.ParseQC(".v a\nBEGIN\nH z\nEND"); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for undeclared qubit, got %v", err)
	}
	if err := c.ParseQC(".v a b\nBEGIN\ntof a a\nEND"); !errors.Is(err, ErrDuplicateQubit) {
		t.Errorf("expected ErrDuplicateQubit, got %v", err)
	}
}

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"pi", math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"-pi/4", -math.Pi / 4, true},
		{"2pi", 2 * math.Pi, true},
		{"1.5", 1.5, true},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseParamExpr(tt.in)
		if ok != tt.ok || math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("parseParamExpr(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	for val, want := range map[float64]string{
		-math.Pi / 4:    "-pi/4",
		3 * math.Pi / 2: "3*pi/2",
		2 * math.Pi:     "2*pi",
		0.5:             "0.5",
	} {
		if s := formatParam(val); s != want {
			t.Errorf("formatParam(%v) = %q, want %q", val, s, want)
		}
	}
}
