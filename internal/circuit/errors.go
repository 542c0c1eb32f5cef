package circuit

import "github.com/pkg/errors"

var (
	// ErrQubitRange indicates a gate addresses a qubit outside the register.
	ErrQubitRange = errors.New("circuit: qubit index out of range")

	// ErrDuplicateQubit indicates a multi-qubit gate names the same qubit twice.
	ErrDuplicateQubit = errors.New("circuit: duplicate qubit in gate")

	// ErrParse indicates malformed circuit text.
	ErrParse = errors.New("circuit: parse error")
)
