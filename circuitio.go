package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"qtcount/internal/circuit"
)

// readCircuit loads a .qc file or, for any other extension, OpenQASM.
func readCircuit(path string) (*circuit.Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	c := &circuit.Circuit{}
	if isQC(path) {
		err = c.ParseQC(string(data))
	} else {
		err = c.ParseQASM(string(data))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return c, nil
}

// writeCircuit stores c in the format implied by the extension of path.
func writeCircuit(path string, c *circuit.Circuit) error {
	text := c.ToQASM()
	if isQC(path) {
		text = c.ToQC()
	}
	return errors.Wrapf(os.WriteFile(path, []byte(text), 0644), "write %s", path)
}

func isQC(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".qc")
}
