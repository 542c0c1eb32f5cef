package main

import (
	"fmt"
	"io"

	"github.com/markkurossi/tabulate"

	"qtcount/internal/circuit"
)

type metricRow struct {
	name  string
	value func(circuit.Metrics) int
}

var metricRows = []metricRow{
	{"Qubits", func(m circuit.Metrics) int { return m.Qubits }},
	{"Gates", func(m circuit.Metrics) int { return m.Gates }},
	{"T-count", func(m circuit.Metrics) int { return m.TCount }},
	{"T-depth", func(m circuit.Metrics) int { return m.TDepth }},
	{"Two-qubit", func(m circuit.Metrics) int { return m.TwoQubit }},
	{"Toffoli", func(m circuit.Metrics) int { return m.Toffoli }},
	{"Hadamard", func(m circuit.Metrics) int { return m.Hadamard }},
	{"Internal H", func(m circuit.Metrics) int { return m.InternalH }},
	{"Depth", func(m circuit.Metrics) int { return m.Depth }},
}

// writeMetrics prints one column per labelled metric set.
func writeMetrics(w io.Writer, labels []string, sets ...circuit.Metrics) {
	tab := tabulate.New(tabulate.Unicode)
	tab.Header("Metric").SetAlign(tabulate.ML)
	for _, l := range labels {
		tab.Header(l).SetAlign(tabulate.MR)
	}
	for _, r := range metricRows {
		row := tab.Row()
		row.Column(r.name)
		for _, m := range sets {
			row.Column(fmt.Sprintf("%d", r.value(m)))
		}
	}
	tab.Print(w)
}
