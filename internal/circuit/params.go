package circuit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// paramPattern matches a single angle: numbers, pi expressions, or combinations.
// Examples: "1.5707", "pi", "pi/2", "3*pi/4", "-pi", "-2*pi/3", "3.14e-2"
const paramPattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?)`

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi, -pi/2, -3*pi/4
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// parseParamExpr parses a single angle expression, supporting plain numbers and pi expressions.
// Returns the parsed value and true on success, or 0 and false on failure.
func parseParamExpr(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	s = strings.ToLower(s)
	matches := piExprRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, false
	}
	negative := matches[1] == "-"
	coeffStr := matches[2]
	denomStr := matches[3]

	coeff := 1.0
	if coeffStr != "" {
		var err error
		coeff, err = strconv.ParseFloat(coeffStr, 64)
		if err != nil {
			return 0, false
		}
	}

	result := coeff * math.Pi
	if denomStr != "" {
		denom, err := strconv.ParseFloat(denomStr, 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		result /= denom
	}

	if negative {
		result = -result
	}
	return result, true
}

// formatParam prints multiples of pi/4 in reduced pi notation and anything
// else with %g.
func formatParam(val float64) string {
	k := math.Round(val / (math.Pi / 4))
	if k == 0 || math.Abs(val-k*math.Pi/4) > 1e-10 {
		return fmt.Sprintf("%g", val)
	}
	sign := ""
	if k < 0 {
		sign, k = "-", -k
	}
	num, den := int(k), 4
	for num%2 == 0 && den > 1 {
		num, den = num/2, den/2
	}
	out := "pi"
	if num != 1 {
		out = fmt.Sprintf("%d*pi", num)
	}
	if den != 1 {
		out += fmt.Sprintf("/%d", den)
	}
	return sign + out
}

// phaseGates expands a Z-axis rotation by theta into T, S and Z gates on q.
// Global phase is dropped, so rz, u1 and p share one expansion. theta must be
// a multiple of pi/4.
func phaseGates(theta float64, q int) ([]Gate, error) {
	steps := theta / (math.Pi / 4)
	k := math.Round(steps)
	if math.Abs(steps-k) > 1e-9 {
		return nil, errors.Wrapf(ErrParse, "angle %s is not a multiple of pi/4", formatParam(theta))
	}
	m := ((int(k) % 8) + 8) % 8

	var out []Gate
	if m&4 != 0 {
		out = append(out, Z(q))
	}
	if m&2 != 0 {
		out = append(out, S(q))
	}
	if m == 7 {
		// Z S T = T†
		return []Gate{Tdg(q)}, nil
	}
	if m&1 != 0 {
		out = append(out, T(q))
	}
	return out, nil
}
