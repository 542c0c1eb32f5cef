package pauli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Product {
	t.Helper()
	p, err := Parse(s)
	require.NoError(t, err)
	return p
}

func TestParseString(t *testing.T) {
	for _, s := range []string{"+IXYZ", "-ZZ", "+I"} {
		assert.Equal(t, s, mustParse(t, s).String())
	}
	assert.Equal(t, "+XZ", mustParse(t, "XZ").String())

	_, err := Parse("XQ")
	assert.Error(t, err)
}

func TestMul(t *testing.T) {
	tests := []struct {
		a, b string
		k    int
		want string
	}{
		{"Z", "Z", 0, "+I"},
		{"Z", "X", 1, "-Y"},
		{"X", "Z", 1, "+Y"},
		{"Y", "Y", 0, "+I"},
		{"-Z", "Z", 0, "-I"},
		{"XX", "ZZ", 0, "-YY"},
		{"ZI", "IZ", 0, "+ZZ"},
		{"-X", "-Y", 1, "-Z"},
	}
	for _, tt := range tests {
		got := mustParse(t, tt.a).Mul(mustParse(t, tt.b), tt.k)
		assert.Equal(t, tt.want, got.String(), "%s * %s (k=%d)", tt.a, tt.b, tt.k)
	}
}

func TestMulNonHermitianPanics(t *testing.T) {
	// XZ = -iY
	assert.Panics(t, func() { mustParse(t, "X").Mul(mustParse(t, "Z"), 0) })
}

func TestCommutes(t *testing.T) {
	assert.True(t, mustParse(t, "XX").Commutes(mustParse(t, "ZZ")))
	assert.False(t, mustParse(t, "XI").Commutes(mustParse(t, "ZI")))
	assert.True(t, mustParse(t, "ZI").Commutes(mustParse(t, "IX")))
}

func TestSingles(t *testing.T) {
	assert.Equal(t, "+IZI", SingleZ(3, 1).String())
	assert.Equal(t, "+XII", SingleX(3, 0).String())
	assert.True(t, SingleZ(3, 1).IsDiagonal())
	assert.False(t, SingleX(3, 1).IsDiagonal())
	assert.Equal(t, "-XII", SingleX(3, 0).Negate().String())
}
