package phasepoly

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qtcount/internal/circuit"
	"qtcount/internal/gf2"
	"qtcount/internal/sim"
)

func TestProper(t *testing.T) {
	tab := ParseTable("110", "000", "011", "110", "110", "101", "011")
	got := tab.Proper()
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "110", got.Rows[0].String())
	assert.Equal(t, "101", got.Rows[1].String())

	again := got.Proper()
	assert.Equal(t, got.Key(), again.Key())
}

func TestCount(t *testing.T) {
	tab := ParseTable("110", "111", "011")
	assert.Equal(t, 3, tab.Count(gf2.NewRow(3, 1)))
	assert.Equal(t, 2, tab.Count(gf2.NewRow(3, 1, 2)))
	assert.Equal(t, 1, tab.Count(gf2.NewRow(3, 0, 1, 2)))
}

func TestCircuitPhases(t *testing.T) {
	tab := ParseTable("110", "101", "111", "001")
	c := tab.Circuit()
	assert.Equal(t, 4, c.TCount())

	omega := cmplx.Exp(complex(0, math.Pi/4))
	for x := 0; x < 8; x++ {
		want := complex(1, 0)
		for _, r := range tab.Rows {
			parity := 0
			for _, q := range r.Ones() {
				parity ^= (x >> q) & 1
			}
			if parity == 1 {
				want *= omega
			}
		}
		s := sim.Basis(3, x).Run(c)
		assert.InDelta(t, 0, cmplx.Abs(s.Amplitudes[x]-want), 1e-9, "basis %03b", x)
	}
}

func TestSignatureEqual(t *testing.T) {
	assert.True(t, SignatureEqual(ParseTable("100", "100"), Table{N: 3}))
	assert.True(t, SignatureEqual(ParseTable("110", "110", "011"), ParseTable("011")))
	assert.False(t, SignatureEqual(ParseTable("110", "101", "011", "111"), ParseTable("100", "010", "001")))
	assert.False(t, SignatureEqual(ParseTable("100"), Table{N: 3}))
	assert.False(t, SignatureEqual(ParseTable("111"), ParseTable("100", "010", "001")))
}

func TestCorrectionDoubleT(t *testing.T) {
	orig := ParseTable("100", "100")
	corr, err := Correction(orig, Table{N: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, corr.TCount())
	assert.NotZero(t, corr.Count(circuit.KindS))

	ok, err := sim.Equivalent(orig.Circuit(), corr)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCorrectionRecoversCliffordDifference(t *testing.T) {
	orig := ParseTable("110", "011", "110", "101")
	opt := ParseTable("011", "101")
	require.True(t, SignatureEqual(orig, opt))
	corr, err := Correction(orig, opt)
	require.NoError(t, err)
	assert.Equal(t, 1, corr.Count(circuit.KindCZ))

	rebuilt := corr.Clone()
	rebuilt.Gates = append(rebuilt.Gates, opt.Circuit().Gates...)
	ok, err := sim.Equivalent(orig.Circuit(), rebuilt)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCorrectionInconsistent(t *testing.T) {
	_, err := Correction(ParseTable("100"), Table{N: 3})
	assert.ErrorIs(t, err, ErrInconsistentCorrection)

	_, err = Correction(ParseTable("110", "101", "011", "111"), ParseTable("100", "010", "001"))
	assert.ErrorIs(t, err, ErrInconsistentCorrection)

	_, err = Correction(ParseTable("10"), ParseTable("100"))
	assert.ErrorIs(t, err, ErrInconsistentCorrection)
}
