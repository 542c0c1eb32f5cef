package todd

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qtcount/internal/gf2"
	"qtcount/internal/phasepoly"
	"qtcount/internal/sim"
)

func randomTable(rng *rand.Rand, n, m int) phasepoly.Table {
	t := phasepoly.Table{N: n}
	for i := 0; i < m; i++ {
		var ones []int
		for q := 0; q < n; q++ {
			if rng.Intn(2) == 1 {
				ones = append(ones, q)
			}
		}
		t.Rows = append(t.Rows, gf2.NewRow(n, ones...))
	}
	return t
}

func TestTOHPECancelsDuplicates(t *testing.T) {
	got, err := TOHPE(context.Background(), phasepoly.ParseTable("100", "100"))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, 3, got.N)
}

func TestTOHPEReduces(t *testing.T) {
	in := phasepoly.ParseTable("0110", "0011", "0001", "0010", "1101", "1100", "1001", "1011", "1111", "0100")
	got, err := TOHPE(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Len())
	assert.True(t, phasepoly.SignatureEqual(in, got))
}

func TestFastTODDBeatsTOHPE(t *testing.T) {
	in := phasepoly.ParseTable("1011", "0110", "1101", "1100", "0101", "0111", "1000", "0001")

	tohpe, err := TOHPE(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 8, tohpe.Len())

	todd, err := FastTODD(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 7, todd.Len())
	assert.True(t, phasepoly.SignatureEqual(in, todd))

	corr, err := phasepoly.Correction(in, todd)
	require.NoError(t, err)
	rebuilt := corr.Clone()
	rebuilt.Gates = append(rebuilt.Gates, todd.Circuit().Gates...)
	ok, err := sim.Equivalent(in.Circuit(), rebuilt)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRandomTablesKeepSignature(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 40; trial++ {
		n := 3 + rng.Intn(2)
		in := randomTable(rng, n, 4+rng.Intn(10))

		a, err := TOHPE(context.Background(), in)
		require.NoError(t, err)
		b, err := FastTODD(context.Background(), in)
		require.NoError(t, err)

		assert.True(t, phasepoly.SignatureEqual(in, a), "trial %d", trial)
		assert.True(t, phasepoly.SignatureEqual(in, b), "trial %d", trial)
		assert.LessOrEqual(t, a.Len(), in.Proper().Len())
		assert.LessOrEqual(t, b.Len(), a.Len())
	}
}

func TestFastTODDWorkersMatchSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	for trial := 0; trial < 10; trial++ {
		in := randomTable(rng, 4, 12)
		seq, err := FastTODD(context.Background(), in)
		require.NoError(t, err)
		par, err := FastTODD(context.Background(), in, WithWorkers(4))
		require.NoError(t, err)
		assert.Equal(t, seq.Key(), par.Key(), "trial %d", trial)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FastTODD(ctx, phasepoly.ParseTable("110", "011"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScoreCandidates(t *testing.T) {
	// rows 0 and 1 are flagged; z = 110 cancels row 0 and turns row 1 into a copy of row 2
	tab := phasepoly.ParseTable("110", "111", "001")
	y := gf2.Parse("110")
	scores := scoreCandidates(tab, y)
	best, ok := bestCandidate(scores)
	require.True(t, ok)
	assert.Equal(t, "110", best.z.String())
	assert.Equal(t, 3, best.score)

	next, err := merge(tab, y, best.z, best.score)
	require.NoError(t, err)
	assert.Equal(t, 0, next.Len())
}

func TestMergeRejectsWrongScore(t *testing.T) {
	tab := phasepoly.ParseTable("110", "111", "001")
	_, err := merge(tab, gf2.Parse("110"), gf2.Parse("110"), 1)
	assert.ErrorIs(t, err, ErrNoProgress)
}

func TestConstraintsLength(t *testing.T) {
	// outside = {2,3}, p = 0, rest = {1}: 2 + 1 + 1 + 2 + 0
	got := constraints(gf2.Parse("1011"), gf2.Parse("1100"))
	assert.Equal(t, 6, got.Len())
	assert.Equal(t, "111111", got.String())

	got = constraints(gf2.Parse("0010"), gf2.Parse("1100"))
	assert.Equal(t, "100000", got.String())
}
