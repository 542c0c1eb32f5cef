package todd

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"qtcount/internal/gf2"
	"qtcount/internal/phasepoly"
)

type pairBest struct {
	score int
	pair  int
	y, z  gf2.Row
}

func (b pairBest) beats(o pairBest) bool {
	return b.score > o.score || (b.score == o.score && b.score > 0 && b.pair < o.pair)
}

// FastTODD alternates TOHPE with a pair search: for every pair of rows i < j
// it takes z = r_i ^ r_j, enumerates dependencies of the constraint rows for
// z that flag exactly one of i and j, and applies the best exact score found
// across all pairs. It stops when no pair gives a positive score.
func FastTODD(ctx context.Context, t phasepoly.Table, opts ...Option) (phasepoly.Table, error) {
	cfg := newConfig(opts)
	for {
		var err error
		t, err = tohpe(ctx, t, cfg)
		if err != nil {
			return t, err
		}

		best, err := scanPairs(ctx, t, cfg.workers)
		if err != nil {
			return t, err
		}
		if best.score <= 0 {
			return t, nil
		}
		next, err := merge(t, best.y, best.z, best.score)
		if err != nil {
			return t, err
		}
		cfg.logger.Debug("fasttodd reduction",
			zap.Int("before", t.Len()),
			zap.Int("after", next.Len()),
			zap.Stringer("z", best.z),
		)
		t = next
	}
}

// scanPairs returns the best pair reduction. Pairs are dealt to workers
// round-robin and the results merged so the winner matches a sequential scan:
// highest score, then earliest pair, then earliest dependency.
func scanPairs(ctx context.Context, t phasepoly.Table, workers int) (pairBest, error) {
	m := t.Len()
	var pairs [][2]int
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	if workers < 2 || len(pairs) < 2*workers {
		return scanPairRange(ctx, t, pairs, 0, 1)
	}

	results := make([]pairBest, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			b, err := scanPairRange(gctx, t, pairs, w, workers)
			results[w] = b
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return pairBest{}, err
	}
	var best pairBest
	for _, b := range results {
		if b.beats(best) {
			best = b
		}
	}
	return best, nil
}

func scanPairRange(ctx context.Context, t phasepoly.Table, pairs [][2]int, start, step int) (pairBest, error) {
	var best pairBest
	for p := start; p < len(pairs); p += step {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		i, j := pairs[p][0], pairs[p][1]
		z := t.Rows[i].Xor(t.Rows[j])

		rows := make([]gf2.Row, t.Len())
		for k, r := range t.Rows {
			rows[k] = constraints(r, z)
		}
		kernel := gf2.NewKernel(rows)
		for {
			y, ok := kernel.Next()
			if !ok {
				break
			}
			if y.Bit(i) == y.Bit(j) {
				continue
			}
			cand := pairBest{score: exactScore(t, y, z), pair: p, y: y, z: z}
			if cand.score > best.score {
				best = cand
			}
		}
	}
	return best, nil
}

// constraints maps row r to the linear conditions under which XORing z into
// a set of rows leaves the signature tensor unchanged. With S the support of
// z, p its first qubit and R = S \ {p}, the bits are: r_a for a outside S,
// r_a ^ r_p for a in R, r_a r_b for pairs outside S, r_a (r_b ^ r_p) for a
// outside S and b in R, and r_p r_c ^ r_p r_d ^ r_c r_d ^ r_p for c < d in R.
func constraints(r, z gf2.Row) gf2.Row {
	n := r.Len()
	var outside, rest []int
	for a := 0; a < n; a++ {
		if !z.Bit(a) {
			outside = append(outside, a)
		}
	}
	support := z.Ones()
	p := support[0]
	rest = support[1:]

	bit := func(a int) int {
		if r.Bit(a) {
			return 1
		}
		return 0
	}
	rp := bit(p)

	var vals []int
	for _, a := range outside {
		vals = append(vals, bit(a))
	}
	for _, a := range rest {
		vals = append(vals, bit(a)^rp)
	}
	for i, a := range outside {
		for _, b := range outside[i+1:] {
			vals = append(vals, bit(a)&bit(b))
		}
	}
	for _, a := range outside {
		for _, b := range rest {
			vals = append(vals, bit(a)&(bit(b)^rp))
		}
	}
	for i, c := range rest {
		for _, d := range rest[i+1:] {
			rc, rd := bit(c), bit(d)
			vals = append(vals, (rp&rc)^(rp&rd)^(rc&rd)^rp)
		}
	}
	return gf2.FromInts(vals...)
}
