// Package todd reduces the T-count of a phase polynomial table. TOHPE merges
// rows along dependencies of the rows extended with their pairwise products;
// FastTODD additionally searches dependencies of a z-specific constraint
// system for every pair of rows.
package todd

import (
	"context"

	"go.uber.org/zap"

	"qtcount/internal/gf2"
	"qtcount/internal/phasepoly"
)

// TOHPE repeatedly applies the first dependency with a positive best score
// until a full kernel pass finds none. The returned table is proper and has
// the same signature tensor as the input.
func TOHPE(ctx context.Context, t phasepoly.Table, opts ...Option) (phasepoly.Table, error) {
	cfg := newConfig(opts)
	return tohpe(ctx, t, cfg)
}

func tohpe(ctx context.Context, t phasepoly.Table, cfg *config) (phasepoly.Table, error) {
	t = t.Proper()
	for {
		if err := ctx.Err(); err != nil {
			return t, err
		}
		next, improved, err := tohpePass(t)
		if err != nil {
			return t, err
		}
		if !improved {
			return t, nil
		}
		cfg.logger.Debug("tohpe reduction",
			zap.Int("before", t.Len()),
			zap.Int("after", next.Len()),
		)
		t = next
	}
}

func tohpePass(t phasepoly.Table) (phasepoly.Table, bool, error) {
	extended := make([]gf2.Row, len(t.Rows))
	for k, r := range t.Rows {
		extended[k] = r.Extend(r.Tensor())
	}
	kernel := gf2.NewKernel(extended)
	for {
		y, ok := kernel.Next()
		if !ok {
			return t, false, nil
		}
		best, ok := bestCandidate(scoreCandidates(t, y))
		if !ok {
			continue
		}
		next, err := merge(t, y, best.z, best.score)
		if err != nil {
			return t, false, err
		}
		return next, true, nil
	}
}
