// Package optimize lowers Clifford+T circuits to the form the phase
// polynomial reductions work on and reassembles the reduced circuit.
package optimize

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"qtcount/internal/circuit"
	"qtcount/internal/phasepoly"
	"qtcount/internal/todd"
)

// Result is the optimized circuit together with its wiring. Logical qubit q
// lives on wire Mapping[q]; Retired wires carry Hadamard gadgets and must be
// post-selected on + in the X basis.
type Result struct {
	Circuit *circuit.Circuit
	Mapping []int
	Retired []int
	Before  circuit.Metrics
	After   circuit.Metrics
}

// TCountOptimization decomposes Toffolis, moves Hadamards out of the T
// region, optionally gadgetizes the ones that remain, and reduces every
// phase polynomial segment with the configured method.
func TCountOptimization(ctx context.Context, c *circuit.Circuit, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	log := opts.Logger
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "optimize: invalid input circuit")
	}

	basic := ToBasicGates(c, opts.CleanAncillas)
	hopt, err := InternalHOpt(basic)
	if err != nil {
		return nil, err
	}
	log.Debug("preprocessed",
		zap.Int("tcount", basic.TCount()),
		zap.Int("internal_h_before", basic.InternalHCount()),
		zap.Int("internal_h_after", hopt.InternalHCount()),
	)

	res := &Result{Before: c.Metrics()}
	work := hopt
	res.Mapping = identity(c.NumQubits)
	if opts.Gadgetize {
		g := GadgetizeHadamards(hopt)
		work, res.Mapping, res.Retired = g.Circuit, g.Mapping, g.Retired
		log.Debug("gadgetized", zap.Int("ancillas", len(g.Retired)))
	}

	sliced, err := Slice(work)
	if err != nil {
		return nil, err
	}
	res.Circuit, err = Optimize(ctx, sliced, opts)
	if err != nil {
		return nil, err
	}
	res.After = res.Circuit.Metrics()

	log.Info("t-count optimization finished",
		zap.String("method", string(opts.Method)),
		zap.Int("segments", len(sliced.Segments)),
		zap.Int("tcount_before", res.Before.TCount),
		zap.Int("tcount_after", res.After.TCount),
	)
	return res, nil
}

// Optimize reduces every segment of a sliced circuit and reassembles it as
// Init followed by, per segment, the Clifford correction, the reduced table
// and the segment's boundary Clifford.
func Optimize(ctx context.Context, s *Sliced, opts Options) (*circuit.Circuit, error) {
	opts = opts.withDefaults()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parts := make([]*circuit.Circuit, len(s.Segments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range s.Segments {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seg := s.Segments[i]
			reduced, err := reduce(gctx, seg, opts)
			if err != nil {
				return errors.Wrapf(err, "segment %d", i)
			}
			corr, err := phasepoly.Correction(seg, reduced)
			if err != nil {
				return errors.Wrapf(err, "segment %d", i)
			}
			part := corr
			part.Append(reduced.Circuit().Gates...)
			part.Append(s.Tableaus[i].RowMajor().Circuit(true).Gates...)
			parts[i] = part

			opts.Logger.Debug("segment reduced",
				zap.Int("segment", i),
				zap.Int("before", seg.Len()),
				zap.Int("after", reduced.Len()),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := s.Init.Clone()
	for _, p := range parts {
		out.Append(p.Gates...)
	}
	return out, nil
}

func reduce(ctx context.Context, seg phasepoly.Table, opts Options) (phasepoly.Table, error) {
	key := fmt.Sprintf("%s/%d/%s", opts.Method, seg.N, seg.Key())
	if t, ok := opts.Cache.Get(key); ok {
		return t, nil
	}

	todOpts := []todd.Option{todd.WithLogger(opts.Logger), todd.WithWorkers(opts.Workers)}
	var (
		t   phasepoly.Table
		err error
	)
	switch opts.Method {
	case MethodTOHPE:
		t, err = todd.TOHPE(ctx, seg, todOpts...)
	case MethodFastTODD:
		t, err = todd.FastTODD(ctx, seg, todOpts...)
	default:
		return seg, errors.Errorf("optimize: unknown method %q", opts.Method)
	}
	if err != nil {
		return seg, err
	}
	opts.Cache.Add(key, t)
	return t, nil
}

func identity(n int) []int {
	m := make([]int, n)
	for i := range m {
		m[i] = i
	}
	return m
}
