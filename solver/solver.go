package solver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/domsolve/bctree"
	"github.com/katalvlaran/domsolve/common"
	"github.com/katalvlaran/domsolve/greedy"
	"github.com/katalvlaran/domsolve/instance"
	"github.com/katalvlaran/domsolve/oracle"
	"github.com/katalvlaran/domsolve/reduce"
	"github.com/katalvlaran/domsolve/satcache"
	"github.com/katalvlaran/domsolve/treewidth"
	"github.com/katalvlaran/domsolve/vc"
)

// Solver holds the collaborators shared by all Solve calls: the
// decomposition builder, the oracle and the optional cache. It is safe for
// concurrent use.
type Solver struct {
	opts    Options
	builder *treewidth.Builder
	oracle  oracle.Oracle
	cache   *satcache.Store
}

// New resolves the options and prepares the collaborators. The caller must
// Close the Solver when a cache was configured.
func New(opts ...Option) (*Solver, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := reduce.CheckRules(o.Rules...); err != nil {
		return nil, err
	}
	orc, err := oracle.New(o.Backend)
	if err != nil {
		return nil, err
	}
	s := &Solver{
		opts:    o,
		builder: treewidth.NewBuilder(treewidth.WithTimeout(o.DecompositionTimeout)),
		oracle:  orc,
	}
	if o.CachePath != "" {
		if s.cache, err = satcache.Open(o.CachePath); err != nil {
			return nil, err
		}
		s.oracle = s.cache.Wrap(orc)
	}
	return s, nil
}

// Options returns the resolved options.
func (s *Solver) Options() Options { return s.opts }

// Close releases the cache, if any.
func (s *Solver) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}

// Solve computes a dominating set of in. It consumes in: on return the
// instance is empty and in.DS() equals Result.DS up to order.
func (s *Solver) Solve(ctx context.Context, in *instance.Instance) (*Result, error) {
	r := &run{s: s}
	r.stats.RulesFired = make(map[string]int)
	if err := r.solve(ctx, in, 0); err != nil {
		return nil, err
	}
	ds := in.DS()
	sort.Ints(ds)
	res := &Result{DS: ds, Optimal: r.stats.GreedySolves == 0, Stats: r.stats}
	common.Logger(ctx).WithFields(logrus.Fields{
		"size":    len(ds),
		"optimal": res.Optimal,
	}).Info("solved")
	return res, nil
}

// run is the state of one Solve call.
type run struct {
	s *Solver

	mu    sync.Mutex
	stats Stats
}

func (r *run) record(fn func(st *Stats)) {
	r.mu.Lock()
	fn(&r.stats)
	r.mu.Unlock()
}

// solve empties in, committing an optimal solution unless a fallback was
// needed.
func (r *run) solve(ctx context.Context, in *instance.Instance, depth int) error {
	ctx = common.WithFields(ctx, logrus.Fields{"depth": depth})
	log := common.Logger(ctx)
	for {
		ks := reduce.Kernelize(in, r.s.opts.kernel()...)
		r.record(func(st *Stats) {
			st.KernelPasses += ks.Passes
			for name, n := range ks.Fired {
				st.RulesFired[name] += n
			}
		})
		if in.Empty() {
			return nil
		}

		if subs := in.DecomposeConnectedComponents(); subs != nil {
			log.WithField("early", ks.Split).Debugf("%d connected components", len(subs))
			return r.components(ctx, in, subs, depth)
		}

		if !r.s.opts.NoVertexCover {
			vs, err := vc.Reduce(ctx, in)
			if err != nil {
				log.WithError(err).Debug("vertex cover reduction interrupted")
			} else if vs.Changed() {
				r.record(func(st *Stats) { st.VCReductions++ })
				log.WithFields(logrus.Fields{"placed": vs.Placed, "removed": vs.Removed}).Debug("vertex cover LP reduction")
				continue
			}
		}

		bs, err := bctree.Reduce(ctx, in, func(ctx context.Context, sub *instance.Instance) error {
			return r.solve(ctx, sub, depth+1)
		}, bctree.WithMaxBlockSize(r.s.opts.MaxBlockSize))
		if err != nil {
			return err
		}
		r.record(func(st *Stats) { st.Blocks += bs.Blocks })
		if bs.Blocks == 0 {
			break
		}
		log.WithFields(logrus.Fields{
			"blocks":    bs.Blocks,
			"outside":   bs.Outside,
			"placed":    bs.Placed,
			"dominated": bs.Dominated,
		}).Debug("leaf blocks reduced")
	}
	return r.residual(ctx, in)
}

func (r *run) components(ctx context.Context, in *instance.Instance, subs []*instance.Instance, depth int) error {
	r.record(func(st *Stats) { st.Components += len(subs) })
	if r.s.opts.Parallel > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.s.opts.Parallel)
		for i, sub := range subs {
			sub := sub
			cctx := common.WithFields(gctx, logrus.Fields{"component": i})
			g.Go(func() error { return r.solve(cctx, sub, depth+1) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for i, sub := range subs {
			if err := r.solve(common.WithFields(ctx, logrus.Fields{"component": i}), sub, depth+1); err != nil {
				return err
			}
		}
	}
	for _, sub := range subs {
		in.MergeDS(sub)
	}
	in.Clear()
	return nil
}

// residual solves an irreducible, connected instance: dynamic programming
// first, then the vertex cover search, then the oracle, then greedy.
func (r *run) residual(ctx context.Context, in *instance.Instance) error {
	log := common.Logger(ctx).WithFields(logrus.Fields{
		"vertices":    in.Order(),
		"undominated": len(in.Undominated()),
	})

	sol, err := r.decompose(ctx, in)
	switch {
	case err == nil:
		r.record(func(st *Stats) { st.DPSolves++ })
		commit(in, sol)
		return nil
	case errors.Is(err, treewidth.ErrNoDecomposition), errors.Is(err, treewidth.ErrTooWide):
		log.WithError(err).Debug("treewidth dynamic program not applicable")
	default:
		return err
	}

	if !r.s.opts.NoVertexCover {
		if g, ok := vc.Extract(in); ok {
			cover, err := g.MinCover(ctx, r.s.opts.VCBranches)
			switch {
			case err == nil:
				r.record(func(st *Stats) { st.VCSolves++ })
				commit(in, g.Instance(cover))
				return nil
			case errors.Is(err, vc.ErrBranchLimit):
				log.WithError(err).Debug("vertex cover search gave up")
			default:
				return err
			}
		}
	}

	if in.Order() > r.s.opts.MaxOracleOrder {
		log.Debug("residual too large for the oracle")
		return r.fallback(ctx, in, fmt.Errorf("%d vertices exceed the oracle limit %d", in.Order(), r.s.opts.MaxOracleOrder))
	}
	octx := ctx
	if r.s.opts.OracleTimeout > 0 {
		var cancel context.CancelFunc
		octx, cancel = context.WithTimeout(ctx, r.s.opts.OracleTimeout)
		defer cancel()
	}
	sol, err = r.s.oracle.Solve(octx, in)
	switch {
	case err == nil:
		if !in.Covers(sol) {
			panic(fmt.Errorf("solver: oracle returned a non-covering set: %w", instance.ErrInvariant))
		}
		r.record(func(st *Stats) { st.OracleSolves++ })
		commit(in, sol)
		return nil
	case errors.Is(err, oracle.ErrBudget):
		log.WithError(err).Info("oracle gave up")
		return r.fallback(ctx, in, err)
	default:
		return err
	}
}

// decompose runs the treewidth dynamic program on in.
func (r *run) decompose(ctx context.Context, in *instance.Instance) ([]int, error) {
	d, err := r.s.builder.Build(ctx, in)
	if err != nil {
		return nil, err
	}
	r.record(func(st *Stats) {
		st.Decompositions++
		if d.Width > st.MaxWidth {
			st.MaxWidth = d.Width
		}
	})
	sol, err := treewidth.Solve(in, d.Nice(), treewidth.WithMaxBag(r.s.opts.MaxBag))
	if err != nil {
		return nil, err
	}
	if !in.Covers(sol) {
		panic(fmt.Errorf("solver: dynamic program returned a non-covering set: %w", instance.ErrInvariant))
	}
	return sol, nil
}

// fallback solves in greedily, or fails with ErrNotCertified when
// optimality is required.
func (r *run) fallback(ctx context.Context, in *instance.Instance, cause error) error {
	if r.s.opts.RequireOptimal {
		return fmt.Errorf("%w: %v", ErrNotCertified, cause)
	}
	sol := greedy.Solve(in)
	common.Logger(ctx).WithField("size", len(sol)).Warn("using greedy approximation")
	r.record(func(st *Stats) { st.GreedySolves++ })
	commit(in, sol)
	return nil
}

// commit places a covering set and drops the dominated leftovers.
func commit(in *instance.Instance, sol []int) {
	in.PlaceAll(sol)
	if !in.Solved() {
		panic(fmt.Errorf("solver: committed set leaves vertices undominated: %w", instance.ErrInvariant))
	}
	in.Clear()
}
