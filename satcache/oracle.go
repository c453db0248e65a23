package satcache

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/domsolve/common"
	"github.com/katalvlaran/domsolve/instance"
	"github.com/katalvlaran/domsolve/oracle"
)

// Cached is an oracle.Oracle that consults a Store before delegating.
type Cached struct {
	store *Store
	inner oracle.Oracle
}

// Wrap returns inner behind the cache.
func (s *Store) Wrap(inner oracle.Oracle) *Cached {
	return &Cached{store: s, inner: inner}
}

// Solve implements oracle.Oracle. Cache failures are logged and never fail
// the call; errors of the wrapped oracle are returned unchanged.
func (c *Cached) Solve(ctx context.Context, in *instance.Instance) ([]int, error) {
	f := oracle.Encode(in)
	if len(f.Clauses) == 0 {
		return nil, nil
	}
	log := common.Logger(ctx).WithFields(logrus.Fields{"vars": len(f.Vars), "clauses": len(f.Clauses)})

	vars, ok, err := c.store.Lookup(f)
	if err != nil {
		log.WithError(err).Warn("satcache: lookup failed")
	} else if ok {
		log.Debug("satcache: hit")
		return f.Decode(vars), nil
	}

	sol, err := c.inner.Solve(ctx, in)
	if err != nil {
		return nil, err
	}
	if vars, ok := f.Variables(sol); ok {
		if err := c.store.Put(f, vars); err != nil {
			log.WithError(err).Warn("satcache: store failed")
		}
	}
	return sol, nil
}
