// Package satcache persists oracle answers in a bolthold store so repeated
// residuals skip the SAT call.
//
// A residual is identified by its canonical covering formula. Records are
// indexed by a 64-bit FNV-1a hash of that formula and carry the full clause
// list, so a hash collision is detected and treated as a miss. Solutions are
// stored as formula variables, which makes a record reusable by any residual
// with the same structure.
package satcache

import (
	"encoding/json"
	"hash/fnv"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"

	"github.com/katalvlaran/domsolve/oracle"
)

// Record is one cached oracle answer.
type Record struct {
	ID        uint64  `json:"id" boltholdKey:"ID"`
	Hash      uint64  `json:"hash" boltholdIndex:"Hash"`
	Vars      int     `json:"vars"`
	Clauses   [][]int `json:"clauses"`
	Solution  []int   `json:"solution"`
	UsedAt    int64   `json:"usedAt" boltholdIndex:"UsedAt"`
	CreatedAt int64   `json:"createdAt"`
}

func (r *Record) formula() *oracle.Formula {
	return &oracle.Formula{Vars: make([]int, r.Vars), Clauses: r.Clauses}
}

// Store is a persistent oracle cache. It is safe for concurrent use.
type Store struct {
	db   *bolthold.Store
	hash func(*oracle.Formula) uint64

	hits, misses, collisions atomic.Int64
}

// Open opens or creates the cache database at path.
func Open(path string) (*Store, error) {
	db, err := bolthold.Open(path, 0o644, &bolthold.Options{
		Encoder: json.Marshal,
		Decoder: json.Unmarshal,
		Options: &bbolt.Options{
			Timeout:      5 * time.Second,
			NoGrowSync:   bbolt.DefaultOptions.NoGrowSync,
			FreelistType: bbolt.DefaultOptions.FreelistType,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open cache %s", path)
	}
	return &Store{db: db, hash: Hash}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Hash returns the FNV-1a hash of the canonical encoding of f.
func Hash(f *oracle.Formula) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, 16)
	write := func(n int) {
		buf = strconv.AppendInt(buf[:0], int64(n), 10)
		buf = append(buf, ' ')
		_, _ = h.Write(buf)
	}
	write(len(f.Vars))
	for _, c := range f.Clauses {
		for _, x := range c {
			write(x)
		}
		_, _ = h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

// Lookup returns the cached solution of f as formula variables.
func (s *Store) Lookup(f *oracle.Formula) ([]int, bool, error) {
	h := s.hash(f)
	var recs []Record
	if err := s.db.Find(&recs, bolthold.Where("Hash").Eq(h)); err != nil {
		return nil, false, errors.Wrap(err, "find cache record")
	}
	for i := range recs {
		r := &recs[i]
		if !r.formula().Equal(f) {
			s.collisions.Add(1)
			continue
		}
		if !f.Satisfied(r.Solution) {
			continue
		}
		r.UsedAt = time.Now().Unix()
		if err := s.db.Update(r.ID, r); err != nil {
			return nil, false, errors.Wrap(err, "touch cache record")
		}
		s.hits.Add(1)
		return r.Solution, true, nil
	}
	s.misses.Add(1)
	return nil, false, nil
}

// Put stores vars as the solution of f.
func (s *Store) Put(f *oracle.Formula, vars []int) error {
	now := time.Now().Unix()
	r := &Record{
		Hash:      s.hash(f),
		Vars:      len(f.Vars),
		Clauses:   f.Clauses,
		Solution:  vars,
		UsedAt:    now,
		CreatedAt: now,
	}
	if err := s.db.Insert(bolthold.NextSequence(), r); err != nil {
		return errors.Wrap(err, "insert cache record")
	}
	// write back id to db
	if err := s.db.Update(r.ID, r); err != nil {
		return errors.Wrap(err, "update cache record")
	}
	return nil
}

// Purge deletes records not used since t and returns how many were removed.
func (s *Store) Purge(t time.Time) (int, error) {
	var recs []Record
	if err := s.db.Find(&recs, bolthold.Where("UsedAt").Lt(t.Unix())); err != nil {
		return 0, errors.Wrap(err, "find stale records")
	}
	for i := range recs {
		if err := s.db.Delete(recs[i].ID, &recs[i]); err != nil {
			return i, errors.Wrap(err, "delete stale record")
		}
	}
	return len(recs), nil
}

// Stats counts lookups since Open.
type Stats struct {
	Hits       int64
	Misses     int64
	Collisions int64
}

// Stats returns the lookup counters.
func (s *Store) Stats() Stats {
	return Stats{Hits: s.hits.Load(), Misses: s.misses.Load(), Collisions: s.collisions.Load()}
}
