// Package solver runs the reduction-and-decomposition engine end to end.
//
// Solve repeats three steps on an instance until none applies: kernelize
// to a fixed point, split into connected components (each solved
// recursively), and reduce small leaf blocks of the block-cut tree (each
// block solved recursively). When every undominated vertex has exactly two
// dominators the instance is a vertex cover problem, and the LP reduction of
// package vc runs between the component and block steps. The residual is
// then handed, in order, to the treewidth dynamic program, the exact vertex
// cover search when it applies, the SAT oracle and finally the greedy
// heuristic. Only the greedy step gives up optimality; Result.Optimal
// reports whether it was needed.
package solver

import (
	"errors"
	"time"

	"github.com/katalvlaran/domsolve/oracle"
	"github.com/katalvlaran/domsolve/reduce"
	"github.com/katalvlaran/domsolve/treewidth"
)

// ErrNotCertified is returned when RequireOptimal is set and some residual
// could only be solved approximately.
var ErrNotCertified = errors.New("solver: optimality not certified")

// Options configures a Solver. The yaml tags are the keys of the CLI
// configuration file.
type Options struct {
	// Rules names the kernelization rules to run; empty runs all of them.
	Rules []string `yaml:"rules"`
	// MaxBlockSize bounds the leaf blocks of the block-cut step.
	MaxBlockSize int `yaml:"max_block_size"`
	// DecompositionTimeout bounds one tree-decomposition search.
	DecompositionTimeout time.Duration `yaml:"decomposition_timeout"`
	// MaxBag is the largest bag the dynamic program accepts.
	MaxBag int `yaml:"max_bag"`
	// Backend selects the oracle implementation.
	Backend oracle.Backend `yaml:"backend"`
	// OracleTimeout bounds one oracle call.
	OracleTimeout time.Duration `yaml:"oracle_timeout"`
	// MaxOracleOrder sends larger residuals straight to greedy.
	MaxOracleOrder int `yaml:"max_oracle_order"`
	// CachePath enables the persistent oracle cache when non-empty.
	CachePath string `yaml:"cache"`
	// Parallel is the number of components solved concurrently; values
	// below 2 solve sequentially.
	Parallel int `yaml:"parallel"`
	// RequireOptimal turns every greedy fallback into ErrNotCertified.
	RequireOptimal bool `yaml:"require_optimal"`
	// NoVertexCover disables the vertex cover reduction and solver.
	NoVertexCover bool `yaml:"no_vertex_cover"`
	// VCBranches bounds the exact vertex cover search; 0 means no limit.
	VCBranches int `yaml:"vc_branches"`
}

// Option configures a Solver.
type Option func(*Options)

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	tw := treewidth.DefaultOptions()
	return Options{
		MaxBlockSize:         48,
		DecompositionTimeout: tw.Timeout,
		MaxBag:               tw.MaxBag,
		Backend:              oracle.BackendGini,
		OracleTimeout:        time.Minute,
		MaxOracleOrder:       5000,
		Parallel:             1,
		VCBranches:           1 << 20,
	}
}

// WithRules restricts kernelization to the named rules.
func WithRules(names ...string) Option {
	return func(o *Options) { o.Rules = append([]string(nil), names...) }
}

// WithMaxBlockSize sets the leaf-block size limit.
func WithMaxBlockSize(n int) Option {
	return func(o *Options) { o.MaxBlockSize = n }
}

// WithDecompositionTimeout sets the tree-decomposition budget.
func WithDecompositionTimeout(d time.Duration) Option {
	return func(o *Options) { o.DecompositionTimeout = d }
}

// WithMaxBag sets the dynamic-program bag limit.
func WithMaxBag(n int) Option {
	return func(o *Options) { o.MaxBag = n }
}

// WithBackend selects the oracle backend.
func WithBackend(b oracle.Backend) Option {
	return func(o *Options) { o.Backend = b }
}

// WithOracleTimeout sets the per-call oracle budget.
func WithOracleTimeout(d time.Duration) Option {
	return func(o *Options) { o.OracleTimeout = d }
}

// WithMaxOracleOrder sets the residual size above which greedy is used.
func WithMaxOracleOrder(n int) Option {
	return func(o *Options) { o.MaxOracleOrder = n }
}

// WithCache enables the oracle cache at path.
func WithCache(path string) Option {
	return func(o *Options) { o.CachePath = path }
}

// WithParallel sets how many components are solved at once.
func WithParallel(n int) Option {
	return func(o *Options) { o.Parallel = n }
}

// WithRequireOptimal forbids the greedy fallback.
func WithRequireOptimal(on bool) Option {
	return func(o *Options) { o.RequireOptimal = on }
}

// WithVertexCover toggles the vertex cover reduction and solver.
func WithVertexCover(on bool) Option {
	return func(o *Options) { o.NoVertexCover = !on }
}

// WithVCBranches sets the branch budget of the exact vertex cover search.
func WithVCBranches(n int) Option {
	return func(o *Options) { o.VCBranches = n }
}

// WithOptions replaces the whole option set, typically one loaded from a
// configuration file.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func (o Options) kernel() []reduce.Option {
	ko := []reduce.Option{reduce.WithSplitCheck(true)}
	if len(o.Rules) > 0 {
		ko = append(ko, reduce.WithOnly(o.Rules...))
	}
	return ko
}

// Stats summarises one Solve call.
type Stats struct {
	KernelPasses   int            `json:"kernel_passes"`
	RulesFired     map[string]int `json:"rules_fired"`
	Components     int            `json:"components"`
	Blocks         int            `json:"blocks"`
	Decompositions int            `json:"decompositions"`
	MaxWidth       int            `json:"max_width"`
	DPSolves       int            `json:"dp_solves"`
	OracleSolves   int            `json:"oracle_solves"`
	GreedySolves   int            `json:"greedy_solves"`
	VCReductions   int            `json:"vc_reductions"`
	VCSolves       int            `json:"vc_solves"`
}

// Result is the outcome of Solve.
type Result struct {
	// DS holds original vertex ids, sorted.
	DS []int
	// Optimal is false when a greedy fallback contributed to DS.
	Optimal bool
	Stats   Stats
}
