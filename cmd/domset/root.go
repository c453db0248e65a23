package main

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/domsolve/common"
	"github.com/katalvlaran/domsolve/solver"
)

// Exit codes of the domset binary.
const (
	exitOK          = 0
	exitError       = 1
	exitApproximate = 3
)

// errApproximate reports a valid solution that is not certified optimal.
var errApproximate = errors.New("solution is not certified optimal")

// Input holds the parsed command-line flags.
type Input struct {
	verbose    bool
	configFile string

	output               string
	timeout              time.Duration
	backend              string
	oracleTimeout        time.Duration
	decompositionTimeout time.Duration
	maxBag               int
	maxBlockSize         int
	maxOracleOrder       int
	cachePath            string
	parallel             int
	requireOptimal       bool
	noVertexCover        bool
	vcBranches           int
	rules                []string

	genKind string
	genN    int
	genM    int
	genK    int
	genP    float64
	genSeed int64
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, version string, args []string) int {
	input := &Input{}
	rootCmd := createRootCommand(ctx, input, version)
	rootCmd.SetArgs(args)
	return exitCode(rootCmd.Execute())
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errApproximate):
		log.Warn(err)
		return exitApproximate
	default:
		log.Error(err)
		return exitError
	}
}

func createRootCommand(ctx context.Context, input *Input, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "domset",
		Short:         "Exact minimum dominating set and hitting set solver for PACE inputs.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&input.verbose, "verbose", "v", false, "verbose output")

	solveCmd := &cobra.Command{
		Use:   "solve [instance]",
		Short: "Solve a p ds or p hs instance read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  newSolveCommand(ctx, input),
	}
	d := solver.DefaultOptions()
	f := solveCmd.Flags()
	f.StringVarP(&input.configFile, "config", "c", "", "YAML file with solver options")
	f.StringVarP(&input.output, "output", "o", "", "write the solution to this file instead of stdout")
	f.DurationVar(&input.timeout, "timeout", 0, "overall time budget; 0 means none")
	f.StringVar(&input.backend, "backend", string(d.Backend), "oracle backend: gini or maxsat")
	f.DurationVar(&input.oracleTimeout, "oracle-timeout", d.OracleTimeout, "budget of one oracle call")
	f.DurationVar(&input.decompositionTimeout, "decomposition-timeout", d.DecompositionTimeout, "budget of one tree-decomposition search")
	f.IntVar(&input.maxBag, "max-bag", d.MaxBag, "largest bag the treewidth dynamic program accepts")
	f.IntVar(&input.maxBlockSize, "max-block-size", d.MaxBlockSize, "largest leaf block solved on its own")
	f.IntVar(&input.maxOracleOrder, "max-oracle-order", d.MaxOracleOrder, "larger residuals go straight to greedy")
	f.StringVar(&input.cachePath, "cache", "", "path of the persistent oracle cache")
	f.IntVarP(&input.parallel, "parallel", "j", d.Parallel, "connected components solved concurrently")
	f.BoolVar(&input.requireOptimal, "require-optimal", false, "fail instead of falling back to greedy")
	f.BoolVar(&input.noVertexCover, "no-vertex-cover", false, "skip the vertex cover reduction and search")
	f.IntVar(&input.vcBranches, "vc-branches", d.VCBranches, "branch budget of the vertex cover search; 0 means none")
	f.StringSliceVar(&input.rules, "rules", nil, "kernelization rules to run (default all)")

	verifyCmd := &cobra.Command{
		Use:   "verify instance solution",
		Short: "Check that a solution file solves an instance",
		Args:  cobra.ExactArgs(2),
		RunE:  newVerifyCommand(ctx, input),
	}

	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Write a fixture graph in p ds format",
		Args:  cobra.NoArgs,
		RunE:  newGenCommand(input),
	}
	g := genCmd.Flags()
	g.StringVar(&input.genKind, "kind", "random", "path, cycle, star, wheel, complete, random or ktree")
	g.IntVarP(&input.genN, "order", "n", 10, "number of vertices")
	g.IntVarP(&input.genM, "size", "m", 15, "number of edges (random)")
	g.IntVarP(&input.genK, "width", "k", 2, "tree width (ktree)")
	g.Float64VarP(&input.genP, "keep", "p", 0.8, "edge keep probability (ktree)")
	g.Int64Var(&input.genSeed, "seed", 1, "random seed")

	rootCmd.AddCommand(solveCmd, verifyCmd, genCmd)
	return rootCmd
}

// logger returns the context carrying the CLI logger, writing to stderr of
// cmd.
func (i *Input) logger(ctx context.Context, cmd *cobra.Command) context.Context {
	logger := log.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if i.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return common.WithLogger(ctx, logger)
}

// openInput returns the named file, or stdin of cmd when args is empty.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(args[0])
}
