package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/domsolve/builder"
	"github.com/katalvlaran/domsolve/common"
	"github.com/katalvlaran/domsolve/pace"
	"github.com/katalvlaran/domsolve/solver"
)

func newSolveCommand(ctx context.Context, input *Input) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := input.logger(ctx, cmd)
		logger := common.Logger(ctx)

		opts, err := loadOptions(input.configFile, cmd.Flags(), input)
		if err != nil {
			return err
		}
		p, err := readProblem(cmd, args)
		if err != nil {
			return err
		}
		in, err := p.Instance()
		if err != nil {
			return err
		}

		sv, err := solver.New(solver.WithOptions(opts))
		if err != nil {
			return err
		}
		defer sv.Close()

		if input.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, input.timeout)
			defer cancel()
		}
		logger.WithFields(log.Fields{"kind": p.Kind, "n": p.N, "vertices": in.Order()}).Info("solving")
		res, err := sv.Solve(ctx, in)
		if err != nil {
			return err
		}
		if err := p.Validate(res.DS); err != nil {
			return errors.Wrap(err, "solver produced an invalid solution")
		}

		if err := writeOutput(cmd, input.output, func(w io.Writer) error { return pace.WriteSolution(w, res.DS) }); err != nil {
			return err
		}
		st := res.Stats
		logger.WithFields(log.Fields{
			"size":           len(res.DS),
			"optimal":        res.Optimal,
			"kernel_passes":  st.KernelPasses,
			"components":     st.Components,
			"blocks":         st.Blocks,
			"max_width":      st.MaxWidth,
			"dp_solves":      st.DPSolves,
			"oracle_solves":  st.OracleSolves,
			"greedy_solves":  st.GreedySolves,
			"vc_solves":      st.VCSolves,
			"decompositions": st.Decompositions,
		}).Debug("statistics")
		if !res.Optimal {
			return errApproximate
		}
		return nil
	}
}

func newVerifyCommand(ctx context.Context, input *Input) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := input.logger(ctx, cmd)
		p, err := readProblem(cmd, args[:1])
		if err != nil {
			return err
		}
		f, err := os.Open(args[1])
		if err != nil {
			return errors.Wrap(err, "open solution")
		}
		defer f.Close()
		ds, err := pace.ReadSolution(f, p.N)
		if err != nil {
			return errors.Wrapf(err, "read %s", args[1])
		}
		if err := p.Validate(ds); err != nil {
			return err
		}
		common.Logger(ctx).Debugf("verified %d ids against %s", len(ds), args[0])
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "valid %d\n", len(ds))
		return err
	}
}

func newGenCommand(input *Input) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		var c builder.Constructor
		switch input.genKind {
		case "path":
			c = builder.Path(input.genN)
		case "cycle":
			c = builder.Cycle(input.genN)
		case "star":
			c = builder.Star(input.genN - 1)
		case "wheel":
			c = builder.Wheel(input.genN)
		case "complete":
			c = builder.Complete(input.genN)
		case "random":
			c = builder.RandomSparse(input.genN, input.genM)
		case "ktree":
			c = builder.PartialKTree(input.genN, input.genK, input.genP)
		default:
			return errors.Errorf("unknown graph kind %q", input.genKind)
		}
		g, err := builder.BuildGraph([]builder.Option{builder.WithSeed(input.genSeed)}, c)
		if err != nil {
			return err
		}
		return writeOutput(cmd, "", func(w io.Writer) error { return pace.WriteGraph(w, g) })
	}
}

func readProblem(cmd *cobra.Command, args []string) (*pace.Problem, error) {
	r, err := openInput(cmd, args)
	if err != nil {
		return nil, errors.Wrap(err, "open instance")
	}
	defer r.Close()
	return pace.Read(r)
}

// writeOutput runs write against the file at path, or stdout of cmd when
// path is empty.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close output")
}
