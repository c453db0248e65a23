package main

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/domsolve/oracle"
	"github.com/katalvlaran/domsolve/reduce"
	"github.com/katalvlaran/domsolve/solver"
)

// loadOptions resolves the solver options: defaults, then the YAML file at
// path (if any), then every flag set explicitly on the command line.
func loadOptions(path string, flags *pflag.FlagSet, input *Input) (solver.Options, error) {
	opts := solver.DefaultOptions()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return opts, errors.Wrapf(err, "read config %s", path)
		}
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
			return opts, errors.Wrapf(err, "parse config %s", path)
		}
	}

	if flags.Changed("backend") {
		opts.Backend = oracle.Backend(input.backend)
	}
	if flags.Changed("oracle-timeout") {
		opts.OracleTimeout = input.oracleTimeout
	}
	if flags.Changed("decomposition-timeout") {
		opts.DecompositionTimeout = input.decompositionTimeout
	}
	if flags.Changed("max-bag") {
		opts.MaxBag = input.maxBag
	}
	if flags.Changed("max-block-size") {
		opts.MaxBlockSize = input.maxBlockSize
	}
	if flags.Changed("max-oracle-order") {
		opts.MaxOracleOrder = input.maxOracleOrder
	}
	if flags.Changed("cache") {
		opts.CachePath = input.cachePath
	}
	if flags.Changed("parallel") {
		opts.Parallel = input.parallel
	}
	if flags.Changed("require-optimal") {
		opts.RequireOptimal = input.requireOptimal
	}
	if flags.Changed("no-vertex-cover") {
		opts.NoVertexCover = input.noVertexCover
	}
	if flags.Changed("vc-branches") {
		opts.VCBranches = input.vcBranches
	}
	if flags.Changed("rules") {
		opts.Rules = input.rules
	}
	if err := reduce.CheckRules(opts.Rules...); err != nil {
		return opts, errors.Wrap(err, "rules")
	}
	return opts, nil
}
