package cmd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/viant/afs"

	sim "github.com/inference-sim/feedback-sim/sim"
	"github.com/inference-sim/feedback-sim/sim/workload"
)

// inputOptions is the flag state relevant to loading a run's inputs.
// ServersSet/ThresholdSet record whether the user passed the flag, so a
// default value never overwrites the parameter file.
type inputOptions struct {
	ParamsURL    string
	ArrivalsURL  string
	ServicesURL  string
	Servers      int
	Threshold    int
	ServersSet   bool
	ThresholdSet bool
}

func inputOptionsFromFlags(cmd *cobra.Command) inputOptions {
	return inputOptions{
		ParamsURL:    paramsPath,
		ArrivalsURL:  arrivalsPath,
		ServicesURL:  servicesPath,
		Servers:      numServers,
		Threshold:    threshold,
		ServersSet:   cmd.Flags().Changed("servers"),
		ThresholdSet: cmd.Flags().Changed("threshold"),
	}
}

// loadInputs resolves the configuration and trace from the parameter file
// and the flags. Flags win over the parameter file.
func loadInputs(ctx context.Context, fs afs.Service, opts inputOptions) (sim.Config, []sim.JobDescriptor, error) {
	var cfg sim.Config
	arrivals, services := opts.ArrivalsURL, opts.ServicesURL

	if opts.ParamsURL != "" {
		params, err := workload.LoadParams(ctx, fs, opts.ParamsURL)
		if err != nil {
			return cfg, nil, err
		}
		cfg = params.Config()
		if params.Trace != nil {
			if arrivals == "" {
				arrivals = resolveRelative(opts.ParamsURL, params.Trace.Arrivals)
			}
			if services == "" {
				services = resolveRelative(opts.ParamsURL, params.Trace.Services)
			}
		}
	} else if !opts.ServersSet {
		return cfg, nil, errors.Wrap(sim.ErrInputUnavailable, "either --params or --servers is required")
	}

	if opts.ServersSet {
		cfg.Servers = opts.Servers
	}
	if opts.ThresholdSet {
		cfg.Threshold = opts.Threshold
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	if arrivals == "" || services == "" {
		return cfg, nil, errors.Wrap(sim.ErrInputUnavailable, "arrival and service files are required")
	}

	jobs, err := workload.LoadTrace(ctx, fs, arrivals, services)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, jobs, nil
}

// resolveRelative interprets a trace location named in a parameter file
// relative to the parameter file's directory. Absolute paths and URLs are
// returned unchanged.
func resolveRelative(paramsURL, location string) string {
	if location == "" || filepath.IsAbs(location) || strings.Contains(location, "://") {
		return location
	}
	if i := strings.LastIndex(paramsURL, "/"); i >= 0 {
		return paramsURL[:i+1] + location
	}
	return location
}
