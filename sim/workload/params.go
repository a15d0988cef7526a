package workload

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/feedback-sim/sim"
)

// Params is the top-level parameter file.
//
//	servers: 6
//	threshold: 2
//	trace:
//	  arrivals: arrival_1.txt
//	  services: service_1.txt
type Params struct {
	Servers   int         `yaml:"servers"`
	Threshold int         `yaml:"threshold"`
	Trace     *TraceFiles `yaml:"trace,omitempty"`
}

// TraceFiles names the arrival and service files of a trace. Relative
// locations are resolved by the caller.
type TraceFiles struct {
	Arrivals string `yaml:"arrivals"`
	Services string `yaml:"services"`
}

// Config returns the simulation configuration the parameters describe.
func (p *Params) Config() sim.Config {
	return sim.NewConfig(p.Servers, p.Threshold)
}

// ParseParams decodes a parameter file with strict field checking, so a
// misspelled key is an error rather than a silently ignored setting.
func ParseParams(data []byte) (*Params, error) {
	var p Params
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, errors.Wrap(err, "parsing parameter file")
	}
	return &p, nil
}

// LoadParams reads and parses the parameter file at URL.
func LoadParams(ctx context.Context, fs afs.Service, URL string) (*Params, error) {
	data, err := download(ctx, fs, URL)
	if err != nil {
		return nil, err
	}
	p, err := ParseParams(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", URL)
	}
	return p, nil
}

// download fetches URL, reporting a missing object as sim.ErrInputUnavailable.
func download(ctx context.Context, fs afs.Service, URL string) ([]byte, error) {
	if URL == "" {
		return nil, errors.Wrap(sim.ErrInputUnavailable, "empty location")
	}
	exists, err := fs.Exists(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "checking %s", URL)
	}
	if !exists {
		return nil, errors.Wrapf(sim.ErrInputUnavailable, "%s does not exist", URL)
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", URL)
	}
	return data, nil
}
