package sim

import (
	"math"

	"github.com/pkg/errors"
)

// Config groups the parameters of a queueing network.
type Config struct {
	Servers   int `yaml:"servers"`   // size of the server pool (must be > 0)
	Threshold int `yaml:"threshold"` // dispatcher threshold h (must be >= 0)
}

// NewConfig creates a Config from its components.
func NewConfig(servers, threshold int) Config {
	return Config{Servers: servers, Threshold: threshold}
}

// Validate reports a configuration the simulation cannot start with.
func (c Config) Validate() error {
	if c.Servers <= 0 {
		return errors.Wrapf(ErrInputUnavailable, "server count must be positive, got %d", c.Servers)
	}
	if c.Threshold < 0 {
		return errors.Wrapf(ErrInputUnavailable, "dispatcher threshold must be non-negative, got %d", c.Threshold)
	}
	return nil
}

// JobDescriptor is one trace entry: an arrival time and the ordered stage
// durations the job will need.
type JobDescriptor struct {
	ArrivalTime float64
	Stages      []float64
}

// ValidateTrace checks that arrival times are finite, non-negative and
// non-decreasing and that every job has at least one positive, finite stage
// duration. The master clock starts at 0, so no arrival may precede it.
func ValidateTrace(trace []JobDescriptor) error {
	prev := math.Inf(-1)
	for i, d := range trace {
		if math.IsNaN(d.ArrivalTime) || math.IsInf(d.ArrivalTime, 0) {
			return errors.Wrapf(ErrInvalidTrace, "job %d: arrival time %v is not finite", i, d.ArrivalTime)
		}
		if d.ArrivalTime < 0 {
			return errors.Wrapf(ErrInvalidTrace, "job %d: arrival time %v is negative", i, d.ArrivalTime)
		}
		if d.ArrivalTime < prev {
			return errors.Wrapf(ErrInvalidTrace, "job %d: arrival time %v precedes previous arrival %v", i, d.ArrivalTime, prev)
		}
		prev = d.ArrivalTime
		if len(d.Stages) == 0 {
			return errors.Wrapf(ErrInvalidTrace, "job %d: no stages", i)
		}
		for k, s := range d.Stages {
			if !(s > 0) || math.IsInf(s, 0) {
				return errors.Wrapf(ErrInvalidTrace, "job %d stage %d: duration %v must be positive and finite", i, k, s)
			}
		}
	}
	return nil
}
