package workload

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs"

	"github.com/inference-sim/feedback-sim/sim"
)

// A trace is a pair of plain-text files read line by line in lockstep:
//
//	arrivals: one arrival time per line
//	services: one job per line, whitespace-separated stage durations
//
// Blank lines and lines starting with '#' are skipped in both files.

// ParseArrivals reads one arrival time per line.
func ParseArrivals(r io.Reader) ([]float64, error) {
	var arrivals []float64
	err := scanLines(r, func(lineNo int, fields []string) error {
		if len(fields) != 1 {
			return errors.Wrapf(sim.ErrInvalidTrace, "arrivals line %d: expected 1 value, got %d", lineNo, len(fields))
		}
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return errors.Wrapf(sim.ErrInvalidTrace, "arrivals line %d: %v", lineNo, err)
		}
		arrivals = append(arrivals, v)
		return nil
	})
	return arrivals, err
}

// ParseServices reads the stage durations of one job per line.
func ParseServices(r io.Reader) ([][]float64, error) {
	var services [][]float64
	err := scanLines(r, func(lineNo int, fields []string) error {
		stages := make([]float64, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return errors.Wrapf(sim.ErrInvalidTrace, "services line %d: %v", lineNo, err)
			}
			stages = append(stages, v)
		}
		services = append(services, stages)
		return nil
	})
	return services, err
}

func scanLines(r io.Reader, fn func(lineNo int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(lineNo, strings.Fields(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Combine pairs arrival times with stage lists into job descriptors and
// validates the result.
func Combine(arrivals []float64, services [][]float64) ([]sim.JobDescriptor, error) {
	if len(arrivals) != len(services) {
		return nil, errors.Wrapf(sim.ErrInvalidTrace, "%d arrivals but %d service lines", len(arrivals), len(services))
	}
	jobs := make([]sim.JobDescriptor, len(arrivals))
	for i := range arrivals {
		jobs[i] = sim.JobDescriptor{ArrivalTime: arrivals[i], Stages: services[i]}
	}
	if err := sim.ValidateTrace(jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// LoadTrace reads the arrival and service files and combines them.
func LoadTrace(ctx context.Context, fs afs.Service, arrivalsURL, servicesURL string) ([]sim.JobDescriptor, error) {
	arrivalData, err := download(ctx, fs, arrivalsURL)
	if err != nil {
		return nil, err
	}
	serviceData, err := download(ctx, fs, servicesURL)
	if err != nil {
		return nil, err
	}
	arrivals, err := ParseArrivals(bytes.NewReader(arrivalData))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", arrivalsURL)
	}
	services, err := ParseServices(bytes.NewReader(serviceData))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", servicesURL)
	}
	return Combine(arrivals, services)
}
