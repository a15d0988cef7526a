// sim/simulator.go
package sim

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/feedback-sim/sim/trace"
)

// CompletionRecord describes one stage completion. A record is appended on
// every departure event, intermediate stages included; Final marks the
// record that ends the job's lifetime.
type CompletionRecord struct {
	JobID           string
	ArrivalTime     float64
	DepartureTime   float64
	CompletionCount int
	TotalStageCount int
	Server          int
	Final           bool
}

// Result is everything a finished run hands back to the driver.
type Result struct {
	Records  []CompletionRecord
	Departed []*Job // permanently departed jobs, in departure order
	Metrics  *Metrics
	Trace    *trace.SimulationTrace
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithTrace enables per-event decision recording.
func WithTrace(cfg trace.TraceConfig) Option {
	return func(s *Simulator) {
		s.Trace = trace.NewSimulationTrace(cfg)
	}
}

// Simulator is the core object that holds simulation time, system state, and the event loop.
type Simulator struct {
	// Clock is the master clock; it only moves forward, to event timestamps.
	Clock      float64
	Config     Config
	Dispatcher *Dispatcher
	Servers    *ServerController
	Metrics    *Metrics
	// Trace is nil unless WithTrace was given; recording on a nil trace is a no-op.
	Trace *trace.SimulationTrace

	arrivals    []JobDescriptor
	nextArrival int // index of the next unconsumed trace entry
	records     []CompletionRecord
	departed    []*Job
	eventCount  int
}

// NewSimulator validates the configuration and trace and returns a
// simulator ready to Run. A nil trace means the collaborator supplied none
// and yields ErrInputUnavailable; an empty one is a valid, eventless run.
func NewSimulator(cfg Config, arrivals []JobDescriptor, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if arrivals == nil {
		return nil, errors.Wrap(ErrInputUnavailable, "no trace supplied")
	}
	if err := ValidateTrace(arrivals); err != nil {
		return nil, err
	}
	s := &Simulator{
		Config:     cfg,
		Dispatcher: NewDispatcher(cfg.Threshold),
		Servers:    NewServerController(cfg.Servers),
		Metrics:    NewMetrics(cfg.Servers),
		arrivals:   arrivals,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run is a convenience wrapper: build a simulator and run it to completion.
func Run(cfg Config, arrivals []JobDescriptor, opts ...Option) (*Result, error) {
	s, err := NewSimulator(cfg, arrivals, opts...)
	if err != nil {
		return nil, err
	}
	return s.Run()
}

// ArrivalsRemaining reports whether any trace entry is still unconsumed.
func (sim *Simulator) ArrivalsRemaining() bool {
	return sim.nextArrival < len(sim.arrivals)
}

// nextEvent returns the earliest pending event: the next trace arrival or
// the earliest server departure. It returns nil when neither exists.
func (sim *Simulator) nextEvent() Event {
	var next Event
	if sim.ArrivalsRemaining() {
		d := sim.arrivals[sim.nextArrival]
		next = &ArrivalEvent{time: d.ArrivalTime, Index: sim.nextArrival, Descriptor: d}
	}
	if t, idx, ok := sim.Servers.EarliestDeparture(); ok {
		dep := &DepartureEvent{time: t, Server: idx}
		if next == nil || before(dep, next) {
			next = dep
		}
	}
	return next
}

// Run processes events until the trace is exhausted and every server is idle.
func (sim *Simulator) Run() (*Result, error) {
	for sim.ArrivalsRemaining() || sim.Servers.AnyBusy() {
		// get the next event to be simulated
		ev := sim.nextEvent()
		if ev.Timestamp() < sim.Clock {
			return nil, errors.Wrapf(ErrClockRegression, "%s at %g, clock %g", ev.Type(), ev.Timestamp(), sim.Clock)
		}
		// advance the clock
		sim.Clock = ev.Timestamp()
		sim.eventCount++
		logrus.Debugf("[t=%.4f] Executing %T", sim.Clock, ev)
		// process the event
		if err := ev.Execute(sim); err != nil {
			return nil, errors.Wrapf(err, "%s event at %g", ev.Type(), sim.Clock)
		}
		sim.Metrics.sampleDispatcher(sim.Dispatcher)
	}
	if n := sim.Dispatcher.NumberOfJobs(); n > 0 {
		return nil, errors.Wrapf(ErrDispatcherNotDrained, "%d jobs left", n)
	}
	sim.Metrics.finalize(sim.Clock, sim.Servers)
	logrus.Infof("[t=%.4f] Simulation ended after %d events", sim.Clock, sim.eventCount)

	return &Result{
		Records:  sim.records,
		Departed: sim.departed,
		Metrics:  sim.Metrics,
		Trace:    sim.Trace,
	}, nil
}

// EventCount returns the number of events processed so far.
func (sim *Simulator) EventCount() int { return sim.eventCount }

func (sim *Simulator) recordCompletion(job *Job, server int, final bool) {
	sim.records = append(sim.records, CompletionRecord{
		JobID:           job.ID,
		ArrivalTime:     job.ArrivalTime(),
		DepartureTime:   job.DepartureTime(),
		CompletionCount: job.CompletionCount(),
		TotalStageCount: job.TotalStageCount(),
		Server:          server,
		Final:           final,
	})
	sim.Metrics.StageCompletions++
}
