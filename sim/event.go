package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/feedback-sim/sim/trace"
)

// EventType names the two kinds of events that drive the simulation.
type EventType string

const (
	EventTypeArrival   EventType = "arrival"
	EventTypeDeparture EventType = "departure"
)

// EventTypePriority breaks timestamp ties: the lower value is processed
// first, so an arrival is handled before a departure at the same instant.
var EventTypePriority = map[EventType]int{
	EventTypeArrival:   1,
	EventTypeDeparture: 2,
}

// Event defines the interface for all simulation events.
// Each event has a Timestamp and an Execute method that advances simulation
// state when invoked.
type Event interface {
	Timestamp() float64
	Type() EventType
	Execute(*Simulator) error
}

// before orders events by timestamp, then by type priority.
func before(a, b Event) bool {
	if a.Timestamp() != b.Timestamp() {
		return a.Timestamp() < b.Timestamp()
	}
	return EventTypePriority[a.Type()] < EventTypePriority[b.Type()]
}

// ArrivalEvent represents the next unconsumed trace entry entering the system.
type ArrivalEvent struct {
	time       float64 // Simulation time of arrival
	Index      int     // position of the entry in the trace
	Descriptor JobDescriptor
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 { return e.time }

// Type returns EventTypeArrival.
func (e *ArrivalEvent) Type() EventType { return EventTypeArrival }

// Execute consumes the trace entry and either starts the new job on the
// lowest-indexed idle server or hands it to the dispatcher.
func (e *ArrivalEvent) Execute(sim *Simulator) error {
	job := NewJob(fmt.Sprintf("job_%d", e.Index), e.Descriptor.ArrivalTime, e.Descriptor.Stages)
	sim.nextArrival++
	sim.Metrics.JobsArrived++
	logrus.Infof("<< Arrival: %s at %g (%d stages)", job.ID, e.time, job.TotalStageCount())

	if idx, ok := sim.Servers.FindIdleServer(); ok {
		if err := sim.Servers.Assign(job, idx, sim.Clock); err != nil {
			return err
		}
		sim.Trace.RecordEvent(trace.EventRecord{
			Clock: sim.Clock, Kind: trace.KindArrival, JobID: job.ID,
			Server: idx, Route: trace.RouteServer, Completions: job.CompletionCount(),
		})
		return nil
	}

	p := sim.Dispatcher.RecvJob(job)
	sim.Trace.RecordEvent(trace.EventRecord{
		Clock: sim.Clock, Kind: trace.KindArrival, JobID: job.ID,
		Server: trace.NoServer, Route: string(p), Completions: job.CompletionCount(),
	})
	return nil
}

// DepartureEvent represents a server finishing the stage it is serving.
type DepartureEvent struct {
	time   float64 // Simulation time of departure
	Server int     // index of the server whose stage finishes
}

// Timestamp returns the scheduled time of the DepartureEvent.
func (e *DepartureEvent) Timestamp() float64 { return e.time }

// Type returns EventTypeDeparture.
func (e *DepartureEvent) Type() EventType { return EventTypeDeparture }

// Execute releases the job, records the completed stage, routes the job
// back to the dispatcher or out of the system, and refills the freed server.
func (e *DepartureEvent) Execute(sim *Simulator) error {
	job, err := sim.Servers.Release(e.Server)
	if err != nil {
		return err
	}
	final := !job.NeedsFurtherProcessing()
	sim.recordCompletion(job, e.Server, final)
	logrus.Infof(">> Departure: %s from server %d at %g (c=%d/%d)", job.ID, e.Server, e.time, job.CompletionCount(), job.TotalStageCount())

	rec := trace.EventRecord{
		Clock: sim.Clock, Kind: trace.KindDeparture, JobID: job.ID,
		Server: e.Server, Completions: job.CompletionCount(),
	}
	if final {
		job.state = JobDeparted
		sim.departed = append(sim.departed, job)
		sim.Metrics.recordDeparture(job)
		rec.Route = trace.RouteDeparted
	} else {
		rec.Route = string(sim.Dispatcher.RecvJob(job))
	}
	sim.Trace.RecordEvent(rec)

	if sim.Dispatcher.NumberOfJobs() == 0 {
		return nil
	}
	next, err := sim.Dispatcher.GiveJob()
	if err != nil {
		return err
	}
	if err := sim.Servers.Assign(next, e.Server, sim.Clock); err != nil {
		return err
	}
	sim.Trace.RecordEvent(trace.EventRecord{
		Clock: sim.Clock, Kind: trace.KindRefill, JobID: next.ID,
		Server: e.Server, Route: trace.RouteServer, Completions: next.CompletionCount(),
	})
	return nil
}
