package sim

import "github.com/pkg/errors"

// Fault kinds raised by the simulation core. Every one of them aborts a run:
// the simulation is a deterministic offline computation, so an error always
// points at bad input or a broken event-loop invariant, never at a transient
// condition worth retrying.
var (
	// ErrInputUnavailable means the configuration or trace was not supplied.
	ErrInputUnavailable = errors.New("simulation input unavailable")
	// ErrInvalidTrace means a job descriptor violates the trace contract
	// (ordering, stage count, or stage duration).
	ErrInvalidTrace = errors.New("invalid trace")

	// ErrEmptyDispatcher is returned by Dispatcher.GiveJob when both queues are empty.
	ErrEmptyDispatcher = errors.New("dispatcher has no jobs")
	// ErrDispatcherNotDrained means the loop exited with jobs still queued.
	ErrDispatcherNotDrained = errors.New("dispatcher not drained at end of run")

	// ErrIndexOutOfRange is returned for a server index outside the pool.
	ErrIndexOutOfRange = errors.New("server index out of range")
	// ErrServerBusy is returned when assigning to a server that already holds a job.
	ErrServerBusy = errors.New("server is busy")
	// ErrServerIdle is returned when releasing from a server that holds no job.
	ErrServerIdle = errors.New("server is idle")

	// ErrNoStagesLeft is returned when a stage is requested from a finished job.
	ErrNoStagesLeft = errors.New("job has no stages left")
	// ErrCompletionOverflow means a job recorded more completions than it has stages.
	ErrCompletionOverflow = errors.New("completion count exceeds total stage count")

	// ErrClockRegression means an event was selected with a timestamp behind the master clock.
	ErrClockRegression = errors.New("master clock moved backwards")
)
