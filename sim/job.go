// Defines the Job struct that models one unit of work in the queueing network.
// Tracks the remaining stage durations, completions so far and departure time.

package sim

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// never is the departure time of a job or server with nothing scheduled.
func never() float64 { return math.Inf(1) }

// JobState represents the lifecycle state of a job.
type JobState string

const (
	JobQueued    JobState = "queued"
	JobInService JobState = "in-service"
	JobDeparted  JobState = "departed"
)

// Job is exclusively owned by one holder at a time: the trace cursor, a
// Queue, a Server, or the departed list in a Result. It is always passed
// by pointer so every mutation lands on the single owned instance.
type Job struct {
	ID string

	stages          []float64 // remaining stage durations, earliest first
	completions     int       // stages finished so far (c)
	arrivalTime     float64
	departureTime   float64 // departure time of the current stage, +Inf before first assignment
	totalStageCount int
	state           JobState
}

// NewJob creates a job arriving at arrivalTime with the given stage
// durations. The slice is copied; the caller keeps ownership of its input.
func NewJob(id string, arrivalTime float64, stages []float64) *Job {
	return &Job{
		ID:              id,
		stages:          append([]float64(nil), stages...),
		arrivalTime:     arrivalTime,
		departureTime:   never(),
		totalStageCount: len(stages),
		state:           JobQueued,
	}
}

// CompletionCount returns the number of stages the job has finished.
func (j *Job) CompletionCount() int { return j.completions }

// ArrivalTime returns the time the job first entered the system.
func (j *Job) ArrivalTime() float64 { return j.arrivalTime }

// DepartureTime returns the departure time of the current (or last) stage.
func (j *Job) DepartureTime() float64 { return j.departureTime }

// TotalStageCount returns the number of stages the job was created with.
func (j *Job) TotalStageCount() int { return j.totalStageCount }

// RemainingStages returns how many stages are still to be served.
func (j *Job) RemainingStages() int { return len(j.stages) }

// State returns the job's lifecycle state.
func (j *Job) State() JobState { return j.state }

// NeedsFurtherProcessing reports whether any stage is left.
func (j *Job) NeedsFurtherProcessing() bool { return len(j.stages) > 0 }

// NextStageDuration removes and returns the earliest remaining stage duration.
func (j *Job) NextStageDuration() (float64, error) {
	if len(j.stages) == 0 {
		return 0, errors.Wrapf(ErrNoStagesLeft, "job %s", j.ID)
	}
	d := j.stages[0]
	j.stages = j.stages[1:]
	return d, nil
}

// SetDepartureTime sets the departure time of the stage being served.
func (j *Job) SetDepartureTime(t float64) { j.departureTime = t }

// RecordCompletion increments the completion count after a stage finishes.
func (j *Job) RecordCompletion() error {
	if j.completions >= j.totalStageCount {
		return errors.Wrapf(ErrCompletionOverflow, "job %s (c=%d, stages=%d)", j.ID, j.completions, j.totalStageCount)
	}
	j.completions++
	return nil
}

// ResponseTime is the time between arrival and the latest departure.
// Only meaningful once the job has permanently departed.
func (j *Job) ResponseTime() float64 { return j.departureTime - j.arrivalTime }

// This method returns a human-readable string representation of a Job.
func (j *Job) String() string {
	return fmt.Sprintf("Job: (ID: %s, State: %s, c: %d/%d, ArrivalTime: %g, DepartureTime: %g)",
		j.ID, j.state, j.completions, j.totalStageCount, j.arrivalTime, j.departureTime)
}
