package sim

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Dispatcher holds jobs that found no idle server, split into two tiers by
// completion count. Jobs with fewer finished stages than the threshold go to
// the high-priority queue; the rest go to the low-priority queue.
//
// The policy is strict priority with no aging: under a continuous stream of
// high-priority work the low queue can starve.
type Dispatcher struct {
	high      *Queue
	low       *Queue
	threshold int // h
}

// NewDispatcher creates a dispatcher with the given threshold h.
func NewDispatcher(threshold int) *Dispatcher {
	return &Dispatcher{
		high:      NewQueue(PriorityHigh),
		low:       NewQueue(PriorityLow),
		threshold: threshold,
	}
}

// Threshold returns h.
func (d *Dispatcher) Threshold() int { return d.threshold }

// Route returns the tier a job would be placed in without enqueueing it.
func (d *Dispatcher) Route(j *Job) Priority {
	if j.CompletionCount() >= d.threshold {
		return PriorityLow
	}
	return PriorityHigh
}

// RecvJob appends the job to the back of the queue chosen by Route and
// returns that tier.
func (d *Dispatcher) RecvJob(j *Job) Priority {
	p := d.Route(j)
	d.Queue(p).Enqueue(j)
	logrus.Debugf("dispatcher: %s -> %s queue (c=%d, h=%d)", j.ID, p, j.CompletionCount(), d.threshold)
	return p
}

// GiveJob pops the front of the high queue, or the front of the low queue
// when the high queue is empty. Callers check NumberOfJobs first; an empty
// dispatcher yields ErrEmptyDispatcher.
func (d *Dispatcher) GiveJob() (*Job, error) {
	if j := d.high.Dequeue(); j != nil {
		return j, nil
	}
	if j := d.low.Dequeue(); j != nil {
		return j, nil
	}
	return nil, errors.WithStack(ErrEmptyDispatcher)
}

// NumberOfJobs returns the number of jobs held across both queues.
func (d *Dispatcher) NumberOfJobs() int {
	return d.high.Len() + d.low.Len()
}

// Queue returns the queue serving priority p, or nil for an unknown tier.
func (d *Dispatcher) Queue(p Priority) *Queue {
	switch p {
	case PriorityHigh:
		return d.high
	case PriorityLow:
		return d.low
	}
	return nil
}
