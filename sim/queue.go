// Implements the Queue, which holds jobs waiting for a free server.
// The Dispatcher owns one queue per priority tier.

package sim

import "strings"

// Priority tags a Queue with the dispatcher tier it serves.
type Priority string

const (
	PriorityHigh Priority = "high"
	PriorityLow  Priority = "low"
)

// Queue represents a FIFO queue of jobs waiting to be served.
type Queue struct {
	priority Priority
	queue    []*Job // FIFO queue of jobs
}

// NewQueue returns an empty queue tagged with the given priority.
func NewQueue(p Priority) *Queue {
	return &Queue{priority: p}
}

// Priority returns the tier the queue serves.
func (q *Queue) Priority() Priority { return q.priority }

// Enqueue adds a job to the back of the queue.
func (q *Queue) Enqueue(j *Job) {
	if j == nil {
		panic("Enqueue: job must not be nil")
	}
	j.state = JobQueued
	q.queue = append(q.queue, j)
}

// Dequeue removes the job at the front of the queue.
// Returns nil if the queue is empty.
func (q *Queue) Dequeue() *Job {
	if len(q.queue) == 0 {
		return nil
	}
	j := q.queue[0]
	// drop the slot's reference so the queue's backing array no longer aliases the job
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return j
}

// Peek returns the job at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (q *Queue) Peek() *Job {
	if len(q.queue) == 0 {
		return nil
	}
	return q.queue[0]
}

// Len returns the number of jobs in the queue.
func (q *Queue) Len() int {
	return len(q.queue)
}

func (q *Queue) String() string {
	var sb strings.Builder
	sb.WriteString(string(q.priority))
	sb.WriteString("[")
	for i, val := range q.queue {
		sb.WriteString(val.ID)
		if i < len(q.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
