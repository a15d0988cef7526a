package sim

import (
	"testing"
)

func TestQueue_Priority_Tag(t *testing.T) {
	if got := NewQueue(PriorityHigh).Priority(); got != PriorityHigh {
		t.Errorf("Priority: got %s, want high", got)
	}
	if got := NewQueue(PriorityLow).Priority(); got != PriorityLow {
		t.Errorf("Priority: got %s, want low", got)
	}
}

func TestQueue_Peek_NonEmpty_ReturnsFront(t *testing.T) {
	// GIVEN a queue with jobs [A, B]
	q := NewQueue(PriorityHigh)
	jobA := NewJob("A", 0, []float64{1})
	jobB := NewJob("B", 0, []float64{1})
	q.Enqueue(jobA)
	q.Enqueue(jobB)

	// WHEN Peek() is called
	got := q.Peek()

	// THEN it returns the front element without removing it
	if got != jobA {
		t.Errorf("Peek: got job %v, want %v", got.ID, jobA.ID)
	}
	if q.Len() != 2 {
		t.Errorf("Peek modified queue length: got %d, want 2", q.Len())
	}
}

func TestQueue_Empty_PeekAndDequeueReturnNil(t *testing.T) {
	q := NewQueue(PriorityLow)
	if q.Peek() != nil {
		t.Error("Peek on empty queue: want nil")
	}
	if q.Dequeue() != nil {
		t.Error("Dequeue on empty queue: want nil")
	}
}

func TestQueue_Dequeue_FIFOOrder(t *testing.T) {
	// GIVEN jobs enqueued in order A, B, C
	q := NewQueue(PriorityHigh)
	for _, id := range []string{"A", "B", "C"} {
		q.Enqueue(NewJob(id, 0, []float64{1}))
	}

	// WHEN all are dequeued
	ids := make([]string, 0, 3)
	for q.Len() > 0 {
		ids = append(ids, q.Dequeue().ID)
	}

	// THEN they come out in the order they went in
	want := []string{"A", "B", "C"}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestQueue_Dequeue_ReleasesSlot(t *testing.T) {
	// GIVEN a queue holding one job
	q := NewQueue(PriorityHigh)
	q.Enqueue(NewJob("A", 0, []float64{1}))
	backing := q.queue[:1]

	// WHEN the job is dequeued
	_ = q.Dequeue()

	// THEN the old slot no longer references it
	if backing[0] != nil {
		t.Error("dequeued job still referenced by the queue's backing array")
	}
}

func TestQueue_Enqueue_MarksQueued(t *testing.T) {
	job := NewJob("A", 0, []float64{1})
	job.state = JobInService
	q := NewQueue(PriorityLow)
	q.Enqueue(job)
	if job.State() != JobQueued {
		t.Errorf("state: got %s, want queued", job.State())
	}
}

func TestQueue_String(t *testing.T) {
	q := NewQueue(PriorityHigh)
	q.Enqueue(NewJob("A", 0, []float64{1}))
	q.Enqueue(NewJob("B", 0, []float64{1}))
	if got := q.String(); got != "high[A B]" {
		t.Errorf("String: got %q, want %q", got, "high[A B]")
	}
}
