package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jobWithCompletions returns a job that has already finished c of its stages.
func jobWithCompletions(t *testing.T, id string, c int) *Job {
	t.Helper()
	stages := make([]float64, c+1)
	for i := range stages {
		stages[i] = 1
	}
	job := NewJob(id, 0, stages)
	for i := 0; i < c; i++ {
		_, err := job.NextStageDuration()
		require.NoError(t, err)
		require.NoError(t, job.RecordCompletion())
	}
	return job
}

func TestDispatcher_RecvJob_RoutesByThreshold(t *testing.T) {
	tests := []struct {
		name        string
		completions int
		threshold   int
		want        Priority
	}{
		{"below threshold goes high", 0, 1, PriorityHigh},
		{"at threshold goes low", 1, 1, PriorityLow},
		{"above threshold goes low", 3, 2, PriorityLow},
		{"zero threshold sends everything low", 0, 0, PriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(tt.threshold)
			got := d.RecvJob(jobWithCompletions(t, "j", tt.completions))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, d.Queue(tt.want).Len())
		})
	}
}

func TestDispatcher_GiveJob_Empty_ReturnsErrEmptyDispatcher(t *testing.T) {
	// GIVEN an empty dispatcher
	d := NewDispatcher(2)

	// WHEN a job is requested
	job, err := d.GiveJob()

	// THEN the contract violation is reported
	assert.Nil(t, job)
	assert.True(t, errors.Is(err, ErrEmptyDispatcher))
}

func TestDispatcher_GiveJob_HighBeforeLow(t *testing.T) {
	// GIVEN a low-priority job enqueued before a high-priority one
	d := NewDispatcher(1)
	low := jobWithCompletions(t, "low", 1)
	high := jobWithCompletions(t, "high", 0)
	d.RecvJob(low)
	d.RecvJob(high)

	// WHEN jobs are taken out
	first, err := d.GiveJob()
	require.NoError(t, err)
	second, err := d.GiveJob()
	require.NoError(t, err)

	// THEN the high-priority job comes first despite arriving later
	assert.Same(t, high, first)
	assert.Same(t, low, second)
	assert.Equal(t, 0, d.NumberOfJobs())
}

func TestDispatcher_GiveJob_FIFOWithinTier(t *testing.T) {
	// GIVEN interleaved high and low jobs
	d := NewDispatcher(1)
	order := []struct {
		id string
		c  int
	}{{"h1", 0}, {"l1", 1}, {"h2", 0}, {"l2", 2}, {"h3", 0}}
	for _, o := range order {
		d.RecvJob(jobWithCompletions(t, o.id, o.c))
	}
	assert.Equal(t, 5, d.NumberOfJobs())

	// WHEN drained
	var got []string
	for d.NumberOfJobs() > 0 {
		j, err := d.GiveJob()
		require.NoError(t, err)
		got = append(got, j.ID)
	}

	// THEN each tier keeps its arrival order and high drains first
	assert.Equal(t, []string{"h1", "h2", "h3", "l1", "l2"}, got)
}

func TestDispatcher_GiveJob_NeverLowWhileHighNonEmpty(t *testing.T) {
	d := NewDispatcher(1)
	for i := 0; i < 10; i++ {
		d.RecvJob(jobWithCompletions(t, "j", i%2))
	}
	for d.NumberOfJobs() > 0 {
		highBefore := d.Queue(PriorityHigh).Len()
		j, err := d.GiveJob()
		require.NoError(t, err)
		if highBefore > 0 && d.Route(j) == PriorityLow {
			t.Fatalf("low-priority job %s returned while %d high-priority jobs were waiting", j.ID, highBefore)
		}
	}
}

func TestDispatcher_Queue_UnknownTier_ReturnsNil(t *testing.T) {
	// GIVEN a dispatcher with one job per tier
	d := NewDispatcher(1)
	d.RecvJob(jobWithCompletions(t, "h", 0))
	d.RecvJob(jobWithCompletions(t, "l", 1))

	// THEN known tiers resolve to distinct queues and a mistyped tier resolves to none
	require.NotNil(t, d.Queue(PriorityHigh))
	require.NotNil(t, d.Queue(PriorityLow))
	assert.NotSame(t, d.Queue(PriorityHigh), d.Queue(PriorityLow))
	assert.Equal(t, "h", d.Queue(PriorityHigh).Peek().ID)
	assert.Equal(t, "l", d.Queue(PriorityLow).Peek().ID)
	assert.Nil(t, d.Queue(Priority("hgih")))
}
