// Tracks simulation-wide and per-job statistics such as response time,
// dispatcher depth and server utilization.

package sim

import (
	"fmt"
	"io"
	"sort"
)

// Metrics aggregates statistics about the simulation for final reporting.
// Per-stage counts come from completion records; response times are
// per-lifetime and only cover permanently departed jobs.
type Metrics struct {
	JobsArrived      int // Number of jobs created from the trace
	JobsDeparted     int // Number of jobs that left the system for good
	StageCompletions int // Number of departure events (one per finished stage)

	TotalResponseTime float64   // Sum of (final departure - arrival)
	ResponseTimes     []float64 // per departed job, in departure order

	NumDispatcherJobs []int // dispatcher depth sampled after every event
	MaxHighQueueLen   int
	MaxLowQueueLen    int

	Makespan         float64   // clock value when the run ended
	ServerJobsServed []int     // stages completed per server
	ServerBusyTime   []float64 // time spent serving per server
}

// NewMetrics returns empty metrics for a pool of n servers.
func NewMetrics(n int) *Metrics {
	return &Metrics{
		ServerJobsServed: make([]int, n),
		ServerBusyTime:   make([]float64, n),
	}
}

func (m *Metrics) recordDeparture(j *Job) {
	m.JobsDeparted++
	rt := j.ResponseTime()
	m.TotalResponseTime += rt
	m.ResponseTimes = append(m.ResponseTimes, rt)
}

func (m *Metrics) sampleDispatcher(d *Dispatcher) {
	m.NumDispatcherJobs = append(m.NumDispatcherJobs, d.NumberOfJobs())
	m.MaxHighQueueLen = max(m.MaxHighQueueLen, d.Queue(PriorityHigh).Len())
	m.MaxLowQueueLen = max(m.MaxLowQueueLen, d.Queue(PriorityLow).Len())
}

func (m *Metrics) finalize(clock float64, sc *ServerController) {
	m.Makespan = clock
	for i, s := range sc.Servers() {
		m.ServerJobsServed[i] = s.JobsServed()
		m.ServerBusyTime[i] = s.BusyTime()
	}
}

// MeanResponseTime returns the mean sojourn time of departed jobs.
func (m *Metrics) MeanResponseTime() float64 {
	if m.JobsDeparted == 0 {
		return 0
	}
	return m.TotalResponseTime / float64(m.JobsDeparted)
}

// ResponseTimePercentile returns the p-th percentile of response times.
func (m *Metrics) ResponseTimePercentile(p float64) float64 {
	if len(m.ResponseTimes) == 0 {
		return 0
	}
	sorted := append([]float64(nil), m.ResponseTimes...)
	sort.Float64s(sorted)
	return CalculatePercentile(sorted, p)
}

// Utilization returns the fraction of the makespan server i spent busy.
func (m *Metrics) Utilization(i int) float64 {
	if m.Makespan <= 0 || i < 0 || i >= len(m.ServerBusyTime) {
		return 0
	}
	return m.ServerBusyTime[i] / m.Makespan
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, "=== Simulation Metrics ===")
	_, _ = fmt.Fprintf(w, "Jobs Arrived         : %d\n", m.JobsArrived)
	_, _ = fmt.Fprintf(w, "Jobs Departed        : %d\n", m.JobsDeparted)
	_, _ = fmt.Fprintf(w, "Stage Completions    : %d\n", m.StageCompletions)
	_, _ = fmt.Fprintf(w, "Makespan             : %.4f\n", m.Makespan)
	if m.JobsDeparted > 0 {
		_, _ = fmt.Fprintf(w, "Mean Response Time   : %.4f\n", m.MeanResponseTime())
		_, _ = fmt.Fprintf(w, "P90 Response Time    : %.4f\n", m.ResponseTimePercentile(90))
		_, _ = fmt.Fprintf(w, "P99 Response Time    : %.4f\n", m.ResponseTimePercentile(99))
	}
	_, _ = fmt.Fprintf(w, "Mean Dispatcher Depth: %.4f\n", CalculateMean(m.NumDispatcherJobs))
	_, _ = fmt.Fprintf(w, "Peak Queue (hi/lo)   : %d/%d\n", m.MaxHighQueueLen, m.MaxLowQueueLen)
	for i := range m.ServerJobsServed {
		_, _ = fmt.Fprintf(w, "Server %-3d           : %d stages, utilization %.2f%%\n", i, m.ServerJobsServed[i], 100*m.Utilization(i))
	}
}
