package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents        int
	Arrivals           int
	Departures         int
	Refills            int
	RouteDistribution  map[string]int // route → count of decisions
	ServerDistribution map[int]int    // server index → count of stage starts
	MonotonicClock     bool           // true if record clocks never decrease
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		RouteDistribution:  make(map[string]int),
		ServerDistribution: make(map[int]int),
		MonotonicClock:     true,
	}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	for i, e := range st.Events {
		switch e.Kind {
		case KindArrival:
			summary.Arrivals++
		case KindDeparture:
			summary.Departures++
		case KindRefill:
			summary.Refills++
		}
		summary.RouteDistribution[e.Route]++
		if e.Route == RouteServer {
			summary.ServerDistribution[e.Server]++
		}
		if i > 0 && e.Clock < st.Events[i-1].Clock {
			summary.MonotonicClock = false
		}
	}
	return summary
}
