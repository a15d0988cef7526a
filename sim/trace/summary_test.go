package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalEvents != 0 || summary.Arrivals != 0 || summary.Departures != 0 {
		t.Error("expected zero counts for nil trace")
	}
	if !summary.MonotonicClock {
		t.Error("an empty trace is trivially monotonic")
	}
	if len(summary.RouteDistribution) != 0 {
		t.Error("expected empty route distribution")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with arrivals, a departure and a refill
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.RecordEvent(EventRecord{Clock: 0, Kind: KindArrival, JobID: "a", Server: 0, Route: RouteServer})
	st.RecordEvent(EventRecord{Clock: 1, Kind: KindArrival, JobID: "b", Server: NoServer, Route: RouteHigh})
	st.RecordEvent(EventRecord{Clock: 2, Kind: KindDeparture, JobID: "a", Server: 0, Route: RouteLow})
	st.RecordEvent(EventRecord{Clock: 2, Kind: KindRefill, JobID: "b", Server: 0, Route: RouteServer})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalEvents != 4 {
		t.Errorf("expected 4 events, got %d", summary.TotalEvents)
	}
	if summary.Arrivals != 2 || summary.Departures != 1 || summary.Refills != 1 {
		t.Errorf("got arrivals=%d departures=%d refills=%d", summary.Arrivals, summary.Departures, summary.Refills)
	}
	if summary.RouteDistribution[RouteServer] != 2 {
		t.Errorf("expected 2 server routes, got %d", summary.RouteDistribution[RouteServer])
	}
	if summary.ServerDistribution[0] != 2 {
		t.Errorf("expected 2 stage starts on server 0, got %d", summary.ServerDistribution[0])
	}
	if !summary.MonotonicClock {
		t.Error("expected monotonic clock")
	}
}

func TestSummarize_ClockRegression_Detected(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.RecordEvent(EventRecord{Clock: 3, Kind: KindArrival})
	st.RecordEvent(EventRecord{Clock: 2, Kind: KindDeparture})

	if Summarize(st).MonotonicClock {
		t.Error("expected regression to be detected")
	}
}
