package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/viant/afs"

	sim "github.com/inference-sim/feedback-sim/sim"
	"github.com/inference-sim/feedback-sim/sim/trace"
	"github.com/inference-sim/feedback-sim/sim/workload"
)

// writeRecords writes completion records to location, or to stdout when
// location is empty.
func writeRecords(ctx context.Context, fs afs.Service, location, format string, records []sim.CompletionRecord) error {
	if location == "" {
		fmt.Println("=== Completion Records ===")
		return workload.WriteRecords(os.Stdout, format, records)
	}
	return workload.SaveRecords(ctx, fs, location, format, records)
}

// printTraceSummary displays the aggregated event trace.
func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	_, _ = fmt.Fprintln(w, "=== Event Trace Summary ===")
	_, _ = fmt.Fprintf(w, "Events               : %d\n", s.TotalEvents)
	_, _ = fmt.Fprintf(w, "Arrivals/Departures  : %d/%d\n", s.Arrivals, s.Departures)
	_, _ = fmt.Fprintf(w, "Refills              : %d\n", s.Refills)
	_, _ = fmt.Fprintf(w, "Monotonic Clock      : %t\n", s.MonotonicClock)

	routes := make([]string, 0, len(s.RouteDistribution))
	for r := range s.RouteDistribution {
		routes = append(routes, r)
	}
	sort.Strings(routes)
	for _, r := range routes {
		_, _ = fmt.Fprintf(w, "Route %-15s: %d\n", r, s.RouteDistribution[r])
	}
}
