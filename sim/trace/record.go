package trace

// Event kinds as recorded in the trace.
const (
	KindArrival   = "arrival"
	KindDeparture = "departure"
	KindRefill    = "refill"
)

// Routes describe where a job went as the result of an event.
const (
	RouteServer   = "server"   // started a stage on Server
	RouteHigh     = "high"     // entered the high-priority queue
	RouteLow      = "low"      // entered the low-priority queue
	RouteDeparted = "departed" // left the system for good
)

// NoServer marks a record that involves no server.
const NoServer = -1

// EventRecord captures a single routing decision made while handling an event.
type EventRecord struct {
	Clock       float64
	Kind        string
	JobID       string
	Server      int // server involved, NoServer when queued
	Route       string
	Completions int // job completion count at the time of the decision
}
