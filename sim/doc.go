// Package sim provides the core discrete-event simulation engine for a
// multi-server queueing network with feedback.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - job.go: Job lifecycle (queued → in-service → departed) and stage consumption
//   - event.go: Event types that drive the simulation (Arrival, Departure) and their tie-break order
//   - simulator.go: The event loop and the completion records it produces
//
// dispatcher.go and server.go hold the two places a job can wait or be
// served: the two-tier Dispatcher and the fixed ServerController pool.
//
// # Architecture
//
// The sim package owns the engine; adapters live in sub-packages:
//   - sim/workload/: arrival/service trace files and parameter files
//   - sim/trace/: per-event decision recording
//   - sim/telemetry/: OpenTelemetry span export around a run
//
// The engine is single-threaded and fully deterministic: identical
// configuration and trace always yield identical completion records.
package sim
