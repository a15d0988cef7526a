package cmd

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/viant/afs"

	sim "github.com/inference-sim/feedback-sim/sim"
	"github.com/inference-sim/feedback-sim/sim/telemetry"
	"github.com/inference-sim/feedback-sim/sim/trace"
	"github.com/inference-sim/feedback-sim/sim/workload"
)

var (
	// CLI flags for inputs
	paramsPath   string // Parameter file (servers, threshold, optional trace files)
	arrivalsPath string // Arrival times, one per line
	servicesPath string // Stage durations, one job per line
	numServers   int    // Size of the server pool
	threshold    int    // Dispatcher threshold h
	logLevel     string // Log verbosity level

	// CLI flags for outputs
	recordsPath   string // Where to write completion records (stdout if empty)
	recordsFormat string // text, csv or json
	traceLevel    string // Event trace level (none, events)
	otelTracePath string // File receiving the OpenTelemetry span of the run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "feedback-sim",
	Short: "Trace-driven simulator for multi-server queues with feedback",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation over a trace",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if !workload.IsValidFormat(recordsFormat) {
			logrus.Fatalf("Invalid records format: %s", recordsFormat)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		ctx := context.Background()
		fs := afs.New()
		runID := uuid.New().String()
		log := logrus.WithField("run", runID)

		cfg, jobs, err := loadInputs(ctx, fs, inputOptionsFromFlags(cmd))
		if err != nil {
			log.Fatalf("Unable to load inputs: %v", err)
		}
		log.Infof("Starting simulation with %d servers, threshold=%d, %d jobs", cfg.Servers, cfg.Threshold, len(jobs))

		s, err := sim.NewSimulator(cfg, jobs, sim.WithTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)}))
		if err != nil {
			log.Fatalf("Unable to create simulator: %v", err)
		}

		result, err := runSimulation(ctx, s, runID)
		if err != nil {
			log.Fatalf("Simulation aborted: %v", err)
		}

		result.Metrics.Print(os.Stdout)
		if traceLevel == string(trace.TraceLevelEvents) {
			printTraceSummary(os.Stdout, trace.Summarize(result.Trace))
		}
		if err := writeRecords(ctx, fs, recordsPath, recordsFormat, result.Records); err != nil {
			log.Fatalf("Unable to write records: %v", err)
		}
		log.Info("Simulation complete.")
	},
}

// runSimulation runs s, inside an OpenTelemetry span when --otel-trace is set.
func runSimulation(ctx context.Context, s *sim.Simulator, runID string) (*sim.Result, error) {
	if otelTracePath == "" {
		return s.Run()
	}
	f, err := os.Create(otelTracePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	tracer, err := telemetry.New(f, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := tracer.Shutdown(ctx); err != nil {
			logrus.Warnf("Flushing span exporter: %v", err)
		}
	}()
	return tracer.Run(ctx, s)
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerInputFlags adds the flags shared by every command that loads a trace.
func registerInputFlags(c *cobra.Command) {
	c.Flags().StringVar(&paramsPath, "params", "", "Parameter file (YAML: servers, threshold, trace)")
	c.Flags().StringVar(&arrivalsPath, "arrivals", "", "Arrival time file, one arrival per line")
	c.Flags().StringVar(&servicesPath, "services", "", "Service file, one job's stage durations per line")
	c.Flags().IntVar(&numServers, "servers", 0, "Number of servers (overrides the parameter file)")
	c.Flags().IntVar(&threshold, "threshold", 0, "Dispatcher threshold h (overrides the parameter file)")
	c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// init sets up CLI flags and subcommands
func init() {
	registerInputFlags(runCmd)
	runCmd.Flags().StringVar(&recordsPath, "records", "", "Write completion records to this location (stdout if empty)")
	runCmd.Flags().StringVar(&recordsFormat, "format", workload.FormatText, "Records format (text, csv, json)")
	runCmd.Flags().StringVar(&traceLevel, "event-trace", string(trace.TraceLevelNone), "Event trace level (none, events)")
	runCmd.Flags().StringVar(&otelTracePath, "otel-trace", "", "Write an OpenTelemetry span for the run to this file")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
