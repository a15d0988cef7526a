package workload

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/inference-sim/feedback-sim/sim"
)

// Output formats accepted by WriteRecords.
const (
	FormatText = "text" // "arrival departure" per final departure, 4 decimals
	FormatCSV  = "csv"  // every completion record with a header row
	FormatJSON = "json" // every completion record as a JSON array
)

// IsValidFormat returns true if the given format is a recognized output format.
func IsValidFormat(format string) bool {
	switch format {
	case FormatText, FormatCSV, FormatJSON:
		return true
	}
	return false
}

// CSV column headers for completion records.
var recordColumns = []string{
	"job_id", "arrival_time", "departure_time", "completion_count", "total_stage_count", "server", "final",
}

// recordJSON is the JSON shape of a completion record.
type recordJSON struct {
	JobID           string  `json:"job_id"`
	ArrivalTime     float64 `json:"arrival_time"`
	DepartureTime   float64 `json:"departure_time"`
	CompletionCount int     `json:"completion_count"`
	TotalStageCount int     `json:"total_stage_count"`
	Server          int     `json:"server"`
	Final           bool    `json:"final"`
}

// WriteRecords renders completion records in the given format.
func WriteRecords(w io.Writer, format string, records []sim.CompletionRecord) error {
	switch format {
	case FormatText:
		return writeText(w, records)
	case FormatCSV:
		return writeCSV(w, records)
	case FormatJSON:
		return writeJSON(w, records)
	}
	return errors.Errorf("unknown record format %q", format)
}

// writeText lists the lifetime of every permanently departed job.
func writeText(w io.Writer, records []sim.CompletionRecord) error {
	for _, r := range records {
		if !r.Final {
			continue
		}
		if _, err := fmt.Fprintf(w, "%.4f\t%.4f\n", r.ArrivalTime, r.DepartureTime); err != nil {
			return errors.Wrap(err, "writing record")
		}
	}
	return nil
}

func writeCSV(w io.Writer, records []sim.CompletionRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(recordColumns); err != nil {
		return errors.Wrap(err, "writing CSV header")
	}
	for _, r := range records {
		row := []string{
			r.JobID,
			strconv.FormatFloat(r.ArrivalTime, 'f', -1, 64),
			strconv.FormatFloat(r.DepartureTime, 'f', -1, 64),
			strconv.Itoa(r.CompletionCount),
			strconv.Itoa(r.TotalStageCount),
			strconv.Itoa(r.Server),
			strconv.FormatBool(r.Final),
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrapf(err, "writing CSV row for %s", r.JobID)
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeJSON(w io.Writer, records []sim.CompletionRecord) error {
	out := make([]recordJSON, len(records))
	for i, r := range records {
		out[i] = recordJSON(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(out), "encoding records")
}

// SaveRecords renders records and uploads them to URL.
func SaveRecords(ctx context.Context, fs afs.Service, URL, format string, records []sim.CompletionRecord) error {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, format, records); err != nil {
		return err
	}
	if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, &buf); err != nil {
		return errors.Wrapf(err, "writing %s", URL)
	}
	return nil
}
