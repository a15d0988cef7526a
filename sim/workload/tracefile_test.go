package workload

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/inference-sim/feedback-sim/sim"
	"github.com/inference-sim/feedback-sim/sim/internal/testutil"
)

func TestParseArrivals_SkipsBlankAndComments(t *testing.T) {
	in := "# arrivals\n0.0\n\n1.5\n  2.25  \n"
	got, err := ParseArrivals(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1.5, 2.25}, got)
}

func TestParseArrivals_RejectsMalformedLines(t *testing.T) {
	for _, in := range []string{"1.0 2.0\n", "abc\n"} {
		_, err := ParseArrivals(strings.NewReader(in))
		assert.True(t, errors.Is(err, sim.ErrInvalidTrace), "input %q: got %v", in, err)
	}
}

func TestParseServices_VariableStageCounts(t *testing.T) {
	in := "5.0\n1.0 2.0\t3.0\n"
	got, err := ParseServices(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{5}, {1, 2, 3}}, got)
}

func TestParseServices_RejectsNonNumeric(t *testing.T) {
	_, err := ParseServices(strings.NewReader("1.0 x\n"))
	assert.True(t, errors.Is(err, sim.ErrInvalidTrace), "got %v", err)
}

func TestCombine_CountMismatch(t *testing.T) {
	_, err := Combine([]float64{0, 1}, [][]float64{{1}})
	assert.True(t, errors.Is(err, sim.ErrInvalidTrace), "got %v", err)
}

func TestCombine_ValidatesTrace(t *testing.T) {
	_, err := Combine([]float64{2, 1}, [][]float64{{1}, {1}})
	assert.True(t, errors.Is(err, sim.ErrInvalidTrace), "got %v", err)
}

func TestCombine_Empty_IsValid(t *testing.T) {
	jobs, err := Combine(nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestLoadTrace_FromFiles_RunsScenario(t *testing.T) {
	// GIVEN arrival and service files for the two-job scenario
	dir := t.TempDir()
	arrivals := testutil.WriteFixture(t, dir, "arrival.txt", "0.0\n1.0\n")
	services := testutil.WriteFixture(t, dir, "service.txt", "5.0\n2.0\n")

	// WHEN loaded and simulated with one server
	jobs, err := LoadTrace(context.Background(), afs.New(), arrivals, services)
	require.NoError(t, err)
	result, err := sim.Run(sim.NewConfig(1, 1), jobs)
	require.NoError(t, err)

	// THEN the records match the hand-computed timeline
	require.Len(t, result.Records, 2)
	testutil.AssertFloat64Equal(t, "first departure", 5.0, result.Records[0].DepartureTime, 1e-12)
	testutil.AssertFloat64Equal(t, "second departure", 7.0, result.Records[1].DepartureTime, 1e-12)
}

func TestLoadTrace_MissingServices_InputUnavailable(t *testing.T) {
	dir := t.TempDir()
	arrivals := testutil.WriteFixture(t, dir, "arrival.txt", "0.0\n")

	_, err := LoadTrace(context.Background(), afs.New(), arrivals, filepath.Join(dir, "missing.txt"))

	assert.True(t, errors.Is(err, sim.ErrInputUnavailable), "got %v", err)
}
