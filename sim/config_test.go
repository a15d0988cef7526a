package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_FieldEquivalence(t *testing.T) {
	got := NewConfig(6, 2)
	want := Config{Servers: 6, Threshold: 2}
	assert.Equal(t, want, got)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", NewConfig(1, 0), false},
		{"zero servers", NewConfig(0, 1), true},
		{"negative servers", NewConfig(-3, 1), true},
		{"negative threshold", NewConfig(2, -1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInputUnavailable), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTrace(t *testing.T) {
	tests := []struct {
		name    string
		trace   []JobDescriptor
		wantErr bool
	}{
		{"empty", []JobDescriptor{}, false},
		{"equal arrivals allowed", []JobDescriptor{{0, []float64{1}}, {0, []float64{2}}}, false},
		{"decreasing arrivals", []JobDescriptor{{2, []float64{1}}, {1, []float64{1}}}, true},
		{"no stages", []JobDescriptor{{0, nil}}, true},
		{"zero duration", []JobDescriptor{{0, []float64{1, 0}}}, true},
		{"negative duration", []JobDescriptor{{0, []float64{-1}}}, true},
		{"NaN duration", []JobDescriptor{{0, []float64{math.NaN()}}}, true},
		{"infinite duration", []JobDescriptor{{0, []float64{math.Inf(1)}}}, true},
		{"infinite arrival", []JobDescriptor{{math.Inf(1), []float64{1}}}, true},
		{"negative arrival", []JobDescriptor{{-2, []float64{1}}}, true},
		{"arrival at clock origin", []JobDescriptor{{0, []float64{1}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTrace(tt.trace)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidTrace), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
