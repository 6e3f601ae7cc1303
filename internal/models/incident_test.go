package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSeverity(t *testing.T) {
	assert.Equal(t, SeveritySevere, NormalizeSeverity("severe"))
	assert.Equal(t, SeverityModerate, NormalizeSeverity("moderate"))
	assert.Equal(t, SeverityCritical, NormalizeSeverity("critical"))
	assert.Equal(t, SeverityMinor, NormalizeSeverity("catastrophic"))
	assert.Equal(t, SeverityMinor, NormalizeSeverity(""))
}

func TestNormalizeEvacuationStatus(t *testing.T) {
	assert.Equal(t, EvacuationInProgress, NormalizeEvacuationStatus("in_progress"))
	assert.Equal(t, EvacuationRecommended, NormalizeEvacuationStatus("recommended"))
	assert.Equal(t, EvacuationCompleted, NormalizeEvacuationStatus("completed"))
	assert.Equal(t, EvacuationNotRequired, NormalizeEvacuationStatus("evacuate now"))
	assert.Equal(t, EvacuationNotRequired, NormalizeEvacuationStatus(""))
}

func TestIncidentRecord_IsActive(t *testing.T) {
	tests := []struct {
		status EvacuationStatus
		active bool
	}{
		{EvacuationInProgress, true},
		{EvacuationRecommended, true},
		{EvacuationNotRequired, false},
		{EvacuationCompleted, false},
		{EvacuationStatus("garbled"), false},
	}

	for _, tt := range tests {
		r := IncidentRecord{EvacuationStatus: tt.status}
		assert.Equal(t, tt.active, r.IsActive(), "status %q", tt.status)
	}
}
