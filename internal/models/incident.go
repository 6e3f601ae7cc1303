package models

import (
	"github.com/google/uuid"
)

// ShapeKind is the geometry variant of an incident zone. Only circles are
// produced by the map today; the remaining kinds are reserved.
type ShapeKind string

const (
	ShapePoint   ShapeKind = "point"
	ShapeCircle  ShapeKind = "circle"
	ShapePolygon ShapeKind = "polygon"
	ShapePath    ShapeKind = "path"
)

// Severity of a flood incident.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityCritical Severity = "critical"
)

// EvacuationStatus of the area around an incident.
type EvacuationStatus string

const (
	EvacuationNotRequired EvacuationStatus = "not_required"
	EvacuationRecommended EvacuationStatus = "recommended"
	EvacuationInProgress  EvacuationStatus = "in_progress"
	EvacuationCompleted   EvacuationStatus = "completed"
)

// NormalizeSeverity maps an arbitrary string to a valid severity.
// Unrecognized values fall back to minor so a bad record never breaks a reader.
func NormalizeSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityMinor, SeverityModerate, SeveritySevere, SeverityCritical:
		return Severity(s)
	}
	return SeverityMinor
}

// NormalizeEvacuationStatus maps an arbitrary string to a valid evacuation
// status, falling back to not_required.
func NormalizeEvacuationStatus(s string) EvacuationStatus {
	switch EvacuationStatus(s) {
	case EvacuationNotRequired, EvacuationRecommended, EvacuationInProgress, EvacuationCompleted:
		return EvacuationStatus(s)
	}
	return EvacuationNotRequired
}

// Position is a single WGS-84 coordinate.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IncidentRecord is one reported flood event or zone. The JSON field names
// are the durable-slot wire format; changing them breaks stored data.
type IncidentRecord struct {
	ID                uuid.UUID        `json:"id"`
	ShapeKind         ShapeKind        `json:"shapeKind"`
	Position          Position         `json:"position"`
	RadiusMeters      float64          `json:"radiusMeters"`
	CreatedAtMillis   int64            `json:"createdAtMillis"`
	IncidentName      string           `json:"incidentName"`
	ReporterName      string           `json:"reporterName"`
	SeverityLevel     Severity         `json:"severityLevel"`
	Description       string           `json:"description,omitempty"`
	AffectedArea      string           `json:"affectedArea,omitempty"`
	WaterLevel        string           `json:"waterLevel,omitempty"`
	WeatherConditions string           `json:"weatherConditions,omitempty"`
	EvacuationStatus  EvacuationStatus `json:"evacuationStatus"`
}

// IsActive reports whether the incident still calls for attention. It is
// derived from the evacuation status on every read and is never stored,
// so it cannot drift out of sync with the record.
func (r *IncidentRecord) IsActive() bool {
	switch NormalizeEvacuationStatus(string(r.EvacuationStatus)) {
	case EvacuationInProgress, EvacuationRecommended:
		return true
	}
	return false
}
