package v1

import (
	"github.com/google/uuid"
)

// CreateIncidentRequest is the payload of the add-incident flow. The radius
// bounds and enum domains are enforced here, at the input boundary.
// @Description Request body for creating a flood incident
type CreateIncidentRequest struct {
	IncidentName      string  `json:"incidentName" validate:"required,min=2,max=255"`
	ReporterName      string  `json:"reporterName" validate:"required,min=2,max=255"`
	Latitude          float64 `json:"latitude" validate:"required,latitude"`
	Longitude         float64 `json:"longitude" validate:"required,longitude"`
	RadiusMeters      float64 `json:"radiusMeters" validate:"required,gte=10,lte=1000"`
	DateTime          string  `json:"dateTime" validate:"required"`
	ShapeKind         string  `json:"shapeKind,omitempty" validate:"omitempty,oneof=point circle polygon path"`
	SeverityLevel     string  `json:"severityLevel,omitempty" validate:"omitempty,oneof=minor moderate severe critical"`
	Description       string  `json:"description,omitempty"`
	AffectedArea      string  `json:"affectedArea,omitempty"`
	WaterLevel        string  `json:"waterLevel,omitempty"`
	WeatherConditions string  `json:"weatherConditions,omitempty"`
	EvacuationStatus  string  `json:"evacuationStatus,omitempty" validate:"omitempty,oneof=not_required recommended in_progress completed"`
}

// UpdateIncidentRequest is a partial update: absent fields stay unchanged.
// Position and creation time are immutable and not accepted here.
// @Description Request body for partially updating a flood incident
type UpdateIncidentRequest struct {
	IncidentName      *string  `json:"incidentName,omitempty" validate:"omitempty,min=2,max=255"`
	ReporterName      *string  `json:"reporterName,omitempty" validate:"omitempty,min=2,max=255"`
	RadiusMeters      *float64 `json:"radiusMeters,omitempty" validate:"omitempty,gte=10,lte=1000"`
	SeverityLevel     *string  `json:"severityLevel,omitempty" validate:"omitempty,oneof=minor moderate severe critical"`
	Description       *string  `json:"description,omitempty"`
	AffectedArea      *string  `json:"affectedArea,omitempty"`
	WaterLevel        *string  `json:"waterLevel,omitempty"`
	WeatherConditions *string  `json:"weatherConditions,omitempty"`
	EvacuationStatus  *string  `json:"evacuationStatus,omitempty" validate:"omitempty,oneof=not_required recommended in_progress completed"`
}

// IncidentResponse mirrors the record plus the derived isActive flag, which
// is computed at response time and never persisted.
// @Description Flood incident record
type IncidentResponse struct {
	ID                uuid.UUID `json:"id"`
	ShapeKind         string    `json:"shapeKind"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	RadiusMeters      float64   `json:"radiusMeters"`
	CreatedAtMillis   int64     `json:"createdAtMillis"`
	IncidentName      string    `json:"incidentName"`
	ReporterName      string    `json:"reporterName"`
	SeverityLevel     string    `json:"severityLevel"`
	Description       string    `json:"description,omitempty"`
	AffectedArea      string    `json:"affectedArea,omitempty"`
	WaterLevel        string    `json:"waterLevel,omitempty"`
	WeatherConditions string    `json:"weatherConditions,omitempty"`
	EvacuationStatus  string    `json:"evacuationStatus"`
	IsActive          bool      `json:"isActive"`
}

// CreateIncidentResponse wraps the created record. Warning is set when the
// record was committed but the durable flush failed.
// @Description Created incident, optionally with a persistence warning
type CreateIncidentResponse struct {
	Incident IncidentResponse `json:"incident"`
	Warning  string           `json:"warning,omitempty"`
}

// SearchResponse is a resolved in-district location.
// @Description Resolved location for a search query
type SearchResponse struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"displayName"`
}

// BoundsResponse is the district bounding box used for map view clamping.
// @Description District bounding box
type BoundsResponse struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// MapConfigResponse is the initial view handed to the map display collaborator.
// @Description Initial map view and clamp bounds
type MapConfigResponse struct {
	CenterLat float64        `json:"centerLat"`
	CenterLon float64        `json:"centerLon"`
	Zoom      int            `json:"zoom"`
	District  string         `json:"district"`
	Bounds    BoundsResponse `json:"bounds"`
}
