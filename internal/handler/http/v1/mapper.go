package v1

import (
	"github.com/floodwatch/flood_incident_map/internal/models"
	"github.com/floodwatch/flood_incident_map/internal/store"
)

// CreateRequestToDraft converts the create DTO into a store draft.
func CreateRequestToDraft(dto CreateIncidentRequest) store.Draft {
	return store.Draft{
		IncidentName:      dto.IncidentName,
		ReporterName:      dto.ReporterName,
		Position:          &models.Position{Lat: dto.Latitude, Lng: dto.Longitude},
		RadiusMeters:      dto.RadiusMeters,
		DateTime:          dto.DateTime,
		ShapeKind:         dto.ShapeKind,
		SeverityLevel:     dto.SeverityLevel,
		Description:       dto.Description,
		AffectedArea:      dto.AffectedArea,
		WaterLevel:        dto.WaterLevel,
		WeatherConditions: dto.WeatherConditions,
		EvacuationStatus:  dto.EvacuationStatus,
	}
}

// UpdateRequestToPatch converts the update DTO into a store patch. Nil DTO
// fields stay nil, so the store leaves them untouched.
func UpdateRequestToPatch(dto UpdateIncidentRequest) store.Patch {
	return store.Patch{
		IncidentName:      dto.IncidentName,
		ReporterName:      dto.ReporterName,
		RadiusMeters:      dto.RadiusMeters,
		SeverityLevel:     dto.SeverityLevel,
		Description:       dto.Description,
		AffectedArea:      dto.AffectedArea,
		WaterLevel:        dto.WaterLevel,
		WeatherConditions: dto.WeatherConditions,
		EvacuationStatus:  dto.EvacuationStatus,
	}
}

// ModelToIncidentResponse converts a record into the response DTO. The
// enums are normalized and isActive derived here, the single read site.
func ModelToIncidentResponse(record models.IncidentRecord) IncidentResponse {
	return IncidentResponse{
		ID:                record.ID,
		ShapeKind:         string(record.ShapeKind),
		Latitude:          record.Position.Lat,
		Longitude:         record.Position.Lng,
		RadiusMeters:      record.RadiusMeters,
		CreatedAtMillis:   record.CreatedAtMillis,
		IncidentName:      record.IncidentName,
		ReporterName:      record.ReporterName,
		SeverityLevel:     string(models.NormalizeSeverity(string(record.SeverityLevel))),
		Description:       record.Description,
		AffectedArea:      record.AffectedArea,
		WaterLevel:        record.WaterLevel,
		WeatherConditions: record.WeatherConditions,
		EvacuationStatus:  string(models.NormalizeEvacuationStatus(string(record.EvacuationStatus))),
		IsActive:          record.IsActive(),
	}
}

// ModelsToIncidentResponses converts a slice of records, preserving order.
func ModelsToIncidentResponses(records []models.IncidentRecord) []IncidentResponse {
	responses := make([]IncidentResponse, len(records))
	for i, record := range records {
		responses[i] = ModelToIncidentResponse(record)
	}
	return responses
}
