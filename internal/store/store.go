// Package store owns the ordered collection of incident records and keeps the
// durable slot in sync with it: the collection is loaded once at startup and
// the whole of it is re-serialized into the slot after every mutation.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/floodwatch/flood_incident_map/internal/models"
	"github.com/floodwatch/flood_incident_map/internal/storage"
)

// Accepted dateTime layouts, most specific first. The first is what an HTML
// datetime-local input produces.
var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Draft carries the user-supplied fields of a new incident. The store
// validates it and assigns the id and timestamp itself.
type Draft struct {
	IncidentName      string
	ReporterName      string
	Position          *models.Position
	RadiusMeters      float64
	DateTime          string
	ShapeKind         string
	SeverityLevel     string
	Description       string
	AffectedArea      string
	WaterLevel        string
	WeatherConditions string
	EvacuationStatus  string
}

// Patch is a partial update: nil fields are left untouched. Position, shape
// and creation time are immutable and therefore absent here.
type Patch struct {
	IncidentName      *string
	ReporterName      *string
	RadiusMeters      *float64
	SeverityLevel     *string
	Description       *string
	AffectedArea      *string
	WaterLevel        *string
	WeatherConditions *string
	EvacuationStatus  *string
}

// Store is the incident collection plus its durable slot. All access goes
// through the mutex: unlike the single-threaded original, HTTP handlers run
// concurrently.
type Store struct {
	mu      sync.Mutex
	slot    storage.Slot
	logger  *logrus.Logger
	records []models.IncidentRecord
}

func New(slot storage.Slot, logger *logrus.Logger) *Store {
	return &Store{
		slot:   slot,
		logger: logger,
	}
}

// Load reads the slot into memory. An absent or unparseable slot yields an
// empty collection, never an error: corrupt state is treated as no data.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.slot.Load(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read durable slot, starting with empty collection")
		s.records = nil
		return nil
	}
	if len(data) == 0 {
		s.records = nil
		return nil
	}

	var records []models.IncidentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.WithError(err).Warn("Durable slot holds malformed data, starting with empty collection")
		s.records = nil
		return nil
	}
	s.records = records
	return nil
}

// All returns the collection in insertion order.
func (s *Store) All(ctx context.Context) []models.IncidentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.IncidentRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns one record by id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (models.IncidentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			return s.records[i], nil
		}
	}
	return models.IncidentRecord{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
}

// Add validates the draft, assigns a fresh id and creation timestamp, appends
// the record and flushes. On a flush failure the record is already committed
// in memory and is returned together with a *FlushError.
func (s *Store) Add(ctx context.Context, draft Draft) (models.IncidentRecord, error) {
	createdAt, invalid := validateDraft(draft)
	if len(invalid) > 0 {
		return models.IncidentRecord{}, &ValidationError{Fields: invalid}
	}

	record := models.IncidentRecord{
		ID:                uuid.New(),
		ShapeKind:         shapeKindOrDefault(draft.ShapeKind),
		Position:          *draft.Position,
		RadiusMeters:      draft.RadiusMeters,
		CreatedAtMillis:   createdAt.UnixMilli(),
		IncidentName:      strings.TrimSpace(draft.IncidentName),
		ReporterName:      strings.TrimSpace(draft.ReporterName),
		SeverityLevel:     models.NormalizeSeverity(draft.SeverityLevel),
		Description:       draft.Description,
		AffectedArea:      draft.AffectedArea,
		WaterLevel:        draft.WaterLevel,
		WeatherConditions: draft.WeatherConditions,
		EvacuationStatus:  models.NormalizeEvacuationStatus(draft.EvacuationStatus),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return record, s.flush(ctx)
}

// Update merges the supplied fields into the record with the given id.
// Fields not present in the patch are untouched.
func (s *Store) Update(ctx context.Context, id uuid.UUID, patch Patch) (models.IncidentRecord, error) {
	if invalid := validatePatch(patch); len(invalid) > 0 {
		return models.IncidentRecord{}, &ValidationError{Fields: invalid}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.records {
		if s.records[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.IncidentRecord{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}

	record := &s.records[idx]
	if patch.IncidentName != nil {
		record.IncidentName = strings.TrimSpace(*patch.IncidentName)
	}
	if patch.ReporterName != nil {
		record.ReporterName = strings.TrimSpace(*patch.ReporterName)
	}
	if patch.RadiusMeters != nil {
		record.RadiusMeters = *patch.RadiusMeters
	}
	if patch.SeverityLevel != nil {
		record.SeverityLevel = models.NormalizeSeverity(*patch.SeverityLevel)
	}
	if patch.Description != nil {
		record.Description = *patch.Description
	}
	if patch.AffectedArea != nil {
		record.AffectedArea = *patch.AffectedArea
	}
	if patch.WaterLevel != nil {
		record.WaterLevel = *patch.WaterLevel
	}
	if patch.WeatherConditions != nil {
		record.WeatherConditions = *patch.WeatherConditions
	}
	if patch.EvacuationStatus != nil {
		record.EvacuationStatus = models.NormalizeEvacuationStatus(*patch.EvacuationStatus)
	}

	return *record, s.flush(ctx)
}

// Remove deletes the record with the given id. Removing an id that is already
// gone surfaces ErrNotFound rather than succeeding silently.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return s.flush(ctx)
		}
	}
	return fmt.Errorf("remove %s: %w", id, ErrNotFound)
}

// flush re-serializes the whole collection into the slot. Caller holds the lock.
func (s *Store) flush(ctx context.Context) error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return &FlushError{Err: fmt.Errorf("failed to marshal incident collection: %w", err)}
	}
	if err := s.slot.Store(ctx, data); err != nil {
		return &FlushError{Err: err}
	}
	return nil
}

func validateDraft(draft Draft) (time.Time, []string) {
	var invalid []string
	if strings.TrimSpace(draft.IncidentName) == "" {
		invalid = append(invalid, "incidentName")
	}
	if strings.TrimSpace(draft.ReporterName) == "" {
		invalid = append(invalid, "reporterName")
	}
	if draft.Position == nil || !isFinite(draft.Position.Lat) || !isFinite(draft.Position.Lng) {
		invalid = append(invalid, "position")
	}
	if !isFinite(draft.RadiusMeters) {
		invalid = append(invalid, "radiusMeters")
	}
	createdAt, err := parseDateTime(draft.DateTime)
	if err != nil {
		invalid = append(invalid, "dateTime")
	}
	return createdAt, invalid
}

func validatePatch(patch Patch) []string {
	var invalid []string
	if patch.IncidentName != nil && strings.TrimSpace(*patch.IncidentName) == "" {
		invalid = append(invalid, "incidentName")
	}
	if patch.ReporterName != nil && strings.TrimSpace(*patch.ReporterName) == "" {
		invalid = append(invalid, "reporterName")
	}
	if patch.RadiusMeters != nil && !isFinite(*patch.RadiusMeters) {
		invalid = append(invalid, "radiusMeters")
	}
	return invalid
}

func parseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty dateTime")
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized dateTime %q", value)
}

func shapeKindOrDefault(kind string) models.ShapeKind {
	switch models.ShapeKind(kind) {
	case models.ShapePoint, models.ShapeCircle, models.ShapePolygon, models.ShapePath:
		return models.ShapeKind(kind)
	}
	return models.ShapeCircle
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
