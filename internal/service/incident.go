package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/floodwatch/flood_incident_map/internal/models"
	"github.com/floodwatch/flood_incident_map/internal/observability"
	"github.com/floodwatch/flood_incident_map/internal/store"
	"github.com/floodwatch/flood_incident_map/internal/webhook"
)

// IncidentStore is the contract the service needs from the incident store.
type IncidentStore interface {
	All(ctx context.Context) []models.IncidentRecord
	Get(ctx context.Context, id uuid.UUID) (models.IncidentRecord, error)
	Add(ctx context.Context, draft store.Draft) (models.IncidentRecord, error)
	Update(ctx context.Context, id uuid.UUID, patch store.Patch) (models.IncidentRecord, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

// IncidentService is the business logic around incident records.
type IncidentService interface {
	CreateIncident(ctx context.Context, draft store.Draft) (models.IncidentRecord, error)
	GetIncident(ctx context.Context, id uuid.UUID) (models.IncidentRecord, error)
	UpdateIncident(ctx context.Context, id uuid.UUID, patch store.Patch) (models.IncidentRecord, error)
	DeleteIncident(ctx context.Context, id uuid.UUID) error
	ListIncidents(ctx context.Context) []models.IncidentRecord
}

type incidentService struct {
	store     IncidentStore
	publisher webhook.AlertPublisher
	logger    *logrus.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
}

func NewIncidentService(st IncidentStore, publisher webhook.AlertPublisher, logger *logrus.Logger, metrics *observability.Metrics, clock clockwork.Clock) IncidentService {
	return &incidentService{
		store:     st,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
	}
}

// CreateIncident validates and stores a new incident. A *store.FlushError is
// passed through so the caller can report the degraded persistence; the
// record itself is committed either way.
func (s *incidentService) CreateIncident(ctx context.Context, draft store.Draft) (models.IncidentRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CreateIncident",
		"name":    draft.IncidentName,
	})
	log.Info("Creating incident")

	record, err := s.store.Add(ctx, draft)
	if err != nil {
		var flushErr *store.FlushError
		if errors.As(err, &flushErr) {
			log.WithError(flushErr).Error("Incident committed in memory but durable flush failed")
			s.metrics.FlushFailures.Inc()
			s.metrics.Mutations.WithLabelValues("add", "flush_failed").Inc()
			s.publishAlert(ctx, record, "created")
			return record, err
		}
		log.WithError(err).Warn("Incident draft rejected")
		s.metrics.Mutations.WithLabelValues("add", "invalid").Inc()
		return models.IncidentRecord{}, fmt.Errorf("service: could not create incident: %w", err)
	}

	s.metrics.Mutations.WithLabelValues("add", "ok").Inc()
	s.metrics.IncidentCount.Set(float64(len(s.store.All(ctx))))
	s.publishAlert(ctx, record, "created")

	log.WithField("incident_id", record.ID).Info("Incident created")
	return record, nil
}

// GetIncident fetches one incident by id.
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (models.IncidentRecord, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return models.IncidentRecord{}, fmt.Errorf("service: could not get incident: %w", err)
	}
	return record, nil
}

// UpdateIncident merges the patch into an existing incident.
func (s *incidentService) UpdateIncident(ctx context.Context, id uuid.UUID, patch store.Patch) (models.IncidentRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateIncident",
		"incident_id": id,
	})
	log.Info("Updating incident")

	record, err := s.store.Update(ctx, id, patch)
	if err != nil {
		var flushErr *store.FlushError
		switch {
		case errors.As(err, &flushErr):
			log.WithError(flushErr).Error("Incident updated in memory but durable flush failed")
			s.metrics.FlushFailures.Inc()
			s.metrics.Mutations.WithLabelValues("update", "flush_failed").Inc()
			s.publishAlert(ctx, record, "updated")
			return record, err
		case errors.Is(err, store.ErrNotFound):
			log.Warn("Attempted to update a non-existent incident")
			s.metrics.Mutations.WithLabelValues("update", "not_found").Inc()
		default:
			log.WithError(err).Warn("Incident patch rejected")
			s.metrics.Mutations.WithLabelValues("update", "invalid").Inc()
		}
		return models.IncidentRecord{}, fmt.Errorf("service: could not update incident: %w", err)
	}

	s.metrics.Mutations.WithLabelValues("update", "ok").Inc()
	s.publishAlert(ctx, record, "updated")

	log.Info("Incident updated")
	return record, nil
}

// DeleteIncident removes an incident. Deleting an unknown or already-deleted
// id fails with store.ErrNotFound.
func (s *incidentService) DeleteIncident(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeleteIncident",
		"incident_id": id,
	})
	log.Info("Deleting incident")

	if err := s.store.Remove(ctx, id); err != nil {
		var flushErr *store.FlushError
		if errors.As(err, &flushErr) {
			log.WithError(flushErr).Error("Incident removed in memory but durable flush failed")
			s.metrics.FlushFailures.Inc()
			s.metrics.Mutations.WithLabelValues("remove", "flush_failed").Inc()
			return err
		}
		log.Warn("Attempted to delete a non-existent incident")
		s.metrics.Mutations.WithLabelValues("remove", "not_found").Inc()
		return fmt.Errorf("service: could not delete incident: %w", err)
	}

	s.metrics.Mutations.WithLabelValues("remove", "ok").Inc()
	s.metrics.IncidentCount.Set(float64(len(s.store.All(ctx))))
	log.Info("Incident deleted")
	return nil
}

// ListIncidents returns all incidents in insertion order.
func (s *incidentService) ListIncidents(ctx context.Context) []models.IncidentRecord {
	return s.store.All(ctx)
}

// publishAlert enqueues a flood alert for records left in an active state.
// Alert delivery is best effort; a queue failure never fails the mutation.
func (s *incidentService) publishAlert(ctx context.Context, record models.IncidentRecord, action string) {
	if s.publisher == nil || !record.IsActive() {
		return
	}

	event := webhook.AlertEvent{
		IncidentID:       record.ID,
		IncidentName:     record.IncidentName,
		SeverityLevel:    models.NormalizeSeverity(string(record.SeverityLevel)),
		EvacuationStatus: models.NormalizeEvacuationStatus(string(record.EvacuationStatus)),
		Latitude:         record.Position.Lat,
		Longitude:        record.Position.Lng,
		RadiusMeters:     record.RadiusMeters,
		Action:           action,
		Timestamp:        s.clock.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithField("incident_id", record.ID).Error("Failed to enqueue flood alert")
	}
}
