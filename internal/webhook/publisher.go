package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/floodwatch/flood_incident_map/internal/models"
)

const alertQueueKey = "flood_alert_events"

// AlertEvent is pushed to the downstream channel whenever a mutation leaves
// an incident in an active state.
type AlertEvent struct {
	IncidentID       uuid.UUID               `json:"incident_id"`
	IncidentName     string                  `json:"incident_name"`
	SeverityLevel    models.Severity         `json:"severity_level"`
	EvacuationStatus models.EvacuationStatus `json:"evacuation_status"`
	Latitude         float64                 `json:"latitude"`
	Longitude        float64                 `json:"longitude"`
	RadiusMeters     float64                 `json:"radius_meters"`
	Action           string                  `json:"action"` // "created" or "updated"
	Timestamp        time.Time               `json:"timestamp"`
}

// AlertPublisher enqueues alert events for asynchronous delivery.
type AlertPublisher interface {
	Publish(ctx context.Context, event AlertEvent) error
}

// RedisAlertPublisher pushes alert events onto a Redis list consumed by the
// delivery worker.
type RedisAlertPublisher struct {
	redisClient *redis.Client
}

func NewRedisAlertPublisher(client *redis.Client) *RedisAlertPublisher {
	return &RedisAlertPublisher{
		redisClient: client,
	}
}

func (p *RedisAlertPublisher) Publish(ctx context.Context, event AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, alertQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue alert event: %w", err)
	}
	return nil
}
