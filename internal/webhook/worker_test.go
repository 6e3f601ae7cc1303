package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floodwatch/flood_incident_map/internal/config"
	"github.com/floodwatch/flood_incident_map/internal/models"
)

func testWorker(cfg *config.Config) *Worker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewWorker(nil, logger, cfg)
}

func testEvent() (AlertEvent, string) {
	event := AlertEvent{
		IncidentID:       uuid.New(),
		IncidentName:     "Gin Ganga overflow",
		SeverityLevel:    models.SeveritySevere,
		EvacuationStatus: models.EvacuationRecommended,
		Latitude:         6.05,
		Longitude:        80.22,
		RadiusMeters:     250,
		Action:           "created",
		Timestamp:        time.Date(2026, 5, 17, 9, 0, 0, 0, time.UTC),
	}
	payload := `{"incident_id":"` + event.IncidentID.String() + `","action":"created"}`
	return event, payload
}

func TestWorker_Deliver_SignsPayload(t *testing.T) {
	var gotSignature string
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("X-Webhook-Signature")
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		gotBody = buf.String()
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
	}))
	defer server.Close()

	cfg := &config.Config{
		WebhookURL:        server.URL,
		WebhookSecret:     "test-secret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	worker := testWorker(cfg)

	event, payload := testEvent()
	worker.deliver(context.Background(), event, payload)

	require.Equal(t, payload, gotBody)

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write([]byte(payload))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), gotSignature)
}

func TestWorker_Deliver_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	cfg := &config.Config{
		WebhookURL:        server.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	worker := testWorker(cfg)

	event, payload := testEvent()
	worker.deliver(context.Background(), event, payload)

	assert.Equal(t, int32(3), calls.Load())
}

func TestWorker_Deliver_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := &config.Config{
		WebhookURL:        server.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 2,
		WebhookBaseDelay:  time.Millisecond,
	}
	worker := testWorker(cfg)

	event, payload := testEvent()
	worker.deliver(context.Background(), event, payload)

	assert.Equal(t, int32(2), calls.Load())
}

func TestWorker_Deliver_NoURLConfigured(t *testing.T) {
	cfg := &config.Config{
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	worker := testWorker(cfg)

	event, payload := testEvent()
	worker.deliver(context.Background(), event, payload)
}
