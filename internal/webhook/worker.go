package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/floodwatch/flood_incident_map/internal/config"
)

// Worker drains the alert queue and delivers each event to the configured
// webhook URL with an HMAC signature and exponential-backoff retries.
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
}

func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
	}
}

// Start runs the delivery loop in a goroutine until the context is canceled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting flood alert worker")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping flood alert worker")
				return
			default:
				// BRPop with 0 blocks until an event arrives or ctx is canceled.
				result, err := w.redisClient.BRPop(ctx, 0, alertQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop alert event from queue")
					time.Sleep(w.cfg.WebhookBaseDelay)
					continue
				}

				// result[0] is the key, result[1] the payload.
				payload := result[1]
				var event AlertEvent
				if err := json.Unmarshal([]byte(payload), &event); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal alert event, dropping it")
					continue
				}

				w.deliver(ctx, event, payload)
			}
		}
	}()
}

func (w *Worker) deliver(ctx context.Context, event AlertEvent, rawPayload string) {
	log := w.logger.WithFields(logrus.Fields{
		"incident_id": event.IncidentID,
		"action":      event.Action,
		"severity":    event.SeverityLevel,
	})
	log.Debug("Delivering flood alert")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured, skipping alert delivery")
		return
	}

	delay := w.cfg.WebhookBaseDelay
	for i := 0; i < w.cfg.WebhookMaxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
		if err != nil {
			log.WithError(err).Error("Failed to build alert request")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		if w.cfg.WebhookSecret != "" {
			req.Header.Set("X-Webhook-Signature", signHMACSHA256(rawPayload, w.cfg.WebhookSecret))
		}

		resp, err := w.httpClient.Do(req)
		if err != nil {
			log.WithError(err).Warnf("Alert delivery failed, retrying in %v (%d attempts left)", delay, w.cfg.WebhookMaxRetries-1-i)
			time.Sleep(delay)
			delay *= 2
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			log.Info("Flood alert delivered")
			return
		}
		log.Warnf("Alert delivery returned status %d, retrying in %v (%d attempts left)", resp.StatusCode, delay, w.cfg.WebhookMaxRetries-1-i)
		time.Sleep(delay)
		delay *= 2
	}

	log.Errorf("Giving up on flood alert after %d attempts", w.cfg.WebhookMaxRetries)
}

func signHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
