// Package geocode is the HTTP client for the public address-search
// collaborator (a Nominatim-compatible endpoint).
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/floodwatch/flood_incident_map/internal/geofence"
)

const userAgent = "flood-incident-map/1.0"

// StatusError is a non-2xx response from the geocoding endpoint. It maps to a
// hard, user-visible search failure: no retry happens on our side.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("geocoder returned status %d: %s", e.Code, e.Body)
}

// Client queries the search endpoint with the fixed district/country scope.
type Client struct {
	baseURL     string
	district    string
	country     string
	countryCode string
	httpClient  *http.Client
	logger      *logrus.Logger
}

// NewClient creates a geocoding client. The timeout is enforced on every
// request; the original dashboard relied on transport defaults, which meant
// no bound at all.
func NewClient(baseURL, district, country, countryCode string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		district:    district,
		country:     country,
		countryCode: countryCode,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Search runs a free-text address search scoped to the district and returns
// the raw candidates for geofencing.
func (c *Client) Search(ctx context.Context, text string) ([]geofence.Candidate, error) {
	params := url.Values{
		"q":              {fmt.Sprintf("%s, %s, %s", text, c.district, c.country)},
		"format":         {"json"},
		"limit":          {"3"},
		"countrycodes":   {c.countryCode},
		"addressdetails": {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var candidates []geofence.Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"query":      text,
		"candidates": len(candidates),
	}).Debug("Geocode search completed")
	return candidates, nil
}
