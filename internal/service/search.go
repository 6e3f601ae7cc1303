package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/floodwatch/flood_incident_map/internal/geofence"
	"github.com/floodwatch/flood_incident_map/internal/observability"
)

// ErrSearchInFlight rejects a search while another one is outstanding. One
// search at a time is an invariant of the dashboard, held here by an explicit
// flag rather than by disabling UI controls.
var ErrSearchInFlight = errors.New("a search is already in progress")

// Geocoder is the contract the search service needs from the geocoding client.
type Geocoder interface {
	Search(ctx context.Context, text string) ([]geofence.Candidate, error)
}

// Location is a resolved in-district search result.
type Location struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// SearchService resolves free-text queries to a location inside the district.
type SearchService interface {
	Search(ctx context.Context, text string) (Location, error)
}

type searchService struct {
	geocoder Geocoder
	district string
	bounds   geofence.BoundingBox
	logger   *logrus.Logger
	metrics  *observability.Metrics
	inFlight atomic.Bool
}

func NewSearchService(geocoder Geocoder, district string, bounds geofence.BoundingBox, logger *logrus.Logger, metrics *observability.Metrics) SearchService {
	return &searchService{
		geocoder: geocoder,
		district: district,
		bounds:   bounds,
		logger:   logger,
		metrics:  metrics,
	}
}

// Search geocodes the query and returns the first candidate inside the
// district. Callers distinguish three failures: ErrSearchInFlight,
// geofence.ErrNoMatch, and everything else (a transport or upstream fault).
func (s *searchService) Search(ctx context.Context, text string) (Location, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.metrics.Searches.WithLabelValues("rejected").Inc()
		return Location{}, ErrSearchInFlight
	}
	defer s.inFlight.Store(false)

	log := s.logger.WithFields(logrus.Fields{
		"service": "search",
		"query":   text,
	})
	log.Info("Searching for location")

	timer := prometheus.NewTimer(s.metrics.GeocodeDuration)
	candidates, err := s.geocoder.Search(ctx, text)
	timer.ObserveDuration()
	if err != nil {
		log.WithError(err).Error("Geocode request failed")
		s.metrics.Searches.WithLabelValues("geocode_error").Inc()
		return Location{}, fmt.Errorf("service: geocode search failed: %w", err)
	}

	candidate, err := geofence.FirstInDistrict(candidates, s.district, s.bounds)
	if err != nil {
		log.Info("No candidate matched the district")
		s.metrics.Searches.WithLabelValues("no_match").Inc()
		return Location{}, err
	}

	lat, lon, ok := candidate.Coords()
	if !ok {
		// Accepted on a named-district match but with junk coordinates.
		// Nothing to pan the map to, so treat it as no match.
		log.Warn("Matched candidate has unparseable coordinates")
		s.metrics.Searches.WithLabelValues("no_match").Inc()
		return Location{}, geofence.ErrNoMatch
	}

	s.metrics.Searches.WithLabelValues("found").Inc()
	log.WithFields(logrus.Fields{"lat": lat, "lon": lon}).Info("Location resolved")
	return Location{Lat: lat, Lon: lon, DisplayName: candidate.DisplayName}, nil
}
