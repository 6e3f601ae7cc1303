package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/floodwatch/flood_incident_map/internal/config"
	"github.com/floodwatch/flood_incident_map/internal/geofence"
	"github.com/floodwatch/flood_incident_map/internal/service"
	"github.com/floodwatch/flood_incident_map/internal/store"
)

type Handler struct {
	incidentService service.IncidentService
	searchService   service.SearchService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(incidentService service.IncidentService, searchService service.SearchService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		searchService:   searchService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Create a flood incident
// @Description Create a new incident record from a map click plus form fields. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} CreateIncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.incidentService.CreateIncident(c.Request.Context(), CreateRequestToDraft(input))
	if err != nil {
		var validationErr *store.ValidationError
		var flushErr *store.FlushError
		switch {
		case errors.As(err, &flushErr):
			// Committed in memory, not persisted. Report, don't fail.
			c.JSON(http.StatusCreated, CreateIncidentResponse{
				Incident: ModelToIncidentResponse(record),
				Warning:  "incident saved but not persisted; it may be lost on restart",
			})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		default:
			log.WithError(err).Error("Failed to create incident in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusCreated, CreateIncidentResponse{Incident: ModelToIncidentResponse(record)})
}

// @Summary List flood incidents
// @Description List all incident records in insertion order. Requires API key.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	records := h.incidentService.ListIncidents(c.Request.Context())
	c.JSON(http.StatusOK, ModelsToIncidentResponses(records))
}

// @Summary Get an incident by ID
// @Description Fetch a single incident record. Requires API key.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}

	record, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
			return
		}
		h.logger.WithField("method", "getIncident").WithError(err).Error("Failed to get incident from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(record))
}

// @Summary Update an incident
// @Description Partially update an incident: absent fields are unchanged. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param incident body UpdateIncidentRequest true "Incident update request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [patch]
func (h *Handler) updateIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "updateIncident").WithField("id", id)

	var input UpdateIncidentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.incidentService.UpdateIncident(c.Request.Context(), id, UpdateRequestToPatch(input))
	if err != nil {
		var validationErr *store.ValidationError
		var flushErr *store.FlushError
		switch {
		case errors.As(err, &flushErr):
			c.JSON(http.StatusOK, ModelToIncidentResponse(record))
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		default:
			log.WithError(err).Error("Failed to update incident in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(record))
}

// @Summary Delete an incident
// @Description Delete an incident record. Repeating the delete returns 404. Requires API key.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [delete]
func (h *Handler) deleteIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "deleteIncident").WithField("id", id)

	if err := h.incidentService.DeleteIncident(c.Request.Context(), id); err != nil {
		var flushErr *store.FlushError
		switch {
		case errors.As(err, &flushErr):
			c.Status(http.StatusNoContent)
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		default:
			log.WithError(err).Error("Failed to delete incident in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Search for a location in the district
// @Description Geocode a free-text query and return the first result inside the district. Requires API key.
// @Tags Search
// @Produce json
// @Security ApiKeyAuth
// @Param q query string true "Free-text location query"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} map[string]string "Missing query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No result inside the district"
// @Failure 409 {object} map[string]string "A search is already in progress"
// @Failure 502 {object} map[string]string "Geocoding service unavailable"
// @Router /search [get]
func (h *Handler) searchLocation(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	log := h.logger.WithField("method", "searchLocation").WithField("query", query)

	location, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSearchInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "a search is already in progress"})
		case errors.Is(err, geofence.ErrNoMatch):
			// Distinct from a geocoder failure: the search worked, the
			// district just has no such place.
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found in " + h.cfg.DistrictName + " district"})
		default:
			log.WithError(err).Error("Search failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "location search failed, please try again"})
		}
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Latitude:    location.Lat,
		Longitude:   location.Lon,
		DisplayName: location.DisplayName,
	})
}

// @Summary Get map configuration
// @Description Initial center, zoom, and clamp bounds for the map display.
// @Tags System
// @Produce json
// @Success 200 {object} MapConfigResponse
// @Router /map/config [get]
func (h *Handler) mapConfig(c *gin.Context) {
	c.JSON(http.StatusOK, MapConfigResponse{
		CenterLat: h.cfg.MapCenterLat,
		CenterLon: h.cfg.MapCenterLon,
		Zoom:      h.cfg.MapZoom,
		District:  h.cfg.DistrictName,
		Bounds: BoundsResponse{
			MinLat: h.cfg.BoundsMinLat,
			MaxLat: h.cfg.BoundsMaxLat,
			MinLon: h.cfg.BoundsMinLon,
			MaxLon: h.cfg.BoundsMaxLon,
		},
	})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
