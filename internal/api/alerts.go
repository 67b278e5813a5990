package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Mrsumitborade/safe-earth-response/internal/dashboard"
	"github.com/Mrsumitborade/safe-earth-response/internal/models"
)

const defaultRecentAlerts = 3

// parseAlertFilter reads repeated or comma-separated ?type= values and an
// optional ?severity=.
func parseAlertFilter(c *gin.Context) (dashboard.AlertFilter, []dashboard.FieldError) {
	var (
		filter dashboard.AlertFilter
		errs   []dashboard.FieldError
	)

	for _, raw := range c.QueryArray("type") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			dt, ok := models.ParseDisasterType(part)
			if !ok {
				errs = append(errs, dashboard.FieldError{Field: "type", Message: "unknown disaster type " + part})
				continue
			}
			if !filter.Has(dt) {
				filter.Toggle(dt)
			}
		}
	}

	if s := c.Query("severity"); s != "" {
		sev, ok := models.ParseSeverity(s)
		if !ok {
			errs = append(errs, dashboard.FieldError{Field: "severity", Message: "unknown severity " + s})
		}
		filter.Severity = sev
	}

	return filter, errs
}

func (h *Handler) listAlerts(c *gin.Context) {
	filter, errs := parseAlertFilter(c)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	alerts, err := h.svc.ListAlerts(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"alerts":  alerts,
		"count":   len(alerts),
		"filters": filter.Types(),
	})
}

func (h *Handler) recentAlerts(c *gin.Context) {
	limit := defaultRecentAlerts
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > 100 {
			respondValidation(c, []dashboard.FieldError{{Field: "limit", Message: "must be between 1 and 100"}})
			return
		}
		limit = n
	}

	alerts, err := h.svc.RecentAlerts(c.Request.Context(), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (h *Handler) getAlert(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid alert id")
		return
	}

	alert, err := h.svc.GetAlert(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *Handler) alertsGeoJSON(c *gin.Context) {
	filter, errs := parseAlertFilter(c)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	layers, err := h.svc.MapLayers(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, toGeoJSON(layers.Alerts, layers.Incidents))
}

// generateAlert produces a simulated alert for connected dashboards. It is
// broadcast only, never added to the alert list.
func (h *Handler) generateAlert(c *gin.Context) {
	var req dashboard.GenerateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	alert, err := h.svc.GenerateAlert(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "alert broadcast (not persisted)",
		"alert":   alert,
	})
}

func (h *Handler) mapView(c *gin.Context) {
	filter, errs := parseAlertFilter(c)
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	alerts, err := h.svc.ListAlerts(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildMapView(alerts))
}
