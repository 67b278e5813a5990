package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mrsumitborade/safe-earth-response/internal/dashboard"
)

func (h *Handler) listIncidents(c *gin.Context) {
	incidents, err := h.svc.ListIncidents(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"incidents": incidents})
}

func (h *Handler) reportIncident(c *gin.Context) {
	var in dashboard.IncidentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	inc, err := h.svc.ReportIncident(c.Request.Context(), in)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inc)
}

func (h *Handler) listInsights(c *gin.Context) {
	insights, err := h.svc.ListInsights(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

func (h *Handler) generateInsight(c *gin.Context) {
	insight, err := h.svc.GenerateInsight(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, insight)
}
