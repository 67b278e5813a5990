package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mrsumitborade/safe-earth-response/internal/chat"
	"github.com/Mrsumitborade/safe-earth-response/internal/dashboard"
	"github.com/Mrsumitborade/safe-earth-response/internal/events"
	"github.com/Mrsumitborade/safe-earth-response/internal/version"
)

const defaultHeartbeat = 15 * time.Second

type Handler struct {
	svc         *dashboard.Service
	chat        *chat.Manager
	broadcaster *events.Broadcaster
	heartbeat   time.Duration
}

func NewHandler(svc *dashboard.Service, chatMgr *chat.Manager, broadcaster *events.Broadcaster) *Handler {
	return &Handler{
		svc:         svc,
		chat:        chatMgr,
		broadcaster: broadcaster,
		heartbeat:   defaultHeartbeat,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/version", h.version)

	api := r.Group("/api")

	alerts := api.Group("/alerts")
	alerts.GET("", h.listAlerts)
	alerts.GET("/recent", h.recentAlerts)
	alerts.GET("/geojson", h.alertsGeoJSON)
	alerts.GET("/:id", h.getAlert)
	alerts.POST("/generate", h.generateAlert)

	api.GET("/map", h.mapView)

	resources := api.Group("/resources")
	resources.GET("", h.listResources)
	resources.GET("/recommendation", h.recommendation)
	resources.POST("/:id/requests", h.requestResource)

	api.GET("/incidents", h.listIncidents)
	api.POST("/incidents", h.reportIncident)

	api.GET("/insights", h.listInsights)
	api.POST("/insights", h.generateInsight)

	api.GET("/dashboard/stats", h.stats)
	api.POST("/admin/reset", h.reset)

	api.GET("/events/stream", h.stream)

	chatGroup := api.Group("/chat")
	chatGroup.POST("/sessions", h.createChatSession)
	chatGroup.GET("/sessions/:id", h.getChatSession)
	chatGroup.POST("/sessions/:id/messages", h.sendChatMessage)
	chatGroup.GET("/credential", h.credentialStatus)
	chatGroup.PUT("/credential", h.setCredential)
	chatGroup.DELETE("/credential", h.resetCredential)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}

func (h *Handler) stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) reset(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "store reset to demo data"})
}
