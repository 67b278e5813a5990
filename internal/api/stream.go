package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mrsumitborade/safe-earth-response/internal/logging"
)

// stream relays change events as server-sent events until the client goes
// away or the broadcaster closes. A comment line is sent every heartbeat to
// keep proxies from timing the connection out.
func (h *Handler) stream(c *gin.Context) {
	ctx := c.Request.Context()
	logger := logging.FromContext(ctx)

	id, events := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	logger.Info("stream subscriber connected", "subscriber", id)
	defer logger.Info("stream subscriber disconnected", "subscriber", id)

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent(string(e.Type), e)
			c.Writer.Flush()
		case <-heartbeat.C:
			if _, err := c.Writer.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}
