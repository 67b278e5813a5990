package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mrsumitborade/safe-earth-response/internal/chat"
	"github.com/Mrsumitborade/safe-earth-response/internal/dashboard"
	"github.com/Mrsumitborade/safe-earth-response/internal/logging"
)

// errorMapping defines how a domain error maps to an HTTP response.
type errorMapping struct {
	err     error
	status  int
	message string // if empty, uses err.Error()
}

var errorMappings = []errorMapping{
	{dashboard.ErrNotFound, http.StatusNotFound, "not found"},
	{chat.ErrSessionNotFound, http.StatusNotFound, "chat session not found"},
	{chat.ErrEmptyMessage, http.StatusBadRequest, ""},
	{chat.ErrInvalidCredential, http.StatusBadRequest, ""},
	{chat.ErrCredentialRequired, http.StatusPreconditionRequired, ""},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "request timed out"},
	{context.Canceled, http.StatusServiceUnavailable, "request cancelled"},
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func respondValidation(c *gin.Context, fields []dashboard.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "validation error",
		"details": fields,
	})
}

// handleError maps err to a response. Unmapped errors are logged and
// reported as 500.
func handleError(c *gin.Context, err error) {
	var verr *dashboard.ValidationError
	if errors.As(err, &verr) {
		respondValidation(c, verr.Fields)
		return
	}
	if errors.Is(err, dashboard.ErrValidation) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			respondError(c, m.status, msg)
			return
		}
	}

	logging.FromContext(c.Request.Context()).Error("internal error", "error", err)
	respondError(c, http.StatusInternalServerError, "internal error")
}
