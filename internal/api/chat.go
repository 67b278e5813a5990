package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mrsumitborade/safe-earth-response/internal/chat"
)

type sendMessageRequest struct {
	Content string `json:"content"`
}

type credentialRequest struct {
	APIKey string `json:"api_key"`
}

func (h *Handler) createChatSession(c *gin.Context) {
	s := h.chat.Create()
	c.JSON(http.StatusCreated, gin.H{
		"id":         s.ID,
		"created_at": s.CreatedAt,
		"messages":   s.Visible(),
	})
}

func (h *Handler) getChatSession(c *gin.Context) {
	s, err := h.chat.Get(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         s.ID,
		"created_at": s.CreatedAt,
		"messages":   s.Visible(),
	})
}

func (h *Handler) sendChatMessage(c *gin.Context) {
	s, err := h.chat.Get(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := s.Send(c.Request.Context(), req.Content)
	if errors.Is(err, chat.ErrUpstream) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":            err.Error(),
			"credential_reset": chat.IsAuthError(err),
			"messages":         s.Visible(),
		})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":    reply,
		"messages": s.Visible(),
	})
}

func (h *Handler) credentialStatus(c *gin.Context) {
	key, err := h.chat.Credentials().Credential(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configured": key != ""})
}

func (h *Handler) setCredential(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.chat.Credentials().Set(c.Request.Context(), req.APIKey); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configured": true})
}

func (h *Handler) resetCredential(c *gin.Context) {
	if err := h.chat.Credentials().Reset(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configured": false})
}
