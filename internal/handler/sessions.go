package handler

import (
	"encoding/json"
	"net/http"

	"github.com/billed-app/billed-server/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionHandler seeds session state for an already-authenticated user.
// Authentication itself happens upstream; this endpoint only persists the
// resulting user object under the session's "user" item.
type SessionHandler struct {
	deps Deps
}

type createSessionRequest struct {
	Type  string `json:"type" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// Create stores the user object for the caller's session, minting a new
// session ID when the caller has none yet.
func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	value, err := json.Marshal(session.User{Type: req.Type, Email: req.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode user"})
		return
	}

	if err := h.deps.Sessions.SetItem(c.Request.Context(), sessionID, session.UserKey, string(value)); err != nil {
		h.deps.Logger.Error("Failed to store session user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sessionId": sessionID})
}
