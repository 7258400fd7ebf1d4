package handlers

import (
	"net/http"

	"github.com/dw4085/live-polling-app/internal/services"
	"github.com/dw4085/live-polling-app/internal/ws"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	pollService    *services.PollService
	sessionService *services.SessionService
	hub            *ws.Hub
}

func NewSessionHandler(pollService *services.PollService, sessionService *services.SessionService, hub *ws.Hub) *SessionHandler {
	return &SessionHandler{pollService: pollService, sessionService: sessionService, hub: hub}
}

type JoinResponse struct {
	ID                uint   `json:"id"`
	Title             string `json:"title"`
	State             string `json:"state"`
	PasswordProtected bool   `json:"password_protected"`
}

type CreateSessionRequest struct {
	PollID   uint   `json:"poll_id" binding:"required"`
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Lookup godoc
// @Summary      Look up a poll by access code or slug
// @Tags         sessions
// @Param        code path string true "Access code or slug"
// @Success      200 {object} JoinResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/join/{code} [get]
func (h *SessionHandler) Lookup(c *gin.Context) {
	poll, err := h.pollService.FindByCode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, JoinResponse{
		ID:                poll.ID,
		Title:             poll.Title,
		State:             poll.State,
		PasswordProtected: poll.PasswordProtected(),
	})
}

// CreateSession godoc
// @Summary      Create or resume a participant session
// @Description  The token is persisted client-side; sending it back resumes the session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body CreateSessionRequest true "Session data"
// @Success      200 {object} services.SessionJoinResult
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	poll, err := h.pollService.FindByID(req.PollID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	if !h.pollService.VerifyPassword(poll, req.Password) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "invalid poll password"})
		return
	}

	result, err := h.sessionService.GetOrCreate(req.PollID, req.Token)
	if err != nil {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		return
	}

	if !result.IsRejoin {
		h.hub.Broadcast(req.PollID, ws.WSMessage{
			Type: ws.EventParticipantJoined,
			Data: gin.H{"poll_id": req.PollID, "session_id": result.Session.ID},
		})
	}

	c.JSON(http.StatusOK, result)
}

// ActiveCount godoc
// @Summary      Estimate active participants for a poll
// @Tags         sessions
// @Param        id path int true "Poll ID"
// @Success      200 {object} map[string]int
// @Router       /api/v1/polls/{id}/active [get]
func (h *SessionHandler) ActiveCount(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	count, err := h.sessionService.ActiveCount(pollID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active_participants": count,
		"watchers":            h.hub.Watchers(pollID),
	})
}
