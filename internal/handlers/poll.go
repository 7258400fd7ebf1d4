package handlers

import (
	"net/http"

	"github.com/dw4085/live-polling-app/internal/models"
	"github.com/dw4085/live-polling-app/internal/services"
	"github.com/dw4085/live-polling-app/internal/ws"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	pollService *services.PollService
	hub         *ws.Hub
}

func NewPollHandler(pollService *services.PollService, hub *ws.Hub) *PollHandler {
	return &PollHandler{pollService: pollService, hub: hub}
}

type PollRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Slug     string `json:"slug"`
	Password string `json:"password"`
}

type RevealRequest struct {
	Revealed bool `json:"revealed"`
}

// CreatePoll godoc
// @Summary      Create a poll
// @Description  Create a draft poll with a generated access code
// @Tags         polls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PollRequest true "Poll data"
// @Success      201 {object} Poll
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/polls [post]
func (h *PollHandler) CreatePoll(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	var req PollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	poll, err := h.pollService.CreatePoll(adminID, services.PollInput{
		Title:    req.Title,
		Slug:     req.Slug,
		Password: req.Password,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, poll)
}

// ListPolls godoc
// @Summary      List polls
// @Description  Admins see their own polls; superadmins see every poll
// @Tags         polls
// @Security     BearerAuth
// @Success      200 {array} Poll
// @Router       /api/v1/polls [get]
func (h *PollHandler) ListPolls(c *gin.Context) {
	polls, err := h.pollService.ListPolls(c.GetUint("admin_id"), isSuperadmin(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, polls)
}

// GetPoll godoc
// @Summary      Get a poll with its questions and options
// @Tags         polls
// @Security     BearerAuth
// @Param        id path int true "Poll ID"
// @Success      200 {object} Poll
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/polls/{id} [get]
func (h *PollHandler) GetPoll(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	poll, err := h.pollService.GetPoll(pollID, c.GetUint("admin_id"), isSuperadmin(c))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, poll)
}

// UpdatePoll godoc
// @Summary      Update a poll's title or password
// @Tags         polls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Poll ID"
// @Param        request body PollRequest true "Poll data"
// @Success      200 {object} Poll
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/polls/{id} [put]
func (h *PollHandler) UpdatePoll(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	var req PollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	poll, err := h.pollService.UpdatePoll(pollID, c.GetUint("admin_id"), isSuperadmin(c), services.PollInput{
		Title:    req.Title,
		Password: req.Password,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, poll)
}

// DeletePoll godoc
// @Summary      Delete a poll
// @Tags         polls
// @Security     BearerAuth
// @Param        id path int true "Poll ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/polls/{id} [delete]
func (h *PollHandler) DeletePoll(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	if err := h.pollService.DeletePoll(pollID, c.GetUint("admin_id"), isSuperadmin(c)); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "poll deleted"})
}

// Open godoc
// @Summary      Open a poll for voting
// @Tags         polls
// @Security     BearerAuth
// @Param        id path int true "Poll ID"
// @Success      200 {object} Poll
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/polls/{id}/open [post]
func (h *PollHandler) Open(c *gin.Context) {
	h.transition(c, models.PollStateOpen)
}

// Close godoc
// @Summary      Close a poll
// @Tags         polls
// @Security     BearerAuth
// @Param        id path int true "Poll ID"
// @Success      200 {object} Poll
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/polls/{id}/close [post]
func (h *PollHandler) Close(c *gin.Context) {
	h.transition(c, models.PollStateClosed)
}

// Archive godoc
// @Summary      Archive a closed poll
// @Tags         polls
// @Security     BearerAuth
// @Param        id path int true "Poll ID"
// @Success      200 {object} Poll
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/polls/{id}/archive [post]
func (h *PollHandler) Archive(c *gin.Context) {
	h.transition(c, models.PollStateArchived)
}

func (h *PollHandler) transition(c *gin.Context, target string) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	poll, err := h.pollService.Transition(pollID, c.GetUint("admin_id"), isSuperadmin(c), target)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(poll.ID, ws.WSMessage{
		Type: ws.EventPollStateChanged,
		Data: gin.H{"poll_id": poll.ID, "state": poll.State},
	})

	c.JSON(http.StatusOK, poll)
}

// Reveal godoc
// @Summary      Reveal or hide poll-wide results
// @Tags         polls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Poll ID"
// @Param        request body RevealRequest true "Reveal flag"
// @Success      200 {object} Poll
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/polls/{id}/reveal [post]
func (h *PollHandler) Reveal(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	var req RevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	poll, err := h.pollService.SetResultsRevealed(pollID, c.GetUint("admin_id"), isSuperadmin(c), req.Revealed)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(poll.ID, ws.WSMessage{
		Type: ws.EventResultsRevealed,
		Data: gin.H{"poll_id": poll.ID, "revealed": poll.ResultsRevealed},
	})

	c.JSON(http.StatusOK, poll)
}

// Reset godoc
// @Summary      Delete all responses for a poll
// @Description  Archives a result snapshot before deleting
// @Tags         polls
// @Security     BearerAuth
// @Param        id path int true "Poll ID"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/polls/{id}/reset [post]
func (h *PollHandler) Reset(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	if err := h.pollService.ResetResponses(pollID, c.GetUint("admin_id"), isSuperadmin(c)); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(pollID, ws.WSMessage{
		Type: ws.EventResponsesReset,
		Data: gin.H{"poll_id": pollID},
	})

	c.JSON(http.StatusOK, MessageResponse{Message: "responses reset"})
}

// ListSnapshots godoc
// @Summary      List archived result snapshots for a poll
// @Tags         polls
// @Security     BearerAuth
// @Param        id path int true "Poll ID"
// @Success      200 {array} models.ResultSnapshot
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/polls/{id}/snapshots [get]
func (h *PollHandler) ListSnapshots(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	snapshots, err := h.pollService.ListSnapshots(pollID, c.GetUint("admin_id"), isSuperadmin(c))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshots)
}
