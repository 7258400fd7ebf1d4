package handlers

import (
	"net/http"

	"github.com/dw4085/live-polling-app/internal/services"
	"github.com/dw4085/live-polling-app/internal/ws"

	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	responseService *services.ResponseService
	sessionService  *services.SessionService
	hub             *ws.Hub
}

func NewResponseHandler(responseService *services.ResponseService, sessionService *services.SessionService, hub *ws.Hub) *ResponseHandler {
	return &ResponseHandler{responseService: responseService, sessionService: sessionService, hub: hub}
}

type SubmitResponseRequest struct {
	Token          string `json:"token" binding:"required"`
	QuestionID     uint   `json:"question_id" binding:"required"`
	AnswerOptionID uint   `json:"answer_option_id" binding:"required"`
}

// Submit godoc
// @Summary      Submit or change a vote
// @Description  One response per session per question; a revote overwrites the prior choice
// @Tags         responses
// @Accept       json
// @Produce      json
// @Param        request body SubmitResponseRequest true "Vote data"
// @Success      200 {object} models.Response
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/responses [post]
func (h *ResponseHandler) Submit(c *gin.Context) {
	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	response, err := h.responseService.Submit(req.Token, req.QuestionID, req.AnswerOptionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, _ := h.sessionService.GetByToken(req.Token)
	if session != nil {
		h.hub.Broadcast(session.PollID, ws.WSMessage{
			Type: ws.EventResponseSubmitted,
			Data: gin.H{"poll_id": session.PollID, "question_id": req.QuestionID},
		})
	}

	c.JSON(http.StatusOK, response)
}

// Mine godoc
// @Summary      Get the session's current choices for a poll
// @Tags         responses
// @Param        id path int true "Poll ID"
// @Param        token query string true "Session token"
// @Success      200 {object} map[string]uint
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/polls/{id}/responses/mine [get]
func (h *ResponseHandler) Mine(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "token is required"})
		return
	}

	choices, err := h.responseService.Mine(token, pollID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"choices": choices})
}
