package handlers

import (
	"net/http"

	"github.com/dw4085/live-polling-app/internal/services"
	"github.com/dw4085/live-polling-app/internal/ws"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
	hub             *ws.Hub
}

func NewQuestionHandler(questionService *services.QuestionService, hub *ws.Hub) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, hub: hub}
}

type QuestionRequest struct {
	Text            string                 `json:"text" binding:"required"`
	ChartType       string                 `json:"chart_type"`
	VisibleToVoters *bool                  `json:"visible_to_voters"`
	Options         []services.OptionInput `json:"options"`
}

type VisibilityRequest struct {
	Visible bool `json:"visible"`
}

type ReorderRequest struct {
	QuestionIDs []uint `json:"question_ids" binding:"required"`
}

// CreateQuestion godoc
// @Summary      Add a question to a poll
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Poll ID"
// @Param        request body QuestionRequest true "Question data"
// @Success      201 {object} Question
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/polls/{id}/questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.CreateQuestion(pollID, c.GetUint("admin_id"), isSuperadmin(c), services.QuestionInput{
		Text:            req.Text,
		ChartType:       req.ChartType,
		VisibleToVoters: req.VisibleToVoters,
		Options:         req.Options,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.broadcastUpdate(question.PollID, question.ID)
	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary      Update a question
// @Description  Replacing the option set deletes prior responses to the question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Param        request body QuestionRequest true "Question data"
// @Success      200 {object} Question
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.UpdateQuestion(questionID, c.GetUint("admin_id"), isSuperadmin(c), services.QuestionInput{
		Text:            req.Text,
		ChartType:       req.ChartType,
		VisibleToVoters: req.VisibleToVoters,
		Options:         req.Options,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.broadcastUpdate(question.PollID, question.ID)
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Tags         questions
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	question, err := h.questionService.DeleteQuestion(questionID, c.GetUint("admin_id"), isSuperadmin(c))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	h.broadcastUpdate(question.PollID, question.ID)
	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}

// SetVisibility godoc
// @Summary      Show or hide a question for voters
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Param        request body VisibilityRequest true "Visibility flag"
// @Success      200 {object} Question
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/questions/{id}/visibility [post]
func (h *QuestionHandler) SetVisibility(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.SetVisibility(questionID, c.GetUint("admin_id"), isSuperadmin(c), req.Visible)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.broadcastUpdate(question.PollID, question.ID)
	c.JSON(http.StatusOK, question)
}

// Reveal godoc
// @Summary      Reveal or hide results for a single question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Param        request body RevealRequest true "Reveal flag"
// @Success      200 {object} Question
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/questions/{id}/reveal [post]
func (h *QuestionHandler) Reveal(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var req RevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.SetResultsRevealed(questionID, c.GetUint("admin_id"), isSuperadmin(c), req.Revealed)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(question.PollID, ws.WSMessage{
		Type: ws.EventResultsRevealed,
		Data: gin.H{"poll_id": question.PollID, "question_id": question.ID, "revealed": question.ResultsRevealed},
	})

	c.JSON(http.StatusOK, question)
}

// Reorder godoc
// @Summary      Reorder a poll's questions
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Poll ID"
// @Param        request body ReorderRequest true "Question IDs in new order"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/polls/{id}/reorder [put]
func (h *QuestionHandler) Reorder(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.questionService.Reorder(pollID, c.GetUint("admin_id"), isSuperadmin(c), req.QuestionIDs); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.broadcastUpdate(pollID, 0)
	c.JSON(http.StatusOK, MessageResponse{Message: "questions reordered"})
}

// VisibleQuestions godoc
// @Summary      List voter-visible questions for a poll
// @Tags         questions
// @Param        id path int true "Poll ID"
// @Success      200 {array} Question
// @Router       /api/v1/polls/{id}/questions [get]
func (h *QuestionHandler) VisibleQuestions(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	questions, err := h.questionService.VisibleQuestions(pollID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) broadcastUpdate(pollID, questionID uint) {
	data := gin.H{"poll_id": pollID}
	if questionID != 0 {
		data["question_id"] = questionID
	}
	h.hub.Broadcast(pollID, ws.WSMessage{Type: ws.EventQuestionUpdated, Data: data})
}
