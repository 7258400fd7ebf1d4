package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dw4085/live-polling-app/internal/results"
	"github.com/dw4085/live-polling-app/internal/services"

	"github.com/gin-gonic/gin"
)

type ResultsHandler struct {
	resultsService *services.ResultsService
	sessionService *services.SessionService
}

func NewResultsHandler(resultsService *services.ResultsService, sessionService *services.SessionService) *ResultsHandler {
	return &ResultsHandler{resultsService: resultsService, sessionService: sessionService}
}

// PollResults godoc
// @Summary      Per-question response counts for a poll
// @Description  Participants only see questions with revealed results; admins see everything
// @Tags         results
// @Param        id path int true "Poll ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/polls/{id}/results [get]
func (h *ResultsHandler) PollResults(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	questions, err := h.resultsService.PollResults(pollID, adminView(c))
	if err != nil {
		if err.Error() == "poll not found" {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	active, err := h.sessionService.ActiveCount(pollID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"poll_id":             pollID,
		"questions":           questions,
		"active_participants": active,
	})
}

// CrossTab godoc
// @Summary      Two-question contingency matrix
// @Description  Counts only sessions that answered both questions
// @Tags         results
// @Param        id path int true "Poll ID"
// @Param        q1 query int true "First question ID"
// @Param        q2 query int true "Second question ID"
// @Success      200 {object} results.CrossTab
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/polls/{id}/crosstab [get]
func (h *ResultsHandler) CrossTab(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid poll id"})
		return
	}

	q1, err1 := strconv.ParseUint(c.Query("q1"), 10, 64)
	q2, err2 := strconv.ParseUint(c.Query("q2"), 10, 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "q1 and q2 question ids are required"})
		return
	}

	crosstab, err := h.resultsService.CrossTab(pollID, uint(q1), uint(q2), adminView(c))
	if err != nil {
		switch {
		case errors.Is(err, results.ErrInsufficientData):
			// Not an error for callers: render a message instead of a chart.
			c.JSON(http.StatusOK, gin.H{
				"insufficient_data": true,
				"message":           "not enough responses to cross-tabulate",
			})
		case errors.Is(err, results.ErrDuplicateResponse):
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "data integrity error"})
		case err.Error() == "results are not revealed for this question":
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case err.Error() == "poll not found" || err.Error() == "question not found":
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, crosstab)
}
