package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dw4085/live-polling-app/internal/services"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	pollService    *services.PollService
	resultsService *services.ResultsService
}

func NewExportHandler(pollService *services.PollService, resultsService *services.ResultsService) *ExportHandler {
	return &ExportHandler{pollService: pollService, resultsService: resultsService}
}

// Export godoc
// @Summary      Download a poll's results as CSV or JSON
// @Tags         polls
// @Security     BearerAuth
// @Param        id path int true "Poll ID"
// @Param        format query string false "csv or json (default json)"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/polls/{id}/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
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

	questions, err := h.resultsService.PollResults(pollID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	filename := fmt.Sprintf("poll-%d-results", poll.ID)

	if c.DefaultQuery("format", "json") == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))

		w := csv.NewWriter(c.Writer)
		w.Write([]string{"question", "option", "responses"})
		for _, q := range questions {
			for _, count := range q.Counts {
				w.Write([]string{q.Text, count.Text, strconv.Itoa(count.Count)})
			}
		}
		w.Flush()
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".json"))
	c.JSON(http.StatusOK, gin.H{
		"poll_id":   poll.ID,
		"title":     poll.Title,
		"state":     poll.State,
		"questions": questions,
	})
}
