package handlers

import (
	"strconv"

	"github.com/dw4085/live-polling-app/internal/models"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Poll = models.Poll
type Question = models.Question
type Admin = models.Admin

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// adminView reports whether the requester authenticated as an admin, as
// recorded by JWTAuth or OptionalAuth.
func adminView(c *gin.Context) bool {
	_, ok := c.Get("admin_id")
	return ok
}

func isSuperadmin(c *gin.Context) bool {
	return c.GetString("admin_role") == models.RoleSuperadmin
}
