package handlers

import (
	"net/http"

	"github.com/dw4085/live-polling-app/internal/models"
	"github.com/dw4085/live-polling-app/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListAdmins godoc
// @Summary      List all admin accounts
// @Tags         admins
// @Security     BearerAuth
// @Success      200 {array} Admin
// @Router       /api/v1/admins [get]
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.adminService.ListAdmins()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, admins)
}

// Approve godoc
// @Summary      Approve a pending admin
// @Tags         admins
// @Security     BearerAuth
// @Param        id path int true "Admin ID"
// @Success      200 {object} Admin
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admins/{id}/approve [post]
func (h *AdminHandler) Approve(c *gin.Context) {
	h.setStatus(c, models.AdminStatusApproved)
}

// Reject godoc
// @Summary      Reject a pending admin
// @Tags         admins
// @Security     BearerAuth
// @Param        id path int true "Admin ID"
// @Success      200 {object} Admin
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admins/{id}/reject [post]
func (h *AdminHandler) Reject(c *gin.Context) {
	h.setStatus(c, models.AdminStatusRejected)
}

func (h *AdminHandler) setStatus(c *gin.Context, status string) {
	adminID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid admin id"})
		return
	}

	admin, err := h.adminService.SetStatus(adminID, status)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, admin)
}
