package services

import (
	"errors"

	"github.com/dw4085/live-polling-app/internal/models"

	"gorm.io/gorm"
)

// AdminService covers the superadmin-only account management surface.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) ListAdmins() ([]models.Admin, error) {
	var admins []models.Admin
	if err := s.db.Order("created_at ASC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (s *AdminService) SetStatus(adminID uint, status string) (*models.Admin, error) {
	if status != models.AdminStatusApproved && status != models.AdminStatusRejected {
		return nil, errors.New("invalid status")
	}

	var admin models.Admin
	if err := s.db.First(&admin, adminID).Error; err != nil {
		return nil, errors.New("admin not found")
	}
	if admin.Role == models.RoleSuperadmin {
		return nil, errors.New("cannot change a superadmin's status")
	}

	admin.Status = status
	if err := s.db.Save(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
