package database

import (
	"fmt"
	"log"

	"github.com/dw4085/live-polling-app/internal/config"
	"github.com/dw4085/live-polling-app/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Admin{},
		&models.Poll{},
		&models.Question{},
		&models.AnswerOption{},
		&models.Session{},
		&models.Response{},
		&models.ResultSnapshot{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	log.Println("database migrated")
}

// Bootstrap provisions the first superadmin from the environment. It runs
// once: if any approved superadmin already exists the credentials are ignored,
// so rotating the variables after setup has no effect.
func Bootstrap(db *gorm.DB, cfg *config.Config) {
	if cfg.BootstrapAdminUsername == "" || cfg.BootstrapAdminPassword == "" {
		return
	}

	var count int64
	db.Model(&models.Admin{}).
		Where("role = ? AND status = ?", models.RoleSuperadmin, models.AdminStatusApproved).
		Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash bootstrap password: %v", err)
	}

	admin := models.Admin{
		Username:     cfg.BootstrapAdminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleSuperadmin,
		Status:       models.AdminStatusApproved,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("failed to create bootstrap admin: %v", err)
	}
	log.Printf("bootstrap superadmin %q created", admin.Username)
}
