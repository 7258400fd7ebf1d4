package config

import (
	"os"
	"strconv"
)

type Config struct {
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	JWTSecret              string
	ServerPort             string
	BootstrapAdminUsername string
	BootstrapAdminPassword string
	ActiveWindowMinutes    int
}

func Load() *Config {
	return &Config{
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 getEnv("DB_USER", "postgres"),
		DBPassword:             getEnv("DB_PASSWORD", "postgres"),
		DBName:                 getEnv("DB_NAME", "classpoll"),
		JWTSecret:              getEnv("JWT_SECRET", "super-secret-key-change-me"),
		ServerPort:             getEnv("SERVER_PORT", "8080"),
		BootstrapAdminUsername: getEnv("BOOTSTRAP_ADMIN_USERNAME", ""),
		BootstrapAdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),
		ActiveWindowMinutes:    getEnvAsInt("ACTIVE_WINDOW_MINUTES", 30),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if val, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return val
	}
	return fallback
}
