package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	DBPath        string
	TokenLifetime time.Duration
	AdminUsername string
	AdminPassword string
	AdminName     string
	CORSOrigins   string
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:          GetEnv("PORT", "3000"),
		Env:           GetEnv("ENV", "development"),
		DBPath:        GetEnv("DB_PATH", "./data/project-tracker.db"),
		TokenLifetime: getDuration("TOKEN_LIFETIME", 2*time.Hour),
		AdminUsername: GetEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: GetEnv("ADMIN_PASSWORD", ""),
		AdminName:     GetEnv("ADMIN_NAME", "Administrator"),
		CORSOrigins:   GetEnv("CORS_ORIGINS", "*"),
	}

	if AppConfig.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("%s must be a duration like 2h or 30m: %v", key, err)
	}
	return d
}
