package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
)

// Config carries everything the process needs from the environment.
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret []byte

	GeminiAPIKey string
	GeminiModel  string

	AWSRegion      string
	S3Bucket       string
	CDNBaseURL     string
	SESSender      string
	SNSPlatformARN string
}

// Load reads .env when present, then the environment. JWT_SECRET is the only
// hard requirement; AWS-backed features degrade when their settings are empty.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment")
	}

	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		DBHost:         getenv("DB_HOST", "localhost"),
		DBUser:         getenv("DB_USER", "postgres"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         getenv("DB_NAME", "carepulse"),
		DBPort:         getenv("DB_PORT", "5432"),
		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    os.Getenv("GEMINI_MODEL"),
		AWSRegion:      getenv("AWS_REGION", "us-east-1"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		CDNBaseURL:     os.Getenv("CDN_BASE_URL"),
		SESSender:      os.Getenv("SES_SENDER"),
		SNSPlatformARN: os.Getenv("SNS_PLATFORM_ARN"),
	}
	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// OpenDB connects to Postgres and migrates the schema.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.FoodScan{},
		&models.MealSchedule{},
		&models.Summary{},
		&models.Notification{},
		&models.UserDevice{},
	)
	if err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
