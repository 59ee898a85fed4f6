package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Identity tokens
	JWTSecret   string
	AuthLeeway  time.Duration
	AuthTimeout time.Duration

	// Luma calendar sync
	LumaAPIKey       string
	LumaAPIURL       string
	LumaCalendarID   string
	LumaSyncInterval time.Duration

	// Transactional email (Resend)
	ResendAPIKey string
	ResendFrom   string

	// Image uploads
	S3Bucket     string
	S3Region     string
	UploadExpiry time.Duration

	// Server
	Port        string
	CORSOrigins string

	// Survey definitions
	SurveysPath string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "community_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		AuthLeeway:  parseDuration(getEnv("AUTH_LEEWAY", "5m"), 5*time.Minute),
		AuthTimeout: parseDuration(getEnv("AUTH_TIMEOUT", "2s"), 2*time.Second),

		LumaAPIKey:       getEnv("LUMA_API_KEY", ""),
		LumaAPIURL:       getEnv("LUMA_API_URL", "https://api.lu.ma/public/v1"),
		LumaCalendarID:   getEnv("LUMA_CALENDAR_ID", ""),
		LumaSyncInterval: parseDuration(getEnv("LUMA_SYNC_INTERVAL", "15m"), 15*time.Minute),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		ResendFrom:   getEnv("RESEND_FROM", "community@example.org"),

		S3Bucket:     getEnv("S3_BUCKET", ""),
		S3Region:     getEnv("S3_REGION", "us-east-1"),
		UploadExpiry: parseDuration(getEnv("UPLOAD_EXPIRY", "15m"), 15*time.Minute),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		SurveysPath: getEnv("SURVEYS_PATH", "surveys.yaml"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
