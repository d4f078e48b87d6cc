package config

import (
	"github.com/joho/godotenv"
	"log"
	"os"
	"strconv"
	"time"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Config struct {
	AppEnv          string
	ServerPort      int
	DB              DB
	MinIO           MinIO
	SMTP            SMTP
	JWTSecretKey    string
	TokenDuration   time.Duration
	SessionDuration time.Duration
	OTPDuration     time.Duration
	GoogleClientID  string
	GoogleTokenURL  string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "campusmarket"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "photos"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadSMTP() SMTP {
	return SMTP{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     getEnvAsInt("SMTP_PORT", 587),
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@campusmarket.app"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		ServerPort:      getEnvAsInt("SERVER_PORT", 8080),
		DB:              LoadDB(),
		MinIO:           LoadMinIO(),
		SMTP:            LoadSMTP(),
		JWTSecretKey:    getEnv("JWT_SECRET_KEY", ""),
		TokenDuration:   parseDuration(getEnv("TOKEN_DURATION", "168h"), 168*time.Hour),
		SessionDuration: parseDuration(getEnv("SESSION_DURATION", "168h"), 168*time.Hour),
		OTPDuration:     parseDuration(getEnv("OTP_DURATION", "10m"), 10*time.Minute),
		GoogleClientID:  getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleTokenURL:  getEnv("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/tokeninfo"),
	}
}

// IsProduction reports whether the OTP must be suppressed from API responses.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
