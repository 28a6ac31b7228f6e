package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
// It is built once at startup and never mutated afterwards.
type Config struct {
	AppPort    string
	AppEnv     string
	AppVersion string
	LogLevel   string

	AWSRegion       string
	AWSEndpointURL  string // empty in prod, set to DynamoDB Local / LocalStack URL in dev
	AWSAccessKeyID  string
	AWSSecretKey    string
	AWSSessionToken string

	DynamoTable     string
	DynamoBootstrap bool

	SNSTopicARN    string // empty disables lifecycle events
	S3ExportBucket string // empty disables /exportTodos

	RateLimitRPS   float64 // 0 disables the write-route limiter
	RateLimitBurst int

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:    getEnv("APP_PORT", "3000"),
		AppEnv:     getEnv("APP_ENV", "development"),
		AppVersion: getEnv("APP_VERSION", "0.1.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		AWSRegion:       getEnv("AWS_REGION", "eu-west-1"),
		AWSEndpointURL:  getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID:  getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:    getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSSessionToken: getEnv("AWS_SESSION_TOKEN", ""),

		DynamoTable:     getEnv("DYNAMO_TABLE_TODOS", "TodoTable"),
		DynamoBootstrap: getEnvBool("DYNAMO_BOOTSTRAP", false),

		SNSTopicARN:    getEnv("SNS_TOPIC_ARN", ""),
		S3ExportBucket: getEnv("S3_EXPORT_BUCKET", ""),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
