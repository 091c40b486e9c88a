package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	SNSFCMPlatformARN  string
	SNSAPNSPlatformARN string

	JWTPrivateKeyPath  string
	JWTPublicKeyPath   string
	JWTExpiry          time.Duration
	RefreshTokenExpiry time.Duration
	GoogleClientID     string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	OpenFoodFactsBaseURL string
	OpenAIAPIKey         string
	OpenAIBaseURL        string
	OpenAIModel          string
	PexelsAPIKey         string

	ReminderDispatchInterval time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users     string
	Sessions  string
	Devices   string
	Items     string
	Reminders string
	Locations string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:     getEnv("DYNAMO_TABLE_USERS", "users"),
			Sessions:  getEnv("DYNAMO_TABLE_SESSIONS", "sessions"),
			Devices:   getEnv("DYNAMO_TABLE_DEVICES", "devices"),
			Items:     getEnv("DYNAMO_TABLE_ITEMS", "inventory_items"),
			Reminders: getEnv("DYNAMO_TABLE_REMINDERS", "pending_reminders"),
			Locations: getEnv("DYNAMO_TABLE_LOCATIONS", "locations"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "fridge-item-photos"),

		SNSFCMPlatformARN:  getEnv("SNS_FCM_PLATFORM_ARN", ""),
		SNSAPNSPlatformARN: getEnv("SNS_APNS_PLATFORM_ARN", ""),

		JWTPrivateKeyPath:  getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:   getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:          time.Duration(getEnvInt("JWT_EXPIRY_DAYS", 7)) * 24 * time.Hour,
		RefreshTokenExpiry: time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRY_DAYS", 30)) * 24 * time.Hour,
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		OpenFoodFactsBaseURL: getEnv("OFF_BASE_URL", "https://world.openfoodfacts.org"),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		PexelsAPIKey:         getEnv("PEXELS_API_KEY", ""),

		ReminderDispatchInterval: time.Duration(getEnvInt("REMINDER_DISPATCH_INTERVAL_SECONDS", 60)) * time.Second,

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
