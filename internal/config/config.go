package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JwtSecret  string
	Issuer     string
	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	ServerPort string

	// Approval policy file (optional; built-in defaults apply when unset).
	PolicyPath string

	// Marker used by rejection analytics to single out the reporting cohort.
	AnalyticsMarkerField string
	AnalyticsMarkerValue string

	// Notification gateway.
	WhatsAppGatewayURL string
	WhatsAppToken      string
	NotifyTimeout      time.Duration

	// Report export storage.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("ISSUER", "formgate")
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "formgate")
	ServerPort = getEnv("SERVER_PORT", "8080")

	PolicyPath = getEnv("POLICY_PATH", "")

	AnalyticsMarkerField = getEnv("ANALYTICS_MARKER_FIELD", "serviceDuration")
	AnalyticsMarkerValue = getEnv("ANALYTICS_MARKER_VALUE", "12")

	WhatsAppGatewayURL = getEnv("WHATSAPP_GATEWAY_URL", "")
	WhatsAppToken = getEnv("WHATSAPP_TOKEN", "")
	notifySeconds, _ := strconv.Atoi(getEnv("NOTIFY_TIMEOUT_SECONDS", "25"))
	NotifyTimeout = time.Duration(notifySeconds) * time.Second

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "formgate-reports")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
