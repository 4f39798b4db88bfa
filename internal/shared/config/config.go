package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Blob container names. Paths into these containers are computed strings;
// this service never reads or writes blob contents.
const (
	EmailAttachmentsContainer   = "email-attachments"
	ProcessedDocumentsContainer = "processed-documents"
	TrainingDataContainer       = "training-data"
)

// Config holds application configuration. It is built once at process start
// and passed by reference; there is no ambient global state.
type Config struct {
	Port            string
	DatabaseURL     string
	Env             string
	CORSAllowOrigin []string

	StorageAccountName string

	DocumentIntelligenceEndpoint string
	DocumentIntelligenceKey      string

	// Declared processing limits. They are surfaced to later processing
	// stages; the intake path itself does not enforce them.
	MinConfidenceThreshold  float64
	SupportedDocumentTypes  []string
	SupportedFileExtensions []string
	MaxFileSizeMB           int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of a local env file for dev convenience.
	_ = godotenv.Load()

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:                         getEnv("PORT", "8080"),
		DatabaseURL:                  dbURL,
		Env:                          env,
		CORSAllowOrigin:              splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		StorageAccountName:           getEnv("STORAGE_ACCOUNT_NAME", "acctaxstorage"),
		DocumentIntelligenceEndpoint: getEnv("DOCUMENT_INTELLIGENCE_ENDPOINT", ""),
		DocumentIntelligenceKey:      getEnv("DOCUMENT_INTELLIGENCE_KEY", ""),
		MinConfidenceThreshold:       getEnvFloat("MIN_CONFIDENCE_THRESHOLD", 85.0),
		SupportedDocumentTypes:       splitAndTrim(getEnv("SUPPORTED_DOCUMENT_TYPES", "T4,T4A,T5,T4E,T5008")),
		SupportedFileExtensions:      splitAndTrim(getEnv("SUPPORTED_FILE_EXTENSIONS", ".pdf,.jpg,.jpeg,.png")),
		MaxFileSizeMB:                getEnvInt("MAX_FILE_SIZE_MB", 10),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config: %s invalid float: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
