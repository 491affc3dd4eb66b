package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Keys     APIKeys
	Ai       AIConfig
	Topics   TopicConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	MaxUploadMB        int
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	S3Bucket   string
	S3Region   string
	S3Endpoint string // optional, set for S3-compatible services
	LocalDir   string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	AnalysisModel   string
	ExtractionModel string
	TitleModel      string
	RequestTimeout  time.Duration
}

type TopicConfig struct {
	ExtractNotes string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			MaxUploadMB:        getEnvAsInt("MAX_UPLOAD_MB", 50),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			S3Bucket:   getEnv("S3_BUCKET", ""),
			S3Region:   getEnv("S3_REGION", "us-east-1"),
			S3Endpoint: getEnv("S3_ENDPOINT", ""),
			LocalDir:   getEnv("STORAGE_LOCAL_DIR", "./uploads"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			AnalysisModel:   getEnv("AI_ANALYSIS_MODEL", "gemini-2.0-flash"),
			ExtractionModel: getEnv("AI_EXTRACTION_MODEL", "gemini-2.0-flash-lite"),
			TitleModel:      getEnv("AI_TITLE_MODEL", "gemini-2.0-flash-lite"),
			RequestTimeout:  getEnvAsDuration("AI_REQUEST_TIMEOUT", 90*time.Second),
		},
		Topics: TopicConfig{
			ExtractNotes: getEnv("EXTRACT_NOTES_TOPIC_NAME", "EXTRACT_NOTES"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
