package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Analysis AnalysisConfig
	NER      NERConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type StorageConfig struct {
	MaxFileSize int64
}

type AnalysisConfig struct {
	SkillVocabulary string
	NamePolicy      string
}

type NERConfig struct {
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	MaxRetries   int
	ChunkSize    int
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Analysis: AnalysisConfig{
			SkillVocabulary: getEnv("SKILL_VOCABULARY", "Python,Machine Learning,Data Analysis,Power BI,SQL"),
			NamePolicy:      getEnv("NAME_POLICY", "last-wins"),
		},
		NER: NERConfig{
			Provider:     getEnv("NER_PROVIDER", "prose"),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			MaxRetries:   getEnvAsInt("NER_MAX_RETRIES", 3),
			ChunkSize:    getEnvAsInt("NER_CHUNK_SIZE", 4000),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: getEnvAsBool("LOG_DEBUG", false),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
