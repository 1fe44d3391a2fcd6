package config

import (
	"fmt"
	"os"
)

// Config 应用配置
type Config struct {
	Env             string
	Port            string
	TMDBAPIKey      string
	TMDBBaseURL     string
	DefaultLanguage string
	StorageDriver   string // json 或 postgres
	DataDir         string
	DatabaseURL     string
	FrontendDir     string
}

// Load 加载配置
func Load() *Config {
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "moviemate")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	apiKey := getEnv("TMDB_API_KEY", "")
	if apiKey == "" {
		fmt.Println("【警告】未设置 TMDB_API_KEY，上游目录请求将全部失败")
	}

	return &Config{
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "5000"),
		TMDBAPIKey:      apiKey,
		TMDBBaseURL:     getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "ru"),
		StorageDriver:   getEnv("STORAGE_DRIVER", "json"),
		DataDir:         getEnv("DATA_DIR", "data"),
		DatabaseURL:     dbURL,
		FrontendDir:     getEnv("FRONTEND_DIR", "./web/frontend"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
