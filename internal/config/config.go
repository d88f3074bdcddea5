package config

import (
	"errors"
	"os"
	"strconv"
)

// Config collects every environment-driven setting at startup. The two
// secrets are read exactly once here and injected where needed; nothing
// else in the process touches the environment for them, and they must
// never be logged.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	SessionSecret  []byte
	DownloadSecret []byte

	// DefaultDownloadLimit applies to products without an explicit limit.
	DefaultDownloadLimit int
}

func Load() (Config, error) {
	cfg := Config{
		Port:           getenv("PORT", "8080"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017/digital_downloads"),
		MongoDB:        getenv("MONGO_DB", "digital_downloads"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getenv("MINIO_BUCKET", "product-files"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		SessionSecret:  []byte(os.Getenv("JWT_SECRET")),
		DownloadSecret: []byte(os.Getenv("DOWNLOAD_SECRET")),
	}

	if len(cfg.SessionSecret) == 0 {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if len(cfg.DownloadSecret) == 0 {
		return Config{}, errors.New("DOWNLOAD_SECRET is required")
	}

	limit, err := strconv.Atoi(getenv("DEFAULT_DOWNLOAD_LIMIT", "3"))
	if err != nil || limit < 1 {
		return Config{}, errors.New("DEFAULT_DOWNLOAD_LIMIT must be a positive integer")
	}
	cfg.DefaultDownloadLimit = limit

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
