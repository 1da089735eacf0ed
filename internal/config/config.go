package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseURL         string
	JWTSecret           string
	JWTIssuer           string
	AccessTTLSeconds    int64
	MinioEndpoint       string
	MinioPublicEndpoint string
	MinioAccessKey      string
	MinioSecretKey      string
	MinioBucket         string
	AttachmentMaxBytes  int64
	DataDir             string
	TrainDataObject     string
	SubjectAreaObject   string
	TargetAttrObject    string
	MetricsDiskPath     string
	MetricsSampleSecs   int
	CorsOrigins         []string
}

func Load() Config {
	endpoint := mustEnv("MINIO_ENDPOINT")
	return Config{
		DatabaseURL:         mustEnv("DATABASE_URL"),
		JWTSecret:           mustEnv("JWT_SECRET"),
		JWTIssuer:           envOr("JWT_ISSUER", "education-backend"),
		AccessTTLSeconds:    int64(envOrInt("ACCESS_TTL_SECONDS", 3600)),
		MinioEndpoint:       endpoint,
		MinioPublicEndpoint: envOr("MINIO_PUBLIC_ENDPOINT", endpoint),
		MinioAccessKey:      mustEnv("MINIO_ACCESS_KEY"),
		MinioSecretKey:      mustEnv("MINIO_SECRET_KEY"),
		MinioBucket:         envOr("MINIO_BUCKET", "attachments"),
		AttachmentMaxBytes:  int64(envOrInt("ATTACHMENT_MAX_BYTES", 10485760)),
		DataDir:             envOr("DATA_DIR", "storage/data"),
		TrainDataObject:     envOr("TRAIN_DATA_OBJECT", "train_data_fixed.csv"),
		SubjectAreaObject:   envOr("SUBJECT_AREA_OBJECT", "subject_area.txt"),
		TargetAttrObject:    envOr("TARGET_ATTRIBUTE_OBJECT", "target_attribute.txt"),
		MetricsDiskPath:     envOr("METRICS_DISK_PATH", "storage/data"),
		MetricsSampleSecs:   envOrInt("METRICS_SAMPLE_INTERVAL", 5),
		CorsOrigins:         parseCSV(envOr("CORS_ORIGINS", "")),
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
