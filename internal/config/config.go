package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BlobBackendGridFS = "gridfs"
	BlobBackendMinio  = "minio"

	CategoryDeleteDisabled = "disabled"
	CategoryDeleteCascade  = "cascade"
)

type Config struct {
	Port    string
	BaseURL string

	MongoURL   string
	MongoDB    string
	BlobBucket string

	BlobBackend    string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioRegion    string

	DatabaseURL string

	RedisURL             string
	RedisPassword        string
	RedisDB              int
	CategoryCacheEnabled bool
	CategoryCacheTTL     time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	CategoryDeletePolicy string
	BlobRetryInterval    time.Duration
	StoreTimeout         time.Duration

	LogLevel         string
	CORSAllowOrigins []string
}

// Load reads an optional .env file and resolves every key from the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// a missing .env is fine, the process environment still applies
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port:                 v.GetString("APP_PORT"),
		BaseURL:              strings.TrimRight(v.GetString("BASE_URL"), "/"),
		MongoURL:             v.GetString("MONGO_URL"),
		MongoDB:              v.GetString("MONGO_DB"),
		BlobBucket:           v.GetString("BLOB_BUCKET"),
		BlobBackend:          strings.ToLower(v.GetString("BLOB_BACKEND")),
		MinioEndpoint:        v.GetString("MINIO_ENDPOINT"),
		MinioAccessKey:       v.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:       v.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:          v.GetBool("MINIO_USE_SSL"),
		MinioRegion:          v.GetString("MINIO_REGION"),
		DatabaseURL:          v.GetString("DATABASE_URL"),
		RedisURL:             v.GetString("REDIS_URL"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		RedisDB:              v.GetInt("REDIS_DB"),
		CategoryCacheEnabled: v.GetBool("CATEGORY_CACHE_ENABLED"),
		CategoryCacheTTL:     v.GetDuration("CATEGORY_CACHE_TTL"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTTTL:               v.GetDuration("JWT_TTL"),
		CategoryDeletePolicy: strings.ToLower(v.GetString("CATEGORY_DELETE_POLICY")),
		BlobRetryInterval:    v.GetDuration("BLOB_RETRY_INTERVAL"),
		StoreTimeout:         v.GetDuration("STORE_TIMEOUT"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		CORSAllowOrigins:     splitList(v.GetString("CORS_ALLOW_ORIGINS")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8000")
	v.SetDefault("BASE_URL", "http://localhost:8000")
	v.SetDefault("MONGO_URL", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "catalog")
	v.SetDefault("BLOB_BUCKET", "images")
	v.SetDefault("BLOB_BACKEND", BlobBackendGridFS)
	v.SetDefault("MINIO_REGION", "us-east-1")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CATEGORY_CACHE_ENABLED", false)
	v.SetDefault("CATEGORY_CACHE_TTL", 5*time.Minute)
	v.SetDefault("JWT_TTL", 12*time.Hour)
	v.SetDefault("CATEGORY_DELETE_POLICY", CategoryDeleteDisabled)
	v.SetDefault("BLOB_RETRY_INTERVAL", 10*time.Minute)
	v.SetDefault("STORE_TIMEOUT", 10*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
}

// Validate reports every missing or inconsistent key at once.
func (c *Config) Validate() error {
	var errs []error
	required := map[string]string{
		"MONGO_URL":    c.MongoURL,
		"DATABASE_URL": c.DatabaseURL,
		"JWT_SECRET":   c.JWTSecret,
	}
	for key, val := range required {
		if strings.TrimSpace(val) == "" {
			errs = append(errs, fmt.Errorf("%s is required", key))
		}
	}

	switch c.BlobBackend {
	case BlobBackendGridFS:
	case BlobBackendMinio:
		if c.MinioEndpoint == "" || c.MinioAccessKey == "" || c.MinioSecretKey == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for the minio backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("BLOB_BACKEND must be %q or %q, got %q", BlobBackendGridFS, BlobBackendMinio, c.BlobBackend))
	}

	if c.CategoryDeletePolicy != CategoryDeleteDisabled && c.CategoryDeletePolicy != CategoryDeleteCascade {
		errs = append(errs, fmt.Errorf("CATEGORY_DELETE_POLICY must be %q or %q", CategoryDeleteDisabled, CategoryDeleteCascade))
	}
	if c.StoreTimeout <= 0 {
		errs = append(errs, errors.New("STORE_TIMEOUT must be positive"))
	}
	if c.BlobRetryInterval < 0 {
		errs = append(errs, errors.New("BLOB_RETRY_INTERVAL must not be negative"))
	}
	if c.CategoryCacheEnabled && c.CategoryCacheTTL <= 0 {
		errs = append(errs, errors.New("CATEGORY_CACHE_TTL must be positive when CATEGORY_CACHE_ENABLED is set"))
	}

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
