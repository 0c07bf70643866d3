package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr     string
	LogLevel string

	Catalog    CatalogConfig
	Redis      RedisConfig
	Enrichment EnrichmentConfig
	Auth       AuthConfig
}

// CatalogConfig selects where the rule catalog is loaded from. Precedence:
// DatabaseURL, then Path, then the embedded catalog.
type CatalogConfig struct {
	Path           string
	DatabaseURL    string
	VisaLinksPath  string
	ResultCacheTTL time.Duration
}

// RedisConfig configures the optional shared result cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// EnrichmentConfig configures the optional enrichment collaborators. Empty URLs
// disable the corresponding source.
type EnrichmentConfig struct {
	ExplainerURL string
	VisaAPIURL   string
	VisaAPIKey   string
	VisaAPIRPS   float64
	Timeout      time.Duration
}

// AuthConfig configures employee bearer-token validation.
type AuthConfig struct {
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:     envString("TRIPCHECK_ADDR", ":8080"),
		LogLevel: envString("LOG_LEVEL", "INFO"),
		Catalog: CatalogConfig{
			Path:           os.Getenv("CATALOG_PATH"),
			DatabaseURL:    os.Getenv("CATALOG_DATABASE_URL"),
			VisaLinksPath:  os.Getenv("VISA_LINKS_PATH"),
			ResultCacheTTL: envDuration("RESULT_CACHE_TTL", 10*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Enrichment: EnrichmentConfig{
			ExplainerURL: os.Getenv("EXPLAINER_URL"),
			VisaAPIURL:   os.Getenv("VISA_API_URL"),
			VisaAPIKey:   os.Getenv("VISA_API_KEY"),
			VisaAPIRPS:   envFloat("VISA_API_RPS", 5),
			Timeout:      envDuration("ENRICHMENT_TIMEOUT", 2*time.Second),
		},
		Auth: AuthConfig{
			// Development default; override in every deployed environment.
			JWTSigningKey: envString("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     envString("JWT_ISSUER", "tripcheck"),
			JWTAudience:   envString("JWT_AUDIENCE", "tripcheck-api"),
		},
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && v > 0 {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}
