package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"tripcheck/internal/catalog"
	jwttoken "tripcheck/internal/jwt_token"
	"tripcheck/internal/letter"
	letterhandler "tripcheck/internal/letter/handler"
	"tripcheck/internal/notify"
	"tripcheck/internal/platform/config"
	"tripcheck/internal/platform/httpserver"
	"tripcheck/internal/platform/logger"
	"tripcheck/internal/platform/metrics"
	"tripcheck/internal/platform/middleware"
	"tripcheck/internal/platform/redis"
	"tripcheck/internal/trip"
	"tripcheck/internal/trip/adapters"
	tripcache "tripcheck/internal/trip/cache"
	"tripcheck/internal/trip/handler"
	tripmetrics "tripcheck/internal/trip/metrics"
	"tripcheck/internal/trip/ports"
	"tripcheck/pkg/platform/httputil"
	"tripcheck/pkg/platform/middleware/metadata"
	"tripcheck/pkg/platform/middleware/requesttime"
)

const shutdownTimeout = 10 * time.Second

// main wires dependencies and owns the server lifecycle. Business logic lives
// in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	cat, closeDB, err := loadCatalog(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	defer closeDB()
	for _, w := range cat.Warnings() {
		log.Warn("catalog warning", "warning", w)
	}
	log.Info("catalog loaded", "version", cat.Version(), "rules", cat.Len())

	links, err := loadVisaLinks(cfg.Catalog.VisaLinksPath)
	if err != nil {
		return err
	}

	appMetrics := metrics.New()
	appMetrics.SetCatalogRules(cat.Len())

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	var resultCache ports.ResultCache
	if redisClient != nil {
		defer redisClient.Close()
		resultCache = tripcache.NewRedisCache(redisClient.Client)
		log.Info("result cache", "backend", "redis")
	} else {
		resultCache = tripcache.NewMemoryCache()
		log.Info("result cache", "backend", "memory")
	}

	hub := notify.NewHub(notify.WithLogger(log))

	opts := []trip.Option{
		trip.WithVisaLinks(links),
		trip.WithCache(resultCache, cfg.Catalog.ResultCacheTTL),
		trip.WithNotifier(adapters.NewNotifierAdapter(hub)),
		trip.WithMetrics(tripmetrics.New()),
		trip.WithLogger(log),
		trip.WithEnrichmentTimeout(cfg.Enrichment.Timeout),
	}
	if url := cfg.Enrichment.ExplainerURL; url != "" {
		opts = append(opts, trip.WithExplainer(adapters.NewExplainerClient(url,
			adapters.WithClientLogger(log),
		)))
	}
	if url := cfg.Enrichment.VisaAPIURL; url != "" {
		opts = append(opts, trip.WithVisaStatus(adapters.NewVisaAPIClient(url, cfg.Enrichment.VisaAPIKey,
			adapters.WithRateLimit(cfg.Enrichment.VisaAPIRPS),
			adapters.WithClientLogger(log),
		)))
	}
	tripService, err := trip.NewService(cat, opts...)
	if err != nil {
		return fmt.Errorf("build trip service: %w", err)
	}

	letterService := letter.NewService(
		letter.WithLogger(log),
		letter.WithMetrics(letter.NewMetrics(prometheus.DefaultRegisterer)),
	)

	validator := jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService(
		cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience,
	))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.LatencyMiddleware(appMetrics))

	r.Get("/health", healthHandler(redisClient))
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.OptionalAuth(validator, log))
		handler.New(tripService, log).Register(r)
		letterhandler.New(letterService, log).Register(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, log))
		notify.NewWebSocketHandler(hub, log, nil).Register(r)
	})

	return httpserver.Run(ctx, httpserver.New(cfg.Addr, r), log, shutdownTimeout)
}

// loadCatalog follows the configured precedence: database, file, embedded.
// The returned close func is always safe to call.
func loadCatalog(ctx context.Context, cfg config.CatalogConfig) (*catalog.Catalog, func(), error) {
	noop := func() {}
	switch {
	case cfg.DatabaseURL != "":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open catalog database: %w", err)
		}
		closeDB := func() { _ = db.Close() }
		src := catalog.NewPostgresSource(db)
		if err := src.EnsureSchema(ctx); err != nil {
			closeDB()
			return nil, noop, err
		}
		cat, err := catalog.LoadFrom(ctx, src)
		if err != nil {
			closeDB()
			return nil, noop, err
		}
		return cat, closeDB, nil
	case cfg.Path != "":
		cat, err := catalog.LoadFrom(ctx, catalog.FileSource{Path: cfg.Path})
		return cat, noop, err
	default:
		cat, err := catalog.LoadFrom(ctx, catalog.EmbeddedSource{})
		return cat, noop, err
	}
}

func loadVisaLinks(path string) (*catalog.VisaLinks, error) {
	if path != "" {
		return catalog.LoadVisaLinksFile(path)
	}
	return catalog.EmbeddedVisaLinks()
}

func healthHandler(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok"}
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := redisClient.Health(ctx); err != nil {
				status["status"] = "degraded"
				status["redis"] = err.Error()
			} else {
				status["redis"] = "ok"
			}
		}
		httputil.WriteJSON(w, http.StatusOK, status)
	}
}
