package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	httpadapter "ontologycatalog/src/adapters/http"
	"ontologycatalog/src/adapters/web"
	"ontologycatalog/src/helper/env"
	"ontologycatalog/src/infra/kafka"
	"ontologycatalog/src/infra/postgres"
	"ontologycatalog/src/infra/redis"
	"ontologycatalog/src/repositories"
	"ontologycatalog/src/services/catalog"
	"ontologycatalog/src/services/events"

	"go.uber.org/fx"
)

func main() {
	// Configurar logger
	log.SetOutput(os.Stdout)
	log.Println("Starting ontology catalog API with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newCatalogRepository,
			newEventPublisher,
			catalog.NewCatalogService,
			newWebHandler,
			newServer,
		),

		// Invocations
		fx.Invoke(seedDefaults, registerServerHooks),
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for app to exit gracefully
	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// newCatalogRepository escolhe o backend (memory ou postgres) e, com REDIS_HOSTS,
// envolve o repositório no cache.
func newCatalogRepository(lc fx.Lifecycle, logger *slog.Logger) (repositories.CatalogRepository, error) {
	var catalogRepository repositories.CatalogRepository

	switch backend := env.GetString("STORE_BACKEND", "memory"); backend {
	case "memory":
		catalogRepository = repositories.NewMemoryCatalogRepository()

	case "postgres":
		readWriteClient, err := newReadWriteClient()
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				readWriteClient.Close()
				return nil
			},
		})

		if env.GetBool("DB_AUTO_MIGRATE", true) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := postgres.EnsureSchema(ctx, readWriteClient.GetWritePool()); err != nil {
				readWriteClient.Close()
				return nil, err
			}
		}

		catalogRepository = repositories.NewPostgresCatalogRepository(readWriteClient)

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (expected memory or postgres)", backend)
	}

	logger.Info("Catalog store configured", "backend", env.GetString("STORE_BACKEND", "memory"))

	redisHosts := env.GetString("REDIS_HOSTS")
	if redisHosts == "" {
		return catalogRepository, nil
	}

	redisClient := newRedisClient(redisHosts)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return redisClient.Close()
		},
	})

	logger.Info("Redis cache enabled", "hosts", redisHosts)

	return repositories.NewCachedCatalogRepository(catalogRepository, redisClient, logger), nil
}

func newReadWriteClient() (*postgres.ReadWriteClient, error) {
	dbWriteHost := env.MustGetString("DB_HOST")
	dbWritePort := env.GetString("DB_PORT", "5432")
	dbReadHost := env.GetString("DB_READ_HOST", dbWriteHost)
	dbReadPort := env.GetString("DB_READ_PORT", dbWritePort)
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
}

func newRedisClient(redisHosts string) *redis.RedisClient {
	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 50)
	redisDefaultTTLSeconds := env.GetInt("REDIS_DEFAULT_TTL_SECONDS", 120)
	redisDefaultTTL := time.Duration(redisDefaultTTLSeconds) * time.Second

	return redis.NewRedisClient(redisHosts, redisPoolSize, redisDefaultTTL)
}

// newEventPublisher publica no Kafka quando KAFKA_BROKERS está definido; caso contrário é no-op.
func newEventPublisher(lc fx.Lifecycle, logger *slog.Logger) (catalog.EventPublisher, error) {
	brokers := env.GetString("KAFKA_BROKERS")
	if brokers == "" {
		logger.Info("KAFKA_BROKERS not set, catalog events disabled")
		return events.NoopEventPublisher{}, nil
	}

	// Sem consumer group: a API só publica.
	kafkaClient, err := kafka.NewKafkaClient(brokers, "", 0)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return kafkaClient.Close()
		},
	})

	topic := env.GetString("KAFKA_CATALOG_EVENTS_TOPIC", "catalog-events")

	return events.NewCatalogEventPublisher(logger, kafkaClient, topic), nil
}

func newWebHandler(logger *slog.Logger, catalogService *catalog.CatalogService) (*web.Handler, error) {
	return web.NewHandler(logger, catalogService)
}

func newServer(
	logger *slog.Logger,
	catalogService *catalog.CatalogService,
	webHandler *web.Handler,
) *httpadapter.Server {

	port := 8888 // default value
	if portStr := os.Getenv("SERVER_ADDR"); portStr != "" {
		if val, err := strconv.Atoi(portStr); err == nil {
			port = val
		}
	}

	allowedOrigins := env.GetStringSlice("CORS_ALLOWED_ORIGINS", "*")

	return httpadapter.NewServer(logger, port, allowedOrigins, catalogService, webHandler)
}

func seedDefaults(logger *slog.Logger, catalogService *catalog.CatalogService) error {
	if !env.GetBool("SEED_DEFAULTS", true) {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := catalogService.SeedDefaults(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed default catalog: %w", err)
	}

	logger.Info("Default catalog checked", "created", created)
	return nil
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, logger *slog.Logger, srv *httpadapter.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Start server in a separate goroutine
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Create timeout context for graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Server forced to shutdown", "error", err)
				return err
			}
			logger.Info("Server exited gracefully")
			return nil
		},
	})
}
