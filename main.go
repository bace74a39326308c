// main.go
package main

import (
	"context"
	"log"
	"time"

	"movie-booking/cmd"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/data/repository/memory"
	"movie-booking/internal/event"
	"movie-booking/internal/wire"
	"movie-booking/pkg/database"
	"movie-booking/pkg/middleware"
	"movie-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.Store.Driver),
		zap.String("error_status_mode", config.App.ErrorStatusMode),
		zap.Bool("debug", config.App.Debug),
	)

	repos, closeStore := openStore(config, logger)
	defer closeStore()

	publisher := openPublisher(config, logger)
	defer publisher.Close()

	limiter, closeLimiter := openLimiter(config, logger)
	defer closeLimiter()

	app := wire.Wiring(repos, publisher, limiter, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}

func openStore(config *utils.Config, logger *zap.Logger) (*repository.Repository, func()) {
	if config.Store.Driver == utils.StoreDriverMemory {
		logger.Warn("Using in-memory store, data is lost on exit")
		return memory.New().Repository(), func() {}
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Database schema applied")
	}

	return repository.NewRepository(db, logger), db.Close
}

// openPublisher falls back to dropping events when the broker is unreachable.
func openPublisher(config *utils.Config, logger *zap.Logger) event.Publisher {
	if !config.Events.Enabled {
		return event.NoopPublisher{}
	}

	publisher, err := event.NewAMQPPublisher(config.Events.AMQPURL, config.Events.Queue, logger)
	if err != nil {
		logger.Warn("Event publishing disabled", zap.Error(err))
		return event.NoopPublisher{}
	}

	logger.Info("Publishing booking events", zap.String("queue", config.Events.Queue))
	return publisher
}

// openLimiter returns nil when rate limiting is off. With REDIS_ADDR set the
// budget is shared through redis, otherwise it is kept per process.
func openLimiter(config *utils.Config, logger *zap.Logger) (middleware.Limiter, func()) {
	if !config.RateLimit.Enabled {
		return nil, func() {}
	}

	if config.Redis.Addr == "" {
		return middleware.NewLocalLimiter(config.RateLimit.RPS, config.RateLimit.Burst), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, using local rate limiter", zap.Error(err))
		_ = rdb.Close()
		return middleware.NewLocalLimiter(config.RateLimit.RPS, config.RateLimit.Burst), func() {}
	}

	logger.Info("Using redis rate limiter", zap.String("addr", config.Redis.Addr))
	return middleware.NewRedisLimiter(rdb, config.App.Name+":ratelimit", config.RateLimit.Burst), func() { _ = rdb.Close() }
}
