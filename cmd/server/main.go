package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/beertally/internal/common/clock"
	"github.com/KirkDiggler/beertally/internal/common/uuid"
	"github.com/KirkDiggler/beertally/internal/config"
	"github.com/KirkDiggler/beertally/internal/handlers/api"
	"github.com/KirkDiggler/beertally/internal/handlers/discord"
	tallyRepo "github.com/KirkDiggler/beertally/internal/repositories/tally"
	"github.com/KirkDiggler/beertally/internal/services/messaging"
	tallyService "github.com/KirkDiggler/beertally/internal/services/tally"
	"github.com/KirkDiggler/beertally/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log, logger.DefaultServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	// Initialize the repository for the configured store
	repo, closer, err := newRepository(cfg, log)
	if err != nil {
		log.Fatal("Failed to create tally repository", zap.String(logger.FieldStore, cfg.Store), zap.Error(err))
	}
	defer closer.Close()

	svc, err := tallyService.New(&tallyService.Config{
		Repository:          repo,
		Clock:               clock.New(),
		UUIDGenerator:       uuid.New(),
		Logger:              log,
		Location:            cfg.Location,
		DefaultParticipants: cfg.DefaultParticipants,
	})
	if err != nil {
		log.Fatal("Failed to create tally service", zap.Error(err))
	}

	msgSvc, err := messaging.New(&messaging.Config{})
	if err != nil {
		log.Fatal("Failed to create messaging service", zap.Error(err))
	}

	handler, err := api.New(&api.Config{
		TallyService:     svc,
		MessagingService: msgSvc,
		Logger:           log,
		CORSOrigins:      cfg.CORSOrigins,
	})
	if err != nil {
		log.Fatal("Failed to create API handler", zap.Error(err))
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr), zap.String(logger.FieldStore, cfg.Store))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	var bot *discord.Bot
	if cfg.DiscordEnabled() {
		bot, err = discord.New(&discord.Config{
			Token:            cfg.DiscordToken,
			ApplicationID:    cfg.ApplicationID,
			GuildID:          cfg.GuildID,
			TallyService:     svc,
			MessagingService: msgSvc,
			Logger:           log,
		})
		if err != nil {
			log.Fatal("Failed to create Discord bot", zap.Error(err))
		}

		if err := bot.Start(); err != nil {
			log.Fatal("Failed to start Discord bot", zap.Error(err))
		}
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if bot != nil {
		if err := bot.Stop(); err != nil {
			log.Error("Error stopping Discord bot", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Error shutting down HTTP server", zap.Error(err))
	}

	log.Info("Server has been shut down")
}

// newRepository connects to the configured store. The returned closer releases the connection.
func newRepository(cfg *config.Config, log *zap.Logger) (tallyRepo.Repository, io.Closer, error) {
	switch cfg.Store {
	case config.StoreRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		repo, err := tallyRepo.NewRedis(&tallyRepo.Config{
			RedisClient: redisClient,
		})
		if err != nil {
			redisClient.Close()
			return nil, nil, err
		}
		return repo, redisClient, nil

	case config.StoreSQLite, config.StorePostgres:
		dsn := cfg.SQLitePath
		if cfg.Store == config.StorePostgres {
			dsn = cfg.PostgresDSN
		}

		db, dialect, err := tallyRepo.OpenGorm(cfg.Store, dsn)
		if err != nil {
			return nil, nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}

		repo, err := tallyRepo.NewGorm(&tallyRepo.GormConfig{
			DB:      db,
			Dialect: dialect,
			Logger:  log,
		})
		if err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return repo, sqlDB, nil
	}

	return nil, nil, fmt.Errorf("unsupported store %q", cfg.Store)
}
