package main

import (
	"log"

	"ordersd/internal/auth/token"
	"ordersd/internal/config"
	"ordersd/internal/domain"
	"ordersd/internal/events"
	"ordersd/internal/infra/db"
	httpinfra "ordersd/internal/infra/http"
	"ordersd/internal/obs"
	"ordersd/internal/usecase"
)

func main() {
	cfg := config.FromEnv()
	logger := obs.NewLogger(cfg.LogLevel)

	var authenticator domain.Authenticator
	if cfg.AuthMode != "none" {
		validator, err := token.NewValidator(cfg)
		if err != nil {
			log.Fatalf("failed to init token validator: %v", err)
		}
		authenticator = validator
	}

	var sink events.Sink
	switch cfg.EventSink {
	case "redis":
		sink = events.NewRedisSink(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisEventChannel)
	default:
		sink = events.NewLogSink(logger)
	}
	publisher := events.NewPublisher(cfg.EventSource, sink, cfg.EventPublishTimeout, logger)
	defer publisher.Wait()

	store, err := db.NewStore(cfg)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}
	var repo usecase.OrderRepository
	if store.DB != nil {
		repo = db.NewOrderRepository(store.DB)
	} else {
		logger.Warn("POSTGRES_DSN not set; using in-memory order store")
		repo = db.NewMemoryOrderRepository()
	}

	orders := usecase.NewOrderService(repo, publisher, logger)
	srv := httpinfra.NewServer(cfg, httpinfra.ServerDeps{
		Orders:        orders,
		Authenticator: authenticator,
		Logger:        logger,
	})
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
