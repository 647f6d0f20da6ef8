package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	sharedconfig "jobboard/internal/config"
	"jobboard/internal/serve"
	"jobboard/internal/usertoken"
	"jobboard/internal/util"
	"jobboard/pkg/delivery"
	"jobboard/services/mailing/internal/app"
	"jobboard/services/mailing/internal/config"
	"jobboard/services/mailing/internal/server"
)

func main() {
	cfg, err := config.Load(sharedconfig.Path())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := util.InitLogger(cfg.LogLevel)

	verifier, err := usertoken.NewHMACVerifier(cfg.Token())
	if err != nil {
		log.Fatalf("failed to init token verifier: %v", err)
	}
	appCfg := app.Config{DatabaseURL: cfg.DatabaseURL}
	if cfg.RedisAddr != "" {
		outbox, err := delivery.NewRedisStreamChannel(delivery.RedisStreamConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Stream:   cfg.OutboxStream,
			MaxLen:   cfg.OutboxMaxLen,
		})
		if err != nil {
			log.Fatalf("failed to init email outbox: %v", err)
		}
		defer outbox.Close()
		appCfg.Channel = outbox
		logger.Info("email delivery via redis stream", "stream", cfg.OutboxStream)
	} else {
		logger.Warn("redisAddr not set; email deliveries are simulated")
	}
	appCore, err := app.New(appCfg)
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}
	httpServer := server.New(server.Config{App: appCore, Verifier: verifier})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := serve.Run(ctx, "mailing", cfg.Addr(), httpServer.Router()); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
