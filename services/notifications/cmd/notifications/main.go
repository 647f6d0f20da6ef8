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
	"jobboard/services/notifications/internal/app"
	"jobboard/services/notifications/internal/config"
	"jobboard/services/notifications/internal/server"
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
	if cfg.AMQPURL != "" {
		ch, err := delivery.NewAMQPChannel(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			log.Fatalf("failed to init delivery channel: %v", err)
		}
		defer ch.Close()
		appCfg.Channel = ch
		logger.Info("push delivery via rabbitmq", "queue", cfg.AMQPQueue)
	} else {
		logger.Warn("amqpURL not set; push deliveries are simulated")
	}
	appCore, err := app.New(appCfg)
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}
	httpServer := server.New(server.Config{App: appCore, Verifier: verifier})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := serve.Run(ctx, "notifications", cfg.Addr(), httpServer.Router()); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
