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
	"jobboard/services/profile/internal/app"
	"jobboard/services/profile/internal/config"
	"jobboard/services/profile/internal/server"
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
	appCore, err := app.New(app.Config{DatabaseURL: cfg.DatabaseURL})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}
	httpServer := server.New(server.Config{App: appCore, Verifier: verifier})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := serve.Run(ctx, "profile", cfg.Addr(), httpServer.Router()); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
