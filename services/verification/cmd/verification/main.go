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
	"jobboard/services/verification/internal/app"
	"jobboard/services/verification/internal/config"
	"jobboard/services/verification/internal/identity"
	"jobboard/services/verification/internal/server"
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
	if cfg.IdentityServiceURL != "" {
		idv, err := identity.NewHTTPVerifier(cfg.IdentityServiceURL, cfg.IdentityAPIKey)
		if err != nil {
			log.Fatalf("failed to init identity client: %v", err)
		}
		appCfg.Identity = idv
	} else {
		logger.Warn("identityServiceURL not set; passports are verified by the simulator")
	}
	appCore, err := app.New(appCfg)
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}
	httpServer := server.New(server.Config{App: appCore, Verifier: verifier})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := serve.Run(ctx, "verification", cfg.Addr(), httpServer.Router()); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
