package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	sharedconfig "jobboard/internal/config"
	"jobboard/internal/ratelimit"
	"jobboard/internal/serve"
	"jobboard/internal/util"
	"jobboard/services/auth/internal/app"
	"jobboard/services/auth/internal/config"
	"jobboard/services/auth/internal/security"
	"jobboard/services/auth/internal/server"
)

func main() {
	cfg, err := config.Load(sharedconfig.Path())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	tokenTTL, err := config.ParseTokenTTL(cfg.TokenTTL)
	if err != nil {
		log.Fatalf("failed to parse token TTL: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	appCore, err := app.New(app.Config{
		DatabaseURL: cfg.DatabaseURL,
		Token:       cfg.Token(),
		TokenTTL:    tokenTTL,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}
	trusted, err := util.NewTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		log.Fatalf("failed to parse trusted proxies: %v", err)
	}

	srvCfg := server.Config{App: appCore, TrustedProxies: trusted}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		srvCfg.Alerter = security.NewAuditAlerter(rdb, "jobboard:auth:alerts")
		if cfg.RegisterRateLimitPerMinute > 0 {
			srvCfg.RegisterLimiter = mustLimiter(rdb, cfg.RegisterRateLimitPerMinute)
		}
		if cfg.LoginRateLimitPerMinute > 0 {
			srvCfg.LoginLimiter = mustLimiter(rdb, cfg.LoginRateLimitPerMinute)
		}
	}
	httpServer := server.New(srvCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := serve.Run(ctx, "auth", cfg.Addr(), httpServer.Router()); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

func mustLimiter(rdb *redis.Client, perMinute int) ratelimit.Limiter {
	limiter, err := ratelimit.NewFixedWindowLimiter(rdb, "jobboard:auth:ratelimit", perMinute, time.Minute)
	if err != nil {
		log.Fatalf("failed to init rate limiter: %v", err)
	}
	return limiter
}
