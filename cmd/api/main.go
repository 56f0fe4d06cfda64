package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/ospex-org/ospex/app"
	"github.com/ospex-org/ospex/app/accounts"
	"github.com/ospex-org/ospex/app/contests"
	"github.com/ospex-org/ospex/app/database"
	"github.com/ospex-org/ospex/app/speculations"
	"github.com/ospex-org/ospex/app/wallet"
	"github.com/ospex-org/ospex/internal/cache"
	"github.com/ospex-org/ospex/internal/deps"
	"github.com/ospex-org/ospex/internal/logger"
	"github.com/ospex-org/ospex/internal/oracle"
	"github.com/ospex-org/ospex/internal/router"
	"github.com/ospex-org/ospex/internal/sanitizer"
	"github.com/ospex-org/ospex/internal/security"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	validateConfigs(cfg)

	db, err := database.New(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	appLogger := logger.NewZeroLogger(os.Stdout, logger.LevelInfo, logger.Fields{
		"service": "ospex-api",
		"env":     cfg.Env,
	})

	tokenMaker, err := security.NewPasetoMaker(cfg.Accounts.SymmetricKey)
	if err != nil {
		log.Fatal("Failed to create token maker:", err)
	}

	cacheService := newCache(cfg)
	oracleClient := oracle.NewHTTPClient(oracle.Options{
		GatewayURL:        cfg.OracleGatewayURL,
		RequestsPerSecond: cfg.OracleRPS,
		Burst:             cfg.OracleBurst,
	})

	container := deps.NewContainer(db, tokenMaker, sanitizer.NewHTMLStripper(),
		appLogger, cacheService, oracleClient)

	accountRepo := accounts.NewRepository(db)
	authService := accounts.NewAuthService(accountRepo, cacheService)
	walletService := wallet.NewService(wallet.NewRepository(db), db, &cfg.Wallet)
	contestService := contests.NewServiceFromContainer(container, &cfg.Contests)

	engine := gin.Default()

	mounter := router.NewMounter(container)
	mounter.Public(engine).
		Mount(accounts.MountPublic(&cfg.Accounts, walletService)).
		Mount(contests.MountPublic(&cfg.Contests))

	authMiddleware := accounts.AuthMiddleware(tokenMaker, authService)
	mounter.Authenticated(engine, authMiddleware).
		Mount(accounts.MountAuthenticated(&cfg.Accounts, walletService)).
		Mount(accounts.MountAdmin()).
		Mount(wallet.MountAuthenticated(&cfg.Wallet)).
		Mount(wallet.MountAdmin(&cfg.Wallet)).
		Mount(contests.MountAuthenticated(&cfg.Contests)).
		Mount(speculations.MountAuthenticated(&cfg.Speculations, contestService))

	addr := fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)
	appLogger.Info("starting api server", logger.Fields{"addr": addr})
	if err := engine.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func newCache(cfg *app.Config) cache.Cache[string] {
	if cfg.CacheBackend == cache.RedisBackend {
		return cache.NewCache[string](cache.RedisBackend, &cache.RedisOptions{Addr: cfg.RedisAddr})
	}
	return cache.NewCache[string](cache.MemoryBackend)
}

func validateConfigs(cfg *app.Config) {
	checks := map[string]interface{ Validate() error }{
		"accounts":     &cfg.Accounts,
		"wallet":       &cfg.Wallet,
		"contests":     &cfg.Contests,
		"speculations": &cfg.Speculations,
	}
	for name, c := range checks {
		if err := c.Validate(); err != nil {
			log.Fatalf("Invalid %s configuration: %v", name, err)
		}
	}
}
