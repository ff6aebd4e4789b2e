// Package main is the entry point for the sentinel server. It builds every
// dependency explicitly and hands them to the routes.
package main

import (
	"context"
	"log"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sentinel/internal/chain"
	"sentinel/internal/config"
	"sentinel/internal/contracts"
	"sentinel/internal/handlers"
	"sentinel/internal/logging"
	"sentinel/internal/nonce"
	"sentinel/internal/repositories"
	"sentinel/internal/repositories/cache"
	"sentinel/internal/routes"
	"sentinel/internal/services/risk"
	"sentinel/internal/services/timelock"
	"sentinel/internal/signer"
	"sentinel/internal/telemetry"
	"sentinel/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const serviceName = "sentinel"

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logging.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck
	zap.ReplaceGlobals(zl)

	for _, w := range cfg.Warnings() {
		zl.Warn(w)
	}

	ctx := context.Background()
	shutdownTracer, err := telemetry.InitTracer(ctx, serviceName, cfg.OtelEndpoint)
	if err != nil {
		zl.Warn("tracing disabled", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			zl.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	contract, contractErr := contracts.Load(cfg.ContractABIPath)
	if contractErr != nil {
		zl.Warn("contract ABI not loaded, extensions will fail", zap.String("path", cfg.ContractABIPath), zap.Error(contractErr))
	}

	contractAddr, ok := cfg.ContractAddr()
	if !ok {
		zl.Warn("contract address not usable, extensions will fail", zap.String("contract_address", cfg.ContractAddress))
	}

	var txSigner timelock.TxSigner
	if cfg.ReadOnly() {
		zl.Warn("PRIVATE_KEY not set, running in read-only mode")
	} else {
		s, err := signer.FromHex(cfg.PrivateKey)
		if err != nil {
			zl.Fatal("invalid PRIVATE_KEY", zap.Error(err))
		}
		txSigner = s
		zl.Info("signing account loaded", zap.String("address", s.Address().Hex()))
	}

	var nonces nonce.Allocator = nonce.NewLocal()
	var riskCache risk.Cache
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(&cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := cache.Ping(ctx, rdb); err != nil {
			zl.Fatal("redis unavailable", zap.Error(err))
		}
		cacheService := cache.NewCacheService(rdb, risk.DefaultCacheTTL)
		defer func() {
			if err := cacheService.Close(); err != nil {
				zl.Warn("failed to close redis connection", zap.Error(err))
			}
		}()
		nonces = nonce.NewRedis(rdb, nonce.DefaultLockTTL)
		riskCache = cacheService
		zl.Info("redis nonce lock and risk cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	var audit repositories.SubmissionRepository = repositories.NoopSubmissionRepository{}
	if cfg.DatabaseDSN != "" {
		db, err := repositories.OpenPostgres(cfg.DatabaseDSN, repositories.DefaultDBConfig, zl)
		if err != nil {
			zl.Fatal("failed to open audit database", zap.Error(err))
		}
		defer func() {
			if err := repositories.Close(db); err != nil {
				zl.Warn("failed to close database connection", zap.Error(err))
			}
		}()
		audit = repositories.NewSubmissionRepository(db)
		zl.Info("submission audit log enabled")
	}

	dialer := chain.EndpointDialer{Endpoint: cfg.NodeEndpoint}
	timelockService := timelock.NewService(timelock.Config{
		ContractAddress: contractAddr,
		ChainID:         big.NewInt(cfg.ChainID),
		GasLimit:        cfg.GasLimit,
	}, timelock.Deps{
		Contract:    contract,
		ContractErr: contractErr,
		Dialer:      dialer,
		Signer:      txSigner,
		Nonces:      nonces,
		Audit:       audit,
		Logger:      zl,
	})
	riskService := risk.NewService(risk.StaticModel{}, riskCache, cfg.RiskThreshold, zl)
	v := validation.New()

	app := fiber.New(fiber.Config{
		AppName:      serviceName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Handlers{
		Timelock:    handlers.NewTimelockHandler(timelockService),
		Risk:        handlers.NewRiskHandler(riskService, v),
		Wallet:      handlers.NewWalletHandler(v),
		Health:      handlers.NewHealthHandler(dialer, timelockService.ReadOnly()),
		Submissions: handlers.NewSubmissionHandler(audit),
	}, routes.Options{
		CORSOrigins: cfg.CORSOrigins,
		JWTSecret:   cfg.JWTSecret,
		FrontendDir: cfg.FrontendDir,
		Logger:      zl,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zl.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zl.Warn("shutdown error", zap.Error(err))
		}
	}()

	zl.Info("server starting", zap.String("port", cfg.Port), zap.Bool("read_only", timelockService.ReadOnly()))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zl.Error("server stopped", zap.Error(err))
	}
}
