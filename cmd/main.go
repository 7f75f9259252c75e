package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/passkeep/passkeep-server/internal/api/rest/router"
	restServer "github.com/passkeep/passkeep-server/internal/api/rest/server"
	"github.com/passkeep/passkeep-server/internal/config"
	"github.com/passkeep/passkeep-server/internal/logger"
	"github.com/passkeep/passkeep-server/internal/model"
	"github.com/passkeep/passkeep-server/internal/repository/postgres"
	"github.com/passkeep/passkeep-server/internal/secret"
	"github.com/passkeep/passkeep-server/internal/server"
	"github.com/passkeep/passkeep-server/internal/service"
	"github.com/passkeep/passkeep-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// Local development convenience, the file is optional.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	codec, err := secret.NewCodec(cfg.Secret.Key, cfg.Secret.BcryptCost)
	if err != nil {
		logger.Fatal("failed to initialize secret codec", "error", err)
	}

	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	sessionTokenRepo := postgres.NewSessionTokenRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	tokenService := service.NewTokenService(tokenManager, sessionTokenRepo, cfg.JWT.TokenTTL, logger)
	authService := service.NewAuth(userRepo, tokenService, codec, logger)
	userService := service.NewUser(userRepo, tokenService, logger)
	accountService := service.NewAccount(accountRepo, userRepo, codec, logger)

	r := router.New(authService, userService, accountService, tokenService, logger)
	httpServer := restServer.NewHTTPServer(
		r.Register(),
		fmt.Sprintf(":%s", cfg.HTTP.Port),
		cfg.HTTP.ReadTimeout,
		cfg.HTTP.WriteTimeout,
	)

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
