package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/kf-platform/crm-proxy/internal/api"
	"github.com/kf-platform/crm-proxy/internal/dynamics"
	internalsecrets "github.com/kf-platform/crm-proxy/internal/secrets"
	"github.com/kf-platform/crm-proxy/pkg/config"
	"github.com/kf-platform/crm-proxy/pkg/logger"
	"github.com/kf-platform/crm-proxy/pkg/secrets"
	"github.com/kf-platform/crm-proxy/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [crm-proxy]...")

	creds := dynamics.CredentialBundle{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scope:        cfg.Scope,
		GrantType:    cfg.GrantType,
	}

	// --- Optional credential overlay from AWS Secrets Manager ---
	if cfg.CredentialSecretName != "" {
		awsProvider, err := secrets.NewAWSProvider(cfg.AWSRegion)
		if err != nil {
			logg.Fatalw("failed to create AWS Secrets Manager provider", "error", err)
		}
		resolver := internalsecrets.NewCredentialResolver(logg.Desugar(), awsProvider)
		creds, err = resolver.Resolve(ctx, cfg.CredentialSecretName, creds)
		if err != nil {
			logg.Fatalw("failed to resolve CRM credentials", "error", err)
		}
		cfg.ClientID = creds.ClientID
		cfg.ClientSecret = creds.ClientSecret
		cfg.Scope = creds.Scope
		cfg.GrantType = creds.GrantType
	}

	if err := cfg.Validate(); err != nil {
		logg.Fatalw("invalid configuration", "error", err)
	}

	logg.Infow("crm configuration loaded",
		"web_api_url", cfg.WebAPIURL,
		"client_id", cfg.ClientID,
		"client_secret", utils.MaskSecret(cfg.ClientSecret))

	// --- Token service & Dynamics client ---
	tokenSvc := dynamics.NewTokenService(logg.Desugar(), cfg.TokenURL, creds)
	crmClient := dynamics.NewClient(logg.Desugar(), cfg.WebAPIURL)
	crmSvc := dynamics.NewService(logg.Desugar(), crmClient)

	// --- Fiber HTTP Server ---
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
		BodyLimit:    cfg.HTTPBodyLimit,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
	}))

	handler := api.NewHandler(logg.Desugar(), tokenSvc, crmSvc, cfg.TokenCookie)
	api.RegisterRoutes(app, cfg.ServiceName, handler)

	// Start HTTP server
	go func() {
		logg.Infof("HTTP API listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	logg.Infow("[crm-proxy] running",
		"env", cfg.Env,
		"port", cfg.Port,
		"token_cookie", cfg.TokenCookie,
		"cors_origins", cfg.CORSOrigins)

	<-ctx.Done()
	logg.Info("shutting down [crm-proxy]...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
}
