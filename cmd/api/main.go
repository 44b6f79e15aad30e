package main

import (
	"context"
	"net/http"
	"time"

	"care-companion/internal/adapters/assistant/gemini"
	"care-companion/internal/adapters/auth/tokens"
	"care-companion/internal/adapters/notify/smtpmail"
	"care-companion/internal/config"
	"care-companion/internal/domain/accounts"
	"care-companion/internal/platform/logger"
	"care-companion/internal/ports/assistant"
	"care-companion/internal/ports/auth"
	"care-companion/internal/ports/notify"
	"care-companion/internal/router"
	"care-companion/internal/vitals"

	_ "care-companion/docs"
)

func main() {
	log := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config inválida", map[string]any{"error": err.Error()})
		return
	}

	var (
		verifier auth.AuthVerifier
		issuer   accounts.TokenIssuer
	)
	if cfg.JWTSecret != "" {
		tk := tokens.New(cfg.JWTSecret, 0)
		verifier = tk
		issuer = tk
	} else {
		// sin secret: modo dev, el middleware acepta X-Debug-Account-ID
		issuer = tokens.New("dev-only-secret", 0)
		log.Warn("JWT_SECRET no configurado, corriendo en modo dev", nil)
	}

	var sender notify.Sender
	mail := smtpmail.New(smtpmail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		To:       cfg.AlertEmails,
	})
	if mail.IsConfigured() {
		sender = mail
	}

	var ai assistant.Assistant
	gem, err := gemini.NewClient(gemini.Config{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
	})
	if err != nil {
		log.Error("cliente gemini", map[string]any{"error": err.Error()})
		return
	}
	if gem.IsConfigured() {
		ai = gem
	}

	sim := vitals.NewSimulator(3*time.Second, log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sim.Run(ctx)

	r := router.NewRouter(router.Options{
		AuthVerifier:         verifier,
		TokenIssuer:          issuer,
		Sender:               sender,
		Assistant:            ai,
		Vitals:               sim,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		CORSAllowCredentials: cfg.CORSAllowCredentials,
		Logger:               log,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.HTTPAddr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
	}
}
