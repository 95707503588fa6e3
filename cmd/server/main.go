package main

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"doorman/internal/bot"
	"doorman/internal/config"
	"doorman/internal/database"
	"doorman/internal/handlers"
	"doorman/internal/lock"
	"doorman/internal/notify"
	"doorman/internal/repository"
	"doorman/internal/security"
	"doorman/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := database.RunMigrations(db, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := template.ParseGlob(filepath.Join(cfg.TemplatesPath, "*.tmpl"))
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// Initialize repositories
	inviteRepo := repository.NewInviteRepository(db)
	knockRepo := repository.NewKnockRepository(db)
	knockerRepo := repository.NewTrustedKnockerRepository(db)
	overrideRepo := repository.NewOverrideRepository(db)

	// Initialize services
	inviteService := service.NewInviteService(inviteRepo, cfg.InviteValidity)
	knockService := service.NewKnockService(knockRepo, cfg.KnockValidity)
	trustedService := service.NewTrustedKnockService(knockerRepo, cfg.NonceMaxSkew)

	overrideService, err := service.NewOverrideService(overrideRepo)
	if err != nil {
		log.Fatalf("Failed to load override switch: %v", err)
	}

	// Lock actuator
	var actuator lock.Actuator = lock.Disabled{}
	if cfg.LockAPIBaseURL != "" && cfg.LockID != "" {
		actuator = lock.NewRemoteLock(cfg.LockAPIBaseURL, cfg.LockID, cfg.LockAPIKey)
		log.Printf("Lock actuator configured for lock %s", cfg.LockID)
	}

	// Notification channels
	messages := notify.NewMessages(cfg.BaseURL, cfg.DisplayTimezone)
	notifier := buildNotifier(cfg)

	entryService := service.NewEntryService(
		overrideService, inviteService, knockService, trustedService,
		actuator, notifier, messages,
	)

	// Initialize handlers
	issuer := security.NewTokenIssuer(cfg.AdminTokenSecret, cfg.AdminTokenTTL)
	middleware := handlers.NewMiddleware(overrideService, issuer, cfg.TrustedIP)
	entryHandler := handlers.NewEntryHandler(entryService, inviteService, notifier, messages, templates)
	adminHandler := handlers.NewAdminHandler(inviteService, knockService, overrideService, messages, issuer, cfg.AdminPasswordHash)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticPath))))

	// Guest routes
	mux.HandleFunc("GET /welcome/{inviteToken}", middleware.Lockdown(entryHandler.ShowWelcome))
	mux.HandleFunc("POST /welcome/{inviteToken}", middleware.Lockdown(middleware.RateLimit(entryHandler.Enter)))
	mux.HandleFunc("GET /knock", middleware.Lockdown(entryHandler.ShowKnock))
	mux.HandleFunc("POST /knock", middleware.Lockdown(middleware.RateLimit(entryHandler.Knock)))
	mux.HandleFunc("GET /secretknock/{pattern}", middleware.RequireTrustedIP(middleware.Lockdown(entryHandler.SecretKnock)))
	mux.HandleFunc("POST /trustedknock", middleware.Lockdown(middleware.RateLimit(entryHandler.TrustedKnock)))

	// Privileged routes
	mux.HandleFunc("POST /admin/login", middleware.RateLimit(adminHandler.Login))
	mux.HandleFunc("POST /admin/invites", middleware.RequireAdmin(adminHandler.CreateInvite))
	mux.HandleFunc("GET /admin/invites", middleware.RequireAdmin(adminHandler.ListInvites))
	mux.HandleFunc("POST /admin/invites/delete", middleware.RequireAdmin(adminHandler.DeleteInvites))
	mux.HandleFunc("POST /admin/secretknock", middleware.RequireAdmin(adminHandler.GenerateKnock))
	mux.HandleFunc("POST /admin/override", middleware.RequireAdmin(adminHandler.SetOverride))

	// Plumbing
	mux.HandleFunc("GET /healthz", handlers.Health)
	mux.HandleFunc("GET /robots.txt", handlers.Robots)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Operator bot
	botCtx, stopBot := context.WithCancel(context.Background())
	defer stopBot()
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		b := bot.New(cfg.TelegramBotToken, cfg.TelegramChatID)
		bot.Register(b, bot.Deps{
			Invites:  inviteService,
			Knocks:   knockService,
			Override: overrideService,
			Messages: messages,
			BaseURL:  cfg.BaseURL,
		})
		go b.Run(botCtx)
	} else {
		log.Println("Telegram bot disabled: TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID not configured")
	}

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	stopBot()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// buildNotifier assembles the operator notification channels from config
func buildNotifier(cfg *config.Config) service.Notifier {
	var channels notify.Multi

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		channels = append(channels, notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID))
	}

	email, err := notify.NewEmail(cfg.AWSRegion, cfg.NotifyFrom, cfg.NotifyName, cfg.NotifyTo)
	if err != nil {
		log.Printf("Warning: email notifications unavailable: %v", err)
	} else if email.IsEnabled() {
		channels = append(channels, email)
	}

	if len(channels) == 0 {
		return notify.Noop{}
	}
	return channels
}
