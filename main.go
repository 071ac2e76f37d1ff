package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"guest-checkin/config"
	"guest-checkin/controllers"
	"guest-checkin/repositories"
	"guest-checkin/routes"
	"guest-checkin/services"
	"guest-checkin/utils"
)

const shutdownGrace = 15 * time.Second

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := config.ConnectDatabase(cfg.DB)
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	log.Printf("✅ Database connection established (%s), migrations applied.", cfg.DB.Driver)

	if cfg.Auth.Enabled && (cfg.Auth.PasswordHash == "" || cfg.Auth.JWTSecret == "") {
		log.Fatal("❌ AUTH_ENABLED is set but AUTH_PASSWORD_HASH or AUTH_JWT_SECRET is missing.")
	}
	if !cfg.SMTP.Configured() {
		log.Println("⚠️  SMTP credentials not set; invitation emails will only be logged.")
	}

	// Repositories
	guestRepo := repositories.NewGuestRepository(db)
	importLogRepo := repositories.NewImportLogRepository(db)

	// Services
	validate := services.NewValidator()
	resolver := services.NewGuestResolver(guestRepo)
	checkinService := services.NewCheckinService(guestRepo, resolver)
	guestService := services.NewGuestService(guestRepo, resolver, checkinService, validate)
	importService := services.NewImportService(guestRepo, importLogRepo, validate)
	invitationService := services.NewInvitationService(resolver, utils.NewSMTPMailer(cfg.SMTP), cfg.AppURL, cfg.EventName)
	authService := services.NewAuthService(cfg.Auth)

	router := routes.SetupRouter(routes.Controllers{
		Guest:  controllers.NewGuestController(guestService, checkinService),
		Import: controllers.NewImportController(importService),
		Email:  controllers.NewEmailController(invitationService),
		Auth:   controllers.NewAuthController(authService),
	}, authService, cfg.CorsOrigins)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := serve(ctx, srv); err != nil {
		log.Fatalf("❌ %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("✅ Server stopped, store pool closed")
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server) error {
	failed := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}
	log.Println("⚠️  Stop signal received, draining requests...")

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("shutdown after %s: %w", shutdownGrace, err)
	}
	return nil
}
