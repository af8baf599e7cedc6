package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/guestlist-app/config"
	"github.com/yeremiapane/guestlist-app/database"
	"github.com/yeremiapane/guestlist-app/live"
	"github.com/yeremiapane/guestlist-app/router"
	"github.com/yeremiapane/guestlist-app/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load configuration: %v", err)
	}
	utils.SetLevel(cfg.LogLevel)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize DB
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.SeedAdmin(db, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin: %v", err)
	}

	deps, err := router.NewDependencies(db, cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to initialise services: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RedisAddr != "" {
		startRelay(ctx, cfg.RedisAddr, deps.Hub)
	}

	// Housekeeping jobs share the analytics scheduler.
	if err := deps.Monitor.Every(time.Hour, "token-blacklist-cleanup", func() {
		if n := deps.Tokens.Cleanup(); n > 0 {
			utils.InfoLogger.Infof("Removed %d expired tokens from blacklist", n)
		}
	}); err != nil {
		utils.ErrorLogger.Fatalf("Failed to schedule token cleanup: %v", err)
	}
	if err := deps.Monitor.Every(10*time.Minute, "rate-limiter-cleanup", func() {
		deps.Limiter.Cleanup()
	}); err != nil {
		utils.ErrorLogger.Fatalf("Failed to schedule rate limiter cleanup: %v", err)
	}
	if err := deps.Monitor.Start(); err != nil {
		utils.ErrorLogger.Fatalf("Failed to start analytics monitor: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.SetupRouter(deps),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutdown signal received, shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}
	if err := deps.Monitor.Stop(); err != nil {
		utils.ErrorLogger.Errorf("Stopping monitor: %v", err)
	}
	deps.Hub.Close()
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	utils.InfoLogger.Println("Server stopped gracefully")
}

// startRelay shares live events with other instances through redis. The hub
// keeps delivering locally if redis is unreachable.
func startRelay(ctx context.Context, addr string, hub *live.Hub) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		utils.ErrorLogger.Errorf("Redis at %s unreachable, live events stay local: %v", addr, err)
		client.Close()
		return
	}

	relay := live.NewRedisRelay(client, live.DefaultChannel)
	hub.SetRelay(relay)
	go func() {
		defer client.Close()
		if err := relay.Run(ctx, hub); err != nil {
			utils.ErrorLogger.Errorf("Redis relay stopped: %v", err)
			hub.SetRelay(nil)
		}
	}()
	utils.InfoLogger.Infof("Live events relayed through redis at %s", addr)
}
