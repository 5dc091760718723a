package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"driveloop_admin/internal/api"
	"driveloop_admin/internal/app/service"
	"driveloop_admin/internal/common/security"
	"driveloop_admin/internal/domain/repository"
	"driveloop_admin/internal/platform/cache"
	"driveloop_admin/internal/platform/config"
	"driveloop_admin/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	if err := database.RunMigrations(context.Background(), database.DB); err != nil {
		log.Fatalf("Could not run migrations: %v", err)
	}
	fmt.Println("Migrations applied.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	identityProvider := repository.NewPgIdentityProvider(database.DB)
	adminRepo := repository.NewPgAdminRepository(database.DB)
	listingRepo := repository.NewPgListingRepository(database.DB)
	userRepo := repository.NewPgUserRepository(database.DB)
	tripRepo := repository.NewPgTripRepository(database.DB)
	operatorCache := repository.NewRedisOperatorCache(cache.RDB, config.AppConfig.SessionCacheKey)

	// 6. Initialize Services
	sessionService := service.NewSessionService(identityProvider, adminRepo, operatorCache)
	listingService := service.NewListingService(listingRepo)
	userService := service.NewUserService(userRepo)
	dashboardService := service.NewDashboardService(userRepo, listingRepo, tripRepo)
	bootstrapService := service.NewBootstrapService(identityProvider, adminRepo)

	// 7. Resolve the session once before serving; no protected view is
	// reachable until this settles.
	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if operator, err := sessionService.Initialize(initCtx); err != nil {
		log.Printf("WARN: session initialization failed: %v", err)
	} else if operator != nil {
		log.Printf("Session restored for operator %s", operator.Email)
	}
	initCancel()

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(sessionService, listingService, userService, dashboardService, bootstrapService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
