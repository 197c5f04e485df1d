package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stayafrika-backend/config"
	"stayafrika-backend/controllers"
	"stayafrika-backend/middleware"
	"stayafrika-backend/routes"
	"stayafrika-backend/services"
	"stayafrika-backend/session"
	"stayafrika-backend/storage"
)

func buildStorage() storage.Storage {
	if os.Getenv("STORAGE") == "memory" {
		log.Println("Using in-memory storage (data is not persisted)")
		return storage.NewMemoryStorage()
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	log.Println("Database connection established and migrations applied")
	return storage.NewGormStorage(config.DB)
}

func buildSessions() session.Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, using in-memory session store")
		return session.NewMemoryStore()
	}

	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Invalid REDIS_DB value %q: %v", raw, err)
		}
		db = parsed
	}
	return session.NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), db)
}

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	store := buildStorage()
	sessions := buildSessions()

	// Initialize services
	authService := services.NewAuthService(store)
	propertyService := services.NewPropertyService(store)
	bookingService := services.NewBookingService(store)
	reviewService := services.NewReviewService(store)
	messageService := services.NewMessageService(store)
	waitlistService := services.NewWaitlistService(store)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, sessions)
	propertyController := controllers.NewPropertyController(propertyService, reviewService)
	bookingController := controllers.NewBookingController(bookingService)
	reviewController := controllers.NewReviewController(reviewService)
	messageController := controllers.NewMessageController(messageService)
	waitlistController := controllers.NewWaitlistController(waitlistService)

	guard := middleware.NewAuthMiddleware(sessions, store)

	// Build router
	router := routes.SetupRouter(
		authController,
		propertyController,
		bookingController,
		reviewController,
		messageController,
		waitlistController,
		guard,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
