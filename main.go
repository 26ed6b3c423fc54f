// api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"brightfolio/api/analytics"
	"brightfolio/api/database"
	"brightfolio/api/handlers"
	"brightfolio/api/middleware"
	"brightfolio/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- PostgreSQL: content collections and admin users ---
	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	// --- ClickHouse: the append-only interaction event table ---
	chClient, err := database.NewClickHouseDB()
	if err != nil {
		log.Fatalf("Failed to initialize ClickHouse database: %v", err)
	}
	defer chClient.Close()

	// --- Stores ---
	userStore := store.NewUserStore(dbClient.DB)
	contentStore := store.NewContentStore(dbClient.DB)
	eventStore := store.NewEventStore(chClient)

	// --- Analytics engine ---
	analyticsService := analytics.NewService(eventStore, contentStore)

	// --- Handlers ---
	authHandlers := handlers.NewAuthHandlers(userStore)
	trackHandlers := handlers.NewTrackHandlers(eventStore)
	statsHandlers := handlers.NewStatsHandlers(analyticsService)
	publicHandlers := handlers.NewPublicHandlers(analyticsService)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		// Authentication endpoints (no authentication required)
		api.POST("/signup", authHandlers.Signup)
		api.POST("/login", authHandlers.Login)
		api.POST("/logout", authHandlers.Logout)

		// Event ingestion from the site widget
		api.POST("/track", trackHandlers.TrackEvent)
		api.GET("/visitor-token", trackHandlers.VisitorToken)

		// Public dashboard widget; degrades instead of failing
		api.GET("/public/summary", publicHandlers.GetSummary)

		// Admin-only reports
		statsGroup := api.Group("/stats")
		statsGroup.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			statsGroup.GET("/overview", statsHandlers.GetOverview)
			statsGroup.GET("/trending", statsHandlers.GetTrending)
			statsGroup.GET("/content", statsHandlers.GetContentPerformance)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Analytics API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Analytics API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
