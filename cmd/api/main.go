// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/meusuper/crm-backend/internal/api/handlers"
	"github.com/meusuper/crm-backend/internal/api/middleware"
	"github.com/meusuper/crm-backend/internal/config"
	"github.com/meusuper/crm-backend/internal/cron"
	"github.com/meusuper/crm-backend/internal/notification"
	"github.com/meusuper/crm-backend/internal/seed"
	"github.com/meusuper/crm-backend/internal/service"
	"github.com/meusuper/crm-backend/internal/socket"
	"github.com/meusuper/crm-backend/internal/store"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// ============================================
	// Load configuration
	// ============================================
	cfg := config.Load()

	// ============================================
	// Set Gin mode
	// ============================================
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Initialize Entity Store
	// ============================================
	// Everything lives in memory for the session; there is no database
	// behind this process.
	st := store.NewStore()
	log.Println("[Store] In-memory entity store initialized")

	// ============================================
	// Initialize WebSocket Hub
	// ============================================
	hub := socket.NewHub()
	go hub.Run()
	broadcaster := socket.NewBroadcaster(hub)

	// WebSocket handler with JWT secret for self-authentication
	wsHandler := socket.NewHandler(hub, cfg.JWTSecret)
	log.Println("[Socket] WebSocket hub initialized")

	// ============================================
	// Seed Data
	// ============================================
	if cfg.SeedDemoData {
		seed.SeedData(st)
	}

	// ============================================
	// Initialize Notification Service
	// ============================================
	notificationSvc := notification.NewService(st)
	notificationSvc.SetBroadcaster(broadcaster)

	// ============================================
	// Initialize All Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Store:       st,
		NotifSvc:    notificationSvc,
		Broadcaster: broadcaster,
	})
	log.Println("[Services] All services initialized")

	// ============================================
	// Initialize Handlers
	// ============================================
	h := handlers.NewHandlers(services)

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(st, notificationSvc)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"timestamp":  time.Now(),
			"store":      "in-memory",
			"websocket":  "active",
			"ws_clients": hub.GetConnectedClientsCount(),
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// ============================================
		// Public routes (no auth required)
		// ============================================
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// WebSocket route
		api.GET("/ws", wsHandler.HandleWebSocket)

		// ============================================
		// Protected routes (require auth middleware)
		// ============================================
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(services.Auth))
		{
			// User routes
			users := protected.Group("/users")
			{
				users.GET("", h.User.List)
				users.GET("/me", h.User.Me)
			}

			// Pipeline routes
			pipelines := protected.Group("/pipelines")
			{
				pipelines.GET("", h.Pipeline.List)
				pipelines.GET("/:id", h.Pipeline.Get)
				pipelines.GET("/:id/board", h.Pipeline.Board)
				pipelines.GET("/:id/metrics", h.Pipeline.Metrics)

				// Deals scoped to a pipeline
				pipelines.GET("/:id/deals", h.Deal.ListByPipeline)
				pipelines.POST("/:id/deals", h.Deal.Create)
			}

			// Deal routes
			deals := protected.Group("/deals")
			{
				deals.GET("/:id", h.Deal.Get)
				deals.PUT("/:id", h.Deal.Update)
				deals.PATCH("/:id/stage", h.Deal.MoveStage)
			}

			// Board interaction routes (drag session + detail panel)
			board := protected.Group("/board")
			{
				board.POST("/drag/start", h.Board.StartDrag)
				board.POST("/drag/drop", h.Board.Drop)
				board.POST("/drag/cancel", h.Board.CancelDrag)

				board.GET("/selection", h.Board.GetSelection)
				board.PUT("/selection", h.Board.Select)
				board.DELETE("/selection", h.Board.ClearSelection)
			}

			// Contact routes
			contacts := protected.Group("/contacts")
			{
				contacts.GET("", h.Contact.List)
				contacts.POST("", h.Contact.Create)
				contacts.GET("/:id", h.Contact.Get)
				contacts.PUT("/:id", h.Contact.Update)
			}

			// Activity routes
			activities := protected.Group("/activities")
			{
				activities.GET("", h.Activity.List)
				activities.POST("", h.Activity.Create)
				activities.PATCH("/:id/complete", h.Activity.Complete)
			}

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.PATCH("/:id/read", h.Notification.MarkRead)
				notifications.POST("/read-all", h.Notification.MarkAllRead)
			}
		}
	}

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
