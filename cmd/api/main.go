package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/facegate/facegate-backend/internal/handlers/dto"
	httphandlers "github.com/facegate/facegate-backend/internal/handlers/http"
	"github.com/facegate/facegate-backend/internal/handlers/middleware"
	"github.com/facegate/facegate-backend/internal/infrastructure/awsclient"
	"github.com/facegate/facegate-backend/internal/infrastructure/config"
	"github.com/facegate/facegate-backend/internal/infrastructure/logging"
	"github.com/facegate/facegate-backend/internal/infrastructure/persistence/postgres"
	"github.com/facegate/facegate-backend/internal/infrastructure/recognition"
	"github.com/facegate/facegate-backend/internal/infrastructure/storage"
	"github.com/facegate/facegate-backend/internal/services"
)

const version = "1.0.0"

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting face recognition api",
		"env", cfg.Env,
		"version", version,
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Inicializar clientes AWS
	aws, err := awsclient.New(context.Background(), &cfg.AWS)
	if err != nil {
		logger.Error("failed to initialize aws clients", "error", err)
		log.Fatal(err)
	}

	// Inicializar gateways
	objectStorage := storage.NewS3Storage(aws.S3, cfg.AWS.S3Bucket, cfg.AWS.Region)
	faceProvider := recognition.NewRekognitionProvider(aws.Rekognition, cfg.AWS.CollectionID, cfg.AWS.S3Bucket, logger)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)

	// Inicializar services
	faceService := services.NewFaceService(userRepo, faceProvider, objectStorage, logger)

	// Inicializar handlers
	faceHandler := httphandlers.NewFaceHandler(faceService)
	userHandler := httphandlers.NewUserHandler(faceService)
	systemHandler := httphandlers.NewSystemHandler(version)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware CORS
	router.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	imageUpload := middleware.ImageUpload(cfg.Upload.MaxSizeMB)

	// API routes
	router.GET("/api/info", systemHandler.Info)
	router.GET("/api/docs", systemHandler.Docs)

	face := router.Group("/api/face")
	{
		face.GET("/health", systemHandler.Health)
		face.POST("/register", imageUpload, faceHandler.Register)
		face.POST("/authenticate", imageUpload, faceHandler.Authenticate)
		face.POST("/verify/:userId", imageUpload, faceHandler.Verify)
		face.GET("/users", userHandler.ListUsers)
		face.GET("/users/:userId", userHandler.GetUser)
		face.DELETE("/users/:userId", userHandler.DeleteUser)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Endpoint not found"))
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}

	if allowedOrigins == "" || allowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		origins := strings.Split(allowedOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}

	return cors.New(corsConfig)
}
