package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventhub-id/eventhub-api/config"
	"github.com/eventhub-id/eventhub-api/controllers"
	"github.com/eventhub-id/eventhub-api/routes"
	"github.com/eventhub-id/eventhub-api/services"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Initialize logger
	if err := utils.InitLogger(cfg.Env); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer utils.SyncLogger()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWT.Secret == "" {
		utils.LogWarn("JWT_SECRET is not set")
	}
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize database
	config.InitDB(cfg)

	// Redis backs rate limits, the mail retry queue and OAuth state
	redisClient, err := config.InitRedis(cfg)
	if err != nil {
		utils.LogWarn("Redis unavailable, continuing without it: %v", err)
	}

	// Initialize Google OAuth
	config.InitGoogleOAuth(cfg)

	mailer := utils.NewSMTPMailer(utils.EmailConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	queue := utils.NewMailQueue(redisClient)

	var storage utils.Uploader
	if cfg.S3.Bucket != "" {
		s3Storage, err := utils.NewS3Storage(context.Background(), utils.S3Options{
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Endpoint:  cfg.S3.Endpoint,
			PublicURL: cfg.S3.PublicURL,
		})
		if err != nil {
			utils.LogError("Failed to initialize object storage: %v", err)
			log.Fatal("Failed to initialize object storage:", err)
		}
		storage = s3Storage
	} else {
		utils.LogWarn("S3_BUCKET is not set, event image uploads are disabled")
	}

	scheduler, err := services.StartScheduler(config.DB, queue, mailer)
	if err != nil {
		utils.LogError("Failed to start scheduler: %v", err)
		log.Fatal("Failed to start scheduler:", err)
	}

	// Set up router
	router := routes.SetupRouter(controllers.Dependencies{
		DB:    config.DB,
		Redis: redisClient,
		Notifier: &services.EmailNotifier{
			Mailer:        mailer,
			Queue:         queue,
			ActivationURL: cfg.ActivationURL,
			TTL:           cfg.Verification.TTL,
		},
		Storage:         storage,
		OAuth:           config.GoogleOAuthConfig,
		VerificationTTL: cfg.Verification.TTL,
		FrontendURL:     cfg.FrontendURL,
	}, cfg.RateLimit)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError("Error starting server: %v", err)
			log.Fatal("Error starting server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.LogInfo("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.LogError("Server forced to shutdown: %v", err)
	}
	if err := scheduler.Shutdown(); err != nil {
		utils.LogError("Scheduler shutdown failed: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	utils.LogInfo("Server exited")
}
