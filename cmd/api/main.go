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

	"github.com/imnatewest/ai-fridge-app/internal/application/reminder"
	"github.com/imnatewest/ai-fridge-app/internal/config"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/dynamo"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/google"
	jwtinfra "github.com/imnatewest/ai-fridge-app/internal/infrastructure/jwt"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/openai"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/openfoodfacts"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/pexels"
	s3infra "github.com/imnatewest/ai-fridge-app/internal/infrastructure/s3"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/smtp"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/sns"
	transporthttp "github.com/imnatewest/ai-fridge-app/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// S3 store for item photos.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer for expiration digests.
	mailer := smtp.NewMailer(cfg)

	// SNS push sender (optional — graceful fallback when no platform ARN is set).
	var pushSender sns.PushSender
	if sender, err := sns.NewSender(cfg); err == nil {
		pushSender = sender
	} else {
		log.Printf("WARN: SNS push sender not available: %v", err)
	}

	// Google ID token verifier (optional).
	var googleVerifier *google.Verifier
	if cfg.GoogleClientID != "" {
		googleVerifier = google.NewVerifier(cfg.GoogleClientID)
	}

	// Recipe suggestion clients (optional).
	var openaiClient *openai.Client
	if cfg.OpenAIAPIKey != "" {
		openaiClient = openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	}
	var pexelsClient *pexels.Client
	if cfg.PexelsAPIKey != "" {
		pexelsClient = pexels.NewClient(cfg.PexelsAPIKey)
	}

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	sessionRepo := dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions)
	deviceRepo := dynamo.NewDeviceRepo(dynamoClient, cfg.DynamoTables.Devices)
	itemRepo := dynamo.NewItemRepo(dynamoClient, cfg.DynamoTables.Items)
	reminderRepo := dynamo.NewReminderRepo(dynamoClient, cfg.DynamoTables.Reminders)
	locationRepo := dynamo.NewLocationRepo(dynamoClient, cfg.DynamoTables.Locations)

	deps := &transporthttp.Deps{
		UserRepo:       userRepo,
		SessionRepo:    sessionRepo,
		DeviceRepo:     deviceRepo,
		ItemRepo:       itemRepo,
		ReminderRepo:   reminderRepo,
		LocationRepo:   locationRepo,
		S3Store:        s3Store,
		Mailer:         mailer,
		PushSender:     pushSender,
		JWTProvider:    jwtProvider,
		GoogleVerifier: googleVerifier,
		ProductClient:  openfoodfacts.NewClient(cfg.OpenFoodFactsBaseURL),
		OpenAI:         openaiClient,
		Pexels:         pexelsClient,
	}

	router := transporthttp.NewRouter(cfg, deps)

	// Background dispatcher fires due reminders as push notifications.
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	defer stopDispatch()
	if pushSender != nil {
		dispatcher := reminder.NewDispatcher(reminderRepo, deviceRepo, pushSender, cfg.ReminderDispatchInterval)
		go dispatcher.Run(dispatchCtx)
	} else {
		log.Println("WARN: reminder dispatcher disabled, push sender unavailable")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopDispatch()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
