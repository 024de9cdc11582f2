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

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"

	"hostel-management-backend/config"
	"hostel-management-backend/internal/api"
	"hostel-management-backend/internal/booking"
	"hostel-management-backend/internal/db"
	"hostel-management-backend/internal/ml"
	"hostel-management-backend/internal/mw"
	"hostel-management-backend/internal/notification"
	"hostel-management-backend/internal/recorder"
	"hostel-management-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "hostel-backend ", log.LstdFlags)

	// Secrets may live in a local .env; missing is fine.
	if err := godotenv.Load(); err == nil {
		logger.Println(".env file loaded")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Auth.JWTSecret == "" {
		logger.Fatalf("JWT secret must be configured (auth.jwt_secret or JWT_SECRET)")
	}
	if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
		logger.Fatalf("VAPID keys must be configured. Please generate them and add them to your config file.")
	}

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	engine := ml.LoadEngine(&cfg.Models)

	workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, &webpushOptions)
	workerPool.Start(ctx)

	bookingSvc := booking.NewService(appStore, engine, cfg.Models.AutoApprove, cfg.Models.AutoApproveMaxRate)

	recorderSvc := recorder.NewService(cfg, appStore, workerPool)
	go recorderSvc.Run(ctx)

	tokens := mw.NewTokenIssuer(&cfg.Auth)
	handler := api.NewHandler(cfg, appStore, engine, bookingSvc, tokens, workerPool)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
