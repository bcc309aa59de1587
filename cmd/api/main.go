package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rootments/whatsapp-notification-backend/api/routes"
	"github.com/rootments/whatsapp-notification-backend/internal/brands"
	"github.com/rootments/whatsapp-notification-backend/internal/config"
	"github.com/rootments/whatsapp-notification-backend/internal/handlers"
	"github.com/rootments/whatsapp-notification-backend/internal/repositories"
	mongorepo "github.com/rootments/whatsapp-notification-backend/internal/repositories/mongodb"
	"github.com/rootments/whatsapp-notification-backend/internal/services"
	"github.com/rootments/whatsapp-notification-backend/internal/templates"
	"github.com/rootments/whatsapp-notification-backend/pkg/mongodb"
	"github.com/rootments/whatsapp-notification-backend/pkg/whatsapp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	// The catalog must agree with the templates registered on the provider
	// side before anything is sent; a drifted slot list shifts every value
	// in the delivered message.
	catalog := templates.Default()
	if err := catalog.Validate(); err != nil {
		logger.Fatal("template catalog validation failed", zap.Error(err))
	}

	registry := brands.NewRegistry(cfg.WhatsApp)

	mongoClient, err := mongodb.NewClient(context.Background(), cfg.MongoDB.URI)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	var messageLogRepo repositories.MessageLogRepository = mongorepo.NewMessageLogRepository(db)

	// The unique index is what actually enforces one notification per
	// (bookingNumber, eventType); failing to create it leaves the service
	// usable but without that backstop, so warn instead of aborting.
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	if err := messageLogRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Warn("failed to ensure message log indexes", zap.Error(err))
	}
	cancelIndex()

	dispatcher := whatsapp.NewClient(cfg.WhatsApp.APIURL, registry)
	bookingMapper := services.NewBookingMapperService(catalog)
	messageService := services.NewMessageService(messageLogRepo, dispatcher, registry, catalog, bookingMapper, logger)

	whatsappHandler := handlers.NewWhatsAppHandler(messageService)
	pdfHandler := handlers.NewPDFHandler(messageService)

	router := routes.SetupRouter(cfg, logger, routes.HandlerDependencies{
		WhatsAppHandler: whatsappHandler,
		PDFHandler:      pdfHandler,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	logger.Info("server starting",
		zap.String("port", cfg.Server.Port),
		zap.Strings("brands", registry.Keys()),
		zap.String("catalogVersion", templates.Version))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

func newLogger(levelStr string) *zap.Logger {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	return logger
}
