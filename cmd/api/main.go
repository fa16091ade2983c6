package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/msaleh/formgate/internal/api/handlers"
	"github.com/msaleh/formgate/internal/api/middleware"
	"github.com/msaleh/formgate/internal/api/routes"
	"github.com/msaleh/formgate/internal/application"
	"github.com/msaleh/formgate/internal/config"
	"github.com/msaleh/formgate/internal/config/db"
	"github.com/msaleh/formgate/internal/domain/schema"
	"github.com/msaleh/formgate/internal/domain/submission"
	"github.com/msaleh/formgate/internal/domain/user"
	"github.com/msaleh/formgate/internal/notify"
	"github.com/msaleh/formgate/internal/repository"
	"github.com/msaleh/formgate/internal/storage"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connection
	db.Init()

	// Auto migrate database schemas
	if err := db.DB.AutoMigrate(
		&user.User{},
		&schema.FormSchema{},
		&schema.FieldDefinition{},
		&schema.ValidationRule{},
		&submission.Submission{},
		&submission.Value{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	policy, err := application.LoadPolicy(config.PolicyPath)
	if err != nil {
		log.Fatalf("Failed to load approval policy: %v", err)
	}

	repos := repository.NewRepositories(db.DB)

	opts := application.Options{
		Policy:       policy,
		ReportBucket: config.MinioBucket,
		MarkerField:  config.AnalyticsMarkerField,
		MarkerValue:  config.AnalyticsMarkerValue,
		Logger:       logger,
	}

	// Outcome notifications run only when a gateway is configured.
	if config.WhatsAppGatewayURL != "" {
		notifier := notify.NewWhatsAppNotifier(config.WhatsAppGatewayURL, config.WhatsAppToken, config.NotifyTimeout, logger)
		dispatcher := notify.NewDispatcher(notifier, logger, 64, config.NotifyTimeout)
		defer dispatcher.Close()
		opts.Dispatcher = dispatcher
	} else {
		logger.Warn("no notification gateway configured, outcome notifications disabled")
	}

	// Report exports run only when object storage is reachable.
	if minioClient, err := storage.InitMinio(); err != nil {
		logger.Warn("object storage unavailable, report export disabled", zap.Error(err))
	} else {
		opts.Uploader = minioClient
	}

	services := application.New(repos, opts)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware(logger))

	routes.RegisterRoutes(router, handlers.New(services))

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
