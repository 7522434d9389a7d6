// main.go
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"course-marketplace/cmd"
	"course-marketplace/internal/data/repository"
	"course-marketplace/internal/wire"
	"course-marketplace/pkg/database"
	"course-marketplace/pkg/events"
	"course-marketplace/pkg/gateway"
	"course-marketplace/pkg/storage"
	"course-marketplace/pkg/utils"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Payment gateway
	if config.Razorpay.KeyID == "" || config.Razorpay.KeySecret == "" {
		logger.Fatal("Razorpay credentials are required")
	}
	gw := gateway.NewRazorpayGateway(config.Razorpay.KeyID, config.Razorpay.KeySecret)

	// Event publisher; optional, reads degrade to polling without it
	var publisher events.Publisher = events.NoopPublisher{}
	if config.AMQP.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(config.AMQP.URL, config.AMQP.Exchange)
		if err != nil {
			logger.Fatal("Failed to connect to message broker", zap.Error(err))
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		logger.Info("Message broker connected", zap.String("exchange", config.AMQP.Exchange))
	} else {
		logger.Warn("AMQP_URL not set, like events will not be published")
	}

	// Media store; optional, uploads are rejected without it
	var media storage.MediaStore = storage.NoopStore{}
	if config.Media.Bucket != "" {
		s3Store, err := storage.NewS3Store(context.Background(),
			config.Media.Bucket,
			config.Media.Region,
			time.Duration(config.Media.PresignExpiryMin)*time.Minute,
		)
		if err != nil {
			logger.Fatal("Failed to initialize media store", zap.Error(err))
		}
		media = s3Store
		logger.Info("Media store ready", zap.String("bucket", config.Media.Bucket))
	} else {
		logger.Warn("MEDIA_BUCKET not set, media uploads are disabled")
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, gw, publisher, media, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
