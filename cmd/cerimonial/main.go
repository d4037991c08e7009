package main

import (
	"campushub/internal/cerimonial/handler"
	"campushub/internal/cerimonial/repository"
	"campushub/internal/cerimonial/service"
	"campushub/internal/cerimonial/validator"
	"campushub/pkg/app"
	"campushub/pkg/config"
	"campushub/pkg/events"
	kafka_config "campushub/pkg/kafka/config"
)

const ServiceName = "cerimonial"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	feed := initFeed(cfg)
	if feed != nil {
		defer feed.Close()
	}

	cfg.Log.Info("Starting Cerimonial service")
	cerimonialService := initServices(cfg, feed)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewCerimonialHandler(cerimonialService, cfg.Log))
	serverApp.Run()
}

func initFeed(cfg *config.Config) *events.Feed {
	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Warn("Kafka configuration invalid, change events disabled", "error", err)
		return nil
	}

	feed, err := events.NewFeed(kafkaCfg, cfg.ChangeTopic, cfg.ChangeDLQTopic, ServiceName, cfg.Log)
	if err != nil {
		cfg.Log.Warn("Failed to connect change-event producer, change events disabled", "error", err)
		return nil
	}
	return feed
}

func initServices(cfg *config.Config, feed *events.Feed) service.CerimonialService {
	var notifier service.ChangeNotifier
	if feed != nil {
		notifier = feed
	}

	cerimonialValidator := validator.NewCerimonialValidator(cfg.Log)
	cerimonialRepo := repository.NewMongoCerimonialRepository(cfg)

	cerimonialService := service.NewCerimonialService(
		cerimonialRepo,
		cerimonialValidator,
		notifier,
		cfg,
	)

	cfg.Log.Info("Cerimonial service initialized", "database", cfg.MongoDatabaseName)
	return cerimonialService
}
