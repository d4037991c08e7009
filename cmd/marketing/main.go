package main

import (
	"campushub/internal/marketing/handler"
	"campushub/internal/marketing/repository"
	"campushub/internal/marketing/service"
	"campushub/internal/marketing/validator"
	"campushub/pkg/app"
	"campushub/pkg/config"
	"campushub/pkg/events"
	kafka_config "campushub/pkg/kafka/config"
)

const ServiceName = "marketing"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	feed := initFeed(cfg)
	if feed != nil {
		defer feed.Close()
	}

	cfg.Log.Info("Starting Marketing service")
	marketingService := initServices(cfg, feed)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewMarketingHandler(marketingService, cfg.Log))
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

func initServices(cfg *config.Config, feed *events.Feed) service.MarketingService {
	var notifier service.ChangeNotifier
	if feed != nil {
		notifier = feed
	}

	marketingValidator := validator.NewMarketingValidator(cfg.Log)
	marketingRepo := repository.NewMongoMarketingRepository(cfg)

	marketingService := service.NewMarketingService(
		marketingRepo,
		marketingValidator,
		notifier,
		cfg,
	)

	cfg.Log.Info("Marketing service initialized", "database", cfg.MongoDatabaseName)
	return marketingService
}
