package main

import (
	"campushub/internal/audiovisual/handler"
	"campushub/internal/audiovisual/repository"
	"campushub/internal/audiovisual/service"
	"campushub/internal/audiovisual/validator"
	"campushub/pkg/app"
	"campushub/pkg/config"
	"campushub/pkg/events"
	kafka_config "campushub/pkg/kafka/config"
)

const ServiceName = "audiovisual"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	feed := initFeed(cfg)
	if feed != nil {
		defer feed.Close()
	}

	cfg.Log.Info("Starting Audiovisual service")
	reservationService, equipmentService := initServices(cfg, feed)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAudiovisualHandler(
		handler.NewReservationHandler(reservationService, cfg.Log),
		handler.NewEquipmentHandler(equipmentService, cfg.Log),
	))
	serverApp.Run()
}

// initFeed connects the change-event producer. The service stays up without
// it; the dashboard then serves stale snapshots until Kafka returns.
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

func initServices(cfg *config.Config, feed *events.Feed) (service.ReservationService, service.EquipmentService) {
	var notifier service.ChangeNotifier
	if feed != nil {
		notifier = feed
	}

	reservationValidator := validator.NewReservationValidator(cfg.Log)
	reservationRepo := repository.NewMongoReservationRepository(cfg)
	equipmentRepo := repository.NewMongoEquipmentRepository(cfg)
	lockRepo := repository.NewSlotLockRepository(cfg)

	reservationService := service.NewReservationService(
		reservationRepo,
		lockRepo,
		reservationValidator,
		notifier,
		cfg,
	)
	equipmentService := service.NewEquipmentService(
		equipmentRepo,
		reservationRepo,
		reservationValidator,
		notifier,
		cfg,
	)

	cfg.Log.Info("Audiovisual services initialized", "database", cfg.MongoDatabaseName)
	return reservationService, equipmentService
}
