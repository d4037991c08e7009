package main

import (
	"context"

	"campushub/internal/dashboard"
	"campushub/pkg/app"
	"campushub/pkg/config"
	"campushub/pkg/events"
	kafka_config "campushub/pkg/kafka/config"
)

const ServiceName = "dashboard"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Dashboard service")
	dashboardService := dashboard.NewService(cfg)

	// Initial pull; sectors that are down are retried on their next change
	// event.
	dashboardService.RefreshAll(context.Background())

	listener := initListener(cfg, dashboardService)
	if listener != nil {
		defer listener.Close()
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(dashboard.NewHandler(dashboardService, cfg.Log))
	serverApp.Run()
}

// initListener starts the change-event consumer. Without it the dashboard
// still serves, from the startup snapshots.
func initListener(cfg *config.Config, dashboardService *dashboard.Service) *events.Listener {
	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Warn("Kafka configuration invalid, live updates disabled", "error", err)
		return nil
	}

	listener, err := events.NewListener(
		kafkaCfg,
		cfg.ChangeTopic,
		cfg.ChangeGroupID,
		cfg.ChangeDLQTopic,
		cfg.Log,
		dashboardService.HandleChange,
	)
	if err != nil {
		cfg.Log.Warn("Failed to connect change-event consumer, live updates disabled", "error", err)
		return nil
	}

	go func() {
		if err := listener.Start(context.Background()); err != nil {
			cfg.Log.Error("Change-event consumer stopped", "error", err)
		}
	}()

	return listener
}
