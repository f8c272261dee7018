package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/conzooming/mealsub/internal/config"
)

// Module wires the status event publisher into the fx container. Without a
// broker URL the publisher degrades to a no-op.
var Module = fx.Provide(newPublisher)

func newPublisher(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (Publisher, error) {
	if cfg.RabbitURL == "" {
		logger.Info("rabbitmq not configured, status events disabled")
		return NoopPublisher{}, nil
	}
	publisher, err := NewAMQPPublisher(cfg.RabbitURL, cfg.OrderEventsQueue, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
