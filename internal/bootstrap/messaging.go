package bootstrap

import (
	"context"

	"drawguess-service/config"
	"drawguess-service/domain"
	"drawguess-service/internal/initializer"
)

type Messaging interface {
	Close() error
	ArchiveGame(ctx context.Context, game *domain.Game) error
}

// SetupMessaging returns a nil interface when publishing is disabled.
func SetupMessaging(config config.Config) Messaging {
	producer := initializer.InitMessaging(config)
	if producer == nil {
		return nil
	}
	return producer
}
