package initializer

import (
	"context"

	"drawguess-service/config"
	gameHub "drawguess-service/internal/api/ws/hub"
)

func InitWebsocket(ctx context.Context, appConfig config.Config) *gameHub.Hub {
	hub := gameHub.NewHub(gameHub.Config{
		GracePeriod:   appConfig.Game.GracePeriod,
		SweepInterval: appConfig.Game.SweepInterval,
		CommandRate:   appConfig.Game.CommandRate,
		CommandBurst:  appConfig.Game.CommandBurst,
	})
	go hub.RunSweeper(ctx)
	return hub
}
