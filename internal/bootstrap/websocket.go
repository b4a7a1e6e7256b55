package bootstrap

import (
	"context"

	"drawguess-service/config"
	"drawguess-service/internal/api/game"
	gameHub "drawguess-service/internal/api/ws/hub"
	"drawguess-service/internal/initializer"

	"go.uber.org/zap"
)

// InitGame builds the connection hub and the engine on top of it, and lets the
// hub report presence changes back to the engine.
func InitGame(ctx context.Context, cfg config.Config, repo PostgresRepository, roomRedis RoomRedisManager, messaging Messaging) (*gameHub.Hub, *game.GameEngine) {
	hub := initializer.InitWebsocket(ctx, cfg)

	var words game.WordBank = repo
	if cfg.Game.WordSource == "static" {
		words = game.DefaultWordBank()
	}

	archivers := []game.GameArchiver{repo}
	if messaging != nil {
		archivers = append(archivers, messaging)
	}

	engine := initializer.InitGameEngine(cfg, game.Dependencies{
		Connections: hub,
		Words:       words,
		Stats:       repo,
		Archivers:   archivers,
		Notifier:    roomRedis,
	})
	hub.SetPresenceListener(engine)

	zap.L().Info("Game engine ready", zap.String("word_source", cfg.Game.WordSource))
	return hub, engine
}
