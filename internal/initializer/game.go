package initializer

import (
	"drawguess-service/config"
	"drawguess-service/internal/api/game"
)

func InitGameEngine(appConfig config.Config, deps game.Dependencies) *game.GameEngine {
	return game.NewGameEngine(deps, game.Options{
		InterRoundDelay: appConfig.Game.InterRoundDelay,
		WordTimeout:     appConfig.Game.WordTimeout,
	})
}
