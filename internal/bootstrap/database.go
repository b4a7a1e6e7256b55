package bootstrap

import (
	"context"

	"drawguess-service/config"
	"drawguess-service/domain"
	"drawguess-service/internal/initializer"
)

type PostgresRepository interface {
	Close() error
	DrawWord(ctx context.Context, tenantTag, difficulty string, exclude []string) (string, error)
	RecordGameResult(ctx context.Context, tenantTag, participantID string, result domain.GameResult) error
	ArchiveGame(ctx context.Context, game *domain.Game) error
}

func InitDatabase(config config.Config) PostgresRepository {
	return initializer.InitDatabase(config)
}
