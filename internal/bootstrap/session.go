package bootstrap

import (
	"context"

	"drawguess-service/config"
	"drawguess-service/domain"
	"drawguess-service/infra/session"
	"drawguess-service/internal/initializer"
)

type SessionManager interface {
	GetSession(ctx context.Context, token string) (*domain.Identity, error)
	Close() error
}

func InitSessionRedis(config config.Config) *session.SessionManager {
	return initializer.InitSessionRedis(config)
}
