package initializer

import (
	"fmt"

	"drawguess-service/config"
	"drawguess-service/infra/session"

	"go.uber.org/zap"
)

func InitSessionRedis(appConfig config.Config) *session.SessionManager {
	address := fmt.Sprintf("%s:%s", appConfig.SessionRedis.Host, appConfig.SessionRedis.Port)

	sessionManager, err := session.NewSessionManager(address, appConfig.SessionRedis.Password, appConfig.SessionRedis.DB)
	if err != nil {
		zap.L().Fatal("Failed to connect to session redis", zap.String("addr", address), zap.Error(err))
	}
	return sessionManager
}
