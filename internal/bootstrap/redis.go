package bootstrap

import (
	"context"

	"drawguess-service/infra/session"
	"drawguess-service/internal/initializer"
)

type RoomRedisManager interface {
	PublishMessage(ctx context.Context, roomCode string, msgType string, dataContent interface{})
}

func InitRoomRedis(sessionManager *session.SessionManager) RoomRedisManager {
	return initializer.InitRoomRedis(sessionManager)
}
