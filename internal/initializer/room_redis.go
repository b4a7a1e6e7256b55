package initializer

import (
	"drawguess-service/infra/redis"
	"drawguess-service/infra/session"
)

// InitRoomRedis reuses the session connection for room lifecycle pub/sub.
func InitRoomRedis(sessionManager *session.SessionManager) *redis.RedisManager {
	return redis.NewRedisManagerWithClient(sessionManager.GetRedisClient())
}
