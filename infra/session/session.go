package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"drawguess-service/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SessionManager reads sessions written by the auth service.
type SessionManager struct {
	client *redis.Client
}

func NewSessionManager(redisAddr string, password string, db int) (*SessionManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	zap.L().Info("Connected to session Redis successfully", zap.String("addr", redisAddr))
	return NewSessionManagerWithClient(client), nil
}

func NewSessionManagerWithClient(client *redis.Client) *SessionManager {
	return &SessionManager{client: client}
}

func (sm *SessionManager) GetRedisClient() *redis.Client {
	return sm.client
}

// GetSession resolves a session token to the identity stored under it.
func (sm *SessionManager) GetSession(ctx context.Context, token string) (*domain.Identity, error) {
	data, err := sm.client.Get(ctx, token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: session lookup failed: %v", domain.ErrUpstream, err)
	}

	var identity domain.Identity
	if err := json.Unmarshal(data, &identity); err != nil || identity.UserID == "" {
		return nil, domain.ErrSessionNotFound
	}
	return &identity, nil
}

// Close, Redis bağlantısını kapatır
func (sm *SessionManager) Close() error {
	return sm.client.Close()
}
