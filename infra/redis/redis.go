package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisManager, oda yaşam döngüsü mesajlarını odaya özel kanallara yayınlar
type RedisManager struct {
	client *redis.Client
}

// RoomManager, Redis üzerinden gönderilen mesaj yapısı
type RoomManager struct {
	RoomCode string `json:"room_code"`
	Type     string `json:"type"`
	Data     struct {
		Type    string      `json:"type"`
		Content interface{} `json:"content"`
	} `json:"data"`
}

func NewRedisManagerWithClient(client *redis.Client) *RedisManager {
	return &RedisManager{client: client}
}

// Close, Redis bağlantısını kapatır
func (rm *RedisManager) Close() error {
	return rm.client.Close()
}

func Channel(roomCode string) string {
	return fmt.Sprintf("room:%s", roomCode)
}

func (rm *RedisManager) PublishMessage(ctx context.Context, roomCode string, msgType string, dataContent interface{}) {
	msg := RoomManager{
		RoomCode: roomCode,
		Type:     "room_manager",
	}
	msg.Data.Type = msgType
	msg.Data.Content = dataContent

	payload, err := json.Marshal(msg)
	if err != nil {
		zap.L().Error("Failed to marshal Redis message", zap.Error(err))
		return
	}

	// Odaya özel kanalı belirle
	channel := Channel(roomCode)
	if err := rm.client.Publish(ctx, channel, payload).Err(); err != nil {
		zap.L().Warn("Failed to publish message to Redis channel", zap.String("channel", channel), zap.Error(err))
	}
}
