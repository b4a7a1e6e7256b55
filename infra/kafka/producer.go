package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"drawguess-service/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const EventGameCompleted = "GAME_COMPLETED"

type Config struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// Producer publishes finished games so other services can update their views.
type Producer struct {
	writer messageWriter
	topic  string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewProducer(cfg Config) *Producer {
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 50 * time.Millisecond
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
	}
	zap.L().Info("Kafka producer initialized", zap.Strings("brokers", cfg.Brokers), zap.String("topic", cfg.Topic))
	return &Producer{writer: writer, topic: cfg.Topic}
}

// ArchiveGame publishes the game as a game-completed event keyed by room code.
func (p *Producer) ArchiveGame(ctx context.Context, game *domain.Game) error {
	value, err := encodeGameCompleted(game)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(game.RoomCode),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventGameCompleted)},
			{Key: "game_id", Value: []byte(game.ID)},
		},
		Time: time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", EventGameCompleted, err)
	}
	zap.L().Debug("Game event published", zap.String("topic", p.topic), zap.String("game", game.ID))
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// encodeGameCompleted renders the game as a protobuf Struct.
func encodeGameCompleted(game *domain.Game) ([]byte, error) {
	raw, err := json.Marshal(map[string]interface{}{
		"event_type":   EventGameCompleted,
		"game_id":      game.ID,
		"room_code":    game.RoomCode,
		"tenant_tag":   game.TenantTag,
		"rounds":       len(game.Rounds),
		"final_scores": game.FinalScores,
		"started_at":   game.StartedAt,
		"ended_at":     game.EndedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode game: %w", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode game: %w", err)
	}

	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build event: %w", err)
	}
	return proto.Marshal(st)
}

func decodeGameCompleted(data []byte) (map[string]interface{}, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return st.AsMap(), nil
}
