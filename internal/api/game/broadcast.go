package game

import (
	"encoding/json"

	"drawguess-service/domain"

	"go.uber.org/zap"
)

// Connections is the part of the connection registry the engine needs.
type Connections interface {
	Resolve(participantID string) (*domain.Client, error)
	CurrentRoom(participantID string) string
	SetCurrentRoom(participantID, roomCode string)
	ClearCurrentRoom(participantID, roomCode string)
}

// Broadcaster writes events onto participants' send channels without ever blocking.
type Broadcaster struct {
	conns Connections
}

func NewBroadcaster(conns Connections) *Broadcaster {
	return &Broadcaster{conns: conns}
}

// Publish delivers one event to every member except exclude (empty excludes nobody).
func (b *Broadcaster) Publish(roomCode string, members []string, eventType string, payload interface{}, exclude string) {
	data, err := json.Marshal(&domain.Message{Type: eventType, Content: payload})
	if err != nil {
		zap.L().Error("Failed to marshal room event", zap.String("room", roomCode), zap.String("event", eventType), zap.Error(err))
		return
	}

	for _, id := range members {
		if id == exclude {
			continue
		}
		b.deliver(id, eventType, data)
	}
}

// PublishError reports a failure that concerns the whole room, such as an aborted round.
func (b *Broadcaster) PublishError(roomCode string, members []string, err error) {
	data, mErr := json.Marshal(&domain.WebSocketErrorMessage{
		Type:    domain.EventError,
		Message: err.Error(),
		Code:    domain.StatusCode(err),
	})
	if mErr != nil {
		zap.L().Error("Failed to marshal room error", zap.String("room", roomCode), zap.Error(mErr))
		return
	}
	for _, id := range members {
		b.deliver(id, domain.EventError, data)
	}
}

func (b *Broadcaster) SendTo(participantID, eventType string, payload interface{}) bool {
	data, err := json.Marshal(&domain.Message{Type: eventType, Content: payload})
	if err != nil {
		zap.L().Error("Failed to marshal direct event", zap.String("participant", participantID), zap.String("event", eventType), zap.Error(err))
		return false
	}
	return b.deliver(participantID, eventType, data)
}

func (b *Broadcaster) SendError(participantID string, err error) bool {
	data, mErr := json.Marshal(&domain.WebSocketErrorMessage{
		Type:    domain.EventError,
		Message: err.Error(),
		Code:    domain.StatusCode(err),
	})
	if mErr != nil {
		return false
	}
	return b.deliver(participantID, domain.EventError, data)
}

func (b *Broadcaster) deliver(participantID, eventType string, data []byte) bool {
	client, err := b.conns.Resolve(participantID)
	if err != nil {
		zap.L().Debug("Skipping event for disconnected participant", zap.String("participant", participantID), zap.String("event", eventType))
		return false
	}

	select {
	case client.Send <- data:
		return true
	default:
		zap.L().Warn("Send channel full, dropping event", zap.String("participant", participantID), zap.String("event", eventType))
		return false
	}
}
