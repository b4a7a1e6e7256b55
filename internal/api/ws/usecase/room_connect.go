package wsUsecase

import (
	"context"

	"drawguess-service/domain"
	"drawguess-service/internal/api/ws/hub"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

type RoomConnectUseCase interface {
	Execute(c *websocket.Conn, ctx context.Context, identity domain.Identity)
}

type roomConnectUseCase struct {
	hub        Hub
	engine     GameEngine
	dispatcher hub.CommandDispatcher
}

func NewRoomConnectUseCase(hub Hub, engine GameEngine) RoomConnectUseCase {
	return &roomConnectUseCase{
		hub:        hub,
		engine:     engine,
		dispatcher: NewCommandDispatcher(engine, hub),
	}
}

// Execute registers the connection, restores room membership after a reconnect and
// blocks until the connection closes.
func (u *roomConnectUseCase) Execute(c *websocket.Conn, ctx context.Context, identity domain.Identity) {
	client := domain.NewClient(identity, c)

	u.hub.Evict(identity.UserID)
	if err := u.hub.Register(client); err != nil {
		zap.L().Warn("Failed to register client", zap.String("participant", identity.UserID), zap.Error(err))
		c.WriteJSON(domain.WebSocketErrorMessage{
			Type:    domain.EventError,
			Message: err.Error(),
			Code:    domain.StatusCode(err),
		})
		return
	}

	if code := u.hub.CurrentRoom(identity.UserID); code != "" {
		if _, err := u.engine.JoinRoom(code, identity); err != nil {
			zap.L().Info("Could not restore room after reconnect", zap.String("participant", identity.UserID), zap.String("room", code), zap.Error(err))
			u.hub.ClearCurrentRoom(identity.UserID, code)
		}
	}

	u.hub.Serve(ctx, client, u.dispatcher)
}
