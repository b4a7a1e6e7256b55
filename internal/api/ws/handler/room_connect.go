package wsHandler

import (
	"context"

	"drawguess-service/domain"
	wsUsecase "drawguess-service/internal/api/ws/usecase"
	"drawguess-service/internal/handler"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type WebSocketRoomHandler struct {
	usecase wsUsecase.RoomConnectUseCase
}

type WebSocketRoomRequest struct {
}

func NewWebSocketRoomHandler(usecase wsUsecase.RoomConnectUseCase) *WebSocketRoomHandler {
	return &WebSocketRoomHandler{
		usecase: usecase,
	}
}

func (h *WebSocketRoomHandler) sendErrorAndClose(conn *websocket.Conn, msg string, code int) {
	errorMessage := domain.WebSocketErrorMessage{
		Type:    domain.EventError,
		Message: msg,
		Code:    code,
	}
	if err := conn.WriteJSON(errorMessage); err != nil {
		zap.L().Warn("Failed to send error message to client", zap.Error(err))
	}
	conn.Close()
}

func (h *WebSocketRoomHandler) HandleWS(c *websocket.Conn, ctx context.Context, req *WebSocketRoomRequest) {
	identity, ok := c.Locals(handler.IdentityKey).(domain.Identity)
	if !ok || identity.UserID == "" {
		h.sendErrorAndClose(c, domain.ErrUnauthenticated.Error(), fiber.StatusUnauthorized)
		return
	}

	h.usecase.Execute(c, ctx, identity)
}
