package handler

import (
	"context"

	"drawguess-service/domain"
	httpUsecase "drawguess-service/internal/api/http/usecase"
	middleware "drawguess-service/internal/handler"

	"github.com/gofiber/fiber/v2"
)

type JoinRoomRequest struct {
	RoomCode string `params:"room_code" validate:"required,alphanum,min=4,max=10"`
}

type JoinRoomResponse struct {
	Message string       `json:"message"`
	Room    *domain.Room `json:"room"`
}

type JoinRoomHandler struct {
	usecase httpUsecase.JoinRoomUseCase
}

func NewJoinRoomHandler(usecase httpUsecase.JoinRoomUseCase) *JoinRoomHandler {
	return &JoinRoomHandler{
		usecase: usecase,
	}
}

func (h *JoinRoomHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *JoinRoomRequest) (*JoinRoomResponse, int, error) {
	identity, ok := middleware.IdentityFrom(fbrCtx)
	if !ok {
		return nil, fiber.StatusUnauthorized, domain.ErrUnauthenticated
	}

	status, room, err := h.usecase.Execute(ctx, req.RoomCode, identity)
	if err != nil {
		return nil, status, err
	}

	return &JoinRoomResponse{Message: "Joined room", Room: room}, status, nil
}
