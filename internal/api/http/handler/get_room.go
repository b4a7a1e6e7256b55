package handler

import (
	"context"

	"drawguess-service/domain"
	httpUsecase "drawguess-service/internal/api/http/usecase"
	middleware "drawguess-service/internal/handler"

	"github.com/gofiber/fiber/v2"
)

type GetRoomRequest struct {
	RoomCode string `params:"room_code" validate:"required,alphanum,min=4,max=10"`
}

type GetRoomResponse struct {
	Message string       `json:"message"`
	Room    *domain.Room `json:"room"`
}

type GetRoomHandler struct {
	usecase httpUsecase.GetRoomUseCase
}

func NewGetRoomHandler(usecase httpUsecase.GetRoomUseCase) *GetRoomHandler {
	return &GetRoomHandler{
		usecase: usecase,
	}
}

func (h *GetRoomHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *GetRoomRequest) (*GetRoomResponse, int, error) {
	identity, ok := middleware.IdentityFrom(fbrCtx)
	if !ok {
		return nil, fiber.StatusUnauthorized, domain.ErrUnauthenticated
	}

	status, room, err := h.usecase.Execute(ctx, req.RoomCode, identity.TenantTag)
	if err != nil {
		return nil, status, err
	}

	return &GetRoomResponse{Message: "Room found", Room: room}, status, nil
}
