package handler

import (
	"context"

	"drawguess-service/domain"
	httpUsecase "drawguess-service/internal/api/http/usecase"
	middleware "drawguess-service/internal/handler"

	"github.com/gofiber/fiber/v2"
)

type CreateRoomRequest struct {
	Capacity int                   `json:"capacity" validate:"omitempty,min=2,max=12"`
	Settings *domain.SettingsPatch `json:"settings"`
}

type CreateRoomResponse struct {
	Message string       `json:"message"`
	Room    *domain.Room `json:"room"`
}

type CreateRoomHandler struct {
	usecase httpUsecase.CreateRoomUseCase
}

func NewCreateRoomHandler(usecase httpUsecase.CreateRoomUseCase) *CreateRoomHandler {
	return &CreateRoomHandler{
		usecase: usecase,
	}
}

func (h *CreateRoomHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *CreateRoomRequest) (*CreateRoomResponse, int, error) {
	identity, ok := middleware.IdentityFrom(fbrCtx)
	if !ok {
		return nil, fiber.StatusUnauthorized, domain.ErrUnauthenticated
	}

	status, room, err := h.usecase.Execute(ctx, identity, req.Capacity, req.Settings)
	if err != nil {
		return nil, status, err
	}

	return &CreateRoomResponse{Message: "Room created", Room: room}, status, nil
}
