package handler

import (
	"context"

	"drawguess-service/domain"
	httpUsecase "drawguess-service/internal/api/http/usecase"
	middleware "drawguess-service/internal/handler"

	"github.com/gofiber/fiber/v2"
)

type GetActiveRoomsRequest struct {
}

type GetActiveRoomsResponse struct {
	Message string        `json:"message"`
	Rooms   []domain.Room `json:"rooms"`
}

type GetActiveRoomsHandler struct {
	usecase httpUsecase.GetActiveRoomsUseCase
}

func NewGetActiveRoomsHandler(usecase httpUsecase.GetActiveRoomsUseCase) *GetActiveRoomsHandler {
	return &GetActiveRoomsHandler{
		usecase: usecase,
	}
}

func (h *GetActiveRoomsHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *GetActiveRoomsRequest) (*GetActiveRoomsResponse, int, error) {
	identity, ok := middleware.IdentityFrom(fbrCtx)
	if !ok {
		return nil, fiber.StatusUnauthorized, domain.ErrUnauthenticated
	}

	status, rooms, err := h.usecase.Execute(ctx, identity.TenantTag)
	if err != nil {
		return nil, status, err
	}

	return &GetActiveRoomsResponse{Message: "Active rooms", Rooms: rooms}, status, nil
}
