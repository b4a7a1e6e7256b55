package handler

import (
	"context"

	"drawguess-service/domain"
	httpUsecase "drawguess-service/internal/api/http/usecase"
	middleware "drawguess-service/internal/handler"

	"github.com/gofiber/fiber/v2"
)

type LeaveRoomRequest struct {
	RoomCode string `params:"room_code" validate:"required,alphanum,min=4,max=10"`
}

type LeaveRoomResponse struct {
	Message string `json:"message"`
}

type LeaveRoomHandler struct {
	usecase httpUsecase.LeaveRoomUseCase
}

func NewLeaveRoomHandler(usecase httpUsecase.LeaveRoomUseCase) *LeaveRoomHandler {
	return &LeaveRoomHandler{
		usecase: usecase,
	}
}

func (h *LeaveRoomHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *LeaveRoomRequest) (*LeaveRoomResponse, int, error) {
	identity, ok := middleware.IdentityFrom(fbrCtx)
	if !ok {
		return nil, fiber.StatusUnauthorized, domain.ErrUnauthenticated
	}

	status, err := h.usecase.Execute(ctx, req.RoomCode, identity.UserID)
	if err != nil {
		return nil, status, err
	}

	return &LeaveRoomResponse{Message: "Left room"}, status, nil
}
