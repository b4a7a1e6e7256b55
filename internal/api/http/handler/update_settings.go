package handler

import (
	"context"

	"drawguess-service/domain"
	httpUsecase "drawguess-service/internal/api/http/usecase"
	middleware "drawguess-service/internal/handler"

	"github.com/gofiber/fiber/v2"
)

type UpdateSettingsRequest struct {
	RoomCode       string  `params:"room_code" validate:"required,alphanum,min=4,max=10"`
	RoundTime      *int    `json:"round_time"`
	RoundsPerGame  *int    `json:"rounds_per_game"`
	WordDifficulty *string `json:"word_difficulty"`
	AllowCustom    *bool   `json:"allow_custom_words"`
}

type UpdateSettingsResponse struct {
	Message  string               `json:"message"`
	Settings *domain.RoomSettings `json:"settings"`
}

type UpdateSettingsHandler struct {
	usecase httpUsecase.UpdateSettingsUseCase
}

func NewUpdateSettingsHandler(usecase httpUsecase.UpdateSettingsUseCase) *UpdateSettingsHandler {
	return &UpdateSettingsHandler{
		usecase: usecase,
	}
}

func (h *UpdateSettingsHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *UpdateSettingsRequest) (*UpdateSettingsResponse, int, error) {
	identity, ok := middleware.IdentityFrom(fbrCtx)
	if !ok {
		return nil, fiber.StatusUnauthorized, domain.ErrUnauthenticated
	}

	patch := domain.SettingsPatch{
		RoundTime:        req.RoundTime,
		RoundsPerGame:    req.RoundsPerGame,
		WordDifficulty:   req.WordDifficulty,
		AllowCustomWords: req.AllowCustom,
	}
	status, settings, err := h.usecase.Execute(ctx, req.RoomCode, identity.UserID, patch)
	if err != nil {
		return nil, status, err
	}

	return &UpdateSettingsResponse{Message: "Settings updated", Settings: settings}, status, nil
}
