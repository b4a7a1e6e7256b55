package httpUsecase

import (
	"context"
	"net/http"

	"drawguess-service/domain"
)

type UpdateSettingsUseCase interface {
	Execute(ctx context.Context, roomCode, participantID string, patch domain.SettingsPatch) (int, *domain.RoomSettings, error)
}

type updateSettingsUseCase struct {
	engine GameEngine
}

func NewUpdateSettingsUseCase(engine GameEngine) UpdateSettingsUseCase {
	return &updateSettingsUseCase{
		engine: engine,
	}
}

func (u *updateSettingsUseCase) Execute(ctx context.Context, roomCode, participantID string, patch domain.SettingsPatch) (int, *domain.RoomSettings, error) {
	settings, err := u.engine.UpdateSettings(roomCode, participantID, patch)
	if err != nil {
		return domain.StatusCode(err), nil, err
	}
	return http.StatusOK, &settings, nil
}
