package httpUsecase

import (
	"context"
	"net/http"

	"drawguess-service/domain"
)

type CreateRoomUseCase interface {
	Execute(ctx context.Context, host domain.Identity, capacity int, settings *domain.SettingsPatch) (int, *domain.Room, error)
}

type createRoomUseCase struct {
	engine GameEngine
}

func NewCreateRoomUseCase(engine GameEngine) CreateRoomUseCase {
	return &createRoomUseCase{
		engine: engine,
	}
}

func (u *createRoomUseCase) Execute(ctx context.Context, host domain.Identity, capacity int, settings *domain.SettingsPatch) (int, *domain.Room, error) {
	room, err := u.engine.CreateRoom(host, capacity, settings)
	if err != nil {
		return domain.StatusCode(err), nil, err
	}
	return http.StatusCreated, &room, nil
}
