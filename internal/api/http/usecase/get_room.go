package httpUsecase

import (
	"context"
	"net/http"

	"drawguess-service/domain"
)

type GetRoomUseCase interface {
	Execute(ctx context.Context, roomCode, tenantTag string) (int, *domain.Room, error)
}

type getRoomUseCase struct {
	engine GameEngine
}

func NewGetRoomUseCase(engine GameEngine) GetRoomUseCase {
	return &getRoomUseCase{
		engine: engine,
	}
}

func (u *getRoomUseCase) Execute(ctx context.Context, roomCode, tenantTag string) (int, *domain.Room, error) {
	room, err := u.engine.GetRoom(roomCode, tenantTag)
	if err != nil {
		return domain.StatusCode(err), nil, err
	}
	return http.StatusOK, &room, nil
}
