package httpUsecase

import (
	"context"
	"net/http"

	"drawguess-service/domain"
)

type JoinRoomUseCase interface {
	Execute(ctx context.Context, roomCode string, who domain.Identity) (int, *domain.Room, error)
}

type joinRoomUseCase struct {
	engine GameEngine
}

func NewJoinRoomUseCase(engine GameEngine) JoinRoomUseCase {
	return &joinRoomUseCase{
		engine: engine,
	}
}

func (u *joinRoomUseCase) Execute(ctx context.Context, roomCode string, who domain.Identity) (int, *domain.Room, error) {
	room, err := u.engine.JoinRoom(roomCode, who)
	if err != nil {
		return domain.StatusCode(err), nil, err
	}
	return http.StatusOK, &room, nil
}
