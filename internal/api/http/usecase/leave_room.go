package httpUsecase

import (
	"context"
	"net/http"

	"drawguess-service/domain"
)

type LeaveRoomUseCase interface {
	Execute(ctx context.Context, roomCode, participantID string) (int, error)
}

type leaveRoomUseCase struct {
	engine GameEngine
}

func NewLeaveRoomUseCase(engine GameEngine) LeaveRoomUseCase {
	return &leaveRoomUseCase{
		engine: engine,
	}
}

func (u *leaveRoomUseCase) Execute(ctx context.Context, roomCode, participantID string) (int, error) {
	if err := u.engine.LeaveRoom(roomCode, participantID); err != nil {
		return domain.StatusCode(err), err
	}
	return http.StatusOK, nil
}
