package httpUsecase

import (
	"context"
	"net/http"

	"drawguess-service/domain"
)

type GetActiveRoomsUseCase interface {
	Execute(ctx context.Context, tenantTag string) (int, []domain.Room, error)
}

type getActiveRoomsUseCase struct {
	engine GameEngine
}

func NewGetActiveRoomsUseCase(engine GameEngine) GetActiveRoomsUseCase {
	return &getActiveRoomsUseCase{
		engine: engine,
	}
}

func (u *getActiveRoomsUseCase) Execute(ctx context.Context, tenantTag string) (int, []domain.Room, error) {
	return http.StatusOK, u.engine.ListActive(tenantTag), nil
}
