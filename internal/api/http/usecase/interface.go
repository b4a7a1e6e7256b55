package httpUsecase

import (
	"drawguess-service/domain"
)

type GameEngine interface {
	CreateRoom(host domain.Identity, capacity int, patch *domain.SettingsPatch) (domain.Room, error)
	JoinRoom(code string, who domain.Identity) (domain.Room, error)
	LeaveRoom(code, participantID string) error
	UpdateSettings(code, participantID string, patch domain.SettingsPatch) (domain.RoomSettings, error)
	ListActive(tenantTag string) []domain.Room
	GetRoom(code, tenantTag string) (domain.Room, error)
}
