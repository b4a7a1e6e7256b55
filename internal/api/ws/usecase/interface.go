package wsUsecase

import (
	"context"
	"encoding/json"

	"drawguess-service/domain"
	"drawguess-service/internal/api/game"
	"drawguess-service/internal/api/ws/hub"
)

type Hub interface {
	Register(client *domain.Client) error
	Evict(participantID string) bool
	CurrentRoom(participantID string) string
	ClearCurrentRoom(participantID, roomCode string)
	Serve(ctx context.Context, client *domain.Client, dispatcher hub.CommandDispatcher)
	SendMessageToClient(client *domain.Client, msg interface{}) error
	SendError(client *domain.Client, err error)
}

type GameEngine interface {
	CreateRoom(host domain.Identity, capacity int, patch *domain.SettingsPatch) (domain.Room, error)
	JoinRoom(code string, who domain.Identity) (domain.Room, error)
	LeaveRoom(code, participantID string) error
	StartGame(ctx context.Context, code, requesterID string) error
	SubmitGuess(code, participantID, text string) (game.GuessResult, error)
	RelayStroke(code, participantID string, stroke json.RawMessage) error
	ClearCanvas(code, participantID string) error
	SendChat(code, participantID, text string) error
	SetTyping(code, participantID string, typing bool) error
	UpdateSettings(code, participantID string, patch domain.SettingsPatch) (domain.RoomSettings, error)
}
