package wsUsecase

import (
	"context"
	"encoding/json"

	"drawguess-service/domain"
	"drawguess-service/internal/api/game"
	"drawguess-service/internal/api/ws/hub"

	"github.com/stretchr/testify/mock"
)

// --- Hub ---

type MockHub struct {
	mock.Mock
}

func (m *MockHub) Register(client *domain.Client) error {
	args := m.Called(client)
	return args.Error(0)
}

func (m *MockHub) Evict(participantID string) bool {
	args := m.Called(participantID)
	return args.Bool(0)
}

func (m *MockHub) CurrentRoom(participantID string) string {
	args := m.Called(participantID)
	return args.String(0)
}

func (m *MockHub) ClearCurrentRoom(participantID, roomCode string) {
	m.Called(participantID, roomCode)
}

func (m *MockHub) Serve(ctx context.Context, client *domain.Client, dispatcher hub.CommandDispatcher) {
	m.Called(ctx, client, dispatcher)
}

func (m *MockHub) SendMessageToClient(client *domain.Client, msg interface{}) error {
	args := m.Called(client, msg)
	return args.Error(0)
}

func (m *MockHub) SendError(client *domain.Client, err error) {
	m.Called(client, err)
}

// --- GameEngine ---

type MockGameEngine struct {
	mock.Mock
}

func (m *MockGameEngine) CreateRoom(host domain.Identity, capacity int, patch *domain.SettingsPatch) (domain.Room, error) {
	args := m.Called(host, capacity, patch)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockGameEngine) JoinRoom(code string, who domain.Identity) (domain.Room, error) {
	args := m.Called(code, who)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockGameEngine) LeaveRoom(code, participantID string) error {
	args := m.Called(code, participantID)
	return args.Error(0)
}

func (m *MockGameEngine) StartGame(ctx context.Context, code, requesterID string) error {
	args := m.Called(ctx, code, requesterID)
	return args.Error(0)
}

func (m *MockGameEngine) SubmitGuess(code, participantID, text string) (game.GuessResult, error) {
	args := m.Called(code, participantID, text)
	return args.Get(0).(game.GuessResult), args.Error(1)
}

func (m *MockGameEngine) RelayStroke(code, participantID string, stroke json.RawMessage) error {
	args := m.Called(code, participantID, stroke)
	return args.Error(0)
}

func (m *MockGameEngine) ClearCanvas(code, participantID string) error {
	args := m.Called(code, participantID)
	return args.Error(0)
}

func (m *MockGameEngine) SendChat(code, participantID, text string) error {
	args := m.Called(code, participantID, text)
	return args.Error(0)
}

func (m *MockGameEngine) SetTyping(code, participantID string, typing bool) error {
	args := m.Called(code, participantID, typing)
	return args.Error(0)
}

func (m *MockGameEngine) UpdateSettings(code, participantID string, patch domain.SettingsPatch) (domain.RoomSettings, error) {
	args := m.Called(code, participantID, patch)
	return args.Get(0).(domain.RoomSettings), args.Error(1)
}
