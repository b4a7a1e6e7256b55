package wsUsecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"drawguess-service/domain"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

type CreateRoomCommand struct {
	Capacity int                   `json:"capacity"`
	Settings *domain.SettingsPatch `json:"settings"`
}

type RoomCommand struct {
	RoomCode string `json:"room_code" validate:"required,alphanum,min=4,max=10"`
}

type GuessCommand struct {
	RoomCode string `json:"room_code" validate:"required,alphanum,min=4,max=10"`
	Text     string `json:"text" validate:"required,max=100"`
}

type MessageCommand struct {
	RoomCode string `json:"room_code" validate:"required,alphanum,min=4,max=10"`
	Message  string `json:"message" validate:"required,max=500"`
	Type     string `json:"type" validate:"omitempty,oneof=chat guess"`
}

type StrokeCommand struct {
	RoomCode string          `json:"room_code" validate:"required,alphanum,min=4,max=10"`
	Stroke   json.RawMessage `json:"stroke" validate:"required"`
}

type TypingCommand struct {
	RoomCode string `json:"room_code" validate:"required,alphanum,min=4,max=10"`
	IsTyping bool   `json:"is_typing"`
}

type SettingsCommand struct {
	RoomCode string               `json:"room_code" validate:"required,alphanum,min=4,max=10"`
	Settings domain.SettingsPatch `json:"settings"`
}

// CommandDispatcher routes inbound commands to the game engine and reports failures back to the sender.
type CommandDispatcher struct {
	engine GameEngine
	hub    Hub
}

func NewCommandDispatcher(engine GameEngine, hub Hub) *CommandDispatcher {
	return &CommandDispatcher{
		engine: engine,
		hub:    hub,
	}
}

func (d *CommandDispatcher) Dispatch(ctx context.Context, client *domain.Client, cmd domain.Command) {
	if err := d.handle(ctx, client, cmd); err != nil {
		zap.L().Debug("Command rejected", zap.String("participant", client.ID), zap.String("command", cmd.Type), zap.Error(err))
		d.hub.SendError(client, err)
	}
}

func (d *CommandDispatcher) handle(ctx context.Context, client *domain.Client, cmd domain.Command) error {
	switch cmd.Type {
	case domain.CmdCreateRoom:
		var req CreateRoomCommand
		if err := decode(cmd.Data, &req); err != nil {
			return err
		}
		_, err := d.engine.CreateRoom(client.Identity(), req.Capacity, req.Settings)
		return err

	case domain.CmdJoinRoom:
		var req RoomCommand
		if err := decode(cmd.Data, &req); err != nil {
			return err
		}
		_, err := d.engine.JoinRoom(req.RoomCode, client.Identity())
		return err

	case domain.CmdLeaveRoom:
		var req RoomCommand
		if err := decode(cmd.Data, &req); err != nil {
			return err
		}
		return d.engine.LeaveRoom(req.RoomCode, client.ID)

	case domain.CmdStartGame:
		var req RoomCommand
		if err := decode(cmd.Data, &req); err != nil {
			return err
		}
		err := d.engine.StartGame(ctx, req.RoomCode, client.ID)
		if gameCancelled(err) {
			// the whole room, starter included, already got the error event
			return nil
		}
		return err

	case domain.CmdSubmitGuess:
		var req GuessCommand
		if err := decode(cmd.Data, &req); err != nil {
			return err
		}
		return d.submitGuess(client, req.RoomCode, req.Text)

	case domain.CmdSendMessage:
		var req MessageCommand
		if err := decode(cmd.Data, &req); err != nil {
			return err
		}
		if req.Type == string(domain.MessageTypeGuess) {
			return d.submitGuess(client, req.RoomCode, req.Message)
		}
		return d.engine.SendChat(req.RoomCode, client.ID, req.Message)

	case domain.CmdDrawStroke:
		var req StrokeCommand
		if err := decode(cmd.Data, &req); err != nil {
			return err
		}
		return d.engine.RelayStroke(req.RoomCode, client.ID, req.Stroke)

	case domain.CmdClearCanvas:
		var req RoomCommand
		if err := decode(cmd.Data, &req); err != nil {
			return err
		}
		return d.engine.ClearCanvas(req.RoomCode, client.ID)

	case domain.CmdTyping:
		var req TypingCommand
		if err := decode(cmd.Data, &req); err != nil {
			return err
		}
		return d.engine.SetTyping(req.RoomCode, client.ID, req.IsTyping)

	case domain.CmdUpdateSettings:
		var req SettingsCommand
		if err := decode(cmd.Data, &req); err != nil {
			return err
		}
		_, err := d.engine.UpdateSettings(req.RoomCode, client.ID, req.Settings)
		return err

	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownCommand, cmd.Type)
	}
}

func (d *CommandDispatcher) submitGuess(client *domain.Client, roomCode, text string) error {
	res, err := d.engine.SubmitGuess(roomCode, client.ID, text)
	if err != nil {
		return err
	}
	if err := d.hub.SendMessageToClient(client, &domain.Message{Type: domain.EventGuessResult, Content: res}); err != nil {
		zap.L().Warn("Failed to send guess result", zap.String("participant", client.ID), zap.Error(err))
	}
	return nil
}

// gameCancelled reports errors StartGame returns after the game was already
// cancelled and announced to the room.
func gameCancelled(err error) bool {
	return errors.Is(err, domain.ErrUpstream) || errors.Is(err, domain.ErrNoOnlinePlayers)
}

func decode(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
