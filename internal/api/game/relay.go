package game

import (
	"encoding/json"

	"drawguess-service/domain"
)

// RelayStroke forwards a drawing stroke to everyone but the sender.
func (e *GameEngine) RelayStroke(code, participantID string, stroke json.RawMessage) error {
	r, err := e.lockRoom(code)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()

	if err := e.canDrawLocked(r, participantID); err != nil {
		return err
	}
	e.broadcast.Publish(r.code, r.memberIDs(), domain.EventStrokeReceived, map[string]interface{}{
		"participant_id": participantID,
		"stroke":         stroke,
	}, participantID)
	return nil
}

func (e *GameEngine) ClearCanvas(code, participantID string) error {
	r, err := e.lockRoom(code)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()

	if err := e.canDrawLocked(r, participantID); err != nil {
		return err
	}
	e.broadcast.Publish(r.code, r.memberIDs(), domain.EventCanvasCleared, map[string]interface{}{
		"participant_id": participantID,
	}, participantID)
	return nil
}

// SendChat posts a chat line to the room, logging it on the open round when there is one.
func (e *GameEngine) SendChat(code, participantID, text string) error {
	r, err := e.lockRoom(code)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()

	p := r.player(participantID)
	if p == nil {
		return domain.ErrNotMember
	}
	now := e.opts.Clock.Now()
	if round := r.activeRound(); round != nil {
		round.Messages = append(round.Messages, domain.ChatMessage{
			ParticipantID: participantID,
			Username:      p.Username,
			Text:          text,
			Type:          domain.MessageTypeChat,
			At:            now,
		})
	}
	e.broadcast.Publish(r.code, r.memberIDs(), domain.EventMessageReceived, map[string]interface{}{
		"participant_id": participantID,
		"username":       p.Username,
		"message":        text,
		"type":           domain.MessageTypeChat,
		"at":             now,
	}, "")
	return nil
}

func (e *GameEngine) SetTyping(code, participantID string, typing bool) error {
	r, err := e.lockRoom(code)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()

	p := r.player(participantID)
	if p == nil {
		return domain.ErrNotMember
	}
	e.broadcast.Publish(r.code, r.memberIDs(), domain.EventUserTyping, map[string]interface{}{
		"participant_id": participantID,
		"username":       p.Username,
		"is_typing":      typing,
	}, participantID)
	return nil
}

// canDrawLocked allows any member to draw in the lobby and only the drawer during a game.
func (e *GameEngine) canDrawLocked(r *room, participantID string) error {
	if r.player(participantID) == nil {
		return domain.ErrNotMember
	}
	if r.status != domain.RoomStatusPlaying {
		return nil
	}
	round := r.activeRound()
	if round == nil || round.DrawerID != participantID {
		return domain.ErrNotDrawer
	}
	return nil
}
