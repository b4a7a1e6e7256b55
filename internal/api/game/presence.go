package game

import (
	"drawguess-service/domain"

	"go.uber.org/zap"
)

// ParticipantOffline keeps the player in the room but marks them offline.
func (e *GameEngine) ParticipantOffline(p domain.Participant) {
	if p.CurrentRoom == "" {
		return
	}
	r, err := e.lockRoom(p.CurrentRoom)
	if err != nil {
		return
	}
	defer r.mu.Unlock()

	player := r.player(p.ID)
	if player == nil {
		return
	}
	player.IsOnline = false
	e.broadcast.Publish(r.code, r.memberIDs(), domain.EventPlayerOffline, map[string]interface{}{
		"participant_id": p.ID,
		"username":       player.Username,
	}, "")

	if round := r.activeRound(); round != nil && e.allGuessedLocked(r, round) {
		e.endRoundLocked(r)
	}
}

// ParticipantPurged treats a participant who never came back as having left.
// One who reconnected after the sweep picked them keeps their seat.
func (e *GameEngine) ParticipantPurged(p domain.Participant) {
	if p.CurrentRoom == "" {
		return
	}
	if _, err := e.conns.Resolve(p.ID); err == nil {
		switch e.conns.CurrentRoom(p.ID) {
		case p.CurrentRoom:
			return
		case "":
			who := domain.Identity{UserID: p.ID, Username: p.Username, TenantTag: p.TenantTag}
			if _, err := e.JoinRoom(p.CurrentRoom, who); err == nil {
				return
			}
		}
	}
	if err := e.LeaveRoom(p.CurrentRoom, p.ID); err != nil {
		zap.L().Debug("Purged participant was not in room", zap.String("participant", p.ID), zap.String("room", p.CurrentRoom), zap.Error(err))
	}
}
