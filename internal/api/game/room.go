package game

import (
	"sync"
	"time"

	"drawguess-service/domain"
)

// room is the authoritative state of one lobby. Every field is guarded by mu.
type room struct {
	mu sync.Mutex

	code      string
	tenantTag string
	hostID    string
	capacity  int
	status    domain.RoomStatus
	settings  domain.RoomSettings
	players   []*domain.Player
	createdAt time.Time

	play *gameState

	// epoch moves on every scheduler transition; timers compare it before acting.
	epoch   uint64
	timer   Timer
	deleted bool
}

type rosterEntry struct {
	id       string
	username string
}

// gameState is the scheduler's private bookkeeping for the room's latest game.
type gameState struct {
	game      *domain.Game
	roster    []rosterEntry
	rotation  int
	usedWords map[string]struct{}
}

func newGameState(game *domain.Game, players []*domain.Player) *gameState {
	roster := make([]rosterEntry, 0, len(players))
	for _, p := range players {
		roster = append(roster, rosterEntry{id: p.ID, username: p.Username})
	}
	return &gameState{
		game:      game,
		roster:    roster,
		rotation:  -1,
		usedWords: make(map[string]struct{}),
	}
}

// nextDrawer advances the raw rotation index to the next eligible roster entry.
func (s *gameState) nextDrawer(eligible func(id string) bool) (rosterEntry, bool) {
	n := len(s.roster)
	for i := 1; i <= n; i++ {
		idx := (s.rotation + i) % n
		if eligible(s.roster[idx].id) {
			s.rotation = idx
			return s.roster[idx], true
		}
	}
	return rosterEntry{}, false
}

func (s *gameState) excludedWords() []string {
	words := make([]string, 0, len(s.usedWords))
	for w := range s.usedWords {
		words = append(words, w)
	}
	return words
}

func (r *room) player(id string) *domain.Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *room) indexOf(id string) int {
	for i, p := range r.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *room) memberIDs() []string {
	ids := make([]string, 0, len(r.players))
	for _, p := range r.players {
		ids = append(ids, p.ID)
	}
	return ids
}

func (r *room) isOnlineMember(id string) bool {
	p := r.player(id)
	return p != nil && p.IsOnline
}

// activeRound returns the open round of a running game, if any.
func (r *room) activeRound() *domain.Round {
	if r.status != domain.RoomStatusPlaying || r.play == nil {
		return nil
	}
	round := r.play.game.CurrentRound()
	if round == nil || !round.Active() {
		return nil
	}
	return round
}

func (r *room) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *room) snapshot() domain.Room {
	players := make([]domain.Player, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, *p)
	}
	snap := domain.Room{
		Code:      r.code,
		TenantTag: r.tenantTag,
		HostID:    r.hostID,
		Capacity:  r.capacity,
		Status:    r.status,
		Settings:  r.settings,
		Players:   players,
		CreatedAt: r.createdAt,
	}
	if r.play != nil {
		snap.GameID = r.play.game.ID
	}
	return snap
}

func (r *room) scores() map[string]int {
	scores := make(map[string]int, len(r.players))
	for _, p := range r.players {
		scores[p.ID] = p.Score
	}
	return scores
}
