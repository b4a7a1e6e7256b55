package game

import (
	"context"
	"time"

	"drawguess-service/domain"

	"go.uber.org/zap"
)

type WordBank interface {
	DrawWord(ctx context.Context, tenantTag, difficulty string, exclude []string) (string, error)
}

type StatsStore interface {
	RecordGameResult(ctx context.Context, tenantTag, participantID string, result domain.GameResult) error
}

// GameArchiver mirrors completed games somewhere durable.
type GameArchiver interface {
	ArchiveGame(ctx context.Context, game *domain.Game) error
}

type RoomNotifier interface {
	PublishMessage(ctx context.Context, roomCode string, msgType string, dataContent interface{})
}

type Dependencies struct {
	Connections Connections
	Words       WordBank
	Stats       StatsStore
	Archivers   []GameArchiver
	Notifier    RoomNotifier
}

type Options struct {
	InterRoundDelay   time.Duration
	WordTimeout       time.Duration
	SideEffectTimeout time.Duration
	Clock             Clock
	CodeGenerator     func() string
}

func (o Options) withDefaults() Options {
	if o.InterRoundDelay <= 0 {
		o.InterRoundDelay = 5 * time.Second
	}
	if o.WordTimeout <= 0 {
		o.WordTimeout = 2 * time.Second
	}
	if o.SideEffectTimeout <= 0 {
		o.SideEffectTimeout = 10 * time.Second
	}
	if o.Clock == nil {
		o.Clock = realClock{}
	}
	if o.CodeGenerator == nil {
		o.CodeGenerator = GenerateRoomCode
	}
	return o
}

// GameEngine owns every live room and drives their games.
type GameEngine struct {
	rooms     *RoomManager
	conns     Connections
	broadcast *Broadcaster
	words     WordBank
	stats     StatsStore
	archivers []GameArchiver
	notifier  RoomNotifier
	opts      Options
}

func NewGameEngine(deps Dependencies, opts Options) *GameEngine {
	return &GameEngine{
		rooms:     NewRoomManager(),
		conns:     deps.Connections,
		broadcast: NewBroadcaster(deps.Connections),
		words:     deps.Words,
		stats:     deps.Stats,
		archivers: deps.Archivers,
		notifier:  deps.Notifier,
		opts:      opts.withDefaults(),
	}
}

func (e *GameEngine) Rooms() *RoomManager {
	return e.rooms
}

// lockRoom canonicalises code and returns the room with its mutex held.
func (e *GameEngine) lockRoom(code string) (*room, error) {
	code, err := CanonicalRoomCode(code)
	if err != nil {
		return nil, err
	}
	r, ok := e.rooms.get(code)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	r.mu.Lock()
	if r.deleted {
		r.mu.Unlock()
		return nil, domain.ErrRoomNotFound
	}
	return r, nil
}

func (e *GameEngine) notify(roomCode, msgType string, content interface{}) {
	if e.notifier == nil {
		return
	}
	go e.notifier.PublishMessage(context.Background(), roomCode, msgType, content)
}

// CreateRoom opens a new waiting room with the caller as host.
func (e *GameEngine) CreateRoom(host domain.Identity, capacity int, patch *domain.SettingsPatch) (domain.Room, error) {
	if capacity == 0 {
		capacity = domain.DefaultCapacity
	}
	if capacity < domain.MinCapacity || capacity > domain.MaxCapacity {
		return domain.Room{}, domain.ErrCapacityOutOfRange
	}
	settings := domain.DefaultRoomSettings()
	if patch != nil {
		settings = settings.Merge(*patch)
	}
	if err := settings.Validate(); err != nil {
		return domain.Room{}, err
	}
	e.leaveOtherRoom(host.UserID, "")

	now := e.opts.Clock.Now()
	r := &room{
		tenantTag: host.TenantTag,
		hostID:    host.UserID,
		capacity:  capacity,
		status:    domain.RoomStatusWaiting,
		settings:  settings,
		createdAt: now,
		players: []*domain.Player{{
			ID:       host.UserID,
			Username: host.Username,
			IsHost:   true,
			IsOnline: true,
			JoinedAt: now,
		}},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	code := e.rooms.insert(e.opts.CodeGenerator, r)
	e.conns.SetCurrentRoom(host.UserID, code)

	snap := r.snapshot()
	e.broadcast.SendTo(host.UserID, domain.EventRoomJoined, snap)
	e.notify(code, domain.MsgRoomCreated, map[string]interface{}{"host_id": host.UserID, "tenant_tag": host.TenantTag})

	zap.L().Info("Room created", zap.String("room", code), zap.String("host", host.UserID), zap.Int("capacity", capacity))
	return snap, nil
}

// JoinRoom adds the participant, or re-activates them if they are already a member.
// A participant sits in one room at a time, so any other room they are in is left first.
func (e *GameEngine) JoinRoom(code string, who domain.Identity) (domain.Room, error) {
	r, err := e.lockRoom(code)
	if err != nil {
		return domain.Room{}, err
	}
	target := r.code
	err = joinErrLocked(r, who)
	r.mu.Unlock()
	if err != nil {
		return domain.Room{}, err
	}

	e.leaveOtherRoom(who.UserID, target)

	r, err = e.lockRoom(target)
	if err != nil {
		return domain.Room{}, err
	}
	defer r.mu.Unlock()
	if err := joinErrLocked(r, who); err != nil {
		return domain.Room{}, err
	}

	p := r.player(who.UserID)
	if p != nil {
		p.IsOnline = true
		if who.Username != "" {
			p.Username = who.Username
		}
	} else {
		p = &domain.Player{
			ID:       who.UserID,
			Username: who.Username,
			IsOnline: true,
			JoinedAt: e.opts.Clock.Now(),
		}
		r.players = append(r.players, p)
	}
	e.conns.SetCurrentRoom(who.UserID, r.code)

	snap := r.snapshot()
	e.broadcast.SendTo(who.UserID, domain.EventRoomJoined, snap)
	e.broadcast.Publish(r.code, r.memberIDs(), domain.EventPlayerJoined, map[string]interface{}{
		"player":       *p,
		"player_count": len(r.players),
	}, "")

	return snap, nil
}

func joinErrLocked(r *room, who domain.Identity) error {
	if r.tenantTag != who.TenantTag {
		return domain.ErrTenantMismatch
	}
	if r.player(who.UserID) != nil {
		return nil
	}
	if len(r.players) >= r.capacity {
		return domain.ErrRoomFull
	}
	if r.status == domain.RoomStatusPlaying {
		return domain.ErrGameInProgress
	}
	return nil
}

// leaveOtherRoom drops the participant from their recorded room unless it is keep.
// Must be called without any room lock held.
func (e *GameEngine) leaveOtherRoom(participantID, keep string) {
	current := e.conns.CurrentRoom(participantID)
	if current == "" || current == keep {
		return
	}
	if err := e.LeaveRoom(current, participantID); err != nil {
		zap.L().Debug("Could not leave previous room", zap.String("participant", participantID), zap.String("room", current), zap.Error(err))
		e.conns.ClearCurrentRoom(participantID, current)
	}
}

// LeaveRoom removes the participant, transferring host or deleting the room as needed.
func (e *GameEngine) LeaveRoom(code, participantID string) error {
	r, err := e.lockRoom(code)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()

	idx := r.indexOf(participantID)
	if idx < 0 {
		return domain.ErrNotMember
	}
	leaving := r.players[idx]
	r.players = append(r.players[:idx], r.players[idx+1:]...)
	e.conns.ClearCurrentRoom(participantID, r.code)

	left := map[string]interface{}{
		"participant_id": leaving.ID,
		"username":       leaving.Username,
		"player_count":   len(r.players),
	}

	if len(r.players) == 0 {
		e.deleteRoomLocked(r)
		e.broadcast.SendTo(participantID, domain.EventPlayerLeft, left)
		return nil
	}

	if leaving.IsHost {
		next := r.players[0]
		next.IsHost = true
		r.hostID = next.ID
		left["new_host_id"] = next.ID
		zap.L().Info("Host transferred", zap.String("room", r.code), zap.String("host", next.ID))
	}

	e.broadcast.Publish(r.code, r.memberIDs(), domain.EventPlayerLeft, left, "")
	e.broadcast.SendTo(participantID, domain.EventPlayerLeft, left)

	if round := r.activeRound(); round != nil && e.allGuessedLocked(r, round) {
		e.endRoundLocked(r)
	}
	return nil
}

func (e *GameEngine) deleteRoomLocked(r *room) {
	r.deleted = true
	r.epoch++
	r.stopTimer()
	if r.play != nil && r.status == domain.RoomStatusPlaying {
		e.sealOpenRound(r)
		now := e.opts.Clock.Now()
		r.play.game.Status = domain.GameStatusCancelled
		r.play.game.EndedAt = &now
	}
	e.rooms.delete(r.code)
	e.notify(r.code, domain.MsgRoomDeleted, map[string]interface{}{"tenant_tag": r.tenantTag})
	zap.L().Info("Room deleted", zap.String("room", r.code))
}

// UpdateSettings merges patch into the room's settings. Host only, and not mid-game.
func (e *GameEngine) UpdateSettings(code, participantID string, patch domain.SettingsPatch) (domain.RoomSettings, error) {
	r, err := e.lockRoom(code)
	if err != nil {
		return domain.RoomSettings{}, err
	}
	defer r.mu.Unlock()

	if r.hostID != participantID {
		return domain.RoomSettings{}, domain.ErrNotHost
	}
	if r.status == domain.RoomStatusPlaying {
		return domain.RoomSettings{}, domain.ErrGameInProgress
	}
	merged := r.settings.Merge(patch)
	if err := merged.Validate(); err != nil {
		return domain.RoomSettings{}, err
	}
	r.settings = merged

	e.broadcast.Publish(r.code, r.memberIDs(), domain.EventSettingsUpdated, merged, "")
	return merged, nil
}

// ListActive returns the tenant's waiting and playing rooms, oldest first.
func (e *GameEngine) ListActive(tenantTag string) []domain.Room {
	rooms := make([]domain.Room, 0)
	for _, r := range e.rooms.all() {
		r.mu.Lock()
		if !r.deleted && r.tenantTag == tenantTag && r.status != domain.RoomStatusCompleted {
			rooms = append(rooms, r.snapshot())
		}
		r.mu.Unlock()
	}
	return rooms
}

func (e *GameEngine) GetRoom(code, tenantTag string) (domain.Room, error) {
	r, err := e.lockRoom(code)
	if err != nil {
		return domain.Room{}, err
	}
	defer r.mu.Unlock()

	if r.tenantTag != tenantTag {
		return domain.Room{}, domain.ErrTenantMismatch
	}
	return r.snapshot(), nil
}
