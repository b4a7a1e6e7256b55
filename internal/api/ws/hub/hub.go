package hub

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"drawguess-service/domain"

	"go.uber.org/zap"
)

var errSendChannelFull = errors.New("client send channel is full")

// PresenceListener is told when a participant drops off or is forgotten for good.
type PresenceListener interface {
	ParticipantOffline(p domain.Participant)
	ParticipantPurged(p domain.Participant)
}

type Config struct {
	GracePeriod   time.Duration
	SweepInterval time.Duration
	CommandRate   float64
	CommandBurst  int
}

// Hub maps participant ids to their live channel and remembers disconnected
// participants until the grace period runs out.
type Hub struct {
	clients      map[string]*domain.Client
	participants map[string]*domain.Participant
	mutex        sync.RWMutex

	listener PresenceListener
	cfg      Config
	now      func() time.Time
}

// NewHub, varsayılan değerleri doldurarak yeni bir Hub oluşturur.
func NewHub(cfg Config) *Hub {
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = 5 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 30 * time.Second
	}
	if cfg.CommandRate <= 0 {
		cfg.CommandRate = 20
	}
	if cfg.CommandBurst <= 0 {
		cfg.CommandBurst = 40
	}
	return &Hub{
		clients:      make(map[string]*domain.Client),
		participants: make(map[string]*domain.Participant),
		cfg:          cfg,
		now:          time.Now,
	}
}

func (h *Hub) SetPresenceListener(l PresenceListener) {
	h.listener = l
}

// Register binds a live channel to the participant and marks them online.
func (h *Hub) Register(client *domain.Client) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.clients[client.ID]; exists {
		return domain.ErrDuplicateConnection
	}
	h.clients[client.ID] = client

	p, ok := h.participants[client.ID]
	if !ok {
		p = &domain.Participant{ID: client.ID}
		h.participants[client.ID] = p
	}
	p.Username = client.Username
	p.TenantTag = client.TenantTag
	p.Online = true
	p.LastSeen = h.now()
	p.DisconnectedAt = nil

	zap.L().Info("Client registered", zap.String("participant", client.ID), zap.Int("online", len(h.clients)))
	return nil
}

// Evict closes and forgets the live channel without announcing the participant as offline.
func (h *Hub) Evict(participantID string) bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	client, ok := h.clients[participantID]
	if !ok {
		return false
	}
	delete(h.clients, participantID)
	client.Close()
	zap.L().Info("Previous connection evicted", zap.String("participant", participantID))
	return true
}

// Unregister marks the participant offline and keeps them for the grace period.
func (h *Hub) Unregister(participantID string) {
	h.mutex.Lock()
	client, ok := h.clients[participantID]
	if !ok {
		h.mutex.Unlock()
		return
	}
	p := h.unregisterLocked(client)
	h.mutex.Unlock()

	h.announceOffline(p)
}

// release unregisters client only if it is still the participant's live channel.
func (h *Hub) release(client *domain.Client) {
	h.mutex.Lock()
	if current, ok := h.clients[client.ID]; !ok || current != client {
		h.mutex.Unlock()
		return
	}
	p := h.unregisterLocked(client)
	h.mutex.Unlock()

	h.announceOffline(p)
}

func (h *Hub) unregisterLocked(client *domain.Client) domain.Participant {
	delete(h.clients, client.ID)
	client.Close()

	p, ok := h.participants[client.ID]
	if !ok {
		return domain.Participant{ID: client.ID}
	}
	now := h.now()
	p.Online = false
	p.LastSeen = now
	p.DisconnectedAt = &now

	zap.L().Info("Client unregistered", zap.String("participant", client.ID), zap.Int("online", len(h.clients)))
	return *p
}

func (h *Hub) announceOffline(p domain.Participant) {
	if h.listener != nil && p.CurrentRoom != "" {
		h.listener.ParticipantOffline(p)
	}
}

func (h *Hub) Resolve(participantID string) (*domain.Client, error) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	client, ok := h.clients[participantID]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	return client, nil
}

func (h *Hub) Participant(participantID string) (domain.Participant, bool) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	p, ok := h.participants[participantID]
	if !ok {
		return domain.Participant{}, false
	}
	return *p, true
}

func (h *Hub) CurrentRoom(participantID string) string {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if p, ok := h.participants[participantID]; ok {
		return p.CurrentRoom
	}
	return ""
}

// SetCurrentRoom records the participant's room. A participant never seen before
// is tracked as disconnected so the sweep eventually releases their seat.
func (h *Hub) SetCurrentRoom(participantID, roomCode string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	p, ok := h.participants[participantID]
	if !ok {
		now := h.now()
		p = &domain.Participant{ID: participantID, LastSeen: now, DisconnectedAt: &now}
		h.participants[participantID] = p
	}
	p.CurrentRoom = roomCode
}

// ClearCurrentRoom forgets the room only if it is still the one recorded.
func (h *Hub) ClearCurrentRoom(participantID, roomCode string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if p, ok := h.participants[participantID]; ok && p.CurrentRoom == roomCode {
		p.CurrentRoom = ""
	}
}

// Sweep forgets participants that stayed offline past the grace period.
func (h *Hub) Sweep() []domain.Participant {
	now := h.now()

	h.mutex.Lock()
	purged := make([]domain.Participant, 0)
	for id, p := range h.participants {
		if p.Online || p.DisconnectedAt == nil {
			continue
		}
		if now.Sub(*p.DisconnectedAt) < h.cfg.GracePeriod {
			continue
		}
		purged = append(purged, *p)
		delete(h.participants, id)
	}
	h.mutex.Unlock()

	for _, p := range purged {
		zap.L().Info("Participant purged", zap.String("participant", p.ID), zap.String("room", p.CurrentRoom))
		if h.listener != nil {
			h.listener.ParticipantPurged(p)
		}
	}
	return purged
}

func (h *Hub) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(h.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// SendMessageToClient queues msg on the client's channel without blocking.
func (h *Hub) SendMessageToClient(client *domain.Client, msg interface{}) error {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case client.Send <- messageBytes:
		return nil
	default:
		zap.L().Warn("Send channel full, dropping message", zap.String("participant", client.ID))
		return errSendChannelFull
	}
}

func (h *Hub) SendError(client *domain.Client, err error) {
	msg := &domain.WebSocketErrorMessage{
		Type:    domain.EventError,
		Message: err.Error(),
		Code:    domain.StatusCode(err),
	}
	if sendErr := h.SendMessageToClient(client, msg); sendErr != nil {
		zap.L().Warn("Failed to send error to client", zap.String("participant", client.ID), zap.Error(sendErr))
	}
}
