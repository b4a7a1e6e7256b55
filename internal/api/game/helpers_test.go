package game

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"drawguess-service/domain"

	"github.com/stretchr/testify/require"
)

// fakeClock fires timers synchronously from Advance. Callbacks run without the
// clock's lock held so they may call Now and AfterFunc.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, t := range c.timers {
			if t.fired || t.stopped || t.at.After(target) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.fired = true
		if next.at.After(c.now) {
			c.now = next.at
		}
		c.mu.Unlock()
		next.f()
	}
}

func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

type fakeConns struct {
	mu      sync.Mutex
	clients map[string]*domain.Client
	rooms   map[string]string
}

func newFakeConns() *fakeConns {
	return &fakeConns{
		clients: make(map[string]*domain.Client),
		rooms:   make(map[string]string),
	}
}

func (f *fakeConns) connect(id domain.Identity) *domain.Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := domain.NewClient(id, nil)
	f.clients[id.UserID] = c
	return c
}

func (f *fakeConns) disconnect(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.clients, id)
}

func (f *fakeConns) Resolve(id string) (*domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	return c, nil
}

func (f *fakeConns) SetCurrentRoom(id, code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms[id] = code
}

func (f *fakeConns) ClearCurrentRoom(id, code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rooms[id] == code {
		delete(f.rooms, id)
	}
}

func (f *fakeConns) CurrentRoom(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rooms[id]
}

func player(id string) domain.Identity {
	return domain.Identity{UserID: id, Username: id + "-name", TenantTag: "acme"}
}

// sequenceWords hands out words in order and records what it was asked to exclude.
type sequenceWords struct {
	mu       sync.Mutex
	words    []string
	next     int
	err      error
	excludes [][]string
}

func (s *sequenceWords) DrawWord(ctx context.Context, tenantTag, difficulty string, exclude []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ex := append([]string(nil), exclude...)
	sort.Strings(ex)
	s.excludes = append(s.excludes, ex)
	if s.err != nil {
		return "", s.err
	}
	w := s.words[s.next%len(s.words)]
	s.next++
	return w, nil
}

type recordingStats struct {
	mu      sync.Mutex
	results map[string]domain.GameResult
}

func (s *recordingStats) RecordGameResult(ctx context.Context, tenantTag, participantID string, result domain.GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.results == nil {
		s.results = make(map[string]domain.GameResult)
	}
	s.results[participantID] = result
	return nil
}

type recordingArchiver struct {
	games chan *domain.Game
}

func (a *recordingArchiver) ArchiveGame(ctx context.Context, game *domain.Game) error {
	a.games <- game
	return nil
}

type testEnv struct {
	engine   *GameEngine
	clock    *fakeClock
	conns    *fakeConns
	words    *sequenceWords
	stats    *recordingStats
	archiver *recordingArchiver
}

func newTestEnv(t *testing.T, words ...string) *testEnv {
	t.Helper()
	if len(words) == 0 {
		words = []string{"cat", "dog", "sun", "tree", "house", "car"}
	}
	env := &testEnv{
		clock:    newFakeClock(),
		conns:    newFakeConns(),
		words:    &sequenceWords{words: words},
		stats:    &recordingStats{},
		archiver: &recordingArchiver{games: make(chan *domain.Game, 4)},
	}
	env.engine = NewGameEngine(Dependencies{
		Connections: env.conns,
		Words:       env.words,
		Stats:       env.stats,
		Archivers:   []GameArchiver{env.archiver},
	}, Options{
		InterRoundDelay: 5 * time.Second,
		Clock:           env.clock,
	})
	return env
}

// roomWith creates a room hosted by the first id and joins the rest, all connected.
func (env *testEnv) roomWith(t *testing.T, ids ...string) string {
	t.Helper()
	for _, id := range ids {
		env.conns.connect(player(id))
	}
	room, err := env.engine.CreateRoom(player(ids[0]), 0, nil)
	require.NoError(t, err)
	for _, id := range ids[1:] {
		_, err := env.engine.JoinRoom(room.Code, player(id))
		require.NoError(t, err)
	}
	return room.Code
}

func (env *testEnv) game(t *testing.T, code string) *domain.Game {
	t.Helper()
	r, ok := env.engine.rooms.get(code)
	require.True(t, ok)
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotNil(t, r.play)
	return r.play.game
}

func (env *testEnv) status(t *testing.T, code string) domain.RoomStatus {
	t.Helper()
	room, err := env.engine.GetRoom(code, "acme")
	require.NoError(t, err)
	return room.Status
}

type received struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
	Message string          `json:"message"`
	Code    int             `json:"code"`
}

// drain empties the participant's send channel.
func (env *testEnv) drain(t *testing.T, id string) []received {
	t.Helper()
	c, err := env.conns.Resolve(id)
	require.NoError(t, err)
	var out []received
	for {
		select {
		case data := <-c.Send:
			var msg received
			require.NoError(t, json.Unmarshal(data, &msg))
			out = append(out, msg)
		default:
			return out
		}
	}
}

func ofType(msgs []received, eventType string) []received {
	var out []received
	for _, m := range msgs {
		if m.Type == eventType {
			out = append(out, m)
		}
	}
	return out
}
