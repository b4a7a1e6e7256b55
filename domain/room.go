package domain

import (
	"fmt"
	"time"
)

type RoomStatus string

const (
	RoomStatusWaiting   RoomStatus = "waiting"
	RoomStatusPlaying   RoomStatus = "playing"
	RoomStatusCompleted RoomStatus = "completed"
)

const (
	MinCapacity     = 2
	MaxCapacity     = 12
	DefaultCapacity = 6
	RoomCodeLength  = 6
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type RoomSettings struct {
	RoundTime        int    `json:"round_time"`
	RoundsPerGame    int    `json:"rounds_per_game"`
	WordDifficulty   string `json:"word_difficulty"`
	AllowCustomWords bool   `json:"allow_custom_words"`
}

func DefaultRoomSettings() RoomSettings {
	return RoomSettings{
		RoundTime:      60,
		RoundsPerGame:  5,
		WordDifficulty: DifficultyMedium,
	}
}

// SettingsPatch carries the fields a host wants to change; nil fields keep their value.
type SettingsPatch struct {
	RoundTime        *int    `json:"round_time,omitempty" validate:"omitempty,min=10,max=120"`
	RoundsPerGame    *int    `json:"rounds_per_game,omitempty" validate:"omitempty,min=3,max=10"`
	WordDifficulty   *string `json:"word_difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	AllowCustomWords *bool   `json:"allow_custom_words,omitempty"`
}

func (s RoomSettings) Merge(p SettingsPatch) RoomSettings {
	if p.RoundTime != nil {
		s.RoundTime = *p.RoundTime
	}
	if p.RoundsPerGame != nil {
		s.RoundsPerGame = *p.RoundsPerGame
	}
	if p.WordDifficulty != nil {
		s.WordDifficulty = *p.WordDifficulty
	}
	if p.AllowCustomWords != nil {
		s.AllowCustomWords = *p.AllowCustomWords
	}
	return s
}

func (s RoomSettings) Validate() error {
	if s.RoundTime < 10 || s.RoundTime > 120 {
		return fmt.Errorf("%w: round_time must be between 10 and 120", ErrInvalidSettings)
	}
	if s.RoundsPerGame < 3 || s.RoundsPerGame > 10 {
		return fmt.Errorf("%w: rounds_per_game must be between 3 and 10", ErrInvalidSettings)
	}
	switch s.WordDifficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("%w: unknown word_difficulty %q", ErrInvalidSettings, s.WordDifficulty)
	}
	return nil
}

type Player struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	IsHost         bool      `json:"is_host"`
	IsOnline       bool      `json:"is_online"`
	JoinedAt       time.Time `json:"joined_at"`
	Score          int       `json:"score"`
	CorrectGuesses int       `json:"correct_guesses"`
	Drawings       int       `json:"drawings"`
}

// Room is a read-only snapshot handed out of the registry.
type Room struct {
	Code      string       `json:"room_code"`
	TenantTag string       `json:"tenant_tag"`
	HostID    string       `json:"host_id"`
	Capacity  int          `json:"capacity"`
	Status    RoomStatus   `json:"status"`
	Settings  RoomSettings `json:"settings"`
	Players   []Player     `json:"players"`
	GameID    string       `json:"game_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
