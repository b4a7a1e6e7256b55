package domain

import "time"

type GameStatus string

const (
	GameStatusWaiting   GameStatus = "waiting"
	GameStatusPlaying   GameStatus = "playing"
	GameStatusCompleted GameStatus = "completed"
	GameStatusCancelled GameStatus = "cancelled"
)

type MessageType string

const (
	MessageTypeChat   MessageType = "chat"
	MessageTypeGuess  MessageType = "guess"
	MessageTypeSystem MessageType = "system"
)

type ChatMessage struct {
	ParticipantID string      `json:"participant_id"`
	Username      string      `json:"username"`
	Text          string      `json:"text"`
	Type          MessageType `json:"type"`
	At            time.Time   `json:"at"`
}

type CorrectGuess struct {
	ParticipantID string    `json:"participant_id"`
	Username      string    `json:"username"`
	GuessedAt     time.Time `json:"guessed_at"`
	TimeTaken     int       `json:"time_taken"`
	Points        int       `json:"points"`
}

type Round struct {
	Number         int            `json:"round_number"`
	Word           string         `json:"word"`
	DrawerID       string         `json:"drawer_id"`
	DrawerName     string         `json:"drawer_name"`
	StartedAt      time.Time      `json:"started_at"`
	EndedAt        *time.Time     `json:"ended_at,omitempty"`
	Duration       int            `json:"duration"`
	CorrectGuesses []CorrectGuess `json:"correct_guesses"`
	Messages       []ChatMessage  `json:"messages"`
}

func (r *Round) Active() bool {
	return r.EndedAt == nil
}

func (r *Round) HasGuessed(participantID string) bool {
	for _, g := range r.CorrectGuesses {
		if g.ParticipantID == participantID {
			return true
		}
	}
	return false
}

type FinalScore struct {
	ParticipantID    string  `json:"participant_id"`
	Username         string  `json:"username"`
	TotalScore       int     `json:"total_score"`
	CorrectGuesses   int     `json:"correct_guesses"`
	Drawings         int     `json:"drawings"`
	AverageGuessTime float64 `json:"average_guess_time"`
	Rank             int     `json:"rank"`
}

type Game struct {
	ID          string       `json:"id"`
	RoomCode    string       `json:"room_code"`
	TenantTag   string       `json:"tenant_tag"`
	Status      GameStatus   `json:"status"`
	Settings    RoomSettings `json:"settings"`
	Rounds      []*Round     `json:"rounds"`
	FinalScores []FinalScore `json:"final_scores,omitempty"`
	StartedAt   time.Time    `json:"started_at"`
	EndedAt     *time.Time   `json:"ended_at,omitempty"`
}

// CurrentRound returns the last round, open or sealed, or nil before the first round.
func (g *Game) CurrentRound() *Round {
	if len(g.Rounds) == 0 {
		return nil
	}
	return g.Rounds[len(g.Rounds)-1]
}

// GameResult is the per-player aggregate handed to the stats store.
type GameResult struct {
	Points         int     `json:"points"`
	CorrectGuesses int     `json:"correct_guesses"`
	Drawings       int     `json:"drawings"`
	Won            bool    `json:"won"`
	AvgGuessTime   float64 `json:"avg_guess_time"`
	DrawingTimes   []int   `json:"drawing_times"`
	FastestGuess   *int    `json:"fastest_guess,omitempty"` // nil without a correct guess
}
