package game

import (
	"strings"
	"time"

	"drawguess-service/domain"

	"golang.org/x/text/cases"
)

type GuessResult struct {
	Accepted  bool `json:"accepted"`
	Correct   bool `json:"correct"`
	Points    int  `json:"points,omitempty"`
	TimeTaken int  `json:"time_taken,omitempty"`
}

// NormalizeGuess trims surrounding whitespace and case-folds.
func NormalizeGuess(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func MatchesWord(guess, word string) bool {
	return NormalizeGuess(guess) == NormalizeGuess(word)
}

// Points decays by one point per ten whole seconds and never drops below 10.
func Points(timeTaken int) int {
	if timeTaken < 0 {
		timeTaken = 0
	}
	p := 100 - timeTaken/10
	if p < 10 {
		return 10
	}
	return p
}

func ElapsedSeconds(start, now time.Time) int {
	if now.Before(start) {
		return 0
	}
	return int(now.Sub(start) / time.Second)
}

// SubmitGuess checks text against the open round's word.
func (e *GameEngine) SubmitGuess(code, participantID, text string) (GuessResult, error) {
	r, err := e.lockRoom(code)
	if err != nil {
		return GuessResult{}, err
	}
	defer r.mu.Unlock()

	p := r.player(participantID)
	if p == nil {
		return GuessResult{}, domain.ErrNotMember
	}
	round := r.activeRound()
	if round == nil {
		return GuessResult{}, domain.ErrNoActiveRound
	}
	if round.DrawerID == participantID {
		return GuessResult{}, domain.ErrDrawerCannotGuess
	}
	if round.HasGuessed(participantID) {
		return GuessResult{}, domain.ErrAlreadyGuessed
	}

	now := e.opts.Clock.Now()
	round.Messages = append(round.Messages, domain.ChatMessage{
		ParticipantID: participantID,
		Username:      p.Username,
		Text:          text,
		Type:          domain.MessageTypeGuess,
		At:            now,
	})

	if !MatchesWord(text, round.Word) {
		e.broadcast.Publish(r.code, r.memberIDs(), domain.EventMessageReceived, map[string]interface{}{
			"participant_id": participantID,
			"username":       p.Username,
			"message":        text,
			"type":           domain.MessageTypeGuess,
			"correct":        false,
		}, "")
		return GuessResult{Accepted: true}, nil
	}

	timeTaken := ElapsedSeconds(round.StartedAt, now)
	points := Points(timeTaken)
	round.CorrectGuesses = append(round.CorrectGuesses, domain.CorrectGuess{
		ParticipantID: participantID,
		Username:      p.Username,
		GuessedAt:     now,
		TimeTaken:     timeTaken,
		Points:        points,
	})
	p.Score += points
	p.CorrectGuesses++

	e.broadcast.Publish(r.code, r.memberIDs(), domain.EventMessageReceived, map[string]interface{}{
		"participant_id": participantID,
		"username":       p.Username,
		"type":           domain.MessageTypeGuess,
		"correct":        true,
		"points":         points,
		"time_taken":     timeTaken,
	}, "")

	if e.allGuessedLocked(r, round) {
		e.endRoundLocked(r)
	}
	return GuessResult{Accepted: true, Correct: true, Points: points, TimeTaken: timeTaken}, nil
}

// allGuessedLocked reports whether every online non-drawer member has guessed the word.
func (e *GameEngine) allGuessedLocked(r *room, round *domain.Round) bool {
	if len(round.CorrectGuesses) == 0 {
		return false
	}
	for _, p := range r.players {
		if p.ID == round.DrawerID || !p.IsOnline {
			continue
		}
		if !round.HasGuessed(p.ID) {
			return false
		}
	}
	return true
}
