package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"drawguess-service/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartGame begins a new game in the room and opens its first round.
func (e *GameEngine) StartGame(ctx context.Context, code, requesterID string) error {
	r, err := e.lockRoom(code)
	if err != nil {
		return err
	}

	if r.hostID != requesterID {
		r.mu.Unlock()
		return domain.ErrNotHost
	}
	if r.status == domain.RoomStatusPlaying {
		r.mu.Unlock()
		return domain.ErrGameInProgress
	}
	if len(r.players) < domain.MinCapacity {
		r.mu.Unlock()
		return domain.ErrInsufficientPlayers
	}

	game := &domain.Game{
		ID:        uuid.NewString(),
		RoomCode:  r.code,
		TenantTag: r.tenantTag,
		Status:    domain.GameStatusPlaying,
		Settings:  r.settings,
		Rounds:    make([]*domain.Round, 0, r.settings.RoundsPerGame),
		StartedAt: e.opts.Clock.Now(),
	}
	r.play = newGameState(game, r.players)
	r.status = domain.RoomStatusPlaying
	r.stopTimer()
	r.epoch++
	epoch := r.epoch
	roomCode := r.code

	e.broadcast.Publish(roomCode, r.memberIDs(), domain.EventGameStarted, map[string]interface{}{
		"game_id":         game.ID,
		"rounds_per_game": game.Settings.RoundsPerGame,
		"round_time":      game.Settings.RoundTime,
		"players":         r.snapshot().Players,
	}, "")
	e.notify(roomCode, domain.MsgGameStarted, map[string]interface{}{"game_id": game.ID})
	r.mu.Unlock()

	zap.L().Info("Game started", zap.String("room", roomCode), zap.String("game", game.ID))
	return e.startRound(ctx, roomCode, epoch)
}

// startRound picks the next drawer and word for the transition identified by epoch.
// A room that moved on or disappeared since epoch was taken makes this a no-op.
func (e *GameEngine) startRound(ctx context.Context, code string, epoch uint64) error {
	r, ok := e.rooms.get(code)
	if !ok {
		return nil
	}

	r.mu.Lock()
	if r.deleted || r.epoch != epoch || r.status != domain.RoomStatusPlaying {
		r.mu.Unlock()
		return nil
	}
	tenant := r.tenantTag
	difficulty := r.play.game.Settings.WordDifficulty
	exclude := r.play.excludedWords()
	r.mu.Unlock()

	wctx, cancel := context.WithTimeout(ctx, e.opts.WordTimeout)
	word, wordErr := e.words.DrawWord(wctx, tenant, difficulty, exclude)
	cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted || r.epoch != epoch || r.status != domain.RoomStatusPlaying {
		return nil
	}

	if wordErr != nil {
		if !errors.Is(wordErr, domain.ErrUpstream) {
			wordErr = fmt.Errorf("%w: %v", domain.ErrUpstream, wordErr)
		}
		e.cancelGameLocked(r, wordErr)
		return wordErr
	}

	drawer, found := r.play.nextDrawer(r.isOnlineMember)
	if !found {
		e.cancelGameLocked(r, domain.ErrNoOnlinePlayers)
		return domain.ErrNoOnlinePlayers
	}

	game := r.play.game
	round := &domain.Round{
		Number:         len(game.Rounds) + 1,
		Word:           word,
		DrawerID:       drawer.id,
		DrawerName:     drawer.username,
		StartedAt:      e.opts.Clock.Now(),
		CorrectGuesses: make([]domain.CorrectGuess, 0),
		Messages:       make([]domain.ChatMessage, 0),
	}
	game.Rounds = append(game.Rounds, round)
	r.play.usedWords[NormalizeGuess(word)] = struct{}{}
	if p := r.player(drawer.id); p != nil {
		p.Drawings++
	}

	r.epoch++
	deadlineEpoch := r.epoch
	roundTime := time.Duration(game.Settings.RoundTime) * time.Second

	e.broadcast.Publish(r.code, r.memberIDs(), domain.EventRoundStarted, map[string]interface{}{
		"round_number":    round.Number,
		"rounds_per_game": game.Settings.RoundsPerGame,
		"drawer_id":       round.DrawerID,
		"drawer_name":     round.DrawerName,
		"duration":        game.Settings.RoundTime,
		"word_length":     len([]rune(word)),
	}, "")
	e.broadcast.SendTo(round.DrawerID, domain.EventRoundWord, map[string]interface{}{
		"round_number": round.Number,
		"word":         word,
	})

	r.timer = e.opts.Clock.AfterFunc(roundTime, func() {
		e.roundDeadline(code, deadlineEpoch)
	})
	return nil
}

func (e *GameEngine) roundDeadline(code string, epoch uint64) {
	r, ok := e.rooms.get(code)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted || r.epoch != epoch {
		return
	}
	e.endRoundLocked(r)
}

// endRoundLocked seals the open round. Calling it on a sealed round does nothing.
func (e *GameEngine) endRoundLocked(r *room) {
	round := r.activeRound()
	if round == nil {
		return
	}
	e.sealOpenRound(r)
	r.stopTimer()
	r.epoch++

	game := r.play.game
	e.broadcast.Publish(r.code, r.memberIDs(), domain.EventRoundEnded, map[string]interface{}{
		"round_number":    round.Number,
		"word":            round.Word,
		"drawer_id":       round.DrawerID,
		"correct_guesses": round.CorrectGuesses,
		"scores":          r.scores(),
	}, "")

	if len(game.Rounds) >= game.Settings.RoundsPerGame {
		e.endGameLocked(r)
		return
	}

	code := r.code
	epoch := r.epoch
	r.timer = e.opts.Clock.AfterFunc(e.opts.InterRoundDelay, func() {
		if err := e.startRound(context.Background(), code, epoch); err != nil {
			zap.L().Warn("Round could not start", zap.String("room", code), zap.Error(err))
		}
	})
}

func (e *GameEngine) sealOpenRound(r *room) {
	round := r.play.game.CurrentRound()
	if round == nil || !round.Active() {
		return
	}
	now := e.opts.Clock.Now()
	round.EndedAt = &now
	round.Duration = ElapsedSeconds(round.StartedAt, now)
}

// cancelGameLocked abandons the running game and returns the room to the lobby.
func (e *GameEngine) cancelGameLocked(r *room, reason error) {
	e.sealOpenRound(r)
	now := e.opts.Clock.Now()
	r.play.game.Status = domain.GameStatusCancelled
	r.play.game.EndedAt = &now
	r.status = domain.RoomStatusWaiting
	r.stopTimer()
	r.epoch++

	e.broadcast.PublishError(r.code, r.memberIDs(), reason)
	zap.L().Warn("Game cancelled", zap.String("room", r.code), zap.String("game", r.play.game.ID), zap.Error(reason))
}

func (e *GameEngine) endGameLocked(r *room) {
	game := r.play.game
	now := e.opts.Clock.Now()

	game.FinalScores = computeFinalScores(game, r.play.roster)
	game.Status = domain.GameStatusCompleted
	game.EndedAt = &now
	r.status = domain.RoomStatusCompleted
	r.stopTimer()
	r.epoch++

	e.broadcast.Publish(r.code, r.memberIDs(), domain.EventGameEnded, map[string]interface{}{
		"game_id":      game.ID,
		"final_scores": game.FinalScores,
	}, "")
	e.notify(r.code, domain.MsgGameEnded, map[string]interface{}{"game_id": game.ID, "final_scores": game.FinalScores})

	zap.L().Info("Game completed", zap.String("room", r.code), zap.String("game", game.ID), zap.Int("rounds", len(game.Rounds)))

	// A completed game is never mutated again, so the goroutine may read it freely.
	go e.persistGame(game, buildGameResults(game))
}

// computeFinalScores ranks roster members by total points; ties keep roster (join) order.
func computeFinalScores(game *domain.Game, roster []rosterEntry) []domain.FinalScore {
	scores := make([]domain.FinalScore, 0, len(roster))
	for _, entry := range roster {
		fs := domain.FinalScore{ParticipantID: entry.id, Username: entry.username}
		totalTime := 0
		for _, round := range game.Rounds {
			if round.DrawerID == entry.id {
				fs.Drawings++
			}
			for _, g := range round.CorrectGuesses {
				if g.ParticipantID == entry.id {
					fs.TotalScore += g.Points
					fs.CorrectGuesses++
					totalTime += g.TimeTaken
				}
			}
		}
		if fs.CorrectGuesses > 0 {
			fs.AverageGuessTime = float64(totalTime) / float64(fs.CorrectGuesses)
		}
		scores = append(scores, fs)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}

func buildGameResults(game *domain.Game) map[string]domain.GameResult {
	results := make(map[string]domain.GameResult, len(game.FinalScores))
	for _, fs := range game.FinalScores {
		res := domain.GameResult{
			Points:         fs.TotalScore,
			CorrectGuesses: fs.CorrectGuesses,
			Drawings:       fs.Drawings,
			Won:            fs.Rank == 1,
			AvgGuessTime:   fs.AverageGuessTime,
			DrawingTimes:   make([]int, 0),
		}
		for _, round := range game.Rounds {
			if round.DrawerID == fs.ParticipantID {
				res.DrawingTimes = append(res.DrawingTimes, round.Duration)
			}
			for _, g := range round.CorrectGuesses {
				if g.ParticipantID == fs.ParticipantID && (res.FastestGuess == nil || g.TimeTaken < *res.FastestGuess) {
					taken := g.TimeTaken
					res.FastestGuess = &taken
				}
			}
		}
		results[fs.ParticipantID] = res
	}
	return results
}

// persistGame pushes the finished game to the stats store and archivers. Failures are only logged.
func (e *GameEngine) persistGame(game *domain.Game, results map[string]domain.GameResult) {
	ctx, cancel := context.WithTimeout(context.Background(), e.opts.SideEffectTimeout)
	defer cancel()

	if e.stats != nil {
		for _, fs := range game.FinalScores {
			if err := e.stats.RecordGameResult(ctx, game.TenantTag, fs.ParticipantID, results[fs.ParticipantID]); err != nil {
				zap.L().Error("Failed to record game result", zap.String("game", game.ID), zap.String("participant", fs.ParticipantID), zap.Error(err))
			}
		}
	}
	for _, a := range e.archivers {
		if err := a.ArchiveGame(ctx, game); err != nil {
			zap.L().Error("Failed to archive game", zap.String("game", game.ID), zap.Error(err))
		}
	}
}
