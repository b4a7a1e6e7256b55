package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"drawguess-service/domain"

	"go.uber.org/zap"
)

const (
	insertGameQuery = `
		INSERT INTO games (id, room_code, tenant_tag, status, settings, rounds, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`

	insertGameScoreQuery = `
		INSERT INTO game_scores (game_id, participant_id, username, total_score, correct_guesses, drawings, avg_guess_time, rank)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (game_id, participant_id) DO NOTHING`
)

// ArchiveGame stores a finished game with its rounds and final ranking.
func (r *Repository) ArchiveGame(ctx context.Context, game *domain.Game) error {
	settings, err := json.Marshal(game.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	rounds, err := json.Marshal(game.Rounds)
	if err != nil {
		return fmt.Errorf("failed to encode rounds: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, insertGameQuery,
		game.ID, game.RoomCode, game.TenantTag, string(game.Status), settings, rounds, game.StartedAt, game.EndedAt)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}

	for _, fs := range game.FinalScores {
		_, err = tx.ExecContext(ctx, insertGameScoreQuery,
			game.ID, fs.ParticipantID, fs.Username, fs.TotalScore, fs.CorrectGuesses, fs.Drawings, fs.AverageGuessTime, fs.Rank)
		if err != nil {
			return fmt.Errorf("failed to insert score for %s: %w", fs.ParticipantID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Game archived", zap.String("game", game.ID), zap.Int("scores", len(game.FinalScores)))
	return nil
}
