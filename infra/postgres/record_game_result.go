package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"drawguess-service/domain"
)

const recordGameResultQuery = `
	INSERT INTO user_stats (tenant_tag, participant_id, games_played, games_won, total_score, correct_guesses, drawings,
		avg_guess_time, fastest_guess, total_drawing_time, longest_drawing, updated_at)
	VALUES ($1, $2, 1, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	ON CONFLICT (tenant_tag, participant_id) DO UPDATE SET
		games_played = user_stats.games_played + 1,
		games_won = user_stats.games_won + EXCLUDED.games_won,
		total_score = user_stats.total_score + EXCLUDED.total_score,
		correct_guesses = user_stats.correct_guesses + EXCLUDED.correct_guesses,
		drawings = user_stats.drawings + EXCLUDED.drawings,
		avg_guess_time = CASE
			WHEN user_stats.correct_guesses + EXCLUDED.correct_guesses = 0 THEN 0
			ELSE (user_stats.avg_guess_time * user_stats.correct_guesses + EXCLUDED.avg_guess_time * EXCLUDED.correct_guesses)
				/ (user_stats.correct_guesses + EXCLUDED.correct_guesses)
		END,
		fastest_guess = LEAST(user_stats.fastest_guess, EXCLUDED.fastest_guess),
		total_drawing_time = user_stats.total_drawing_time + EXCLUDED.total_drawing_time,
		longest_drawing = GREATEST(user_stats.longest_drawing, EXCLUDED.longest_drawing),
		updated_at = NOW()`

// RecordGameResult folds one finished game into the participant's running stats.
// LEAST ignores NULLs, so a game without a correct guess keeps the stored fastest guess.
func (r *Repository) RecordGameResult(ctx context.Context, tenantTag, participantID string, result domain.GameResult) error {
	won := 0
	if result.Won {
		won = 1
	}

	fastest := sql.NullInt64{}
	if result.FastestGuess != nil {
		fastest = sql.NullInt64{Int64: int64(*result.FastestGuess), Valid: true}
	}

	totalDrawing, longestDrawing := 0, 0
	for _, d := range result.DrawingTimes {
		totalDrawing += d
		if d > longestDrawing {
			longestDrawing = d
		}
	}

	_, err := r.db.ExecContext(ctx, recordGameResultQuery,
		tenantTag, participantID, won, result.Points, result.CorrectGuesses, result.Drawings, result.AvgGuessTime,
		fastest, totalDrawing, longestDrawing)
	if err != nil {
		return fmt.Errorf("failed to record game result: %w", err)
	}
	return nil
}
