package postgres

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

const (
	createWordsTable = `
		CREATE TABLE IF NOT EXISTS words (
			id SERIAL PRIMARY KEY,
			word VARCHAR(100) NOT NULL,
			difficulty VARCHAR(10) NOT NULL DEFAULT 'medium', -- easy, medium, hard
			category VARCHAR(50),
			tenant_tag VARCHAR(100), -- NULL means shared by every tenant
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (word, difficulty)
		);`

	createUserStatsTable = `
		CREATE TABLE IF NOT EXISTS user_stats (
			tenant_tag VARCHAR(100) NOT NULL DEFAULT '',
			participant_id VARCHAR(100) NOT NULL,
			games_played INT NOT NULL DEFAULT 0,
			games_won INT NOT NULL DEFAULT 0,
			total_score INT NOT NULL DEFAULT 0,
			correct_guesses INT NOT NULL DEFAULT 0,
			drawings INT NOT NULL DEFAULT 0,
			avg_guess_time DOUBLE PRECISION NOT NULL DEFAULT 0,
			fastest_guess INT,
			total_drawing_time INT NOT NULL DEFAULT 0,
			longest_drawing INT NOT NULL DEFAULT 0,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			PRIMARY KEY (tenant_tag, participant_id)
		);`

	// tables created before the drawing/guess timing columns existed
	migrateUserStatsTable = `
		ALTER TABLE user_stats ADD COLUMN IF NOT EXISTS fastest_guess INT;
		ALTER TABLE user_stats ADD COLUMN IF NOT EXISTS total_drawing_time INT NOT NULL DEFAULT 0;
		ALTER TABLE user_stats ADD COLUMN IF NOT EXISTS longest_drawing INT NOT NULL DEFAULT 0;`

	createGamesTable = `
		CREATE TABLE IF NOT EXISTS games (
			id UUID PRIMARY KEY,
			room_code VARCHAR(10) NOT NULL,
			tenant_tag VARCHAR(100) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL,
			settings JSONB NOT NULL,
			rounds JSONB NOT NULL,
			started_at TIMESTAMP WITH TIME ZONE NOT NULL,
			ended_at TIMESTAMP WITH TIME ZONE
		);`

	createGameScoresTable = `
		CREATE TABLE IF NOT EXISTS game_scores (
			game_id UUID REFERENCES games(id) ON DELETE CASCADE NOT NULL,
			participant_id VARCHAR(100) NOT NULL,
			username VARCHAR(100) NOT NULL,
			total_score INT NOT NULL,
			correct_guesses INT NOT NULL,
			drawings INT NOT NULL,
			avg_guess_time DOUBLE PRECISION NOT NULL,
			rank INT NOT NULL,
			PRIMARY KEY (game_id, participant_id)
		);`

	createIndexes = `
		CREATE INDEX IF NOT EXISTS idx_words_difficulty ON words(difficulty);
		CREATE INDEX IF NOT EXISTS idx_words_tenant_tag ON words(tenant_tag);
		CREATE INDEX IF NOT EXISTS idx_games_room_code ON games(room_code);
		CREATE INDEX IF NOT EXISTS idx_game_scores_participant ON game_scores(participant_id);`

	insertSampleWords = `
		INSERT INTO words (word, difficulty, category) VALUES
		('cat', 'easy', 'animal'),
		('dog', 'easy', 'animal'),
		('house', 'easy', 'building'),
		('tree', 'easy', 'nature'),
		('car', 'easy', 'vehicle'),
		('airplane', 'medium', 'vehicle'),
		('computer', 'medium', 'technology'),
		('telephone', 'medium', 'technology'),
		('lighthouse', 'medium', 'building'),
		('microscope', 'hard', 'science'),
		('telescope', 'hard', 'science'),
		('constellation', 'hard', 'science')
		ON CONFLICT (word, difficulty) DO NOTHING;`
)

func initDB(db *sql.DB) error {
	tables := []struct {
		name  string
		query string
	}{
		{"words", createWordsTable},
		{"user_stats", createUserStatsTable},
		{"user_stats", migrateUserStatsTable},
		{"games", createGamesTable},
		{"game_scores", createGameScoresTable},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create '%s' table: %w", table.name, err)
		}
	}

	if _, err := db.Exec(insertSampleWords); err != nil {
		return fmt.Errorf("failed to insert sample words: %w", err)
	}

	if _, err := db.Exec(createIndexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	zap.L().Info("Database tables initialized", zap.Int("tables", len(tables)))
	return nil
}
