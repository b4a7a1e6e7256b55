package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"drawguess-service/domain"

	"github.com/lib/pq"
)

const drawWordQuery = `
	SELECT word FROM words
	WHERE is_active
		AND difficulty = $1
		AND (tenant_tag IS NULL OR tenant_tag = $2)
		AND NOT (lower(word) = ANY($3))
	ORDER BY random()
	LIMIT 1`

// DrawWord picks a random active word for the tenant. When every candidate is
// excluded the exclusion list is dropped and the full pool is used again.
func (r *Repository) DrawWord(ctx context.Context, tenantTag, difficulty string, exclude []string) (string, error) {
	if exclude == nil {
		exclude = []string{}
	}

	word, err := r.queryWord(ctx, tenantTag, difficulty, exclude)
	if errors.Is(err, sql.ErrNoRows) && len(exclude) > 0 {
		word, err = r.queryWord(ctx, tenantTag, difficulty, []string{})
	}
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNoWordsAvailable
	}
	if err != nil {
		return "", fmt.Errorf("%w: failed to draw word: %v", domain.ErrUpstream, err)
	}
	return word, nil
}

func (r *Repository) queryWord(ctx context.Context, tenantTag, difficulty string, exclude []string) (string, error) {
	var word string
	err := r.db.QueryRowContext(ctx, drawWordQuery, difficulty, tenantTag, pq.Array(exclude)).Scan(&word)
	return word, err
}
