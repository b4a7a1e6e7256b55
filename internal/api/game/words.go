package game

import (
	"context"
	"math/rand/v2"

	"drawguess-service/domain"
)

var defaultWords = map[string][]string{
	domain.DifficultyEasy: {
		"cat", "dog", "sun", "tree", "house", "car", "fish", "apple", "ball", "star",
		"moon", "book", "chair", "cup", "hat", "bird", "flower", "boat", "cake", "key",
	},
	domain.DifficultyMedium: {
		"bicycle", "guitar", "rainbow", "castle", "penguin", "umbrella", "volcano", "rocket",
		"giraffe", "lighthouse", "backpack", "snowman", "pyramid", "dragon", "ladder", "island",
	},
	domain.DifficultyHard: {
		"electricity", "friendship", "gravity", "nostalgia", "democracy", "evolution",
		"procrastinate", "photosynthesis", "architecture", "imagination", "silhouette", "migration",
	},
}

// StaticWordBank serves words from an in-memory list per difficulty.
type StaticWordBank struct {
	words map[string][]string
}

func NewStaticWordBank(words map[string][]string) *StaticWordBank {
	return &StaticWordBank{words: words}
}

func DefaultWordBank() *StaticWordBank {
	return NewStaticWordBank(defaultWords)
}

// DrawWord picks uniformly among words not in exclude, repeating only once the pool is used up.
func (b *StaticWordBank) DrawWord(ctx context.Context, tenantTag, difficulty string, exclude []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	pool := b.words[difficulty]
	if len(pool) == 0 {
		return "", domain.ErrNoWordsAvailable
	}

	used := make(map[string]struct{}, len(exclude))
	for _, w := range exclude {
		used[NormalizeGuess(w)] = struct{}{}
	}
	candidates := make([]string, 0, len(pool))
	for _, w := range pool {
		if _, seen := used[NormalizeGuess(w)]; !seen {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}
	return candidates[rand.IntN(len(candidates))], nil
}
