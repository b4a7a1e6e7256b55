package game

import (
	"testing"
	"time"

	"drawguess-service/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGuess(t *testing.T) {
	assert.Equal(t, "cat", NormalizeGuess("  Cat\t"))
	assert.Equal(t, "éclair", NormalizeGuess("ÉCLAIR"))
	assert.True(t, MatchesWord("LIGHTHOUSE ", "lighthouse"))
	assert.False(t, MatchesWord("light house", "lighthouse"))
	assert.False(t, MatchesWord("", "cat"))
}

func TestPoints(t *testing.T) {
	tests := []struct {
		timeTaken int
		want      int
	}{
		{timeTaken: 0, want: 100},
		{timeTaken: 9, want: 100},
		{timeTaken: 10, want: 99},
		{timeTaken: 15, want: 99},
		{timeTaken: 59, want: 95},
		{timeTaken: 120, want: 88},
		{timeTaken: 900, want: 10},
		{timeTaken: 5000, want: 10},
		{timeTaken: -3, want: 100},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Points(tc.timeTaken), "timeTaken=%d", tc.timeTaken)
	}
}

func TestElapsedSeconds(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, ElapsedSeconds(start, start))
	assert.Equal(t, 12, ElapsedSeconds(start, start.Add(12900*time.Millisecond)))
	assert.Equal(t, 0, ElapsedSeconds(start, start.Add(-time.Second)))
}

func TestSubmitGuess_Rejections(t *testing.T) {
	env := newTestEnv(t)
	code := env.roomWith(t, "host", "guest")

	_, err := env.engine.SubmitGuess(code, "guest", "cat")
	assert.ErrorIs(t, err, domain.ErrNoActiveRound)

	_, err = env.engine.SubmitGuess(code, "stranger", "cat")
	assert.ErrorIs(t, err, domain.ErrNotMember)

	_, err = env.engine.SubmitGuess("ZZZZ99", "guest", "cat")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	require.NoError(t, env.engine.StartGame(t.Context(), code, "host"))
	env.drain(t, "host")

	res, err := env.engine.SubmitGuess(code, "guest", "definitely wrong")
	require.NoError(t, err)
	assert.False(t, res.Correct)

	guesses := ofType(env.drain(t, "host"), domain.EventMessageReceived)
	require.Len(t, guesses, 1)
	assert.Contains(t, string(guesses[0].Content), `"correct":false`)
	assert.Contains(t, string(guesses[0].Content), "definitely wrong")
}

func TestCorrectGuessDoesNotLeakWord(t *testing.T) {
	env := newTestEnv(t, "lighthouse")
	code := env.roomWith(t, "host", "g1", "g2")
	require.NoError(t, env.engine.StartGame(t.Context(), code, "host"))
	env.drain(t, "g2")

	_, err := env.engine.SubmitGuess(code, "g1", "Lighthouse")
	require.NoError(t, err)

	msgs := ofType(env.drain(t, "g2"), domain.EventMessageReceived)
	require.Len(t, msgs, 1)
	assert.Contains(t, string(msgs[0].Content), `"correct":true`)
	assert.NotContains(t, string(msgs[0].Content), "ighthouse")
}
