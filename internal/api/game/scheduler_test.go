package game

import (
	"errors"
	"testing"
	"time"

	"drawguess-service/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitGuess_NormalizedMatchOnlyCountsOnce(t *testing.T) {
	env := newTestEnv(t, "cat")
	code := env.roomWith(t, "host", "g1", "g2")
	require.NoError(t, env.engine.StartGame(t.Context(), code, "host"))

	hostMsgs := env.drain(t, "host")
	words := ofType(hostMsgs, domain.EventRoundWord)
	require.Len(t, words, 1)
	assert.Contains(t, string(words[0].Content), `"word":"cat"`)
	assert.Empty(t, ofType(env.drain(t, "g1"), domain.EventRoundWord))

	env.clock.Advance(15 * time.Second)

	res, err := env.engine.SubmitGuess(code, "g1", "Cat ")
	require.NoError(t, err)
	assert.Equal(t, GuessResult{Accepted: true, Correct: true, Points: 99, TimeTaken: 15}, res)

	_, err = env.engine.SubmitGuess(code, "g1", "cat")
	assert.ErrorIs(t, err, domain.ErrAlreadyGuessed)

	_, err = env.engine.SubmitGuess(code, "host", "cat")
	assert.ErrorIs(t, err, domain.ErrDrawerCannotGuess)

	res, err = env.engine.SubmitGuess(code, "g2", "dog")
	require.NoError(t, err)
	assert.Equal(t, GuessResult{Accepted: true}, res)

	round := env.game(t, code).CurrentRound()
	assert.True(t, round.Active())
	require.Len(t, round.CorrectGuesses, 1)
	assert.Equal(t, "g1", round.CorrectGuesses[0].ParticipantID)
	assert.Len(t, round.Messages, 2)

	room, err := env.engine.GetRoom(code, "acme")
	require.NoError(t, err)
	assert.Equal(t, 99, room.Players[1].Score)
	assert.Equal(t, 1, room.Players[1].CorrectGuesses)
}

func TestRoundEndsEarlyWhenEveryoneGuessed(t *testing.T) {
	env := newTestEnv(t, "cat", "dog")
	code := env.roomWith(t, "host", "g1", "g2")
	require.NoError(t, env.engine.StartGame(t.Context(), code, "host"))

	env.clock.Advance(10 * time.Second)
	_, err := env.engine.SubmitGuess(code, "g1", "cat")
	require.NoError(t, err)
	env.clock.Advance(10 * time.Second)
	_, err = env.engine.SubmitGuess(code, "g2", "CAT")
	require.NoError(t, err)

	game := env.game(t, code)
	first := game.Rounds[0]
	assert.False(t, first.Active())
	assert.Equal(t, 20, first.Duration)
	assert.Len(t, first.CorrectGuesses, 2)
	assert.Equal(t, 1, env.clock.Pending())
	assert.Len(t, ofType(env.drain(t, "g1"), domain.EventRoundEnded), 1)

	_, err = env.engine.SubmitGuess(code, "g1", "dog")
	assert.ErrorIs(t, err, domain.ErrNoActiveRound)

	env.clock.Advance(4 * time.Second)
	assert.Len(t, game.Rounds, 1)

	env.clock.Advance(time.Second)
	require.Len(t, game.Rounds, 2)
	assert.Equal(t, "g1", game.Rounds[1].DrawerID)
	assert.Equal(t, "dog", game.Rounds[1].Word)
	assert.Equal(t, []string{"cat"}, env.words.excludes[1])
}

func TestGameEndsAfterLastRound(t *testing.T) {
	env := newTestEnv(t, "cat", "dog", "sun", "tree", "house")
	code := env.roomWith(t, "host", "guest")
	_, err := env.engine.UpdateSettings(code, "host", domain.SettingsPatch{RoundsPerGame: intPtr(5)})
	require.NoError(t, err)
	require.NoError(t, env.engine.StartGame(t.Context(), code, "host"))

	_, err = env.engine.SubmitGuess(code, "guest", "cat")
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		env.clock.Advance(5 * time.Second)
		env.clock.Advance(60 * time.Second)
	}

	game := env.game(t, code)
	require.Len(t, game.Rounds, 5)
	assert.Equal(t, domain.GameStatusCompleted, game.Status)
	assert.NotNil(t, game.EndedAt)
	assert.Equal(t, domain.RoomStatusCompleted, env.status(t, code))
	assert.Equal(t, 0, env.clock.Pending())

	require.Len(t, game.FinalScores, 2)
	assert.Equal(t, "guest", game.FinalScores[0].ParticipantID)
	assert.Equal(t, 100, game.FinalScores[0].TotalScore)
	assert.Equal(t, 1, game.FinalScores[0].Rank)
	assert.Equal(t, "host", game.FinalScores[1].ParticipantID)
	assert.Equal(t, 0, game.FinalScores[1].TotalScore)
	assert.Equal(t, 2, game.FinalScores[1].Rank)
	assert.Equal(t, 3, game.FinalScores[1].Drawings)

	drawers := make([]string, 0, len(game.Rounds))
	for _, r := range game.Rounds {
		drawers = append(drawers, r.DrawerID)
	}
	assert.Equal(t, []string{"host", "guest", "host", "guest", "host"}, drawers)

	assert.Len(t, ofType(env.drain(t, "host"), domain.EventGameEnded), 1)

	select {
	case archived := <-env.archiver.games:
		assert.Equal(t, game.ID, archived.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("game was not archived")
	}

	env.stats.mu.Lock()
	defer env.stats.mu.Unlock()
	assert.True(t, env.stats.results["guest"].Won)
	assert.Equal(t, 100, env.stats.results["guest"].Points)
	assert.False(t, env.stats.results["host"].Won)
	assert.Equal(t, []int{0, 60, 60}, env.stats.results["host"].DrawingTimes)
	assert.Nil(t, env.stats.results["host"].FastestGuess)
	require.NotNil(t, env.stats.results["guest"].FastestGuess)
	assert.Equal(t, 0, *env.stats.results["guest"].FastestGuess)
	assert.Equal(t, []int{60, 60}, env.stats.results["guest"].DrawingTimes)

	env.clock.Advance(10 * time.Minute)
	assert.Len(t, game.Rounds, 5)
}

func TestCompletedRoomCanPlayAgain(t *testing.T) {
	env := newTestEnv(t)
	code := env.roomWith(t, "host", "guest")
	_, err := env.engine.UpdateSettings(code, "host", domain.SettingsPatch{RoundsPerGame: intPtr(3)})
	require.NoError(t, err)
	require.NoError(t, env.engine.StartGame(t.Context(), code, "host"))
	for i := 0; i < 3; i++ {
		env.clock.Advance(60 * time.Second)
		env.clock.Advance(5 * time.Second)
	}
	first := env.game(t, code)
	require.Equal(t, domain.GameStatusCompleted, first.Status)
	<-env.archiver.games

	require.NoError(t, env.engine.StartGame(t.Context(), code, "host"))
	second := env.game(t, code)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, domain.RoomStatusPlaying, env.status(t, code))
}

func TestStaleDeadlineIsIgnored(t *testing.T) {
	env := newTestEnv(t)
	code := env.roomWith(t, "host", "g1", "g2")
	require.NoError(t, env.engine.StartGame(t.Context(), code, "host"))

	r, ok := env.engine.rooms.get(code)
	require.True(t, ok)
	r.mu.Lock()
	staleEpoch := r.epoch
	r.mu.Unlock()

	word := env.game(t, code).CurrentRound().Word
	_, err := env.engine.SubmitGuess(code, "g1", word)
	require.NoError(t, err)
	_, err = env.engine.SubmitGuess(code, "g2", word)
	require.NoError(t, err)
	env.clock.Advance(5 * time.Second)

	game := env.game(t, code)
	require.Len(t, game.Rounds, 2)

	env.engine.roundDeadline(code, staleEpoch)
	assert.True(t, game.Rounds[1].Active())
}

func TestWordSourceFailureCancelsGame(t *testing.T) {
	env := newTestEnv(t)
	env.words.err = errors.New("connection refused")
	code := env.roomWith(t, "host", "guest")
	env.drain(t, "guest")

	err := env.engine.StartGame(t.Context(), code, "host")
	assert.ErrorIs(t, err, domain.ErrUpstream)

	assert.Equal(t, domain.RoomStatusWaiting, env.status(t, code))
	game := env.game(t, code)
	assert.Equal(t, domain.GameStatusCancelled, game.Status)
	assert.Empty(t, game.Rounds)
	assert.Equal(t, 0, env.clock.Pending())

	errs := ofType(env.drain(t, "guest"), domain.EventError)
	require.Len(t, errs, 1)
	assert.Equal(t, 502, errs[0].Code)
}

func TestDrawerRotationSkipsOfflinePlayers(t *testing.T) {
	env := newTestEnv(t)
	code := env.roomWith(t, "host", "g1", "g2")
	require.NoError(t, env.engine.StartGame(t.Context(), code, "host"))

	env.engine.ParticipantOffline(domain.Participant{ID: "g1", CurrentRoom: code})

	word := env.game(t, code).CurrentRound().Word
	_, err := env.engine.SubmitGuess(code, "g2", word)
	require.NoError(t, err)

	game := env.game(t, code)
	assert.False(t, game.Rounds[0].Active())

	env.clock.Advance(5 * time.Second)
	require.Len(t, game.Rounds, 2)
	assert.Equal(t, "g2", game.Rounds[1].DrawerID)
}

func TestRoundEndsWhenLastGuesserLeaves(t *testing.T) {
	env := newTestEnv(t)
	code := env.roomWith(t, "host", "g1", "g2")
	require.NoError(t, env.engine.StartGame(t.Context(), code, "host"))

	word := env.game(t, code).CurrentRound().Word
	_, err := env.engine.SubmitGuess(code, "g1", word)
	require.NoError(t, err)

	require.NoError(t, env.engine.LeaveRoom(code, "g2"))
	assert.False(t, env.game(t, code).Rounds[0].Active())
}

func TestNoOnlineDrawerCancelsGame(t *testing.T) {
	env := newTestEnv(t)
	code := env.roomWith(t, "host", "guest")
	require.NoError(t, env.engine.StartGame(t.Context(), code, "host"))

	env.engine.ParticipantOffline(domain.Participant{ID: "host", CurrentRoom: code})
	env.engine.ParticipantOffline(domain.Participant{ID: "guest", CurrentRoom: code})
	env.clock.Advance(60 * time.Second)
	env.clock.Advance(5 * time.Second)

	assert.Equal(t, domain.GameStatusCancelled, env.game(t, code).Status)
	assert.Equal(t, domain.RoomStatusWaiting, env.status(t, code))
	assert.Equal(t, 0, env.clock.Pending())
}

func TestDeletingRoomStopsTimers(t *testing.T) {
	env := newTestEnv(t)
	code := env.roomWith(t, "host", "guest")
	require.NoError(t, env.engine.StartGame(t.Context(), code, "host"))
	game := env.game(t, code)

	require.NoError(t, env.engine.LeaveRoom(code, "guest"))
	require.NoError(t, env.engine.LeaveRoom(code, "host"))

	assert.Equal(t, 0, env.engine.Rooms().Count())
	assert.Equal(t, 0, env.clock.Pending())
	assert.Equal(t, domain.GameStatusCancelled, game.Status)

	env.clock.Advance(10 * time.Minute)
	assert.Len(t, game.Rounds, 1)
}

func TestPurgedParticipantLeavesRoom(t *testing.T) {
	env := newTestEnv(t)
	code := env.roomWith(t, "host", "guest")
	env.conns.disconnect("host")

	env.engine.ParticipantPurged(domain.Participant{ID: "host", CurrentRoom: code})

	room, err := env.engine.GetRoom(code, "acme")
	require.NoError(t, err)
	require.Len(t, room.Players, 1)
	assert.Equal(t, "guest", room.HostID)
}

func TestPurgeOfReconnectedParticipantKeepsSeat(t *testing.T) {
	t.Run("room still recorded", func(t *testing.T) {
		env := newTestEnv(t)
		code := env.roomWith(t, "host", "guest")

		env.engine.ParticipantPurged(domain.Participant{ID: "guest", CurrentRoom: code})

		room, err := env.engine.GetRoom(code, "acme")
		require.NoError(t, err)
		assert.Len(t, room.Players, 2)
	})

	t.Run("record lost in the sweep", func(t *testing.T) {
		env := newTestEnv(t)
		code := env.roomWith(t, "host", "guest")
		env.conns.ClearCurrentRoom("guest", code)

		env.engine.ParticipantPurged(domain.Participant{ID: "guest", Username: "guest-name", TenantTag: "acme", CurrentRoom: code})

		room, err := env.engine.GetRoom(code, "acme")
		require.NoError(t, err)
		assert.Len(t, room.Players, 2)
		assert.Equal(t, code, env.conns.CurrentRoom("guest"))
		assert.Len(t, ofType(env.drain(t, "guest"), domain.EventRoomJoined), 2)
	})
}

func TestComputeFinalScores_TiesKeepJoinOrder(t *testing.T) {
	game := &domain.Game{Rounds: []*domain.Round{
		{DrawerID: "a", CorrectGuesses: []domain.CorrectGuess{{ParticipantID: "b", Points: 80, TimeTaken: 200}}},
		{DrawerID: "b", CorrectGuesses: []domain.CorrectGuess{{ParticipantID: "c", Points: 80, TimeTaken: 10}, {ParticipantID: "a", Points: 90, TimeTaken: 4}}},
	}}
	roster := []rosterEntry{{id: "a"}, {id: "b"}, {id: "c"}}

	scores := computeFinalScores(game, roster)

	require.Len(t, scores, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{scores[0].ParticipantID, scores[1].ParticipantID, scores[2].ParticipantID})
	assert.Equal(t, []int{1, 2, 3}, []int{scores[0].Rank, scores[1].Rank, scores[2].Rank})
	assert.Equal(t, 200.0, scores[1].AverageGuessTime)
	assert.Equal(t, 1, scores[0].Drawings)
}
