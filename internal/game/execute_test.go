package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteMove_StartGuardLifecycle(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Hand = []int{clubsAce, clubsFive}

	// Exit home: the fresh marble guards the start field
	exit := Move{CardID: clubsAce, HandIndex: 0, Movements: []Movement{
		{Marble: MarbleID{PlayerID: 0, MarbleIdx: 1}, To: track(0)},
	}}
	finished := s.ExecuteMove(exit)

	assert.False(t, finished)
	assert.Equal(t, track(0), s.Players[0].Marbles[1])
	require.NotNil(t, s.Players[0].StartBlocked)
	assert.Equal(t, 1, *s.Players[0].StartBlocked)
	require.NotNil(t, s.LastPlayedCard)
	assert.Equal(t, clubsAce, *s.LastPlayedCard)
	assert.Equal(t, []int{clubsFive}, s.Players[0].Hand)
	assert.True(t, s.Players[0].ActiveInRound)

	// Leaving the start field lifts the guard
	leave := Move{CardID: clubsFive, HandIndex: 0, Movements: []Movement{
		{Marble: MarbleID{PlayerID: 0, MarbleIdx: 1}, To: track(5)},
	}}
	finished = s.ExecuteMove(leave)

	assert.False(t, finished)
	assert.Nil(t, s.Players[0].StartBlocked)
	assert.Equal(t, track(5), s.Players[0].Marbles[1])

	// Hand exhausted: the player sits out the rest of the round
	assert.Empty(t, s.Players[0].Hand)
	assert.False(t, s.Players[0].ActiveInRound)
	assert.True(t, s.Players[0].ActiveInGame)
}

func TestExecuteMove_CaptureSendsOpponentHome(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(5)
	s.Players[0].Hand = []int{clubsFour, clubsTwo}
	s.Players[1].Marbles[2] = Position{Zone: ZoneTrack, Index: 9, PlayerID: 1}

	capture := Move{CardID: clubsFour, HandIndex: 0, Movements: []Movement{
		{Marble: MarbleID{PlayerID: 0, MarbleIdx: 0}, To: track(9)},
		{Marble: MarbleID{PlayerID: 1, MarbleIdx: 2}, To: homePos(2, 1)},
	}}
	s.ExecuteMove(capture)

	assert.Equal(t, track(9), s.Players[0].Marbles[0])
	assert.Equal(t, homePos(2, 1), s.Players[1].Marbles[2])
}

func TestExecuteMove_FinishingEndsTheGameForThePlayer(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = finishPos(0, 0)
	s.Players[0].Marbles[1] = finishPos(1, 0)
	s.Players[0].Marbles[2] = finishPos(2, 0)
	s.Players[0].Marbles[3] = track(63)
	s.Players[0].Hand = []int{clubsFour, clubsTen}

	win := Move{CardID: clubsFour, HandIndex: 0, Movements: []Movement{
		{Marble: MarbleID{PlayerID: 0, MarbleIdx: 3}, To: finishPos(3, 0)},
	}}
	finished := s.ExecuteMove(win)

	assert.True(t, finished)
	assert.False(t, s.Players[0].ActiveInGame)
	assert.False(t, s.Players[0].ActiveInRound)
	assert.Empty(t, s.Players[0].Hand, "remaining cards are discarded on finishing")
	require.NotNil(t, s.LeaderBoard[0])
	assert.Equal(t, 1, *s.LeaderBoard[0])
}

func TestExecuteFold(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.CurrentPlayer = 2
	s.Players[2].Hand = []int{clubsTwo, clubsTen}

	s.ExecuteFold()

	assert.Empty(t, s.Players[2].Hand)
	assert.False(t, s.Players[2].ActiveInRound)
	assert.True(t, s.Players[2].ActiveInGame)
}

func TestEndTurn_AdvancesToNextActive(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[1].ActiveInRound = false

	gameEnded, roundEnded := s.EndTurn()

	assert.False(t, gameEnded)
	assert.False(t, roundEnded)
	assert.Equal(t, 2, s.CurrentPlayer)
}

func TestEndTurn_RoundEnd(t *testing.T) {
	t.Parallel()

	s := newFullState()
	for _, p := range s.Players {
		p.ActiveInRound = false
	}

	gameEnded, roundEnded := s.EndTurn()

	assert.False(t, gameEnded)
	assert.True(t, roundEnded)

	// Lead rotates, deal shrinks, everyone still in the game rejoins
	assert.Equal(t, 1, s.RoundStartPlayer)
	assert.Equal(t, 1, s.CurrentPlayer)
	assert.Equal(t, 5, s.RoundCardCount)
	for _, p := range s.Players {
		assert.True(t, p.ActiveInRound)
	}
}

func TestEndTurn_RoundEndSkipsFinishedPlayers(t *testing.T) {
	t.Parallel()

	s := newFullState()
	for _, p := range s.Players {
		p.ActiveInRound = false
	}
	s.Players[1].ActiveInGame = false

	_, roundEnded := s.EndTurn()

	require.True(t, roundEnded)
	assert.Equal(t, 2, s.RoundStartPlayer)
	assert.Equal(t, 2, s.CurrentPlayer)
	assert.False(t, s.Players[1].ActiveInRound, "finished players do not rejoin")
}

func TestEndTurn_GameEnd(t *testing.T) {
	t.Parallel()

	s := newFullState()
	for _, pID := range []int{0, 1, 2} {
		s.Players[pID].ActiveInGame = false
		s.Players[pID].ActiveInRound = false
		s.AddLeaderBoardFinished(pID)
	}

	gameEnded, _ := s.EndTurn()

	assert.True(t, gameEnded)
	require.NotNil(t, s.LeaderBoard[3])
	assert.Equal(t, 0, *s.LeaderBoard[3], "last survivor is ranked as unfinished")
}

func TestApplyPreviewMove(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(0)
	s.Players[0].SetStartBlocked(0)

	s.ApplyPreviewMove(Move{Movements: []Movement{
		{Marble: MarbleID{PlayerID: 0, MarbleIdx: 0}, To: track(3)},
	}})

	assert.Equal(t, track(3), s.Players[0].Marbles[0])
	assert.Nil(t, s.Players[0].StartBlocked, "moving the guard off the start lifts the guard")
}
