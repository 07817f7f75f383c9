package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidWildFold_NoJoker(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Hand = []int{clubsTwo}
	assert.True(t, s.ValidWildFold())
}

func TestValidWildFold_HomeMarbleCanAlwaysExit(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Hand = []int{jokerA}
	assert.False(t, s.ValidWildFold())
}

func TestValidWildFold_AllMarblesStuck(t *testing.T) {
	t.Parallel()

	s := newFullState()
	// Finish zone fully packed: nothing can move, even with a joker
	for i := range s.Players[0].Marbles {
		s.Players[0].Marbles[i] = finishPos(i, 0)
	}
	s.Players[0].Hand = []int{jokerA}
	assert.True(t, s.ValidWildFold())
}

func TestValidWildFold_OpenTrackAhead(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(5)
	s.Players[0].Marbles[1] = finishPos(1, 0)
	s.Players[0].Marbles[2] = finishPos(2, 0)
	s.Players[0].Marbles[3] = finishPos(3, 0)
	s.Players[0].Hand = []int{jokerA}

	// The field ahead of the track marble is free
	assert.False(t, s.ValidWildFold())
}

func TestValidWildFold_GuardedStartAhead(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(15)
	s.Players[0].Marbles[1] = finishPos(1, 0)
	s.Players[0].Marbles[2] = finishPos(2, 0)
	s.Players[0].Marbles[3] = finishPos(3, 0)
	s.Players[0].Hand = []int{jokerA}

	// The opponent guards its start field directly ahead; swaps are barred too
	s.Players[1].Marbles[0] = Position{Zone: ZoneTrack, Index: 16, PlayerID: 1}
	s.Players[1].SetStartBlocked(0)
	for i := 1; i < MarblesPerPlayer; i++ {
		s.Players[1].Marbles[i] = Position{Zone: ZoneFinish, Index: i, PlayerID: 1}
	}
	for _, pID := range []int{2, 3} {
		for i := range s.Players[pID].Marbles {
			s.Players[pID].Marbles[i] = Position{Zone: ZoneFinish, Index: i, PlayerID: pID}
		}
	}

	assert.True(t, s.ValidWildFold())
}

func TestValidSplitFold_NoSeven(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Hand = []int{clubsTwo}
	assert.True(t, s.ValidSplitFold())
}

func TestValidSplitFold_OpenTrack(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(5)
	s.Players[0].Hand = []int{clubsSeven}

	// Seven free fields ahead: the split must be played
	assert.False(t, s.ValidSplitFold())
}

func TestValidSplitFold_TooFewSteps(t *testing.T) {
	t.Parallel()

	s := newFullState()
	// Only three finish steps available in total
	s.Players[0].Marbles[0] = finishPos(0, 0)
	s.Players[0].Hand = []int{clubsSeven}

	assert.True(t, s.ValidSplitFold())
}

func TestValidSplitFold_StepsAccumulateAcrossMarbles(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Hand = []int{clubsSeven}

	// F0 contributes 3 steps, the track marble is capped by a guarded start
	s.Players[0].Marbles[0] = finishPos(0, 0)
	s.Players[0].Marbles[1] = track(13)
	s.Players[1].Marbles[0] = Position{Zone: ZoneTrack, Index: 16, PlayerID: 1}
	s.Players[1].SetStartBlocked(0)

	// 3 + 2 steps: folding is allowed
	assert.True(t, s.ValidSplitFold())

	// Two fields further back the track marble reaches 4 steps: 3+4 >= 7
	s.Players[0].Marbles[1] = track(11)
	assert.False(t, s.ValidSplitFold())
}

func TestHasSpecialMoves(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Hand = []int{jokerA, clubsSeven}
	s.Players[0].Marbles[0] = track(5)

	wild, split := s.HasSpecialMoves()
	assert.True(t, wild)
	assert.True(t, split)
}

func TestHasLegalMoves_JokerOnly(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(5)
	s.Players[0].Marbles[1] = finishPos(1, 0)
	s.Players[0].Marbles[2] = finishPos(2, 0)
	s.Players[0].Marbles[3] = finishPos(3, 0)
	s.Players[0].Hand = []int{jokerA}

	// The joker yields nothing in the regular enumeration but is playable
	assert.Empty(t, s.ComputeLegalMoves(nil, false))
	assert.True(t, s.HasLegalMoves())
}

func TestHasLegalMoves_NothingPlayable(t *testing.T) {
	t.Parallel()

	s := newFullState()
	// All marbles at home, and a Two cannot start
	s.Players[0].Hand = []int{clubsTwo}

	assert.False(t, s.HasLegalMoves())
}
