package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clubs card IDs used as hands: the ID of a clubs card equals its rank
const (
	clubsAce   = 0
	clubsTwo   = 1
	clubsThree = 2
	clubsFour  = 3
	clubsFive  = 4
	clubsSeven = 6
	clubsTen   = 9
	clubsJack  = 10
	jokerA     = 52
)

// destinations 提取每个走法主动弹珠的落点
func destinations(moves []Move) []Position {
	var out []Position
	for _, m := range moves {
		out = append(out, m.Movements[0].To)
	}
	return out
}

func containsDest(t *testing.T, moves []Move, want Position) {
	t.Helper()
	for _, m := range moves {
		if m.Movements[0].To.Equals(want) {
			return
		}
	}
	t.Errorf("no move ends at %+v, got %+v", want, destinations(moves))
}

func TestComputeLegalMoves_AceStartAndSimple(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(5)
	s.Players[0].Hand = []int{clubsAce}

	moves := s.ComputeLegalMoves(nil, false)
	require.Len(t, moves, 5)

	// Three home marbles can each exit to the start field
	starts := 0
	for _, m := range moves {
		require.NotEmpty(t, m.Movements)
		assert.Equal(t, clubsAce, m.CardID)
		assert.Equal(t, 0, m.HandIndex)
		if m.Movements[0].To.Equals(track(0)) {
			starts++
		}
	}
	assert.Equal(t, 3, starts)

	// The track marble can advance 1 or 11
	containsDest(t, moves, track(6))
	containsDest(t, moves, track(16))
}

func TestComputeLegalMoves_OwnMarbleBlocksDestination(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(5)
	s.Players[0].Marbles[1] = track(6)
	s.Players[0].Marbles[2] = finishPos(2, 0)
	s.Players[0].Marbles[3] = finishPos(3, 0)
	s.Players[0].Hand = []int{clubsAce}

	moves := s.ComputeLegalMoves(nil, false)

	// T5+1 lands on our own marble and is dropped; F2+1 likewise
	for _, m := range moves {
		assert.False(t, m.Movements[0].To.Equals(track(6)), "own-occupied field must not be a destination")
		assert.False(t, m.Movements[0].To.Equals(finishPos(3, 0)))
	}
	containsDest(t, moves, track(16))
	containsDest(t, moves, track(7))
	containsDest(t, moves, track(17))
}

func TestComputeLegalMoves_CaptureSendsOpponentHome(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(5)
	s.Players[1].Marbles[2] = track(9)
	s.Players[0].Hand = []int{clubsFour}

	moves := s.ComputeLegalMoves(nil, false)
	require.Len(t, moves, 2)

	var capture *Move
	for i := range moves {
		if moves[i].Movements[0].To.Equals(track(9)) {
			capture = &moves[i]
		}
	}
	require.NotNil(t, capture, "forward move onto the opponent is missing")
	require.Len(t, capture.Movements, 2)
	assert.Equal(t, MarbleID{PlayerID: 1, MarbleIdx: 2}, capture.Movements[1].Marble)
	assert.Equal(t, homePos(2, 1), capture.Movements[1].To)

	// The backward option is a plain move
	containsDest(t, moves, track(1))
}

func TestComputeLegalMoves_FinishFork(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(60)
	s.Players[0].Hand = []int{clubsFive}

	moves := s.ComputeLegalMoves(nil, false)
	require.Len(t, moves, 2)

	// Crossing our own start field forks into finish entry or staying on track
	containsDest(t, moves, finishPos(0, 0))
	containsDest(t, moves, track(1))
}

func TestComputeLegalMoves_BlockedStartVoidsPath(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(10)
	s.Players[0].Hand = []int{clubsTen}

	// Opponent guards its own start field at 16
	s.Players[1].Marbles[0] = Position{Zone: ZoneTrack, Index: 16, PlayerID: 1}
	s.Players[1].SetStartBlocked(0)

	moves := s.ComputeLegalMoves(nil, false)
	assert.Empty(t, moves, "path across a guarded start field is void")
}

func TestComputeLegalMoves_SwapExcludesGuardedMarble(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(5)
	s.Players[0].Hand = []int{clubsJack}

	s.Players[1].Marbles[0] = Position{Zone: ZoneTrack, Index: 16, PlayerID: 1}
	s.Players[1].SetStartBlocked(0)
	s.Players[1].Marbles[1] = Position{Zone: ZoneTrack, Index: 30, PlayerID: 1}
	s.Players[2].Marbles[0] = Position{Zone: ZoneTrack, Index: 40, PlayerID: 2}

	moves := s.ComputeLegalMoves(nil, false)
	require.Len(t, moves, 2)

	for _, m := range moves {
		require.Len(t, m.Movements, 2)
		assert.False(t, m.Movements[0].To.Equals(Position{Zone: ZoneTrack, Index: 16}),
			"guarded marble must not be a swap target")
		// The opponent lands where we stood
		assert.True(t, m.Movements[1].To.Equals(track(5)))
	}
	containsDest(t, moves, Position{Zone: ZoneTrack, Index: 30})
	containsDest(t, moves, Position{Zone: ZoneTrack, Index: 40})
}

func TestComputeLegalMoves_SplitStopsAndCaptures(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(5)
	s.Players[1].Marbles[3] = track(8)

	// A spades Seven sits at hand slot 2; the synthetic clubs Seven drives the walk
	special := &SpecialCall{SyntheticCardID: clubsSeven, HandIndex: 2, CardID: 45}
	moves := s.ComputeLegalMoves(special, true)
	require.Len(t, moves, 7)

	for _, m := range moves {
		assert.Equal(t, 45, m.CardID, "moves carry the real card, not the synthetic one")
		assert.Equal(t, 2, m.HandIndex)
	}

	// Stops before the opponent are plain, stops on or past it carry the capture
	for _, m := range moves {
		to := m.Movements[0].To
		if to.Index >= 8 {
			require.Len(t, m.Movements, 2, "stop at %d must send the opponent home", to.Index)
			assert.Equal(t, homePos(3, 1), m.Movements[1].To)
		} else {
			assert.Len(t, m.Movements, 1)
		}
	}
	containsDest(t, moves, track(6))
	containsDest(t, moves, track(12))
}

func TestComputeLegalMoves_SplitContinuation(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[0].Marbles[0] = track(5)

	// Three steps left: a synthetic Three walked in split mode yields stops 1..3
	special := &SpecialCall{SyntheticCardID: clubsThree, HandIndex: 0, CardID: 45}
	moves := s.ComputeLegalMoves(special, true)
	require.Len(t, moves, 3)

	containsDest(t, moves, track(6))
	containsDest(t, moves, track(7))
	containsDest(t, moves, track(8))
}

func TestComputeLegalMoves_UnguardedStartForksIntoFinish(t *testing.T) {
	t.Parallel()

	s := newFullState()
	// Our own unguarded marble sits on the start field
	s.Players[0].Marbles[0] = track(0)
	s.Players[0].Hand = []int{clubsTwo}

	moves := s.ComputeLegalMoves(nil, false)
	require.Len(t, moves, 2)

	// Leaving the unguarded start counts as passing it: finish entry is open
	containsDest(t, moves, finishPos(1, 0))
	containsDest(t, moves, track(2))
}

func TestComputeLegalMoves_GuardedStartOnlyLeavesAlongTrack(t *testing.T) {
	t.Parallel()

	s := newFullState()
	// The marble just exited home and guards the start field
	s.Players[0].Marbles[0] = track(0)
	s.Players[0].SetStartBlocked(0)
	s.Players[0].Hand = []int{clubsTwo}

	moves := s.ComputeLegalMoves(nil, false)
	require.Len(t, moves, 1)
	assert.True(t, moves[0].Movements[0].To.Equals(track(2)))
}

func TestFieldOccupant(t *testing.T) {
	t.Parallel()

	s := newFullState()
	s.Players[1].Marbles[2] = Position{Zone: ZoneTrack, Index: 9, PlayerID: 1}

	// Track lookup ignores who asks
	occ, ok := s.FieldOccupant(track(9))
	require.True(t, ok)
	assert.Equal(t, MarbleID{PlayerID: 1, MarbleIdx: 2}, occ)

	_, ok = s.FieldOccupant(track(10))
	assert.False(t, ok)

	// Home fields are per-player
	occ, ok = s.FieldOccupant(homePos(0, 3))
	require.True(t, ok)
	assert.Equal(t, MarbleID{PlayerID: 3, MarbleIdx: 0}, occ)
	// Slot vacated by the marble placed on the track above
	_, ok = s.FieldOccupant(homePos(2, 1))
	assert.False(t, ok)
}
