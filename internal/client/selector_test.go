package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hounds-game/hounds/internal/game"
	"github.com/hounds-game/hounds/internal/game/card"
)

const (
	clubsTwo   = 1
	clubsFour  = 3
	clubsSeven = 6
	jokerA     = 52
)

func trackPos(idx int) game.Position {
	return game.Position{Zone: game.ZoneTrack, Index: idx, PlayerID: 0}
}

// newTurnState 轮到 0 号玩家、给定手牌的棋局
func newTurnState(hand []int) *game.State {
	s := game.NewState([game.MaxPlayers]string{"Player1", "Player2", "Player3", "Player4"})
	s.Players[0].Hand = hand
	return s
}

func TestSelector_CardToggle(t *testing.T) {
	t.Parallel()

	s := newTurnState([]int{clubsFour})
	s.Players[0].Marbles[0] = trackPos(5)

	sel := NewSelector(0)
	sel.SetState(s)

	require.NoError(t, sel.SelectCard(0))
	assert.Equal(t, 0, sel.SelectedHandIndex())
	assert.NotEmpty(t, sel.Selectables())

	// Clicking the same card again cancels the selection
	require.NoError(t, sel.SelectCard(0))
	assert.Equal(t, -1, sel.SelectedHandIndex())
	assert.Empty(t, sel.Selectables())
}

func TestSelector_SimpleMoveFlow(t *testing.T) {
	t.Parallel()

	s := newTurnState([]int{clubsFour})
	s.Players[0].Marbles[0] = trackPos(5)

	sel := NewSelector(0)
	sel.SetState(s)
	require.NoError(t, sel.SelectCard(0))

	// Pick the marble, then one of its destinations
	move, err := sel.SelectPosition(trackPos(5))
	require.NoError(t, err)
	assert.Nil(t, move)
	require.NotNil(t, sel.SelectedMarble())

	dests := sel.Destinations()
	assert.Len(t, dests, 2, "a Four moves forward or backward")

	move, err = sel.SelectPosition(trackPos(9))
	require.NoError(t, err)
	require.NotNil(t, move)
	assert.Equal(t, clubsFour, move.CardID)
	assert.Equal(t, 0, move.HandIndex)
	require.Len(t, move.Movements, 1)
	assert.True(t, move.Movements[0].To.Equals(trackPos(9)))

	// The selection resets once the move is handed over
	assert.Equal(t, -1, sel.SelectedHandIndex())
}

func TestSelector_MarbleWithoutMovesRejected(t *testing.T) {
	t.Parallel()

	s := newTurnState([]int{clubsFour})
	s.Players[0].Marbles[0] = trackPos(5)

	sel := NewSelector(0)
	sel.SetState(s)
	require.NoError(t, sel.SelectCard(0))

	// A home marble has no moves for a Four; the selection does not advance
	homeMarble := game.Position{Zone: game.ZoneHome, Index: 1, PlayerID: 0}
	move, err := sel.SelectPosition(homeMarble)
	assert.Nil(t, move)
	assert.ErrorIs(t, err, ErrNoMoves)
	assert.Nil(t, sel.SelectedMarble())

	// The valid marble is still pickable afterwards
	_, err = sel.SelectPosition(trackPos(5))
	require.NoError(t, err)
	assert.NotNil(t, sel.SelectedMarble())
}

func TestSelector_JokerNeedsRankThenMoves(t *testing.T) {
	t.Parallel()

	s := newTurnState([]int{jokerA})
	s.Players[0].Marbles[0] = trackPos(5)

	sel := NewSelector(0)
	sel.SetState(s)

	err := sel.SelectCard(0)
	assert.ErrorIs(t, err, ErrRankRequired)

	// Playing the joker as a King: three starts plus the track move
	require.NoError(t, sel.ChooseRank(card.King))
	assert.Len(t, sel.Destinations(), 2) // start field and T18

	_, err = sel.SelectPosition(trackPos(5))
	require.NoError(t, err)

	move, err := sel.SelectPosition(trackPos(18))
	require.NoError(t, err)
	require.NotNil(t, move)

	// The submitted move spends the joker itself, not the synthetic card
	assert.Equal(t, jokerA, move.CardID)
	assert.Equal(t, 0, move.HandIndex)
}

func TestSelector_SplitAccumulatesToSeven(t *testing.T) {
	t.Parallel()

	s := newTurnState([]int{clubsSeven})
	s.Players[0].Marbles[0] = trackPos(5)
	s.Players[0].Marbles[1] = trackPos(20)

	sel := NewSelector(0)
	sel.SetState(s)

	require.NoError(t, sel.SelectCard(0))
	assert.True(t, sel.Splitting())

	// First leg: three steps with the first marble
	_, err := sel.SelectPosition(trackPos(5))
	require.NoError(t, err)
	move, err := sel.SelectPosition(trackPos(8))
	require.NoError(t, err)
	assert.Nil(t, move, "three of seven steps leave the move unfinished")
	assert.Equal(t, 3, sel.SplitTotal())
	assert.Nil(t, sel.SelectedMarble(), "continuation starts with a fresh marble pick")

	// The preview board shows the first leg already walked
	require.NotNil(t, sel.PreviewState())
	assert.True(t, sel.PreviewState().Players[0].Marbles[0].Equals(trackPos(8)))

	// Second leg: the remaining four steps with the other marble
	_, err = sel.SelectPosition(trackPos(20))
	require.NoError(t, err)
	move, err = sel.SelectPosition(trackPos(24))
	require.NoError(t, err)
	require.NotNil(t, move)

	assert.Equal(t, clubsSeven, move.CardID)
	require.Len(t, move.Movements, 2)
	assert.True(t, move.Movements[0].To.Equals(trackPos(8)))
	assert.True(t, move.Movements[1].To.Equals(trackPos(24)))

	assert.False(t, sel.Splitting())
	assert.Equal(t, 0, sel.SplitTotal())
}

func TestSelector_SplitContinuationLimitsDistance(t *testing.T) {
	t.Parallel()

	s := newTurnState([]int{clubsSeven})
	s.Players[0].Marbles[0] = trackPos(5)

	sel := NewSelector(0)
	sel.SetState(s)
	require.NoError(t, sel.SelectCard(0))

	// Walk five steps, leaving two
	_, err := sel.SelectPosition(trackPos(5))
	require.NoError(t, err)
	_, err = sel.SelectPosition(trackPos(10))
	require.NoError(t, err)

	_, err = sel.SelectPosition(trackPos(10))
	require.NoError(t, err)
	dests := sel.Destinations()
	assert.Len(t, dests, 2, "only the remaining two steps are offered")
	for _, d := range dests {
		assert.LessOrEqual(t, d.Index, 12)
	}
}

func TestSelector_MustFold(t *testing.T) {
	t.Parallel()

	// All marbles at home and no start card
	s := newTurnState([]int{clubsTwo})
	sel := NewSelector(0)
	sel.SetState(s)
	assert.True(t, sel.MustFold())

	// Not our turn: never prompt for a fold
	s.CurrentPlayer = 2
	sel.SetState(s)
	assert.False(t, sel.MustFold())
}

func TestSelector_IgnoresInputWhenNotMyTurn(t *testing.T) {
	t.Parallel()

	s := newTurnState([]int{clubsFour})
	s.Players[0].Marbles[0] = trackPos(5)
	s.CurrentPlayer = 1

	sel := NewSelector(0)
	sel.SetState(s)

	require.NoError(t, sel.SelectCard(0))
	assert.Equal(t, -1, sel.SelectedHandIndex())

	move, err := sel.SelectPosition(trackPos(5))
	assert.Nil(t, move)
	assert.NoError(t, err)
}
