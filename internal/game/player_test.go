package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hounds-game/hounds/internal/game/card"
)

func TestNewPlayer(t *testing.T) {
	t.Parallel()

	p := NewPlayer(2, "Player3")

	assert.Equal(t, 32, p.StartField)
	assert.True(t, p.ActiveInRound)
	assert.True(t, p.ActiveInGame)
	assert.False(t, p.IsStartBlocked())
	for i, pos := range p.Marbles {
		assert.Equal(t, homePos(i, 2), pos)
	}
}

func TestPlayer_PopCard(t *testing.T) {
	t.Parallel()

	p := NewPlayer(0, "Player1")
	p.Hand = []int{5, 9, 13}

	id, ok := p.PopCard(1)
	require.True(t, ok)
	assert.Equal(t, 9, id)
	assert.Equal(t, []int{5, 13}, p.Hand)

	_, ok = p.PopCard(2)
	assert.False(t, ok)
	_, ok = p.PopCard(-1)
	assert.False(t, ok)
}

func TestPlayer_HasJokerHasRank(t *testing.T) {
	t.Parallel()

	p := NewPlayer(0, "Player1")
	p.Hand = []int{clubsFour, 53}

	assert.True(t, p.HasJoker())
	assert.True(t, p.HasRank(card.Four))
	// The joker does not count as any plain rank
	assert.False(t, p.HasRank(card.Seven))

	p.Hand = []int{clubsTwo}
	assert.False(t, p.HasJoker())
}

func TestPlayer_Finished(t *testing.T) {
	t.Parallel()

	p := NewPlayer(1, "Player2")
	assert.False(t, p.Finished())

	for i := range p.Marbles {
		p.Marbles[i] = finishPos(i, 1)
	}
	assert.True(t, p.Finished())
}

func TestPlayer_MarbleIndexAt(t *testing.T) {
	t.Parallel()

	p := NewPlayer(0, "Player1")
	p.Marbles[2] = track(17)

	idx, ok := p.MarbleIndexAt(track(17))
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = p.MarbleIndexAt(track(18))
	assert.False(t, ok)
}

func TestPlayer_StartBlocked(t *testing.T) {
	t.Parallel()

	p := NewPlayer(0, "Player1")
	p.SetStartBlocked(3)
	require.NotNil(t, p.StartBlocked)
	assert.Equal(t, 3, *p.StartBlocked)

	p.ResetStartBlocked()
	assert.False(t, p.IsStartBlocked())
}
