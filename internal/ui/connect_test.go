package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hounds-game/hounds/internal/game"
	"github.com/hounds-game/hounds/internal/game/card"
)

func TestNewConnectModel_ParsesDefaultAddr(t *testing.T) {
	t.Parallel()

	m := newConnectModel("192.168.1.10:23456")
	assert.Equal(t, "192.168.1.10", m.inputs[0].Value())
	assert.Equal(t, "23456", m.inputs[1].Value())

	m = newConnectModel("")
	assert.Equal(t, "127.0.0.1", m.inputs[0].Value())
	assert.Equal(t, "12345", m.inputs[1].Value())
}

func TestConnectModel_SubmitValidation(t *testing.T) {
	t.Parallel()

	// Non-numeric port
	m := newConnectModel("")
	m.inputs[1].SetValue("abc")
	m.inputs[2].SetValue("Player1")
	assert.Nil(t, m.submit())
	assert.NotEmpty(t, m.err)
	assert.False(t, m.dialing)

	// Privileged port
	m = newConnectModel("")
	m.inputs[1].SetValue("80")
	m.inputs[2].SetValue("Player1")
	assert.Nil(t, m.submit())
	assert.NotEmpty(t, m.err)

	// Missing name
	m = newConnectModel("")
	assert.Nil(t, m.submit())
	assert.NotEmpty(t, m.err)

	// Valid form produces a dial command
	m = newConnectModel("")
	m.inputs[2].SetValue("Player1")
	cmd := m.submit()
	require.NotNil(t, cmd)
	assert.Empty(t, m.err)
	assert.True(t, m.dialing)
}

func TestRankKeys_CoverAllPlayableRanks(t *testing.T) {
	t.Parallel()

	// One key per rank a joker can impersonate
	assert.Len(t, rankKeys, 13)
	seen := map[card.Rank]bool{}
	for _, r := range rankKeys {
		assert.False(t, seen[r], "duplicate binding for rank %s", r)
		seen[r] = true
	}
	assert.True(t, seen[card.Ace])
	assert.True(t, seen[card.King])
	assert.False(t, seen[card.Joker])
}

func TestPosLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "H2", posLabel(game.Position{Zone: game.ZoneHome, Index: 2}))
	assert.Equal(t, "T63", posLabel(game.Position{Zone: game.ZoneTrack, Index: 63}))
	assert.Equal(t, "F0", posLabel(game.Position{Zone: game.ZoneFinish, Index: 0}))
}
