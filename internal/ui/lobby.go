package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hounds-game/hounds/internal/client"
	"github.com/hounds-game/hounds/internal/game"
	"github.com/hounds-game/hounds/internal/protocol"
)

// lobbyModel 大厅：显示在座玩家与准备状态
type lobbyModel struct {
	client  *client.Client
	players []protocol.PlayerInfo
	ready   bool
	status  string
}

func newLobbyModel(c *client.Client) *lobbyModel {
	return &lobbyModel{client: c}
}

func (m *lobbyModel) setPlayers(players []protocol.PlayerInfo) {
	m.players = players
	for _, p := range players {
		if p.ID == m.client.PlayerID() {
			m.ready = p.Ready
		}
	}
}

func (m *lobbyModel) setStatus(text string) {
	m.status = text
}

func (m *lobbyModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "q":
		m.client.Close()
		return tea.Quit
	case "r":
		if err := m.client.SendReady(); err != nil {
			m.status = err.Error()
		}
	case "s":
		if err := m.client.SendStartGame(); err != nil {
			m.status = err.Error()
		}
	}
	return nil
}

func (m *lobbyModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle("🐾 大厅"))
	b.WriteString("\n\n")

	var rows []string
	for seatID := 0; seatID < game.MaxPlayers; seatID++ {
		var entry *protocol.PlayerInfo
		for i := range m.players {
			if m.players[i].ID == seatID {
				entry = &m.players[i]
				break
			}
		}

		switch {
		case entry == nil:
			rows = append(rows, dimStyle.Render(fmt.Sprintf("座位 %d  （空）", seatID)))
		default:
			mark := "…"
			if entry.Ready {
				mark = "✓"
			}
			line := fmt.Sprintf("座位 %d  %-20s %s", seatID, entry.Name, mark)
			if entry.ID == m.client.PlayerID() {
				line += "  (你)"
			}
			rows = append(rows, seatColors[seatID].Render(line))
		}
	}
	b.WriteString(boxStyle.Render(strings.Join(rows, "\n")))

	if m.status != "" {
		b.WriteString("\n" + errorStyle.Render(m.status))
	}
	b.WriteString(promptStyle.Render(dimStyle.Render("\nr 准备 · s 开局 · q 退出")))
	return b.String()
}
