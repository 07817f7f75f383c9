package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hounds-game/hounds/internal/client"
	"github.com/hounds-game/hounds/internal/game"
	"github.com/hounds-game/hounds/internal/game/card"
	"github.com/hounds-game/hounds/internal/protocol"
)

// rankKeys 王牌点数选择的按键映射
var rankKeys = map[string]card.Rank{
	"a": card.Ace, "2": card.Two, "3": card.Three, "4": card.Four,
	"5": card.Five, "6": card.Six, "7": card.Seven, "8": card.Eight,
	"9": card.Nine, "t": card.Ten, "j": card.Jack, "q": card.Queen,
	"k": card.King,
}

// pickKeys 棋盘位置选择的按键，按列表顺序对应
const pickKeys = "abcdefgh"

// gameModel 对局界面：棋局副本只在本协程被读写
type gameModel struct {
	client *client.Client
	sel    *client.Selector

	state    *game.State
	hand     []int
	status   string
	rankMode bool
	results  *[game.MaxPlayers]*int
}

func newGameModel(c *client.Client) *gameModel {
	return &gameModel{
		client: c,
		sel:    client.NewSelector(c.PlayerID()),
	}
}

func (m *gameModel) setStatus(text string) {
	m.status = text
}

func (m *gameModel) setResults(rankings [game.MaxPlayers]*int) {
	m.results = &rankings
}

// attachHand 把私发的手牌挂到棋局副本上
// 广播状态不含手牌，引擎的合法走法枚举依赖这份本地补全
func (m *gameModel) attachHand() {
	if m.state == nil {
		return
	}
	if p := m.state.Players[m.client.PlayerID()]; p != nil {
		p.Hand = append([]int(nil), m.hand...)
	}
}

func (m *gameModel) refresh() {
	m.attachHand()
	m.sel.SetPlayerID(m.client.PlayerID())
	m.sel.SetState(m.state)
	m.rankMode = false

	if m.state != nil && m.state.IsMyTurn(m.client.PlayerID()) {
		if m.sel.MustFold() {
			m.status = "没有任何合法走法，按 f 弃牌"
		} else {
			m.status = "轮到你了"
		}
	}
}

// --- 服务端消息处理 ---

func (m *gameModel) handleMsgGameState(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.GameStatePayload](msg)
	if err != nil {
		return nil
	}
	st := payload.State
	m.state = &st
	m.refresh()
	return nil
}

func (m *gameModel) handleMsgCardsDealt(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.CardsDealtPayload](msg)
	if err != nil {
		return nil
	}
	m.hand = payload.Cards
	m.refresh()
	return nil
}

func (m *gameModel) handleMsgPlayCardResp(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayCardRespPayload](msg)
	if err != nil {
		return nil
	}
	if !payload.Success {
		m.status = payload.Error
		return nil
	}
	// 服务端确认后立刻弹掉本地这张牌：广播状态不带手牌，
	// 本地副本是合法走法枚举的唯一手牌来源
	m.popHand(payload.HandIndex)
	m.refresh()
	return nil
}

func (m *gameModel) handleMsgSkipTurnResp(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ActionRespPayload](msg)
	if err != nil {
		return nil
	}
	if !payload.Success {
		m.status = payload.Error
		return nil
	}
	// 弃牌成功即本轮出局，手牌随之清空
	m.hand = nil
	m.refresh()
	return nil
}

// popHand 按下标移除一张本地手牌
func (m *gameModel) popHand(handIndex int) {
	if handIndex < 0 || handIndex >= len(m.hand) {
		return
	}
	m.hand = append(m.hand[:handIndex], m.hand[handIndex+1:]...)
}

func (m *gameModel) handleMsgPlayerDisconnected(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayerDisconnectedPayload](msg)
	if err != nil {
		return nil
	}
	m.status = fmt.Sprintf("%s 掉线了", m.playerName(payload.PlayerID))
	return nil
}

func (m *gameModel) handleMsgPlayerFinished(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayerFinishedPayload](msg)
	if err != nil {
		return nil
	}
	m.status = fmt.Sprintf("%s 完赛！", m.playerName(payload.PlayerID))
	return nil
}

func (m *gameModel) playerName(id int) string {
	if m.state != nil && id >= 0 && id < game.MaxPlayers && m.state.Players[id] != nil {
		return m.state.Players[id].Name
	}
	return fmt.Sprintf("Player %d", id)
}

// --- 按键处理 ---

func (m *gameModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.state == nil {
		return nil
	}
	key := keyMsg.String()

	if m.rankMode {
		if rank, ok := rankKeys[key]; ok {
			m.rankMode = false
			if err := m.sel.ChooseRank(rank); err == nil {
				m.status = fmt.Sprintf("王牌按 %s 出牌，选择弹珠", rank)
			}
		} else if key == "esc" {
			m.rankMode = false
			m.sel.Clear()
			m.status = ""
		}
		return nil
	}

	switch key {
	case "esc":
		m.sel.Clear()
		m.status = ""
		return nil
	case "f":
		return m.fold()
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		m.selectCard(int(key[0] - '1'))
		return nil
	}
	if idx := strings.Index(pickKeys, key); idx >= 0 {
		m.pickPosition(idx)
	}
	return nil
}

func (m *gameModel) selectCard(handIndex int) {
	if handIndex >= len(m.hand) {
		return
	}
	err := m.sel.SelectCard(handIndex)
	switch {
	case errors.Is(err, client.ErrRankRequired):
		m.rankMode = true
		m.status = "选择王牌点数：a 2-9 t j q k"
	case err == nil && m.sel.SelectedHandIndex() >= 0:
		if m.sel.Splitting() {
			m.status = "拆分行进：选择弹珠，共 7 步"
		} else {
			m.status = "选择弹珠"
		}
	}
}

func (m *gameModel) pickPosition(idx int) {
	picks := m.pickList()
	if idx >= len(picks) {
		return
	}

	move, err := m.sel.SelectPosition(picks[idx])
	switch {
	case errors.Is(err, client.ErrNoMoves):
		m.status = "这里没有可走的棋"
		return
	case errors.Is(err, client.ErrSplitOverrun):
		m.status = "拆分步数超限，选择已重置"
		return
	}

	if move != nil {
		if err := m.client.SendPlayCard(*move); err != nil {
			m.status = err.Error()
			return
		}
		m.status = "走法已提交"
		return
	}
	if m.sel.Splitting() && m.sel.SelectedMarble() == nil {
		m.status = fmt.Sprintf("拆分行进 %d/7，继续选择弹珠", m.sel.SplitTotal())
	} else if m.sel.SelectedMarble() != nil {
		m.status = "选择落点"
	}
}

func (m *gameModel) fold() tea.Cmd {
	if !m.state.IsMyTurn(m.client.PlayerID()) {
		m.status = "还没轮到你"
		return nil
	}
	if !m.sel.MustFold() {
		m.status = "仍有合法走法，不能弃牌"
		return nil
	}
	if err := m.client.SendSkipTurn(); err != nil {
		m.status = err.Error()
	}
	return nil
}

// pickList 当前可点击的位置：未选弹珠时是可选弹珠，否则是落点
func (m *gameModel) pickList() []game.Position {
	if m.sel.SelectedMarble() == nil {
		return m.sel.Selectables()
	}
	return m.sel.Destinations()
}

// --- 渲染 ---

// posLabel 位置的紧凑表示：H 家区 / T 赛道 / F 终点区
func posLabel(p game.Position) string {
	switch p.Zone {
	case game.ZoneHome:
		return fmt.Sprintf("H%d", p.Index)
	case game.ZoneFinish:
		return fmt.Sprintf("F%d", p.Index)
	default:
		return fmt.Sprintf("T%d", p.Index)
	}
}

// cardLabel 牌面文本，红色花色标红
func (m *gameModel) cardLabel(id int) string {
	c := m.state.Deck[id]
	text := c.Suit.String() + c.Rank.String()
	if c.Suit == card.Hearts || c.Suit == card.Diamonds {
		return redStyle.Render(text)
	}
	return blackStyle.Render(text)
}

func (m *gameModel) View() string {
	if m.state == nil {
		return statusStyle.Render("等待棋局状态...")
	}

	// 拆分行进时展示预演后的棋盘
	display := m.state
	if preview := m.sel.PreviewState(); preview != nil {
		display = preview
	}

	var b strings.Builder
	b.WriteString(titleStyle("🐾 对局"))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  本轮发 %d 张 · 先手 %s",
		display.RoundCardCount, m.playerName(display.RoundStartPlayer))))
	b.WriteString("\n\n")

	var rows []string
	for seatID := 0; seatID < game.MaxPlayers; seatID++ {
		p := display.Players[seatID]
		if p == nil {
			rows = append(rows, dimStyle.Render(fmt.Sprintf("   座位 %d（空）", seatID)))
			continue
		}

		marker := "  "
		if display.CurrentPlayer == seatID {
			marker = "➤ "
		}
		marbles := make([]string, 0, game.MarblesPerPlayer)
		for i := range p.Marbles {
			label := posLabel(p.Marbles[i])
			if p.StartBlocked != nil && *p.StartBlocked == i {
				label += "⛔"
			}
			marbles = append(marbles, label)
		}
		line := fmt.Sprintf("%s%-14s 起点 T%-2d  %s", marker, p.Name, p.StartField, strings.Join(marbles, " "))
		if !p.ActiveInGame {
			line += "  （出局）"
			rows = append(rows, dimStyle.Render(line))
			continue
		}
		if display.CurrentPlayer == seatID {
			rows = append(rows, currentStyle.Render(line))
		} else {
			rows = append(rows, seatColors[seatID].Render(line))
		}
	}
	b.WriteString(boxStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n\n")

	// 手牌
	b.WriteString("手牌： ")
	for i, id := range m.hand {
		label := fmt.Sprintf("%d:%s", i+1, m.cardLabel(id))
		if i == m.sel.SelectedHandIndex() {
			label = selectedStyle.Render(fmt.Sprintf(" %d:%s%s ", i+1, m.state.Deck[id].Suit, m.state.Deck[id].Rank))
		}
		b.WriteString(label + "  ")
	}
	if len(m.hand) == 0 {
		b.WriteString(dimStyle.Render("（无）"))
	}
	b.WriteString("\n")

	// 可点击的位置
	if picks := m.pickList(); len(picks) > 0 {
		if m.sel.SelectedMarble() == nil {
			b.WriteString("可选弹珠： ")
		} else {
			b.WriteString("可选落点： ")
		}
		for i, pos := range picks {
			if i >= len(pickKeys) {
				break
			}
			b.WriteString(fmt.Sprintf("%c:%s  ", pickKeys[i], posLabel(pos)))
		}
		b.WriteString("\n")
	}
	if m.sel.Splitting() {
		b.WriteString(statusStyle.Render(fmt.Sprintf("拆分行进 %d/7\n", m.sel.SplitTotal())))
	}

	if m.status != "" {
		b.WriteString("\n" + errorStyle.Render(m.status))
	}
	b.WriteString(promptStyle.Render(dimStyle.Render("\n数字选牌 · 字母选位置 · f 弃牌 · Esc 取消 · Ctrl+C 退出")))
	return b.String()
}

// ViewResults 终局排名
func (m *gameModel) ViewResults() string {
	var b strings.Builder
	b.WriteString(titleStyle("🏁 终局排名"))
	b.WriteString("\n\n")

	var rows []string
	for seatID := 0; seatID < game.MaxPlayers; seatID++ {
		if m.results == nil || m.results[seatID] == nil {
			continue
		}
		var label string
		switch rank := *m.results[seatID]; {
		case rank > 0:
			label = fmt.Sprintf("第 %d 名", rank)
		case rank == 0:
			label = "未完赛"
		default:
			label = "中途掉线"
		}
		rows = append(rows, seatColors[seatID].Render(fmt.Sprintf("%-14s %s", m.playerName(seatID), label)))
	}
	b.WriteString(boxStyle.Render(strings.Join(rows, "\n")))
	b.WriteString(promptStyle.Render(dimStyle.Render("\nCtrl+C 退出")))
	return b.String()
}
