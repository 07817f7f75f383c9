package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hounds-game/hounds/internal/client"
	"github.com/hounds-game/hounds/internal/protocol"
)

// Phase 客户端界面阶段
type Phase int

const (
	PhaseConnect Phase = iota
	PhaseLobby
	PhaseGame
	PhaseResults
)

// ServerMessage 服务器消息（用于 tea.Msg）
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg 连接成功消息
type ConnectedMsg struct {
	Client *client.Client
}

// ConnectionErrorMsg 连接错误消息
type ConnectionErrorMsg struct {
	Err error
}

// DisconnectedMsg 连接断开消息
type DisconnectedMsg struct{}

// Model 客户端根 model，按阶段分发到子 model
type Model struct {
	phase  Phase
	client *client.Client

	connect *connectModel
	lobby   *lobbyModel
	game    *gameModel

	width  int
	height int
}

// New 创建客户端根 model
func New(defaultAddr string) *Model {
	return &Model{
		phase:   PhaseConnect,
		connect: newConnectModel(defaultAddr),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.connect.Init()
}

// listenForMessages 监听服务器消息，事件通道关闭即视为断线
func (m *Model) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.client.Events()
		if !ok {
			return DisconnectedMsg{}
		}
		return ServerMessage{Msg: msg}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.client != nil {
				m.client.Close()
			}
			return m, tea.Quit
		}

	case ConnectedMsg:
		m.client = msg.Client
		m.lobby = newLobbyModel(m.client)
		m.phase = PhaseLobby
		return m, m.listenForMessages()

	case ConnectionErrorMsg:
		m.connect.setError(msg.Err)
		return m, nil

	case DisconnectedMsg:
		if m.phase == PhaseResults {
			// 终局后服务器主动关闭连接，保持排名展示
			return m, nil
		}
		m.connect = newConnectModel("")
		m.connect.setErrorText("与服务器的连接已断开")
		m.phase = PhaseConnect
		return m, m.connect.Init()

	case ServerMessage:
		cmd := m.handleServerMessage(msg.Msg)
		return m, tea.Batch(cmd, m.listenForMessages())
	}

	switch m.phase {
	case PhaseConnect:
		return m, m.connect.Update(msg)
	case PhaseLobby:
		return m, m.lobby.Update(msg)
	case PhaseGame:
		return m, m.game.Update(msg)
	}
	return m, nil
}

// handleServerMessage 按消息类型分发到具体的处理函数
func (m *Model) handleServerMessage(msg *protocol.Message) tea.Cmd {
	switch msg.Type {
	case protocol.MsgPlayerList:
		return m.handleMsgPlayerList(msg)
	case protocol.MsgReadyResp, protocol.MsgStartGameResp:
		return m.handleMsgActionResp(msg)
	case protocol.MsgGameStart:
		return m.handleMsgGameStart(msg)
	case protocol.MsgGameState:
		return m.game.handleMsgGameState(msg)
	case protocol.MsgCardsDealt:
		return m.game.handleMsgCardsDealt(msg)
	case protocol.MsgPlayCardResp:
		return m.game.handleMsgPlayCardResp(msg)
	case protocol.MsgSkipTurnResp:
		return m.game.handleMsgSkipTurnResp(msg)
	case protocol.MsgPlayerDisconnected:
		return m.game.handleMsgPlayerDisconnected(msg)
	case protocol.MsgPlayerFinished:
		return m.game.handleMsgPlayerFinished(msg)
	case protocol.MsgResults:
		return m.handleMsgResults(msg)
	case protocol.MsgError:
		return m.handleMsgError(msg)
	}
	return nil
}

// handleMsgPlayerList 大厅名单更新
// 开局前座位可能被压缩重排，按名字重新对号入座
func (m *Model) handleMsgPlayerList(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.PlayerListPayload](msg)
	if err != nil {
		return nil
	}
	for _, p := range payload.Players {
		if p.Name == m.client.Name() {
			m.client.SetPlayerID(p.ID)
			break
		}
	}
	if m.lobby != nil {
		m.lobby.setPlayers(payload.Players)
	}
	return nil
}

func (m *Model) handleMsgActionResp(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ActionRespPayload](msg)
	if err != nil || m.lobby == nil {
		return nil
	}
	if !payload.Success {
		m.lobby.setStatus(payload.Error)
	}
	return nil
}

// handleMsgGameStart 开局广播：构建游戏界面后放行缓冲消息
// 缓冲消息已按约定重排，第一条棋局状态先于其余消息生效
func (m *Model) handleMsgGameStart(msg *protocol.Message) tea.Cmd {
	m.game = newGameModel(m.client)
	m.phase = PhaseGame

	for _, buffered := range m.client.CompleteTransition() {
		m.handleServerMessage(buffered)
	}
	return nil
}

func (m *Model) handleMsgResults(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ResultsPayload](msg)
	if err != nil || m.game == nil {
		return nil
	}
	m.game.setResults(payload.Rankings)
	m.phase = PhaseResults
	return nil
}

func (m *Model) handleMsgError(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	if err != nil {
		return nil
	}
	switch m.phase {
	case PhaseLobby:
		m.lobby.setStatus(payload.Message)
	case PhaseGame:
		m.game.setStatus(payload.Message)
	}
	return nil
}

func (m *Model) View() string {
	switch m.phase {
	case PhaseConnect:
		return docStyle.Render(m.connect.View())
	case PhaseLobby:
		return docStyle.Render(m.lobby.View())
	case PhaseGame:
		return docStyle.Render(m.game.View())
	case PhaseResults:
		return docStyle.Render(m.game.ViewResults())
	}
	return ""
}
