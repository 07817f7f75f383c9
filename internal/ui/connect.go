package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hounds-game/hounds/internal/client"
	"github.com/hounds-game/hounds/internal/config"
)

// connectModel 连接表单：服务器地址、端口与玩家名
type connectModel struct {
	inputs  [3]textinput.Model
	focus   int
	err     string
	dialing bool
}

func newConnectModel(defaultAddr string) *connectModel {
	host, port := "127.0.0.1", "12345"
	if defaultAddr != "" {
		if h, p, ok := strings.Cut(defaultAddr, ":"); ok {
			host, port = h, p
		}
	}

	m := &connectModel{}

	addr := textinput.New()
	addr.Placeholder = "服务器地址"
	addr.SetValue(host)
	addr.CharLimit = 64
	addr.Width = 24
	addr.Focus()

	portInput := textinput.New()
	portInput.Placeholder = "端口"
	portInput.SetValue(port)
	portInput.CharLimit = 5
	portInput.Width = 24

	name := textinput.New()
	name.Placeholder = "玩家名"
	name.CharLimit = 20
	name.Width = 24

	m.inputs = [3]textinput.Model{addr, portInput, name}
	return m
}

func (m *connectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *connectModel) setError(err error) {
	m.dialing = false
	m.err = err.Error()
}

func (m *connectModel) setErrorText(text string) {
	m.dialing = false
	m.err = text
}

func (m *connectModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.dialing {
		return m.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "tab", "down":
		m.setFocus((m.focus + 1) % len(m.inputs))
		return nil
	case "shift+tab", "up":
		m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
		return nil
	case "enter":
		return m.submit()
	case "q":
		if m.focus != 2 { // 名字输入框里 q 是合法字符
			return tea.Quit
		}
	}
	return m.updateInputs(msg)
}

func (m *connectModel) setFocus(idx int) {
	m.focus = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *connectModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.inputs))
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// submit 校验表单后发起连接
func (m *connectModel) submit() tea.Cmd {
	host := strings.TrimSpace(m.inputs[0].Value())
	portStr := strings.TrimSpace(m.inputs[1].Value())
	name := strings.TrimSpace(m.inputs[2].Value())

	port, err := strconv.Atoi(portStr)
	if err != nil {
		m.err = "端口必须是数字"
		return nil
	}
	if err := config.ValidatePort(port); err != nil {
		m.err = fmt.Sprintf("端口必须在 1024~65535 之间 (%d)", port)
		return nil
	}
	if host == "" || name == "" {
		m.err = "地址和玩家名不能为空"
		return nil
	}

	m.err = ""
	m.dialing = true
	addr := fmt.Sprintf("%s:%d", host, port)
	return func() tea.Msg {
		c, err := client.Dial(addr, name)
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{Client: c}
	}
}

func (m *connectModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle("🐾 猎犬棋"))
	b.WriteString("\n\n")

	labels := [3]string{"地址", "端口", "名字"}
	for i := range m.inputs {
		b.WriteString(fmt.Sprintf("%s %s\n", labels[i], m.inputs[i].View()))
	}

	if m.dialing {
		b.WriteString(statusStyle.Render("\n正在连接..."))
	}
	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err))
	}
	b.WriteString(promptStyle.Render(dimStyle.Render("\nTab 切换 · Enter 连接 · Ctrl+C 退出")))
	return b.String()
}
