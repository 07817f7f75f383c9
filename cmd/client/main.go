package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hounds-game/hounds/internal/logger"
	"github.com/hounds-game/hounds/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "127.0.0.1:12345", "服务器地址")
	logLevel := flag.String("log-level", "info", "日志级别")
	flag.Parse()

	// 终端被 TUI 占用，日志写入文件
	if err := logger.Init(*logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	model := ui.New(*serverAddr)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "启动客户端时出错: %v\n", err)
		os.Exit(1)
	}
}
