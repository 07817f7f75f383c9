// Package transport 提供按消息分帧的连接抽象
// 主通道为 TCP 上按行分隔的 JSON，另提供承载相同消息的 WebSocket 网关
package transport

import "github.com/hounds-game/hounds/internal/protocol"

// Conn 一条按消息分帧的双向连接
// ReadMessage 阻塞到读出完整一条消息；WriteMessage 并发安全
type Conn interface {
	ReadMessage() (*protocol.Message, error)
	WriteMessage(*protocol.Message) error
	Close() error
	RemoteAddr() string
}
