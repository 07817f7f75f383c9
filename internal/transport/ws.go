package transport

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/hounds-game/hounds/internal/protocol"
)

// WSConn 在 WebSocket 上传输与 TCP 通道完全相同的 JSON 消息
// WebSocket 自带消息边界，每个文本帧承载一条消息，不再追加换行
type WSConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// NewWSConn 包装一条已升级的 WebSocket 连接
func NewWSConn(conn *websocket.Conn) *WSConn {
	return &WSConn{conn: conn}
}

// ReadMessage 读出下一条完整消息
func (c *WSConn) ReadMessage() (*protocol.Message, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	if len(data) > maxLineSize {
		return nil, protocol.ErrLineTooLong
	}
	return protocol.Decode(data)
}

// WriteMessage 将消息编码后写入一个文本帧
func (c *WSConn) WriteMessage(msg *protocol.Message) error {
	data, err := msg.Encode()
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Close 关闭底层连接
func (c *WSConn) Close() error {
	return c.conn.Close()
}

// RemoteAddr 对端地址
func (c *WSConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
