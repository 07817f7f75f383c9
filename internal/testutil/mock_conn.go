//go:build !production

package testutil

import (
	"errors"
	"sync"

	"github.com/hounds-game/hounds/internal/protocol"
)

// ErrConnClosed 管道连接已关闭
var ErrConnClosed = errors.New("testutil: conn closed")

// PipeConn 基于通道的内存连接，实现 transport.Conn
// 测试用服务端/客户端各持一端，免去真实网络
type PipeConn struct {
	name string
	in   chan *protocol.Message
	out  chan *protocol.Message

	// 两端共享同一个关闭信号，任意一端 Close 即双向断开
	closeOnce *sync.Once
	done      chan struct{}
}

// NewPipe 创建一对互联的内存连接
func NewPipe() (*PipeConn, *PipeConn) {
	a2b := make(chan *protocol.Message, 64)
	b2a := make(chan *protocol.Message, 64)
	done := make(chan struct{})
	once := &sync.Once{}

	a := &PipeConn{name: "pipe-a", in: b2a, out: a2b, closeOnce: once, done: done}
	b := &PipeConn{name: "pipe-b", in: a2b, out: b2a, closeOnce: once, done: done}
	return a, b
}

// ReadMessage 读出对端写入的下一条消息
func (c *PipeConn) ReadMessage() (*protocol.Message, error) {
	select {
	case msg := <-c.in:
		return msg, nil
	case <-c.done:
		// 关闭后先把残留消息读完
		select {
		case msg := <-c.in:
			return msg, nil
		default:
			return nil, ErrConnClosed
		}
	}
}

// WriteMessage 把消息投递给对端
func (c *PipeConn) WriteMessage(msg *protocol.Message) error {
	select {
	case c.out <- msg:
		return nil
	case <-c.done:
		return ErrConnClosed
	}
}

// Close 关闭两端
func (c *PipeConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	return nil
}

// RemoteAddr 对端地址
func (c *PipeConn) RemoteAddr() string {
	return c.name
}
