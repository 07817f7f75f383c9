package transport

import (
	"bufio"
	"errors"
	"net"
	"sync"

	"github.com/hounds-game/hounds/internal/protocol"
	"github.com/hounds-game/hounds/internal/protocol/codec"
)

// maxLineSize 单条消息的长度上限，防止恶意超长行撑爆内存
const maxLineSize = 1 << 20

// TCPConn 在 TCP 连接上按换行符分帧传输 JSON 消息
// TCP 不保证消息边界，读端用缓冲逐行切分；半行数据留在缓冲里
// 等下一次读取拼全
type TCPConn struct {
	conn    net.Conn
	reader  *bufio.Reader
	writeMu sync.Mutex
}

// NewTCPConn 包装一条已建立的 TCP 连接
func NewTCPConn(conn net.Conn) *TCPConn {
	return &TCPConn{
		conn:   conn,
		reader: bufio.NewReaderSize(conn, 4096),
	}
}

// ReadMessage 读出下一条完整消息
// 边读边校验长度，超限的行在凑全之前就被拒绝
func (c *TCPConn) ReadMessage() (*protocol.Message, error) {
	var line []byte
	for {
		chunk, err := c.reader.ReadSlice('\n')
		line = append(line, chunk...)
		if len(line) > maxLineSize {
			return nil, protocol.ErrLineTooLong
		}
		if err == nil {
			return protocol.Decode(line)
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return nil, err
		}
	}
}

// WriteMessage 编码消息并追加换行后一次性写出
func (c *TCPConn) WriteMessage(msg *protocol.Message) error {
	data, err := msg.Encode()
	if err != nil {
		return err
	}

	buf := codec.GetBuffer()
	defer codec.PutBuffer(buf)
	buf.Write(data)
	buf.WriteByte('\n')

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err = c.conn.Write(buf.Bytes())
	return err
}

// Close 关闭底层连接
func (c *TCPConn) Close() error {
	return c.conn.Close()
}

// RemoteAddr 对端地址
func (c *TCPConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
