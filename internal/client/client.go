package client

import (
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/hounds-game/hounds/internal/game"
	"github.com/hounds-game/hounds/internal/protocol"
	"github.com/hounds-game/hounds/internal/transport"
)

// Client 维护与服务器的连接
// 后台读协程只负责解码和路由，消息统一经事件通道交给 UI 协程消费，
// 棋局副本和选择状态只在消费侧被修改
type Client struct {
	conn   transport.Conn
	router *router

	mu       sync.Mutex
	playerID int
	name     string

	closeOnce sync.Once
}

// Dial 连接服务器并完成入座握手
// 先发送报名消息，再等待入座结果；被拒绝时返回服务端给出的原因
func Dial(addr, name string) (*Client, error) {
	raw, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	conn := transport.NewTCPConn(raw)

	if err := conn.WriteMessage(protocol.MustNewMessage(protocol.MsgConnect, protocol.ConnectPayload{Name: name})); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("send connect request: %w", err)
	}

	msg, err := conn.ReadMessage()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("read connect response: %w", err)
	}
	if msg.Type != protocol.MsgConnectResp {
		_ = conn.Close()
		return nil, fmt.Errorf("unexpected handshake message %q", msg.Type)
	}
	resp, err := protocol.ParsePayload[protocol.ConnectRespPayload](msg)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("parse connect response: %w", err)
	}
	if !resp.Success {
		_ = conn.Close()
		return nil, fmt.Errorf("connection rejected: %s", resp.Error)
	}

	c := New(conn, resp.PlayerID, name)
	log.Info().Int("player_id", c.playerID).Str("addr", addr).Msg("connected to server")
	return c, nil
}

// New 在已完成入座握手的连接上创建客户端并启动读协程
func New(conn transport.Conn, playerID int, name string) *Client {
	c := &Client{
		conn:     conn,
		router:   newRouter(),
		playerID: playerID,
		name:     name,
	}
	go c.readLoop()
	return c
}

// readLoop 后台读协程，读出错即视为连接断开并关闭事件通道
func (c *Client) readLoop() {
	defer c.router.closeOut()
	for {
		msg, err := c.conn.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("server connection closed")
			return
		}
		c.router.route(msg)
	}
}

// Events 服务端消息的 FIFO 事件通道，连接断开时关闭
func (c *Client) Events() <-chan *protocol.Message {
	return c.router.out
}

// CompleteTransition 游戏界面就绪后调用，返回按约定重排的缓冲消息
// 第一条棋局状态更新排在最前，其余保持到达顺序
func (c *Client) CompleteTransition() []*protocol.Message {
	return c.router.completeTransition()
}

// PlayerID 当前座位号
func (c *Client) PlayerID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playerID
}

// SetPlayerID 开局前座位压缩后由大厅消息重新对号入座
func (c *Client) SetPlayerID(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.playerID {
		log.Info().Int("old", c.playerID).Int("new", id).Msg("player id reassigned")
		c.playerID = id
	}
}

// Name 报名时使用的玩家名
func (c *Client) Name() string {
	return c.name
}

// SendReady 发送准备就绪
func (c *Client) SendReady() error {
	return c.conn.WriteMessage(protocol.MustNewMessage(protocol.MsgReady, protocol.ReadyPayload{PlayerID: c.PlayerID()}))
}

// SendStartGame 请求开局
func (c *Client) SendStartGame() error {
	return c.conn.WriteMessage(protocol.MustNewMessage(protocol.MsgStartGame, protocol.StartGamePayload{PlayerID: c.PlayerID()}))
}

// SendPlayCard 提交一个完整走法
func (c *Client) SendPlayCard(move game.Move) error {
	return c.conn.WriteMessage(protocol.MustNewMessage(protocol.MsgPlayCard, protocol.PlayCardPayload{
		PlayerID: c.PlayerID(),
		Move:     move,
	}))
}

// SendSkipTurn 弃牌跳过本回合
func (c *Client) SendSkipTurn() error {
	return c.conn.WriteMessage(protocol.MustNewMessage(protocol.MsgSkipTurn, protocol.SkipTurnPayload{PlayerID: c.PlayerID()}))
}

// Close 关闭连接，读协程随之退出
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		_ = c.conn.Close()
	})
}
