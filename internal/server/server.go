package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hounds-game/hounds/internal/apperrors"
	"github.com/hounds-game/hounds/internal/config"
	"github.com/hounds-game/hounds/internal/game"
	"github.com/hounds-game/hounds/internal/protocol"
	"github.com/hounds-game/hounds/internal/transport"
)

// seatOrder 座位分配顺序：对家优先入座，两人局时坐在对角线上
var seatOrder = [game.MaxPlayers]int{0, 2, 1, 3}

// seat 一个已入座的连接
type seat struct {
	id     int
	connID string // 连接唯一标识，座位号压缩后仍可定位到连接
	name   string
	ready  bool
	conn   transport.Conn
}

// Server 四座位会话协调器
// 连接协程只做读写和成员簿记，棋局状态由单独的 actor 协程独占修改
type Server struct {
	cfg      *config.Config
	listener net.Listener
	wsServer *wsGateway

	mu       sync.Mutex
	seats    [game.MaxPlayers]*seat
	numSeats int

	gameRunning atomic.Bool
	state       *game.State // 仅 run 协程访问

	commands  chan command
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New 创建服务器实例
func New(cfg *config.Config) *Server {
	return &Server{
		cfg:      cfg,
		commands: make(chan command, 16),
		done:     make(chan struct{}),
	}
}

// Start 启动监听并阻塞处理连接，Shutdown 后返回 nil
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Server.Addr(), err)
	}
	s.listener = ln
	log.Info().Str("addr", s.cfg.Server.Addr()).Msg("server listening")

	s.wg.Add(1)
	go s.run()

	if s.cfg.WS.Enabled {
		s.wsServer = newWSGateway(s, s.cfg.WS.Addr)
		go s.wsServer.serve()
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.done:
				return nil
			default:
				return fmt.Errorf("accept: %w", err)
			}
		}
		go s.handleConn(transport.NewTCPConn(conn))
	}
}

// Shutdown 停止监听，断开所有连接并等待 actor 协程退出
func (s *Server) Shutdown() {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			_ = s.listener.Close()
		}
		if s.wsServer != nil {
			s.wsServer.close()
		}

		s.mu.Lock()
		for _, st := range s.seats {
			if st != nil {
				_ = st.conn.Close()
			}
		}
		s.mu.Unlock()
	})
	s.wg.Wait()
}

// handleConn 完成入座握手后进入读循环
// 握手流程：先占座并回复座位号，再读报名消息确定名字
func (s *Server) handleConn(conn transport.Conn) {
	connID := uuid.NewString()

	id, err := s.claimSeat(connID, conn)
	if err != nil {
		var gameErr *apperrors.GameError
		resp := protocol.ConnectRespPayload{Success: false, PlayerID: -1}
		if errors.As(err, &gameErr) {
			resp.Error = gameErr.Message
		} else {
			resp.Error = err.Error()
		}
		_ = conn.WriteMessage(protocol.MustNewMessage(protocol.MsgConnectResp, resp))
		_ = conn.Close()
		return
	}

	log.Info().
		Int("player_id", id).
		Str("conn_id", connID).
		Str("remote", conn.RemoteAddr()).
		Msg("player connected")

	if err := conn.WriteMessage(protocol.MustNewMessage(protocol.MsgConnectResp, protocol.ConnectRespPayload{
		Success:  true,
		PlayerID: id,
	})); err != nil {
		s.post(leaveCmd{connID: connID})
		return
	}

	// 读报名消息；名字非法或撞名时保留默认名
	msg, err := conn.ReadMessage()
	if err != nil {
		s.post(leaveCmd{connID: connID})
		return
	}
	if msg.Type == protocol.MsgConnect {
		if p, err := protocol.ParsePayload[protocol.ConnectPayload](msg); err == nil {
			s.setName(connID, p.Name)
		}
	}

	s.broadcastPlayerList()
	s.readLoop(connID, conn)
}

// readLoop 逐条读取消息并转交给 actor 协程
// 读出错即视为掉线
func (s *Server) readLoop(connID string, conn transport.Conn) {
	for {
		msg, err := conn.ReadMessage()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				log.Debug().Err(err).Str("conn_id", connID).Msg("read failed")
			}
			s.post(leaveCmd{connID: connID})
			return
		}

		switch msg.Type {
		case protocol.MsgReady:
			s.post(readyCmd{connID: connID})
		case protocol.MsgStartGame:
			s.post(startCmd{connID: connID})
		case protocol.MsgPlayCard:
			p, err := protocol.ParsePayload[protocol.PlayCardPayload](msg)
			if err != nil {
				_ = conn.WriteMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
				continue
			}
			s.post(playCmd{connID: connID, move: p.Move})
		case protocol.MsgSkipTurn:
			s.post(skipCmd{connID: connID})
		default:
			log.Warn().Str("type", string(msg.Type)).Str("conn_id", connID).Msg("unexpected message type")
			_ = conn.WriteMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		}
	}
}

// post 向 actor 协程投递命令，服务器关闭后静默丢弃
func (s *Server) post(cmd command) {
	select {
	case s.commands <- cmd:
	case <-s.done:
	}
}

// claimSeat 按分配顺序占下第一个空座位
func (s *Server) claimSeat(connID string, conn transport.Conn) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameRunning.Load() {
		return -1, apperrors.ErrGameStarted
	}
	if s.numSeats >= game.MaxPlayers {
		return -1, apperrors.ErrGameFull
	}

	for _, id := range seatOrder {
		if s.seats[id] == nil {
			s.seats[id] = &seat{
				id:     id,
				connID: connID,
				name:   fmt.Sprintf("Player %d", id),
				conn:   conn,
			}
			s.numSeats++
			return id, nil
		}
	}
	return -1, apperrors.ErrGameFull
}

// setName 校验并设置玩家名，非空且不与在座玩家重名才生效
func (s *Server) setName(connID, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var target *seat
	for _, st := range s.seats {
		if st == nil {
			continue
		}
		if st.connID == connID {
			target = st
		} else if st.name == name {
			log.Warn().Str("name", name).Msg("name already taken, keeping default")
			return
		}
	}
	if target != nil {
		target.name = name
	}
}

// seatByConn 按连接标识找座位号
func (s *Server) seatByConn(connID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.seats {
		if st != nil && st.connID == connID {
			return st.id, true
		}
	}
	return -1, false
}

// releaseSeat 释放座位并在开局前压缩座位号
// 返回掉线前的座位号，座位不存在时返回 false
func (s *Server) releaseSeat(connID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	released := -1
	for _, st := range s.seats {
		if st != nil && st.connID == connID {
			released = st.id
			_ = st.conn.Close()
			s.seats[st.id] = nil
			s.numSeats--
			break
		}
	}
	if released < 0 {
		return -1, false
	}

	// 开局前座位号可以重排，保持对家优先的布局
	if !s.gameRunning.Load() {
		var compacted [game.MaxPlayers]*seat
		next := 0
		for _, st := range s.seats {
			if st == nil {
				continue
			}
			newID := seatOrder[next]
			// 默认名跟着座位号走，否则后来者会拿到重名的默认名
			if st.name == fmt.Sprintf("Player %d", st.id) {
				st.name = fmt.Sprintf("Player %d", newID)
			}
			st.id = newID
			compacted[newID] = st
			next++
		}
		s.seats = compacted
	}
	return released, true
}
