package server

import (
	"github.com/rs/zerolog/log"

	"github.com/hounds-game/hounds/internal/protocol"
	"github.com/hounds-game/hounds/internal/transport"
)

// sendToSeat 给指定座位发消息，座位空着时静默跳过
// 持锁期间只取连接引用，写操作在锁外进行
func (s *Server) sendToSeat(id int, msg *protocol.Message) {
	var conn transport.Conn
	s.mu.Lock()
	if st := s.seats[id]; st != nil {
		conn = st.conn
	}
	s.mu.Unlock()

	if conn == nil {
		return
	}
	if err := conn.WriteMessage(msg); err != nil {
		log.Debug().Err(err).Int("player_id", id).Str("type", string(msg.Type)).Msg("send failed")
	}
}

// broadcast 给所有在座玩家广播消息
func (s *Server) broadcast(msg *protocol.Message) {
	s.mu.Lock()
	conns := make([]transport.Conn, 0, len(s.seats))
	for _, st := range s.seats {
		if st != nil {
			conns = append(conns, st.conn)
		}
	}
	s.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(msg); err != nil {
			log.Debug().Err(err).Str("type", string(msg.Type)).Msg("broadcast send failed")
		}
	}
}

// broadcastPlayerList 广播大厅玩家列表
func (s *Server) broadcastPlayerList() {
	s.mu.Lock()
	players := make([]protocol.PlayerInfo, 0, s.numSeats)
	for _, st := range s.seats {
		if st != nil {
			players = append(players, protocol.PlayerInfo{ID: st.id, Name: st.name, Ready: st.ready})
		}
	}
	s.mu.Unlock()

	s.broadcast(protocol.MustNewMessage(protocol.MsgPlayerList, protocol.PlayerListPayload{Players: players}))
}

// broadcastGameState 广播棋局状态，仅 run 协程调用
// Player.Hand 不参与序列化，客户端只能通过私发的发牌消息拿到手牌
func (s *Server) broadcastGameState() {
	s.broadcast(protocol.MustNewMessage(protocol.MsgGameState, protocol.GameStatePayload{State: *s.state}))
}
