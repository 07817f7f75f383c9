package server

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hounds-game/hounds/internal/apperrors"
	"github.com/hounds-game/hounds/internal/game"
	"github.com/hounds-game/hounds/internal/protocol"
)

// resultsLinger 终局排名广播后到服务器自动关闭的停留时间
const resultsLinger = 5 * time.Minute

// command actor 协程处理的命令，全部由连接协程投递
type command interface{ isCommand() }

type readyCmd struct{ connID string }
type startCmd struct{ connID string }
type playCmd struct {
	connID string
	move   game.Move
}
type skipCmd struct{ connID string }
type leaveCmd struct{ connID string }

func (readyCmd) isCommand() {}
func (startCmd) isCommand() {}
func (playCmd) isCommand()  {}
func (skipCmd) isCommand()  {}
func (leaveCmd) isCommand() {}

// run 棋局状态的唯一写入者
// 所有改动串行执行，引擎内部无需加锁
func (s *Server) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case cmd := <-s.commands:
			switch c := cmd.(type) {
			case readyCmd:
				s.handleReady(c)
			case startCmd:
				s.handleStart(c)
			case playCmd:
				s.handlePlay(c)
			case skipCmd:
				s.handleSkip(c)
			case leaveCmd:
				s.handleLeave(c)
			}
		}
	}
}

func (s *Server) handleReady(c readyCmd) {
	id, ok := s.seatByConn(c.connID)
	if !ok {
		return
	}

	if s.gameRunning.Load() {
		s.sendToSeat(id, protocol.MustNewMessage(protocol.MsgReadyResp, protocol.ActionRespPayload{
			Success: false,
			Error:   apperrors.ErrGameStarted.Message,
		}))
		return
	}

	s.mu.Lock()
	if st := s.seats[id]; st != nil {
		st.ready = true
	}
	s.mu.Unlock()
	log.Info().Int("player_id", id).Msg("player ready")

	s.sendToSeat(id, protocol.MustNewMessage(protocol.MsgReadyResp, protocol.ActionRespPayload{Success: true}))
	s.broadcastPlayerList()
}

func (s *Server) handleStart(c startCmd) {
	id, ok := s.seatByConn(c.connID)
	if !ok {
		return
	}

	if s.gameRunning.Load() {
		s.startFailed(id, apperrors.ErrGameStarted)
		return
	}

	s.mu.Lock()
	allReady := true
	var names [game.MaxPlayers]string
	for _, st := range s.seats {
		if st == nil {
			continue
		}
		names[st.id] = st.name
		if !st.ready {
			allReady = false
		}
	}
	numSeats := s.numSeats
	if allReady && numSeats >= s.cfg.Game.MinPlayers {
		s.gameRunning.Store(true)
	}
	s.mu.Unlock()

	switch {
	case numSeats < s.cfg.Game.MinPlayers:
		s.startFailed(id, apperrors.ErrTooFew)
		return
	case !allReady:
		s.startFailed(id, apperrors.ErrNotAllReady)
		return
	}

	log.Info().Int("player_id", id).Int("num_players", numSeats).Msg("starting game")
	s.state = game.NewState(names)

	s.sendToSeat(id, protocol.MustNewMessage(protocol.MsgStartGameResp, protocol.ActionRespPayload{Success: true}))
	s.broadcast(protocol.MustNewMessage(protocol.MsgGameStart, protocol.GameStartPayload{NumPlayers: numSeats}))
	s.broadcastGameState()
	s.newRound()
}

func (s *Server) startFailed(id int, gameErr *apperrors.GameError) {
	log.Warn().Int("player_id", id).Str("reason", gameErr.Message).Msg("start game denied")
	s.sendToSeat(id, protocol.MustNewMessage(protocol.MsgStartGameResp, protocol.ActionRespPayload{
		Success: false,
		Error:   gameErr.Message,
	}))
}

func (s *Server) handlePlay(c playCmd) {
	id, ok := s.seatByConn(c.connID)
	if !ok {
		return
	}

	fail := func(gameErr *apperrors.GameError) {
		s.sendToSeat(id, protocol.MustNewMessage(protocol.MsgPlayCardResp, protocol.PlayCardRespPayload{
			HandIndex: c.move.HandIndex,
			Success:   false,
			Error:     gameErr.Message,
		}))
	}

	if !s.gameRunning.Load() || s.state == nil {
		fail(apperrors.ErrGameNotOn)
		return
	}
	if !s.state.IsMyTurn(id) {
		fail(apperrors.ErrNotYourTurn)
		return
	}
	if !s.state.IsValidTurn(&c.move) {
		fail(apperrors.ErrInvalidMove)
		return
	}

	finished := s.state.ExecuteMove(c.move)
	gameEnded, roundEnded := s.state.EndTurn()

	log.Info().
		Int("player_id", id).
		Int("card_id", c.move.CardID).
		Int("hand_index", c.move.HandIndex).
		Msg("card played")

	s.sendToSeat(id, protocol.MustNewMessage(protocol.MsgPlayCardResp, protocol.PlayCardRespPayload{
		HandIndex: c.move.HandIndex,
		Success:   true,
	}))
	s.broadcastGameState()

	if finished {
		s.broadcast(protocol.MustNewMessage(protocol.MsgPlayerFinished, protocol.PlayerFinishedPayload{PlayerID: id}))
	}

	switch {
	case gameEnded:
		s.gameEnd()
	case roundEnded:
		s.newRound()
	}
}

func (s *Server) handleSkip(c skipCmd) {
	id, ok := s.seatByConn(c.connID)
	if !ok {
		return
	}

	fail := func(gameErr *apperrors.GameError) {
		s.sendToSeat(id, protocol.MustNewMessage(protocol.MsgSkipTurnResp, protocol.ActionRespPayload{
			Success: false,
			Error:   gameErr.Message,
		}))
	}

	if !s.gameRunning.Load() || s.state == nil {
		fail(apperrors.ErrGameNotOn)
		return
	}
	if !s.state.IsMyTurn(id) {
		fail(apperrors.ErrNotYourTurn)
		return
	}
	// 仍有合法走法时不允许弃牌
	if !s.state.IsValidTurn(nil) {
		fail(apperrors.ErrInvalidFold)
		return
	}

	s.state.ExecuteFold()
	gameEnded, roundEnded := s.state.EndTurn()

	log.Info().Int("player_id", id).Msg("turn skipped")

	s.sendToSeat(id, protocol.MustNewMessage(protocol.MsgSkipTurnResp, protocol.ActionRespPayload{Success: true}))
	s.broadcastGameState()

	switch {
	case gameEnded:
		s.gameEnd()
	case roundEnded:
		s.newRound()
	}
}

func (s *Server) handleLeave(c leaveCmd) {
	id, ok := s.releaseSeat(c.connID)
	if !ok {
		return
	}
	log.Info().Int("player_id", id).Msg("player disconnected")

	s.broadcast(protocol.MustNewMessage(protocol.MsgPlayerDisconnected, protocol.PlayerDisconnectedPayload{PlayerID: id}))

	if !s.gameRunning.Load() || s.state == nil {
		s.broadcastPlayerList()
		return
	}

	s.state.DisconnectPlayer(id)
	if s.state.GameEnded() {
		s.broadcastGameState()
		s.gameEnd()
		return
	}
	// 掉线者若是本轮最后一个持牌人，轮次就此结束，照常收轮发新牌
	if s.state.RoundEnded() {
		s.state.EndTurn()
		s.broadcastGameState()
		s.newRound()
		return
	}
	s.broadcastGameState()
}

// newRound 发新一轮手牌并私发给各位玩家
// 手牌不随棋局状态广播，只有收牌人能看到自己的牌
func (s *Server) newRound() {
	dealt := s.state.DealCards()
	log.Info().Int("card_count", s.state.RoundCardCount).Msg("dealing new round")

	for playerID, cards := range dealt {
		s.state.Players[playerID].Hand = append([]int(nil), cards...)
		s.sendToSeat(playerID, protocol.MustNewMessage(protocol.MsgCardsDealt, protocol.CardsDealtPayload{
			PlayerID: playerID,
			Cards:    cards,
		}))
	}
}

// gameEnd 广播终局排名，停留一段时间后关闭服务器
func (s *Server) gameEnd() {
	if !s.gameRunning.Swap(false) {
		return
	}

	log.Info().Msg("game ended, broadcasting results")
	s.broadcast(protocol.MustNewMessage(protocol.MsgResults, protocol.ResultsPayload{
		Rankings: s.state.LeaderBoard,
	}))

	go func() {
		select {
		case <-time.After(resultsLinger):
			s.Shutdown()
		case <-s.done:
		}
	}()
}
