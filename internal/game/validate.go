package game

import (
	"github.com/rs/zerolog/log"

	"github.com/hounds-game/hounds/internal/game/card"
)

// IsValidTurn 服务端权威校验
// move 为 nil 或不含位移时视为弃牌，只有在无任何合法走法时成立
// 常规走法逐条规则重算并比对位移集合；客户端从多选项中挑一个时
// 只要求其位移是重算结果的子集
func (s *State) IsValidTurn(move *Move) bool {
	if move == nil || len(move.Movements) == 0 {
		if s.HasLegalMoves() {
			log.Warn().Int("player", s.CurrentPlayer).Msg("仍有合法走法，弃牌被拒绝")
			return false
		}
		return true
	}

	if move.CardID < 0 || move.CardID >= len(s.Deck) {
		return false
	}
	c := s.Deck[move.CardID]

	active := move.Movements[0].Marble
	if active.PlayerID != s.CurrentPlayer {
		log.Warn().Int("player", active.PlayerID).Int("current", s.CurrentPlayer).
			Msg("非当前玩家出牌")
		return false
	}
	if active.MarbleIdx < 0 || active.MarbleIdx >= MarblesPerPlayer || s.Players[active.PlayerID] == nil {
		return false
	}

	// 王牌与拆分走法的位移结构与常规走法一致，逐步重算尚未实现
	// TODO: 对拆分行进按步数序列重放校验
	if c.Rank == card.Joker || c.Rank == card.Seven {
		log.Debug().Int("card", move.CardID).Msg("特殊牌走法跳过重算校验")
		return true
	}

	activePos := s.Players[active.PlayerID].Marbles[active.MarbleIdx]

	for _, rule := range c.MoveRules {
		valMoves := s.validateMove(activePos, rule, false)
		if valMoves == nil {
			continue
		}
		if movementsMatch(move.Movements, valMoves) {
			return true
		}
	}

	log.Warn().Int("player", active.PlayerID).Int("card", move.CardID).
		Msg("没有匹配的走子规则")
	return false
}

// movementsMatch 比对客户端提交的位移与服务端重算结果
// 客户端位移更少时按子集匹配（多选项中挑了一个），否则要求重算
// 结果整体包含于客户端位移
func movementsMatch(client, server []Movement) bool {
	if len(client) > len(server) {
		return false
	}
	if len(client) < len(server) {
		for _, cm := range client {
			if !containsMovement(server, cm) {
				return false
			}
		}
		return true
	}
	for _, sm := range server {
		if !containsMovement(client, sm) {
			return false
		}
	}
	return true
}

// containsMovement 位移比对只看弹珠与落点的区域和下标
func containsMovement(list []Movement, m Movement) bool {
	for _, cand := range list {
		if cand.Marble == m.Marble &&
			cand.To.Zone == m.To.Zone && cand.To.Index == m.To.Index {
			return true
		}
	}
	return false
}
