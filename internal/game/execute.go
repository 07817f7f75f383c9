package game

// ExecuteMove 执行一次已通过校验的出牌
// 更新弹珠位置与起点封锁，扣掉手牌并记录最近出的牌
// 返回该玩家是否因此完赛
func (s *State) ExecuteMove(move Move) bool {
	for _, movement := range move.Movements {
		pID, mIdx := movement.Marble.PlayerID, movement.Marble.MarbleIdx
		p := s.Players[pID]
		if p == nil {
			continue
		}
		fromHome := p.Marbles[mIdx].Zone == ZoneHome
		p.Marbles[mIdx] = movement.To

		if pID != s.CurrentPlayer {
			continue
		}
		// 封锁弹珠离开起点则解除封锁；刚出家的弹珠封锁起点
		if p.StartBlocked != nil && *p.StartBlocked == mIdx {
			p.ResetStartBlocked()
		} else if fromHome {
			p.SetStartBlocked(mIdx)
		}
	}

	me := s.Players[s.CurrentPlayer]
	if id, ok := me.PopCard(move.HandIndex); ok {
		s.LastPlayedCard = &id
	}
	if len(me.Hand) == 0 {
		me.ActiveInRound = false
	}

	if me.Finished() {
		me.Hand = []int{}
		me.ActiveInRound = false
		me.ActiveInGame = false
		s.AddLeaderBoardFinished(s.CurrentPlayer)
		return true
	}
	return false
}

// ExecuteFold 执行弃牌：清空手牌并退出本轮
func (s *State) ExecuteFold() {
	me := s.Players[s.CurrentPlayer]
	me.Hand = []int{}
	me.ActiveInRound = false
}

// EndTurn 回合收尾：判定棋局或一轮是否结束并推进状态
// 棋局结束时给幸存者记名次；一轮结束时轮换先手、调整发牌数、
// 重新激活局中玩家并把出牌权交给新先手；否则轮到下一位
func (s *State) EndTurn() (gameEnded, roundEnded bool) {
	gameEnded = s.GameEnded()
	roundEnded = s.RoundEnded()

	switch {
	case gameEnded:
		if remaining := s.ActivePlayerIndices(); len(remaining) == 1 {
			s.AddLeaderBoardUnfinished(remaining[0])
		}
	case roundEnded:
		s.UpdateRoundStartPlayer()
		s.UpdateRoundCardCount()
		for _, p := range s.Players {
			if p != nil && p.ActiveInGame {
				p.ActiveInRound = true
			}
		}
		s.CurrentPlayer = s.RoundStartPlayer
	default:
		s.UpdateCurrentPlayer()
	}
	return gameEnded, roundEnded
}

// ApplyPreviewMove 在副本状态上应用位移，用于客户端拆分行进的预演
// 不做任何校验；封锁弹珠被挪动时顺带解除封锁
func (s *State) ApplyPreviewMove(move Move) {
	for _, movement := range move.Movements {
		p := s.Players[movement.Marble.PlayerID]
		if p == nil {
			continue
		}
		p.Marbles[movement.Marble.MarbleIdx] = movement.To
		if p.StartBlocked != nil && *p.StartBlocked == movement.Marble.MarbleIdx {
			p.ResetStartBlocked()
		}
	}
}
