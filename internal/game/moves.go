package game

import (
	"github.com/rs/zerolog/log"

	"github.com/hounds-game/hounds/internal/game/card"
)

// FieldOccupant 查找占据指定位置的弹珠
// 赛道格比较时忽略归属，家区与终点区要求归属一致
func (s *State) FieldOccupant(pos Position) (MarbleID, bool) {
	for pID := 0; pID < MaxPlayers; pID++ {
		p := s.Players[pID]
		if p == nil {
			continue
		}
		for mIdx := range p.Marbles {
			marblePos := p.Marbles[mIdx]
			var matches bool
			if pos.Zone == ZoneTrack {
				matches = marblePos.Zone == pos.Zone && marblePos.Index == pos.Index
			} else {
				matches = pos.Equals(marblePos)
			}
			if matches {
				return MarbleID{PlayerID: pID, MarbleIdx: mIdx}, true
			}
		}
	}
	return MarbleID{}, false
}

// checkStartMove 计算出家走法：步数 0 表示目标为己方起点格
func (s *State) checkStartMove(marblePos Position) []Movement {
	return s.checkSimpleMove(marblePos, 0)
}

// checkSimpleMove 计算固定步数走法的落点
// 返回 nil 表示该走法不可行；否则返回 1~3 条位移：
// 主动弹珠到终点区、主动弹珠到赛道（可能跟随一条对手弹珠回家的位移）
func (s *State) checkSimpleMove(marblePos Position, moveValue int) []Movement {
	me := s.Players[s.CurrentPlayer]
	var ends []Position

	switch {
	// 出家走法
	case moveValue == 0:
		ends = append(ends, Position{Zone: ZoneTrack, Index: me.StartField, PlayerID: s.CurrentPlayer})

	// 终点区内部行进
	case marblePos.Zone == ZoneFinish:
		target := marblePos.Index + moveValue
		if target < 0 || target > FinishSize-1 {
			return nil
		}
		// 终点区内不允许跨越己方弹珠
		step := 1
		if moveValue < 0 {
			step = -1
		}
		for idx := marblePos.Index + step; (step > 0 && idx <= target) || (step < 0 && idx >= target); idx += step {
			occ, occupied := s.FieldOccupant(Position{Zone: ZoneFinish, Index: idx, PlayerID: s.CurrentPlayer})
			if occupied && occ.PlayerID == s.CurrentPlayer {
				return nil
			}
		}
		ends = append(ends, Position{Zone: ZoneFinish, Index: target, PlayerID: s.CurrentPlayer})

	// 赛道行进，可能分叉进入终点区
	default:
		endIndex := wrapTrack(marblePos.Index + moveValue)
		startFieldIdx := me.StartField

		if me.IsStartBlocked() && marblePos.Index == startFieldIdx {
			// 封锁起点的弹珠只能沿赛道离开，离开后封锁由执行逻辑解除
			ends = append(ends, Position{Zone: ZoneTrack, Index: endIndex, PlayerID: s.CurrentPlayer})
		} else {
			crossesOurStart := false
			for pID := 0; pID < MaxPlayers; pID++ {
				p := s.Players[pID]
				if p == nil {
					continue
				}
				anyStart := p.StartField
				ourStart := pID == s.CurrentPlayer

				// 路径是否经过该起点格，按前进/后退与是否绕环分四种情况
				var crossed bool
				switch {
				case moveValue > 0 && marblePos.Index < endIndex:
					crossed = marblePos.Index <= anyStart && endIndex >= anyStart
				case moveValue > 0 && marblePos.Index > endIndex:
					crossed = anyStart >= marblePos.Index || anyStart <= endIndex
				case moveValue < 0 && marblePos.Index > endIndex:
					crossed = endIndex <= anyStart && anyStart <= marblePos.Index
				case moveValue < 0 && marblePos.Index < endIndex:
					crossed = anyStart <= marblePos.Index || anyStart >= endIndex
				}
				if !crossed {
					continue
				}
				if p.IsStartBlocked() {
					// 经过被封锁的起点格，整个走法作废
					return nil
				}
				if ourStart && endIndex != startFieldIdx {
					crossesOurStart = true
				}
			}

			// 经过己方起点时可以改道进入终点区
			if crossesOurStart {
				var finishIndex int
				switch {
				case moveValue > 0:
					finishIndex = endIndex - startFieldIdx - 1
				case startFieldIdx == 0:
					finishIndex = TrackSize - endIndex - 1
				default:
					finishIndex = startFieldIdx - endIndex - 1
				}
				if finishIndex >= 0 && finishIndex < FinishSize {
					allowed := true
					for idx := 0; idx <= finishIndex; idx++ {
						occ, occupied := s.FieldOccupant(Position{Zone: ZoneFinish, Index: idx, PlayerID: s.CurrentPlayer})
						if occupied && occ.PlayerID == s.CurrentPlayer {
							allowed = false
							break
						}
					}
					if allowed {
						ends = append(ends, Position{Zone: ZoneFinish, Index: finishIndex, PlayerID: s.CurrentPlayer})
					}
				}
			}
			ends = append(ends, Position{Zone: ZoneTrack, Index: endIndex, PlayerID: s.CurrentPlayer})
		}
	}

	// 每次走法最多产生终点/赛道两个落点
	if len(ends) == 0 || len(ends) > 2 {
		log.Error().Int("player", s.CurrentPlayer).Int("value", moveValue).
			Int("endpoints", len(ends)).Msg("落点数量异常，走法作废")
		return nil
	}

	mIdx, ok := me.MarbleIndexAt(marblePos)
	if !ok {
		return nil
	}
	mover := MarbleID{PlayerID: s.CurrentPlayer, MarbleIdx: mIdx}

	var result []Movement
	for _, end := range ends {
		occ, occupied := s.FieldOccupant(end)
		if !occupied {
			result = append(result, Movement{Marble: mover, To: end})
			continue
		}
		if occ.PlayerID == s.CurrentPlayer {
			// 己方弹珠占位，放弃该落点
			continue
		}
		// 对手弹珠被送回家
		result = append(result, Movement{Marble: mover, To: end})
		result = append(result, Movement{
			Marble: occ,
			To:     Position{Zone: ZoneHome, Index: occ.MarbleIdx, PlayerID: occ.PlayerID},
		})
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// checkSwapMove 计算换位走法：与任意一颗未封锁起点的赛道对手弹珠互换
// 返回的位移成对出现：己方弹珠到对手位置、对手弹珠到己方位置
func (s *State) checkSwapMove(marblePos Position) []Movement {
	me := s.Players[s.CurrentPlayer]
	mIdx, ok := me.MarbleIndexAt(marblePos)
	if !ok {
		return nil
	}
	mover := MarbleID{PlayerID: s.CurrentPlayer, MarbleIdx: mIdx}

	// 封锁起点的弹珠不能被换走
	if me.StartBlocked != nil && *me.StartBlocked == mIdx {
		return nil
	}

	var swaps []Movement
	for pID := 0; pID < MaxPlayers; pID++ {
		if pID == s.CurrentPlayer {
			continue
		}
		opp := s.Players[pID]
		if opp == nil {
			continue
		}
		for oppIdx := range opp.Marbles {
			oppPos := opp.Marbles[oppIdx]
			if oppPos.Zone != ZoneTrack {
				continue
			}
			if opp.StartBlocked != nil && *opp.StartBlocked == oppIdx {
				continue
			}
			swaps = append(swaps,
				Movement{Marble: mover, To: oppPos},
				Movement{Marble: MarbleID{PlayerID: pID, MarbleIdx: oppIdx}, To: marblePos},
			)
		}
	}
	if len(swaps) == 0 {
		return nil
	}
	return swaps
}

// checkSplitMove 计算拆分行进的全部中途落点
// 从原位出发逐步走 1..moveValue 步，每一步记录可停留的赛道落点与
// 可进入的终点落点，沿途经过的对手弹珠记入送回家名单
// 返回的位移按"己方落点 + 随行的对手回家位移"分组平铺
func (s *State) checkSplitMove(marblePos Position, moveValue int) []Movement {
	me := s.Players[s.CurrentPlayer]
	mIdx, ok := me.MarbleIndexAt(marblePos)
	if !ok {
		return nil
	}
	mover := MarbleID{PlayerID: s.CurrentPlayer, MarbleIdx: mIdx}

	var options []Movement
	var sentHome []MarbleID

	ourStartIdx := me.StartField
	ourBlocked := me.StartBlocked
	crossesOurStart := false

	for mvPart := 1; mvPart <= moveValue; mvPart++ {
		// 终点区内部行进
		if marblePos.Zone == ZoneFinish {
			target := marblePos.Index + mvPart
			if target > FinishSize-1 {
				break
			}
			if _, occupied := s.FieldOccupant(Position{Zone: ZoneFinish, Index: target, PlayerID: s.CurrentPlayer}); occupied {
				break
			}
			options = append(options, Movement{Marble: mover, To: Position{Zone: ZoneFinish, Index: target, PlayerID: s.CurrentPlayer}})
			continue
		}

		// 赛道行进
		endIndex := wrapTrack(marblePos.Index + mvPart)

		if !crossesOurStart {
			if marblePos.Index < endIndex {
				crossesOurStart = marblePos.Index <= ourStartIdx && endIndex > ourStartIdx
			} else if marblePos.Index > endIndex {
				crossesOurStart = ourStartIdx >= marblePos.Index || ourStartIdx < endIndex
			}
		}

		occ, occupied := s.FieldOccupant(Position{Zone: ZoneTrack, Index: endIndex, PlayerID: s.CurrentPlayer})

		if occupied && occ.PlayerID == s.CurrentPlayer {
			if ourBlocked != nil && *ourBlocked == occ.MarbleIdx {
				// 封锁起点的己方弹珠无法越过
				break
			}
		}
		if occupied && occ.PlayerID != s.CurrentPlayer {
			opp := s.Players[occ.PlayerID]
			if opp.StartBlocked != nil && *opp.StartBlocked == occ.MarbleIdx {
				// 封锁起点的对手弹珠既不能送回家也不能越过
				break
			}
			sentHome = append(sentHome, occ)
		}

		// 经过己方起点后每一步都检查能否改道进入终点区
		enterFinish := false
		finishIndex := 0
		if crossesOurStart {
			finishIndex = endIndex - ourStartIdx - 1
			if finishIndex >= 0 && finishIndex < FinishSize {
				enterFinish = true
			}
			if ourBlocked != nil && *ourBlocked == mover.MarbleIdx {
				enterFinish = false
			}
		}
		if enterFinish {
			if _, occupied := s.FieldOccupant(Position{Zone: ZoneFinish, Index: finishIndex, PlayerID: s.CurrentPlayer}); !occupied {
				options = append(options, Movement{Marble: mover, To: Position{Zone: ZoneFinish, Index: finishIndex, PlayerID: s.CurrentPlayer}})
				for _, oppMarble := range sentHome {
					// 位于起点之后的对手弹珠不在终点进入路线上
					if s.Players[oppMarble.PlayerID].Marbles[oppMarble.MarbleIdx].Index > ourStartIdx {
						continue
					}
					options = append(options, Movement{
						Marble: oppMarble,
						To:     Position{Zone: ZoneHome, Index: oppMarble.MarbleIdx, PlayerID: oppMarble.PlayerID},
					})
				}
			}
		}

		if occupied && occ.PlayerID == s.CurrentPlayer {
			// 己方弹珠占位的赛道格不能停留，但可以继续往前数
			continue
		}
		options = append(options, Movement{Marble: mover, To: Position{Zone: ZoneTrack, Index: endIndex, PlayerID: s.CurrentPlayer}})
		for _, oppMarble := range sentHome {
			options = append(options, Movement{
				Marble: oppMarble,
				To:     Position{Zone: ZoneHome, Index: oppMarble.MarbleIdx, PlayerID: oppMarble.PlayerID},
			})
		}
	}

	if len(options) == 0 {
		return nil
	}
	return options
}

// validateMove 按弹珠当前区域与走子规则分派具体校验
// splitCall 为拆分行进专用流程，常规计算会忽略 Split 规则
func (s *State) validateMove(marblePos Position, rule card.MoveRule, splitCall bool) []Movement {
	switch marblePos.Zone {
	case ZoneHome:
		if rule.Type == card.Start {
			return s.checkStartMove(marblePos)
		}
		return nil
	case ZoneFinish:
		switch rule.Type {
		case card.Simple:
			return s.checkSimpleMove(marblePos, rule.Value)
		case card.Split:
			if splitCall {
				return s.checkSplitMove(marblePos, rule.Value)
			}
		}
		return nil
	case ZoneTrack:
		switch rule.Type {
		case card.Simple:
			return s.checkSimpleMove(marblePos, rule.Value)
		case card.Split:
			if splitCall {
				return s.checkSplitMove(marblePos, rule.Value)
			}
		case card.Swap:
			return s.checkSwapMove(marblePos)
		}
		return nil
	}
	log.Error().Int("zone", int(marblePos.Zone)).Msg("未知的棋盘区域")
	return nil
}

// SpecialCall 王牌选点或拆分续走时传入的合成牌参数
// 合成牌代表所选点数（或剩余步数），实际扣掉的是原来那张牌
type SpecialCall struct {
	SyntheticCardID int // 合成牌 ID
	HandIndex       int // 实际出的牌在手中的下标
	CardID          int // 实际出的牌 ID
}

// ComputeLegalMoves 枚举当前玩家的全部合法走法
// special 非空时只对合成牌求值；splitCall 启用拆分行进流程
// 王牌与 7 点在常规枚举下不产生走法，由弃牌预判单独兜底
func (s *State) ComputeLegalMoves(special *SpecialCall, splitCall bool) []Move {
	me := s.Players[s.CurrentPlayer]
	marbles := me.Marbles

	wildCall := false
	var hand []int
	if special != nil {
		hand = []int{special.SyntheticCardID}
		if card.RankOf(special.CardID) == card.Joker {
			wildCall = true
		}
	} else {
		hand = me.Hand
	}

	var legal []Move
	for handIndex, cardID := range hand {
		c := s.Deck[cardID]

		toSetHandIndex, toSetCardID := handIndex, cardID
		if wildCall || splitCall {
			toSetHandIndex = special.HandIndex
			toSetCardID = special.CardID
		}

		for _, rule := range c.MoveRules {
			effType, effValue := rule.Type, rule.Value
			if splitCall {
				// 拆分续走只接受 1..7 步的行进规则，并一律按拆分流程求值
				if (rule.Type == card.Simple && (rule.Value > 7 || rule.Value < 1)) ||
					(rule.Type != card.Simple && rule.Type != card.Split) {
					continue
				}
				if rule.Type == card.Simple {
					effType = card.Split
				}
			}

			for mIdx := 0; mIdx < MarblesPerPlayer; mIdx++ {
				movements := s.validateMove(marbles[mIdx], card.MoveRule{Type: effType, Value: effValue}, splitCall)
				if movements == nil {
					continue
				}

				switch effType {
				case card.Start, card.Simple:
					// 终点/赛道分叉拆成两个独立选项，赛道选项可能带一条俘获位移
					if len(movements) >= 2 &&
						movements[0].Marble == movements[1].Marble &&
						movements[0].To.Zone != movements[1].To.Zone {
						legal = append(legal, Move{
							CardID: toSetCardID, HandIndex: toSetHandIndex,
							Movements: []Movement{movements[0]},
						})
						trackOption := []Movement{movements[1]}
						if len(movements) >= 3 &&
							movements[2].Marble.PlayerID != s.CurrentPlayer &&
							movements[2].To.Zone == ZoneHome {
							trackOption = append(trackOption, movements[2])
						}
						legal = append(legal, Move{CardID: toSetCardID, HandIndex: toSetHandIndex, Movements: trackOption})
					} else {
						legal = append(legal, Move{CardID: toSetCardID, HandIndex: toSetHandIndex, Movements: movements})
					}
				case card.Swap:
					// 每两条位移构成一个换位选项
					for i := 0; i+1 < len(movements); i += 2 {
						legal = append(legal, Move{
							CardID: toSetCardID, HandIndex: toSetHandIndex,
							Movements: []Movement{movements[i], movements[i+1]},
						})
					}
				case card.Split:
					// 以每条己方位移为界拆分选项，其后的对手位移归入同一选项
					for i := 0; i < len(movements); {
						option := []Movement{movements[i]}
						i++
						for i < len(movements) && movements[i].Marble.PlayerID != s.CurrentPlayer {
							option = append(option, movements[i])
							i++
						}
						legal = append(legal, Move{CardID: toSetCardID, HandIndex: toSetHandIndex, Movements: option})
					}
				}

				// 出家走法对每颗家区弹珠都等价，直接复制结果
				if effType == card.Start {
					for other := mIdx + 1; other < MarblesPerPlayer; other++ {
						if marbles[other].Zone != ZoneHome {
							continue
						}
						mv := movements[0]
						mv.Marble.MarbleIdx = other
						legal = append(legal, Move{
							CardID: toSetCardID, HandIndex: toSetHandIndex,
							Movements: []Movement{mv},
						})
					}
					break
				}
				// 换位走法对每颗未封锁的赛道弹珠都等价，复制并替换双方落点
				if effType == card.Swap {
					for other := mIdx + 1; other < MarblesPerPlayer; other++ {
						if marbles[other].Zone != ZoneTrack {
							continue
						}
						if me.StartBlocked != nil && *me.StartBlocked == other {
							continue
						}
						for i := 0; i+1 < len(movements); i += 2 {
							mv := movements[i]
							mv.Marble.MarbleIdx = other
							oppMv := movements[i+1]
							oppMv.To = marbles[other]
							legal = append(legal, Move{
								CardID: toSetCardID, HandIndex: toSetHandIndex,
								Movements: []Movement{mv, oppMv},
							})
						}
					}
					break
				}
			}
		}
	}
	return legal
}
