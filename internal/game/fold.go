package game

import (
	"slices"

	"github.com/hounds-game/hounds/internal/game/card"
)

// blockedStartFields 收集当前被封锁的起点格下标
func (s *State) blockedStartFields() []int {
	var blocked []int
	for _, p := range s.Players {
		if p != nil && p.IsStartBlocked() {
			blocked = append(blocked, p.StartField)
		}
	}
	return blocked
}

// ValidWildFold 判断持有王牌时弃牌是否成立
// 王牌可以当任意点数出，所以只要还有任何一颗弹珠动得了就不能弃牌：
// 家区有弹珠、存在换位目标、或者任何弹珠面前一格是空位，都算动得了
func (s *State) ValidWildFold() bool {
	me := s.Players[s.CurrentPlayer]
	if !me.HasJoker() {
		return true
	}

	blockedStarts := s.blockedStartFields()

	for _, marblePos := range me.Marbles {
		if marblePos.Zone == ZoneHome {
			// 家区弹珠总能出家，或者起点上有可走的弹珠
			return false
		}
		if marblePos.Zone == ZoneTrack {
			if s.checkSwapMove(marblePos) != nil {
				return false
			}
		}
		if marblePos.Zone == ZoneFinish && marblePos.Index == FinishSize-1 {
			// 终点最深处无路可走
			continue
		}

		nextIndex := marblePos.Index + 1
		if marblePos.Zone == ZoneTrack && marblePos.Index == TrackSize-1 {
			nextIndex = 0
		}
		nextPos := Position{Zone: marblePos.Zone, Index: nextIndex, PlayerID: s.CurrentPlayer}

		occ, occupied := s.FieldOccupant(nextPos)
		if !occupied {
			return false
		}
		if occ.PlayerID == s.CurrentPlayer {
			continue
		}
		if marblePos.Zone == ZoneTrack && slices.Contains(blockedStarts, nextIndex) {
			continue
		}
		return false
	}
	return true
}

// ValidSplitFold 判断持有 7 点牌时弃牌是否成立
// 对所有可走的弹珠累计面前的可用步数，凑满 7 步就必须出牌
// 被己方弹珠占住的格子先计入，一旦撞上硬阻挡再扣回
func (s *State) ValidSplitFold() bool {
	me := s.Players[s.CurrentPlayer]
	if !me.HasRank(card.Seven) {
		return true
	}

	blockedStarts := s.blockedStartFields()

	unblocked := 0
	for _, marblePos := range me.Marbles {
		if marblePos.Zone == ZoneHome {
			continue
		}
		if marblePos.Zone == ZoneFinish && marblePos.Index == FinishSize-1 {
			continue
		}

		nextIndex := marblePos.Index
		ownSkipped := 0
		for step := 0; step < 8; step++ {
			if marblePos.Zone == ZoneTrack && nextIndex == TrackSize-1 {
				nextIndex = 0
			} else {
				nextIndex++
			}
			if marblePos.Zone == ZoneFinish && nextIndex == FinishSize {
				unblocked -= ownSkipped
				break
			}

			nextPos := Position{Zone: marblePos.Zone, Index: nextIndex, PlayerID: s.CurrentPlayer}

			if nextPos.Zone == ZoneTrack && slices.Contains(blockedStarts, nextPos.Index) {
				unblocked -= ownSkipped
				break
			}

			if occ, occupied := s.FieldOccupant(nextPos); occupied && occ.PlayerID == s.CurrentPlayer {
				ownSkipped++
			}

			unblocked++
			if unblocked >= 7 {
				return false
			}
		}
		if unblocked >= 7 {
			return false
		}
	}
	return true
}

// HasSpecialMoves 王牌与拆分走法是否还有出路
func (s *State) HasSpecialMoves() (wild, split bool) {
	return !s.ValidWildFold(), !s.ValidSplitFold()
}

// HasLegalMoves 当前玩家是否存在任何合法走法
// 常规枚举不覆盖王牌与 7 点，由两个弃牌预判补足
func (s *State) HasLegalMoves() bool {
	if len(s.ComputeLegalMoves(nil, false)) > 0 {
		return true
	}
	wild, split := s.HasSpecialMoves()
	return wild || split
}
