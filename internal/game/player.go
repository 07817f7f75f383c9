package game

import (
	"github.com/hounds-game/hounds/internal/game/card"
)

// Player 一个座位上的玩家及其全部棋局属性
// 手牌不参与序列化：手牌只通过私发消息同步，广播状态不泄露
type Player struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	StartField int    `json:"startField"`

	// StartBlocked 记录封锁起点格的弹珠下标
	// 弹珠刚出家落在起点时封锁起点，该弹珠离开后解除
	StartBlocked  *int `json:"startBlocked"`
	ActiveInRound bool `json:"activeInRound"`
	ActiveInGame  bool `json:"activeInGame"`

	Marbles [MarblesPerPlayer]Position `json:"marbles"`
	Hand    []int                      `json:"-"`
}

// NewPlayer 创建玩家：弹珠全部在家，回合与棋局均为活跃
func NewPlayer(id int, name string) *Player {
	p := &Player{
		ID:            id,
		Name:          name,
		StartField:    StartSpacing * id,
		ActiveInRound: true,
		ActiveInGame:  true,
		Hand:          []int{},
	}
	for i := range p.Marbles {
		p.Marbles[i] = Position{Zone: ZoneHome, Index: i, PlayerID: id}
	}
	return p
}

// IsStartBlocked 起点格当前是否被封锁
func (p *Player) IsStartBlocked() bool {
	return p.StartBlocked != nil
}

// SetStartBlocked 封锁起点格
func (p *Player) SetStartBlocked(marbleIdx int) {
	idx := marbleIdx
	p.StartBlocked = &idx
}

// ResetStartBlocked 解除起点封锁
func (p *Player) ResetStartBlocked() {
	p.StartBlocked = nil
}

// MarbleIndexAt 按位置查找己方弹珠下标
func (p *Player) MarbleIndexAt(pos Position) (int, bool) {
	for i := range p.Marbles {
		if p.Marbles[i].Equals(pos) {
			return i, true
		}
	}
	return 0, false
}

// HasJoker 手中是否持有王牌
func (p *Player) HasJoker() bool {
	for _, id := range p.Hand {
		if card.IsJokerID(id) {
			return true
		}
	}
	return false
}

// HasRank 手中是否持有指定点数的常规牌
func (p *Player) HasRank(r card.Rank) bool {
	for _, id := range p.Hand {
		if !card.IsJokerID(id) && card.RankOf(id) == r {
			return true
		}
	}
	return false
}

// PopCard 从手牌中取出指定下标的牌
func (p *Player) PopCard(handIndex int) (int, bool) {
	if handIndex < 0 || handIndex >= len(p.Hand) {
		return 0, false
	}
	id := p.Hand[handIndex]
	p.Hand = append(p.Hand[:handIndex], p.Hand[handIndex+1:]...)
	return id, true
}

// Finished 四颗弹珠是否全部到达终点区
func (p *Player) Finished() bool {
	for i := range p.Marbles {
		if !p.Marbles[i].InFinish() {
			return false
		}
	}
	return true
}

// Clone 深拷贝玩家
func (p *Player) Clone() *Player {
	cp := *p
	if p.StartBlocked != nil {
		idx := *p.StartBlocked
		cp.StartBlocked = &idx
	}
	cp.Hand = append([]int(nil), p.Hand...)
	return &cp
}
