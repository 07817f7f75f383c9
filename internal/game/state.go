package game

import (
	"math/rand/v2"

	"github.com/hounds-game/hounds/internal/game/card"
)

// State 保存一局游戏的完整状态
// 服务端持有权威副本，客户端通过广播消息持有只读副本
type State struct {
	Deck             []card.Card         `json:"deck"`
	Players          [MaxPlayers]*Player `json:"players"`
	CurrentPlayer    int                 `json:"currentPlayer"`
	RoundStartPlayer int                 `json:"roundStartPlayer"`
	RoundCardCount   int                 `json:"roundCardCount"`
	LastPlayedCard   *int                `json:"lastPlayedCard"`
	LeaderBoard      [MaxPlayers]*int    `json:"leaderBoard"`
}

// NewState 按座位名单创建新棋局，空字符串表示空座位
// 0 号座位先手，首轮发 6 张牌
func NewState(names [MaxPlayers]string) *State {
	s := &State{
		Deck:           card.NewDeck(),
		RoundCardCount: 6,
	}
	for i, name := range names {
		if name != "" {
			s.Players[i] = NewPlayer(i, name)
		}
	}
	return s
}

// IsMyTurn 是否轮到指定玩家
func (s *State) IsMyTurn(playerID int) bool {
	return s.CurrentPlayer == playerID
}

// UpdateCurrentPlayer 将当前玩家推进到下一位本轮仍活跃的玩家
// 无人活跃时保持不变，避免死循环
func (s *State) UpdateCurrentPlayer() {
	next := (s.CurrentPlayer + 1) % MaxPlayers
	for i := 0; i < MaxPlayers; i++ {
		if p := s.Players[next]; p != nil && p.ActiveInRound {
			s.CurrentPlayer = next
			return
		}
		next = (next + 1) % MaxPlayers
	}
}

// UpdateRoundStartPlayer 将先手推进到下一位仍在局中的玩家
func (s *State) UpdateRoundStartPlayer() {
	next := (s.RoundStartPlayer + 1) % MaxPlayers
	for i := 0; i < MaxPlayers; i++ {
		if p := s.Players[next]; p != nil && p.ActiveInGame {
			s.RoundStartPlayer = next
			return
		}
		next = (next + 1) % MaxPlayers
	}
}

// UpdateRoundCardCount 发牌数按 6,5,4,3,2 递减后回到 6
func (s *State) UpdateRoundCardCount() {
	if s.RoundCardCount > 2 {
		s.RoundCardCount--
	} else {
		s.RoundCardCount = 6
	}
}

// AddLeaderBoardFinished 记录完赛名次：取当前最大名次 +1
func (s *State) AddLeaderBoardFinished(playerID int) {
	maxRank := 0
	for _, r := range s.LeaderBoard {
		if r != nil && *r > maxRank {
			maxRank = *r
		}
	}
	rank := maxRank + 1
	s.LeaderBoard[playerID] = &rank
}

// AddLeaderBoardUnfinished 记录未完赛的幸存者，名次 0
func (s *State) AddLeaderBoardUnfinished(playerID int) {
	rank := 0
	s.LeaderBoard[playerID] = &rank
}

// AddLeaderBoardDisconnected 记录掉线玩家，名次 -1
// 已有名次的玩家（完赛后掉线）保持原名次
func (s *State) AddLeaderBoardDisconnected(playerID int) {
	if s.LeaderBoard[playerID] == nil {
		rank := -1
		s.LeaderBoard[playerID] = &rank
	}
}

// ActiveInRoundCount 本轮仍活跃的玩家数
func (s *State) ActiveInRoundCount() int {
	count := 0
	for _, p := range s.Players {
		if p != nil && p.ActiveInRound {
			count++
		}
	}
	return count
}

// ActiveInGameCount 局中仍活跃的玩家数
func (s *State) ActiveInGameCount() int {
	count := 0
	for _, p := range s.Players {
		if p != nil && p.ActiveInGame {
			count++
		}
	}
	return count
}

// RoundEnded 所有玩家都打完或弃掉手牌则一轮结束
func (s *State) RoundEnded() bool {
	return s.ActiveInRoundCount() == 0
}

// GameEnded 局中活跃玩家不多于一位则棋局结束
func (s *State) GameEnded() bool {
	return s.ActiveInGameCount() <= 1
}

// ActivePlayerIndices 局中活跃玩家的座位号
func (s *State) ActivePlayerIndices() []int {
	indices := []int{}
	for i, p := range s.Players {
		if p != nil && p.ActiveInGame {
			indices = append(indices, i)
		}
	}
	return indices
}

// DealCards 洗牌并按本轮发牌数给每位活跃玩家发牌
// 返回座位号到手牌的映射，手牌已排序；不修改状态本身
func (s *State) DealCards() map[int][]int {
	ids := rand.Perm(card.DeckSize)

	dealt := make(map[int][]int)
	next := 0
	for _, playerID := range s.ActivePlayerIndices() {
		hand := append([]int(nil), ids[next:next+s.RoundCardCount]...)
		card.SortHand(hand)
		dealt[playerID] = hand
		next += s.RoundCardCount
	}
	return dealt
}

// DisconnectPlayer 处理玩家掉线
// 掉线者永久出局：清空手牌，赛道上的弹珠回家，记入排行榜
// 若掉线导致棋局结束，幸存者以未完赛身份收尾
func (s *State) DisconnectPlayer(playerID int) {
	if p := s.Players[playerID]; p != nil {
		if s.CurrentPlayer == playerID {
			s.UpdateCurrentPlayer()
		}
		p.ActiveInGame = false
		p.ActiveInRound = false
		p.Hand = []int{}
		p.ResetStartBlocked()
		for mIdx := range p.Marbles {
			if p.Marbles[mIdx].Zone != ZoneTrack {
				continue
			}
			p.Marbles[mIdx] = Position{Zone: ZoneHome, Index: mIdx, PlayerID: playerID}
		}
		s.AddLeaderBoardDisconnected(playerID)
	}

	if s.GameEnded() {
		if remaining := s.ActivePlayerIndices(); len(remaining) == 1 {
			s.AddLeaderBoardUnfinished(remaining[0])
		}
	}
}

// Clone 深拷贝整个棋局状态，用于客户端的拆分行进预演
func (s *State) Clone() *State {
	cp := &State{
		Deck:             append([]card.Card(nil), s.Deck...),
		CurrentPlayer:    s.CurrentPlayer,
		RoundStartPlayer: s.RoundStartPlayer,
		RoundCardCount:   s.RoundCardCount,
	}
	if s.LastPlayedCard != nil {
		id := *s.LastPlayedCard
		cp.LastPlayedCard = &id
	}
	for i, p := range s.Players {
		if p != nil {
			cp.Players[i] = p.Clone()
		}
	}
	for i, r := range s.LeaderBoard {
		if r != nil {
			rank := *r
			cp.LeaderBoard[i] = &rank
		}
	}
	return cp
}
