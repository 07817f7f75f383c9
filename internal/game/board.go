package game

import "fmt"

// Zone 弹珠所在的棋盘区域
type Zone int

const (
	ZoneHome   Zone = iota // 家区，每人 4 格
	ZoneTrack              // 环形主赛道，共 64 格
	ZoneFinish             // 终点区，每人 4 格
)

const (
	// TrackSize 环形赛道格数
	TrackSize = 64
	// MarblesPerPlayer 每位玩家的弹珠数量
	MarblesPerPlayer = 4
	// FinishSize 每位玩家终点区格数
	FinishSize = 4
	// MaxPlayers 座位数上限
	MaxPlayers = 4
	// StartSpacing 相邻玩家起点间距：startField = 16 * playerID
	StartSpacing = 16
)

// Position 表示棋盘上的一个位置
// 赛道格是公共的，家区与终点区按 PlayerID 区分归属
type Position struct {
	Zone     Zone `json:"zone"`
	Index    int  `json:"index"`
	PlayerID int  `json:"playerID"`
}

// NewPosition 构造位置并校验取值范围
func NewPosition(zone Zone, index, playerID int) (Position, error) {
	if playerID < 0 || playerID >= MaxPlayers {
		return Position{}, fmt.Errorf("invalid player id %d", playerID)
	}
	switch zone {
	case ZoneTrack:
		if index < 0 || index >= TrackSize {
			return Position{}, fmt.Errorf("track index %d out of range", index)
		}
	case ZoneHome, ZoneFinish:
		if index < 0 || index >= MarblesPerPlayer {
			return Position{}, fmt.Errorf("%v index %d out of range", zone, index)
		}
	default:
		return Position{}, fmt.Errorf("invalid zone %d", zone)
	}
	return Position{Zone: zone, Index: index, PlayerID: playerID}, nil
}

// Equals 位置相等判断
// 赛道格是公共的，比较时忽略归属；家区与终点区要求归属一致
func (p Position) Equals(o Position) bool {
	return p.Zone == o.Zone && p.Index == o.Index &&
		(p.PlayerID == o.PlayerID || p.Zone == ZoneTrack)
}

// InHome 是否位于家区
func (p Position) InHome() bool { return p.Zone == ZoneHome }

// InFinish 是否位于终点区
func (p Position) InFinish() bool { return p.Zone == ZoneFinish }

func (z Zone) String() string {
	switch z {
	case ZoneHome:
		return "home"
	case ZoneTrack:
		return "track"
	case ZoneFinish:
		return "finish"
	}
	return fmt.Sprintf("zone(%d)", int(z))
}

// wrapTrack 环形赛道下标归一化，支持负数步进
func wrapTrack(i int) int {
	return ((i % TrackSize) + TrackSize) % TrackSize
}

// MarbleID 标识某位玩家的某颗弹珠
type MarbleID struct {
	PlayerID  int `json:"playerID"`
	MarbleIdx int `json:"marbleIdx"`
}

// Movement 一颗弹珠的位移：弹珠与目标位置
type Movement struct {
	Marble MarbleID `json:"marble"`
	To     Position `json:"to"`
}

// Move 一次出牌：所用的牌、牌在手中的下标、引发的全部位移
// Movements[0] 总是主动移动的弹珠，其后是被动受影响的弹珠
// （被交换的对手弹珠、被送回家的对手弹珠）
type Move struct {
	CardID    int        `json:"cardID"`
	HandIndex int        `json:"handIndex"`
	Movements []Movement `json:"movements"`
}

// SplitSteps 计算拆分行进中从 from 走到 to 所消耗的步数
// startField 为行进玩家的起点格，用于赛道进入终点区的折算
func SplitSteps(from, to Position, startField int) int {
	switch {
	case from.Zone == ZoneFinish && to.Zone == ZoneFinish:
		return to.Index - from.Index
	case from.Zone == ZoneTrack && to.Zone == ZoneFinish:
		// 先走到起点格，再迈入终点区
		distToStart := wrapTrack(startField - from.Index)
		return distToStart + to.Index + 1
	default:
		return wrapTrack(to.Index - from.Index)
	}
}
