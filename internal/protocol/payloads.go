package protocol

import "github.com/hounds-game/hounds/internal/game"

// --- 客户端请求 Payloads ---

// ConnectPayload 入座请求
type ConnectPayload struct {
	Name string `json:"name"`
}

// ReadyPayload 准备请求
type ReadyPayload struct {
	PlayerID int `json:"player_id"`
}

// StartGamePayload 开局请求
type StartGamePayload struct {
	PlayerID int `json:"player_id"`
}

// PlayCardPayload 出牌请求
type PlayCardPayload struct {
	PlayerID int       `json:"player_id"`
	Move     game.Move `json:"move"`
}

// SkipTurnPayload 弃牌请求
type SkipTurnPayload struct {
	PlayerID int `json:"player_id"`
}

// --- 服务端响应 Payloads ---

// ConnectRespPayload 入座结果
type ConnectRespPayload struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	PlayerID int    `json:"player_id"`
}

// ActionRespPayload 准备/开局/弃牌的通用结果
type ActionRespPayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PlayCardRespPayload 出牌结果
type PlayCardRespPayload struct {
	HandIndex int    `json:"hand_index"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// --- 广播 Payloads ---

// PlayerListPayload 大厅玩家列表
type PlayerListPayload struct {
	Players []PlayerInfo `json:"players"`
}

// GameStartPayload 游戏开始通知
type GameStartPayload struct {
	NumPlayers int `json:"num_players"`
}

// GameStatePayload 棋局状态更新
type GameStatePayload struct {
	State game.State `json:"state"`
}

// PlayerDisconnectedPayload 玩家掉线通知
type PlayerDisconnectedPayload struct {
	PlayerID int `json:"player_id"`
}

// PlayerFinishedPayload 玩家完赛通知
type PlayerFinishedPayload struct {
	PlayerID int `json:"player_id"`
}

// ResultsPayload 终局排名
// 数组按座位号排列：正数为完赛名次，0 为未完赛幸存者，-1 为掉线
type ResultsPayload struct {
	Rankings [game.MaxPlayers]*int `json:"rankings"`
}

// --- 私发 Payloads ---

// CardsDealtPayload 发牌通知，只发给收牌玩家本人
type CardsDealtPayload struct {
	PlayerID int   `json:"player_id"`
	Cards    []int `json:"cards"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- 通用数据结构 ---

// PlayerInfo 大厅玩家信息
type PlayerInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}
