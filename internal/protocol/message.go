package protocol

import "encoding/json"

// Message 基础消息结构，所有消息按行分隔的 JSON 传输
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgConnect   MessageType = "connect"    // 入座并报名
	MsgReady     MessageType = "ready"      // 准备就绪
	MsgStartGame MessageType = "start_game" // 请求开局
	MsgPlayCard  MessageType = "play_card"  // 出牌
	MsgSkipTurn  MessageType = "skip_turn"  // 弃牌跳过回合
)

// 服务端 → 客户端 消息类型
const (
	// 请求响应
	MsgConnectResp   MessageType = "connect_resp"    // 入座结果
	MsgReadyResp     MessageType = "ready_resp"      // 准备结果
	MsgStartGameResp MessageType = "start_game_resp" // 开局结果
	MsgPlayCardResp  MessageType = "play_card_resp"  // 出牌结果
	MsgSkipTurnResp  MessageType = "skip_turn_resp"  // 弃牌结果

	// 广播
	MsgPlayerList         MessageType = "player_list"         // 大厅玩家列表
	MsgGameStart          MessageType = "game_start"          // 游戏开始
	MsgGameState          MessageType = "game_state"          // 棋局状态更新
	MsgPlayerDisconnected MessageType = "player_disconnected" // 玩家掉线
	MsgPlayerFinished     MessageType = "player_finished"     // 玩家完赛
	MsgResults            MessageType = "results"             // 终局排名

	// 私发
	MsgCardsDealt MessageType = "cards_dealt" // 发牌

	// 错误
	MsgError MessageType = "error" // 错误消息
)
