package protocol

import "errors"

// ErrLineTooLong 单条消息超出长度上限
var ErrLineTooLong = errors.New("message line too long")

// 错误码
const (
	ErrCodeUnknown     = 1000
	ErrCodeInvalidMsg  = 1001
	ErrCodeGameFull    = 2001
	ErrCodeNameTaken   = 2002
	ErrCodeGameStarted = 2003 // 游戏已开始
	ErrCodeNotAllReady = 2004
	ErrCodeTooFew      = 2005 // 人数不足
	ErrCodeGameNotOn   = 3001
	ErrCodeNotYourTurn = 3002
	ErrCodeInvalidMove = 3003
	ErrCodeInvalidFold = 3004
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:     "未知错误",
	ErrCodeInvalidMsg:  "无效的消息格式",
	ErrCodeGameFull:    "房间已满",
	ErrCodeNameTaken:   "名字已被占用",
	ErrCodeGameStarted: "游戏已开始",
	ErrCodeNotAllReady: "还有玩家未准备",
	ErrCodeTooFew:      "玩家人数不足",
	ErrCodeGameNotOn:   "游戏尚未开始",
	ErrCodeNotYourTurn: "还没轮到您",
	ErrCodeInvalidMove: "无效的走法",
	ErrCodeInvalidFold: "仍有合法走法，不能弃牌",
}
