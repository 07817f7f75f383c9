package apperrors

import (
	"github.com/hounds-game/hounds/internal/protocol"
)

// GameError 游戏错误（服务端边界统一使用）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrGameFull    = &GameError{Code: protocol.ErrCodeGameFull, Message: "房间已满"}
	ErrNameTaken   = &GameError{Code: protocol.ErrCodeNameTaken, Message: "名字已被占用"}
	ErrGameStarted = &GameError{Code: protocol.ErrCodeGameStarted, Message: "游戏已开始"}
	ErrNotAllReady = &GameError{Code: protocol.ErrCodeNotAllReady, Message: "还有玩家未准备"}
	ErrTooFew      = &GameError{Code: protocol.ErrCodeTooFew, Message: "玩家人数不足"}
	ErrGameNotOn   = &GameError{Code: protocol.ErrCodeGameNotOn, Message: "游戏尚未开始"}
	ErrNotYourTurn = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrInvalidMove = &GameError{Code: protocol.ErrCodeInvalidMove, Message: "无效的走法"}
	ErrInvalidFold = &GameError{Code: protocol.ErrCodeInvalidFold, Message: "仍有合法走法，不能弃牌"}
	ErrInvalidMsg  = &GameError{Code: protocol.ErrCodeInvalidMsg, Message: "无效的消息格式"}
)
