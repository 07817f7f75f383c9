package client

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/hounds-game/hounds/internal/protocol"
)

// phase 大厅到游戏的消息路由阶段
type phase int

const (
	phaseLobby phase = iota
	phaseTransitioning
	phaseGame
)

// router 按阶段路由服务端消息
// 收到开局广播时在读协程上同步进入 TRANSITIONING，之后的广播全部
// 缓冲；游戏界面就绪后一次性放行，保证棋局状态先于发牌等消息到达
type router struct {
	mu     sync.Mutex
	phase  phase
	buffer []*protocol.Message

	out       chan *protocol.Message
	closeOnce sync.Once
}

func newRouter() *router {
	return &router{
		out: make(chan *protocol.Message, 32),
	}
}

// route 读协程入口：缓冲或投递一条消息
// 开局广播本身立即投递，但投递前就已切换阶段，后续消息不可能抢先
func (r *router) route(msg *protocol.Message) {
	r.mu.Lock()
	if r.phase == phaseTransitioning {
		r.buffer = append(r.buffer, msg)
		r.mu.Unlock()
		log.Debug().Str("type", string(msg.Type)).Msg("buffered message during transition")
		return
	}
	if msg.Type == protocol.MsgGameStart {
		r.phase = phaseTransitioning
	}
	r.mu.Unlock()

	r.out <- msg
}

// completeTransition 消费侧声明就绪，返回重排后的缓冲消息
// 第一条棋局状态更新提到最前：其余缓冲消息的副作用都假设棋局已存在
func (r *router) completeTransition() []*protocol.Message {
	r.mu.Lock()
	buffered := r.buffer
	r.buffer = nil
	r.phase = phaseGame
	r.mu.Unlock()

	var stateMsg *protocol.Message
	ordered := make([]*protocol.Message, 0, len(buffered))
	for _, msg := range buffered {
		if stateMsg == nil && msg.Type == protocol.MsgGameState {
			stateMsg = msg
			continue
		}
		ordered = append(ordered, msg)
	}
	if stateMsg != nil {
		ordered = append([]*protocol.Message{stateMsg}, ordered...)
	} else if len(buffered) > 0 {
		log.Warn().Int("buffered", len(buffered)).Msg("no game state update in transition buffer")
	}
	return ordered
}

// closeOut 连接断开时关闭事件通道
func (r *router) closeOut() {
	r.closeOnce.Do(func() {
		close(r.out)
	})
}
