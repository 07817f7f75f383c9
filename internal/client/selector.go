package client

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/hounds-game/hounds/internal/game"
	"github.com/hounds-game/hounds/internal/game/card"
)

// 选择流程中交给 UI 处理的信号
var (
	// ErrRankRequired 选中王牌后需要先选定点数
	ErrRankRequired = errors.New("joker requires a rank choice")
	// ErrNoMoves 当前选择没有任何合法走法
	ErrNoMoves = errors.New("no legal moves for this selection")
	// ErrSplitOverrun 拆分行进累计超过 7 步，整个选择作废
	ErrSplitOverrun = errors.New("split steps exceeded budget")
)

// splitBudget 拆分行进必须恰好走满的总步数
const splitBudget = 7

// Selector 把"选牌、选子、选落点"的点击序列组装成一个完整走法
// 只在 UI 消费协程中使用，持有的棋局副本不与读协程共享
type Selector struct {
	playerID int
	state    *game.State

	legalMoves []game.Move // 本回合的全部合法走法
	filtered   []game.Move // 按所选牌过滤后的走法
	forMarble  []game.Move // 再按所选弹珠过滤后的走法

	selectedHand   int
	selectedCard   int
	selectedMarble *game.MarbleID

	// 7 点拆分行进的预演现场
	splitting  bool
	splitState *game.State
	built      game.Move
	splitTotal int
}

// NewSelector 创建走法组装器
func NewSelector(playerID int) *Selector {
	return &Selector{playerID: playerID, selectedHand: -1}
}

// SetState 接收新的棋局广播：重置选择并重新枚举合法走法
func (sel *Selector) SetState(state *game.State) {
	sel.state = state
	sel.Clear()
	if state != nil && state.IsMyTurn(sel.playerID) && state.Players[sel.playerID] != nil {
		sel.legalMoves = state.ComputeLegalMoves(nil, false)
	} else {
		sel.legalMoves = nil
	}
}

// SetPlayerID 座位压缩后同步新的座位号
func (sel *Selector) SetPlayerID(id int) {
	sel.playerID = id
}

// MustFold 是否已无任何合法走法，只能弃牌
// 与服务端的弃牌校验走同一套判定，客户端提示与服务端裁决保持一致
func (sel *Selector) MustFold() bool {
	if sel.state == nil || !sel.state.IsMyTurn(sel.playerID) {
		return false
	}
	return !sel.state.HasLegalMoves()
}

// SelectCard 处理手牌点击
// 再次点击已选中的非王牌即取消全部选择；王牌返回 ErrRankRequired，
// 由 UI 弹出点数选择后调用 ChooseRank
func (sel *Selector) SelectCard(handIndex int) error {
	if sel.state == nil || !sel.state.IsMyTurn(sel.playerID) {
		return nil
	}
	me := sel.state.Players[sel.playerID]
	if me == nil || handIndex < 0 || handIndex >= len(me.Hand) {
		return nil
	}

	if handIndex == sel.selectedHand && !card.IsJokerID(sel.selectedCard) {
		sel.Clear()
		return nil
	}

	sel.Clear()
	sel.selectedHand = handIndex
	sel.selectedCard = me.Hand[handIndex]

	if card.IsJokerID(sel.selectedCard) {
		return ErrRankRequired
	}
	if card.RankOf(sel.selectedCard) == card.Seven {
		sel.beginSplit()
		return nil
	}

	for _, mv := range sel.legalMoves {
		if mv.HandIndex == handIndex && mv.CardID == sel.selectedCard {
			sel.filtered = append(sel.filtered, mv)
		}
	}
	return nil
}

// ChooseRank 王牌点数选定后按合成牌重新求值
// 选中 7 点时转入拆分行进流程
func (sel *Selector) ChooseRank(rank card.Rank) error {
	if sel.selectedHand < 0 || !card.IsJokerID(sel.selectedCard) {
		return nil
	}
	if rank < card.Ace || rank > card.King {
		return nil
	}
	if rank == card.Seven {
		sel.beginSplit()
		return nil
	}
	sel.filtered = sel.state.ComputeLegalMoves(sel.specialCall(int(rank)), false)
	return nil
}

// beginSplit 打开拆分行进现场：预演副本、空走法、零累计步数
func (sel *Selector) beginSplit() {
	sel.splitting = true
	sel.splitState = sel.state.Clone()
	sel.built = game.Move{CardID: sel.selectedCard, HandIndex: sel.selectedHand}
	sel.splitTotal = 0
	sel.filtered = sel.splitState.ComputeLegalMoves(sel.specialCall(int(card.Seven)), true)
}

// specialCall 组装合成牌参数：合成牌 ID 即梅花对应点数的牌 ID，
// 实际扣掉的仍是所选的那张牌
func (sel *Selector) specialCall(syntheticID int) *game.SpecialCall {
	return &game.SpecialCall{
		SyntheticCardID: syntheticID,
		HandIndex:       sel.selectedHand,
		CardID:          sel.selectedCard,
	}
}

// SelectPosition 处理棋盘点击
// 未选弹珠时视为选子，已选弹珠时视为选落点；返回非空走法表示组装
// 完成，调用方负责提交并等待服务端裁决
func (sel *Selector) SelectPosition(pos game.Position) (*game.Move, error) {
	if sel.selectedHand < 0 || len(sel.filtered) == 0 {
		return nil, nil
	}
	if sel.selectedMarble == nil {
		return nil, sel.pickMarble(pos)
	}
	return sel.pickDestination(pos)
}

// pickMarble 选子：该弹珠在过滤后没有走法则拒绝，选择状态不推进
func (sel *Selector) pickMarble(pos game.Position) error {
	me := sel.activeState().Players[sel.playerID]
	mIdx, ok := me.MarbleIndexAt(pos)
	if !ok {
		return nil
	}
	marble := game.MarbleID{PlayerID: sel.playerID, MarbleIdx: mIdx}

	var matching []game.Move
	for _, mv := range sel.filtered {
		if mv.Movements[0].Marble == marble {
			matching = append(matching, mv)
		}
	}
	if len(matching) == 0 {
		return ErrNoMoves
	}
	sel.selectedMarble = &marble
	sel.forMarble = matching
	return nil
}

// pickDestination 选落点：常规走法直接完成，拆分行进累计步数
func (sel *Selector) pickDestination(pos game.Position) (*game.Move, error) {
	var chosen *game.Move
	for i := range sel.forMarble {
		if sel.forMarble[i].Movements[0].To.Equals(pos) {
			chosen = &sel.forMarble[i]
			break
		}
	}
	if chosen == nil {
		return nil, ErrNoMoves
	}

	if !sel.splitting {
		move := *chosen
		sel.Clear()
		return &move, nil
	}
	return sel.advanceSplit(*chosen)
}

// advanceSplit 在预演副本上应用一段拆分行进并重新枚举续走
// 累计到 7 步即提交；超过 7 步说明过滤有漏洞，作废整个选择
func (sel *Selector) advanceSplit(segment game.Move) (*game.Move, error) {
	me := sel.splitState.Players[sel.playerID]
	from := me.Marbles[segment.Movements[0].Marble.MarbleIdx]
	steps := game.SplitSteps(from, segment.Movements[0].To, me.StartField)

	sel.splitTotal += steps
	sel.built.Movements = append(sel.built.Movements, segment.Movements...)
	sel.splitState.ApplyPreviewMove(segment)

	switch {
	case sel.splitTotal == splitBudget:
		move := sel.built
		sel.Clear()
		return &move, nil
	case sel.splitTotal > splitBudget:
		log.Error().Int("total", sel.splitTotal).Msg("split total exceeded budget")
		sel.Clear()
		return nil, ErrSplitOverrun
	}

	// 剩余 n 步对应规则值为 n 的合成牌，即点数枚举 n-1
	remaining := splitBudget - sel.splitTotal
	sel.filtered = sel.splitState.ComputeLegalMoves(sel.specialCall(remaining-1), true)
	sel.selectedMarble = nil
	sel.forMarble = nil
	if len(sel.filtered) == 0 {
		// 中途走死，没有任何续走可选
		sel.Clear()
		return nil, ErrNoMoves
	}
	return nil, nil
}

// Selectables 当前过滤下可以选中的己方弹珠位置，用于 UI 高亮
func (sel *Selector) Selectables() []game.Position {
	if sel.selectedMarble != nil {
		return nil
	}
	me := sel.activeState().Players[sel.playerID]
	var out []game.Position
	for _, mv := range sel.filtered {
		pos := me.Marbles[mv.Movements[0].Marble.MarbleIdx]
		dup := false
		for _, seen := range out {
			if seen.Equals(pos) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, pos)
		}
	}
	return out
}

// Destinations 当前选择下可点击的落点，用于 UI 高亮
func (sel *Selector) Destinations() []game.Position {
	source := sel.filtered
	if sel.selectedMarble != nil {
		source = sel.forMarble
	}
	var out []game.Position
	for _, mv := range source {
		to := mv.Movements[0].To
		dup := false
		for _, seen := range out {
			if seen.Equals(to) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, to)
		}
	}
	return out
}

// SelectedHandIndex 当前选中的手牌下标，-1 表示未选
func (sel *Selector) SelectedHandIndex() int {
	return sel.selectedHand
}

// SelectedMarble 当前选中的弹珠
func (sel *Selector) SelectedMarble() *game.MarbleID {
	return sel.selectedMarble
}

// Splitting 是否处于拆分行进流程中
func (sel *Selector) Splitting() bool {
	return sel.splitting
}

// SplitTotal 拆分行进已累计的步数
func (sel *Selector) SplitTotal() int {
	return sel.splitTotal
}

// PreviewState 拆分行进的预演棋局，非拆分流程时返回 nil
func (sel *Selector) PreviewState() *game.State {
	if !sel.splitting {
		return nil
	}
	return sel.splitState
}

// activeState 选子与落点参照的棋局：拆分流程用预演副本
func (sel *Selector) activeState() *game.State {
	if sel.splitting {
		return sel.splitState
	}
	return sel.state
}

// Clear 清空全部选择状态，合法走法缓存保留
func (sel *Selector) Clear() {
	sel.filtered = nil
	sel.forMarble = nil
	sel.selectedHand = -1
	sel.selectedCard = 0
	sel.selectedMarble = nil
	sel.splitting = false
	sel.splitState = nil
	sel.built = game.Move{}
	sel.splitTotal = 0
}
