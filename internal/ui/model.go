package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/remi-game/remi/internal/game"
	"github.com/remi-game/remi/internal/peer"
)

// position 光标/移动源的槽位定位
type position struct {
	row game.RowName
	idx int
}

// Model 对局界面：持有 peer 和最近一次快照，所有按键动作都走 peer，
// 界面永远渲染最新收到的快照
type Model struct {
	peer   *peer.Peer
	states <-chan *game.State

	state  *game.State
	width  int
	height int

	cursor   position
	moveFrom *position // 待完成的移动的源槽位

	confirmEndTurn bool // 未弃牌结束回合的确认框
	errText        string
	quitting       bool
}

// stateMsg 新快照到达
type stateMsg struct {
	state *game.State
}

// actionErrMsg 本地动作被拒
type actionErrMsg struct {
	err error
}

// New 创建界面模型。states 由 peer 的 OnState 回调喂入。
func New(p *peer.Peer, states <-chan *game.State) Model {
	return Model{
		peer:   p,
		states: states,
		state:  p.State(),
		cursor: position{row: game.RowHand},
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForState()
}

// waitForState 阻塞等待下一份快照
func (m Model) waitForState() tea.Cmd {
	return func() tea.Msg {
		st, ok := <-m.states
		if !ok {
			return tea.Quit()
		}
		return stateMsg{state: st}
	}
}

// action 把 peer 动作包成命令；快照更新经 OnState 回流，
// 这里只关心拒绝原因
func (m Model) action(fn func(context.Context) (*game.State, error)) tea.Cmd {
	return func() tea.Msg {
		if _, err := fn(context.Background()); err != nil {
			return actionErrMsg{err: err}
		}
		return nil
	}
}

func (m Model) self() *game.PlayerBoard {
	if m.state == nil {
		return nil
	}
	return m.state.Player(m.peer.ID())
}

func (m Model) isMyTurn() bool {
	return m.state != nil && m.state.ActivePlayerID == m.peer.ID()
}

// isApprover 自己是否当前将牌请求的审批人
func (m Model) isApprover() bool {
	return m.state != nil &&
		m.state.PendingTrumpRequest.Pending() &&
		m.state.PendingTrumpRequest.ApproverID == m.peer.ID()
}
