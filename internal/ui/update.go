package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/remi-game/remi/internal/apperrors"
	"github.com/remi-game/remi/internal/game"
	"github.com/remi-game/remi/internal/game/board"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateMsg:
		m.state = msg.state
		// 快照替换可能让确认框失去意义（比如已经轮到别人）
		if !m.isMyTurn() {
			m.confirmEndTurn = false
		}
		return m, m.waitForState()

	case actionErrMsg:
		if errors.Is(msg.err, apperrors.ErrConfirmEndTurn) {
			m.confirmEndTurn = true
			m.errText = ""
			return m, nil
		}
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || key == "q" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.confirmEndTurn {
		return m.handleConfirmKey(key)
	}
	if m.state == nil {
		return m, nil
	}

	m.errText = ""
	switch m.state.Status {
	case game.StatusLobby:
		return m.handleLobbyKey(key)
	case game.StatusPlaying:
		return m.handlePlayingKey(key)
	case game.StatusFinished:
		return m.handleFinishedKey(key)
	}
	return m, nil
}

// handleConfirmKey 未弃牌结束回合的确认框
func (m Model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y", "enter":
		m.confirmEndTurn = false
		return m, m.action(func(ctx context.Context) (*game.State, error) {
			return m.peer.EndTurn(ctx, true)
		})
	case "n", "N", "esc":
		m.confirmEndTurn = false
	}
	return m, nil
}

func (m Model) handleLobbyKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "s", "enter":
		if m.peer.IsHost() {
			// 房主开局，先手默认房主自己
			return m, m.action(func(ctx context.Context) (*game.State, error) {
				return m.peer.StartGame(ctx, "")
			})
		}
	}
	return m, nil
}

func (m Model) handlePlayingKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	// 光标移动
	case "left", "h":
		m.cursor.idx = (m.cursor.idx + board.RowSize - 1) % board.RowSize
	case "right", "l":
		m.cursor.idx = (m.cursor.idx + 1) % board.RowSize
	case "up", "down", "k", "j":
		if m.cursor.row == game.RowHand {
			m.cursor.row = game.RowTable
		} else {
			m.cursor.row = game.RowHand
		}

	// 整理两行：m 选中源槽，再次 m 放到目标槽
	case "m":
		if m.moveFrom == nil {
			from := m.cursor
			m.moveFrom = &from
		} else {
			from, to := *m.moveFrom, m.cursor
			m.moveFrom = nil
			return m, m.action(func(ctx context.Context) (*game.State, error) {
				return m.peer.MoveCard(ctx, from.row, to.row, from.idx, to.idx)
			})
		}
	case "esc":
		m.moveFrom = nil

	// 回合动作
	case "d":
		return m, m.action(m.peer.Draw)
	case "t":
		return m, m.action(m.peer.TakeDiscard)
	case "x":
		pos := m.cursor
		return m, m.action(func(ctx context.Context) (*game.State, error) {
			return m.peer.Discard(ctx, pos.row, pos.idx)
		})
	case "u":
		return m, m.action(m.peer.UndoDiscard)
	case "e":
		return m, m.action(func(ctx context.Context) (*game.State, error) {
			return m.peer.EndTurn(ctx, false)
		})
	case "s":
		return m, m.action(m.peer.ToggleSubmitted)
	case "f":
		return m, m.action(m.peer.DeclareFinish)

	// 将牌
	case "r":
		return m, m.action(m.peer.RequestTrump)
	case "y":
		if m.isApprover() {
			return m, m.action(m.peer.ApproveTrump)
		}
	case "n":
		if m.isApprover() {
			return m, m.action(m.peer.RejectTrump)
		}

	// 房主重置
	case "R":
		if m.peer.IsHost() {
			return m, m.action(m.peer.ResetGame)
		}
	}
	return m, nil
}

func (m Model) handleFinishedKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "u":
		return m, m.action(m.peer.UndoFinish)
	case "R":
		if m.peer.IsHost() {
			return m, m.action(m.peer.ResetGame)
		}
	}
	return m, nil
}
