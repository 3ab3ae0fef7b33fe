package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/remi-game/remi/internal/game"
	"github.com/remi-game/remi/internal/game/board"
	"github.com/remi-game/remi/internal/game/card"
)

// --- 视图渲染 ---

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state == nil {
		return docStyle.Render("⏳ 正在等待牌局快照...")
	}

	var body string
	switch m.state.Status {
	case game.StatusLobby:
		body = m.lobbyView()
	default:
		body = m.boardView()
	}

	if m.confirmEndTurn {
		body += "\n" + noticeStyle.Render("本回合尚未弃牌，确认结束? (y/n)")
	}
	if m.errText != "" {
		body += "\n" + errorStyle.Render("✗ "+m.errText)
	}
	body += "\n" + helpStyle.Render(m.helpLine())

	return docStyle.Render(body)
}

func (m Model) lobbyView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle("🃏 Remi"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("房间号: %s\n\n", noticeStyle.Render(m.state.InviteCode)))

	var roster strings.Builder
	roster.WriteString(fmt.Sprintf("玩家 (%d/%d):\n", len(m.state.PlayerOrder), game.MaxPlayers))
	for _, id := range m.state.PlayerOrder {
		p := m.state.Player(id)
		line := "  " + p.Name
		if p.IsHost {
			line += " " + HostIcon
		}
		if id == m.peer.ID() {
			line = activeStyle.Render(line + " (你)")
		}
		roster.WriteString(line + "\n")
	}
	sb.WriteString(boxStyle.Render(roster.String()))
	sb.WriteString("\n\n")

	if m.peer.IsHost() {
		if len(m.state.PlayerOrder) < game.MinPlayers {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("至少需要 %d 名玩家才能开局", game.MinPlayers)))
		} else {
			sb.WriteString("按 s 开始游戏")
		}
	} else {
		sb.WriteString(dimStyle.Render("等待房主开局..."))
	}

	return sb.String()
}

func (m Model) boardView() string {
	var sb strings.Builder

	sb.WriteString(m.headerLine())
	sb.WriteString("\n\n")

	// 其他玩家：只展示牌数，已提交的桌面行摊开
	for _, id := range m.state.PlayerOrder {
		if id == m.peer.ID() {
			continue
		}
		sb.WriteString(m.opponentLine(m.state.Player(id)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.pilesLine())
	sb.WriteString("\n\n")

	// 自己的两行
	if self := m.self(); self != nil {
		sb.WriteString(m.ownRows(self))
	}

	if m.state.Status == game.StatusFinished {
		sb.WriteString("\n" + noticeStyle.Render(FinishedIcon+" 有玩家宣告结束，牌局已定格"))
	}

	return sb.String()
}

func (m Model) headerLine() string {
	var sb strings.Builder
	sb.WriteString(titleStyle("🃏 Remi"))
	sb.WriteString(dimStyle.Render("  房间 " + m.state.InviteCode))
	if m.isMyTurn() {
		sb.WriteString("  " + activeStyle.Render(TurnIcon+" 轮到你了"))
	} else if p := m.state.Player(m.state.ActivePlayerID); p != nil {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  %s %s 的回合", TurnIcon, p.Name)))
	}
	if req := m.state.PendingTrumpRequest; req != nil {
		sb.WriteString("  " + m.trumpRequestNote(req))
	}
	return sb.String()
}

// trumpRequestNote 将牌请求的状态提示
func (m Model) trumpRequestNote(req *game.TrumpRequest) string {
	requester := m.playerName(req.RequesterID)
	switch req.Status {
	case game.TrumpPending:
		if m.isApprover() {
			return noticeStyle.Render(fmt.Sprintf("%s 请求看将牌，同意? (y/n)", requester))
		}
		return dimStyle.Render(fmt.Sprintf("%s 请求看将牌，等待 %s 裁决", requester, m.playerName(req.ApproverID)))
	case game.TrumpApproved:
		return dimStyle.Render(fmt.Sprintf("%s 已获准查看将牌", requester))
	case game.TrumpRejected:
		return dimStyle.Render(fmt.Sprintf("%s 的将牌请求被拒绝", requester))
	}
	return ""
}

func (m Model) playerName(id string) string {
	if p := m.state.Player(id); p != nil {
		return p.Name
	}
	return id
}

func (m Model) opponentLine(p *game.PlayerBoard) string {
	var sb strings.Builder
	name := p.Name
	if p.IsHost {
		name += " " + HostIcon
	}
	if p.Finished {
		name += " " + FinishedIcon
	}
	if p.ID == m.state.ActivePlayerID {
		name = activeStyle.Render(TurnIcon + " " + name)
	} else {
		name = "  " + name
	}
	sb.WriteString(fmt.Sprintf("%s  %d 张", name, p.CardCount()))

	if p.Submitted {
		sb.WriteString("\n    " + m.renderRow(p.TableRow, game.RowTable, false))
	}
	return sb.String()
}

func (m Model) pilesLine() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("摸牌堆: %d 张", len(m.state.Deck)))

	sb.WriteString("   弃牌堆: ")
	top := m.state.DiscardTop()
	switch {
	case top == nil:
		sb.WriteString(slotStyle.Render(EmptySlot))
	case m.state.LastDiscard != nil && m.state.LastDiscard.FaceDown:
		// 宣告结束时堆顶盖住
		sb.WriteString(CardBack)
	default:
		sb.WriteString(renderCard(top) + dimStyle.Render(fmt.Sprintf(" (%d)", len(m.state.DiscardPile))))
	}

	sb.WriteString("   将牌: ")
	switch {
	case m.state.TrumpCard == nil:
		sb.WriteString(slotStyle.Render(EmptySlot))
	case m.state.IsTrumpViewer(m.peer.ID()):
		sb.WriteString(renderCard(m.state.TrumpCard))
	default:
		sb.WriteString(CardBack)
	}
	return sb.String()
}

func (m Model) ownRows(self *game.PlayerBoard) string {
	var sb strings.Builder

	tableLabel := "桌面"
	if self.Submitted {
		tableLabel += " (已亮出)"
	}
	sb.WriteString(dimStyle.Render(tableLabel) + "\n")
	sb.WriteString(m.renderRow(self.TableRow, game.RowTable, true))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("手牌") + "\n")
	sb.WriteString(m.renderRow(self.HandRow, game.RowHand, true))
	sb.WriteString("\n")
	return sb.String()
}

// renderRow 渲染一行 22 个槽位。own 为 true 时叠加光标和移动源高亮。
func (m Model) renderRow(row board.Row, name game.RowName, own bool) string {
	cells := make([]string, 0, board.RowSize)
	for i, c := range row {
		cell := slotStyle.Render(EmptySlot)
		if c != nil {
			cell = renderCard(c)
		}
		if own {
			switch {
			case m.moveFrom != nil && m.moveFrom.row == name && m.moveFrom.idx == i:
				cell = markStyle.Render(cellText(c))
			case m.cursor.row == name && m.cursor.idx == i:
				cell = cursorStyle.Render(cellText(c))
			}
		}
		cells = append(cells, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func cellText(c *card.Card) string {
	if c == nil {
		return EmptySlot
	}
	return " " + c.String() + " "
}

func renderCard(c *card.Card) string {
	text := " " + c.String() + " "
	if c.Color == card.Red {
		return redStyle.Render(text)
	}
	return blackStyle.Render(text)
}

func (m Model) helpLine() string {
	if m.state == nil {
		return "q 退出"
	}
	switch m.state.Status {
	case game.StatusLobby:
		if m.peer.IsHost() {
			return "s 开局 · q 退出"
		}
		return "q 退出"
	case game.StatusFinished:
		help := "u 撤销结束"
		if m.peer.IsHost() {
			help += " · R 重开"
		}
		return help + " · q 退出"
	}

	help := "←→ 移动 · ↑↓ 换行 · m 选中/放置 · d 摸牌 · t 捡弃牌 · x 弃牌 · u 撤销 · e 结束回合 · s 亮牌 · f 宣告结束 · r 看将牌"
	if m.peer.IsHost() {
		help += " · R 重开"
	}
	return help + " · q 退出"
}
