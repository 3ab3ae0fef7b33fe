package game

import (
	"github.com/remi-game/remi/internal/apperrors"
	"github.com/remi-game/remi/internal/game/board"
	"github.com/remi-game/remi/internal/game/card"
)

// requireActive 回合操作的公共前置：对局进行中且轮到该玩家
func (s *State) requireActive(actorID string) error {
	if s.Status != StatusPlaying {
		return apperrors.ErrNotPlaying
	}
	if actorID != s.ActivePlayerID {
		return apperrors.ErrNotYourTurn
	}
	return nil
}

func (p *PlayerBoard) row(name RowName) board.Row {
	if name == RowTable {
		return p.TableRow
	}
	return p.HandRow
}

func (p *PlayerBoard) setRow(name RowName, r board.Row) {
	if name == RowTable {
		p.TableRow = r
	} else {
		p.HandRow = r
	}
}

// placeInHand 抽到的牌放入第一个空手牌槽，手牌行已满则覆盖末槽
func placeInHand(p *PlayerBoard, c card.Card) {
	idx := p.HandRow.FirstEmpty()
	if idx < 0 {
		idx = board.RowSize - 1
	}
	p.HandRow[idx] = &c
}

// DrawFromDeck 从牌堆抽一张。本回合已抽过或牌堆为空时失败。
func (s *State) DrawFromDeck(actorID string) (*State, error) {
	if err := s.requireActive(actorID); err != nil {
		return nil, err
	}
	if s.HasDrawnThisTurn {
		return nil, apperrors.ErrAlreadyDrawn
	}
	if len(s.Deck) == 0 {
		return nil, apperrors.ErrDeckEmpty
	}

	ns := s.Clone()
	c := ns.Deck[len(ns.Deck)-1]
	ns.Deck = ns.Deck[:len(ns.Deck)-1]
	placeInHand(ns.Players[actorID], c)
	ns.HasDrawnThisTurn = true
	return ns, nil
}

// TakeFromDiscard 从弃牌堆顶拿一张入手。拿走后该牌不再可撤销，
// 弃牌记录随之清空。
func (s *State) TakeFromDiscard(actorID string) (*State, error) {
	if err := s.requireActive(actorID); err != nil {
		return nil, err
	}
	if s.HasDrawnThisTurn {
		return nil, apperrors.ErrAlreadyDrawn
	}
	if len(s.DiscardPile) == 0 {
		return nil, apperrors.ErrDiscardEmpty
	}

	ns := s.Clone()
	c := ns.DiscardPile[len(ns.DiscardPile)-1]
	ns.DiscardPile = ns.DiscardPile[:len(ns.DiscardPile)-1]
	placeInHand(ns.Players[actorID], c)
	ns.HasDrawnThisTurn = true
	ns.LastDiscard = nil
	return ns, nil
}

// Discard 把手牌行或桌面行指定槽位的牌弃到弃牌堆顶，并记录撤销信息
func (s *State) Discard(actorID string, from RowName, index int) (*State, error) {
	if err := s.requireActive(actorID); err != nil {
		return nil, err
	}
	if s.HasDiscardedThisTurn {
		return nil, apperrors.ErrAlreadyDiscarded
	}

	ns := s.Clone()
	p := ns.Players[actorID]
	row, c := board.RemoveAt(p.row(from), index)
	if c == nil {
		return nil, apperrors.ErrEmptySlot
	}
	p.setRow(from, row)

	ns.DiscardPile = append(ns.DiscardPile, *c)
	idx := index
	ns.LastDiscard = &LastDiscardInfo{
		OwnerID:   actorID,
		FromRow:   from,
		FromIndex: &idx,
	}
	ns.HasDiscardedThisTurn = true
	return ns, nil
}

// UndoDiscard 撤销最近一次弃牌：弃牌堆顶按记录还原到原行原槽位。
// 仅记录中的所有者可撤销，盖住的弃牌（宣告结束产生）不可走此路径。
func (s *State) UndoDiscard(actorID string) (*State, error) {
	if s.Status != StatusPlaying {
		return nil, apperrors.ErrNotPlaying
	}
	if s.LastDiscard == nil || len(s.DiscardPile) == 0 {
		return nil, apperrors.ErrNothingToUndo
	}
	if s.LastDiscard.FaceDown {
		return nil, apperrors.ErrNothingToUndo
	}
	if actorID != s.LastDiscard.OwnerID {
		return nil, apperrors.ErrNotYourUndo
	}

	ns := s.Clone()
	c := ns.DiscardPile[len(ns.DiscardPile)-1]
	ns.DiscardPile = ns.DiscardPile[:len(ns.DiscardPile)-1]
	ns.restoreDiscard(ns.Players[actorID], c)
	ns.LastDiscard = nil
	ns.HasDiscardedThisTurn = false
	return ns, nil
}

// restoreDiscard 按记录把牌放回原位；没有记录槽位时退回第一个空手牌槽
func (s *State) restoreDiscard(p *PlayerBoard, c card.Card) {
	info := s.LastDiscard
	if info != nil && info.FromIndex != nil {
		p.setRow(info.FromRow, board.InsertAt(p.row(info.FromRow), *info.FromIndex, &c))
		return
	}
	placeInHand(p, c)
}

// EndTurn 结束回合：手牌+桌面合计超过 21 张时失败；未弃过牌时需要
// 调用方确认（confirmed=false 返回 ErrConfirmEndTurn，由界面弹确认框
// 后带 confirmed=true 重试）。成功后行动权交给座次表下一位，回合标志
// 复位。
func (s *State) EndTurn(actorID string, confirmed bool) (*State, error) {
	if err := s.requireActive(actorID); err != nil {
		return nil, err
	}
	if s.Players[actorID].CardCount() > EndTurnMaxCards {
		return nil, apperrors.ErrHandTooBig
	}
	if !s.HasDiscardedThisTurn && !confirmed {
		return nil, apperrors.ErrConfirmEndTurn
	}

	ns := s.Clone()
	ns.ActivePlayerID = ns.NextPlayer(actorID)
	ns.HasDrawnThisTurn = false
	ns.HasDiscardedThisTurn = false
	return ns, nil
}

// MoveCard 玩家整理自己的两行：行内挪动或跨行移动。
// 不要求轮到自己，但只能动自己的行。
func (s *State) MoveCard(actorID string, fromRow, toRow RowName, fromIdx, toIdx int) (*State, error) {
	if s.Status != StatusPlaying {
		return nil, apperrors.ErrNotPlaying
	}
	p := s.Player(actorID)
	if p == nil {
		return nil, apperrors.ErrUnknownPlayer
	}

	ns := s.Clone()
	np := ns.Players[actorID]
	if fromRow == toRow {
		np.setRow(fromRow, board.MoveWithin(np.row(fromRow), fromIdx, toIdx))
	} else {
		nf, nt := board.MoveBetween(np.row(fromRow), np.row(toRow), fromIdx, toIdx)
		np.setRow(fromRow, nf)
		np.setRow(toRow, nt)
	}
	return ns, nil
}

// ToggleSubmitted 亮出/收回桌面行，任意时刻可切换，不要求轮到自己
func (s *State) ToggleSubmitted(actorID string) (*State, error) {
	if s.Status != StatusPlaying {
		return nil, apperrors.ErrNotPlaying
	}
	p := s.Player(actorID)
	if p == nil {
		return nil, apperrors.ErrUnknownPlayer
	}

	ns := s.Clone()
	ns.Players[actorID].Submitted = !p.Submitted
	return ns, nil
}

// DeclareFinish 宣告结束：弃牌堆非空时把自己标记为完成，对局进入
// finished，并盖住弃牌堆顶（faceDown），此后普通撤销不再适用。
func (s *State) DeclareFinish(actorID string) (*State, error) {
	if err := s.requireActive(actorID); err != nil {
		return nil, err
	}
	if len(s.DiscardPile) == 0 {
		return nil, apperrors.ErrDiscardEmpty
	}

	ns := s.Clone()
	ns.Players[actorID].Finished = true
	ns.Status = StatusFinished
	if ns.LastDiscard == nil {
		// 快照竞争可能已清掉记录，补一条仅含所有者的记录，
		// 撤销结束时退回第一个空手牌槽
		ns.LastDiscard = &LastDiscardInfo{OwnerID: actorID}
	}
	ns.LastDiscard.FaceDown = true
	return ns, nil
}

// UndoFinish 撤销宣告结束：仅盖牌记录中的所有者可执行。
// 恢复 playing、取消完成标记，并把盖住的弃牌堆顶退回记录的位置。
func (s *State) UndoFinish(actorID string) (*State, error) {
	if s.Status != StatusFinished {
		return nil, apperrors.ErrNotPlaying
	}
	if s.LastDiscard == nil || !s.LastDiscard.FaceDown {
		return nil, apperrors.ErrNothingToUndo
	}
	if actorID != s.LastDiscard.OwnerID {
		return nil, apperrors.ErrNotYourUndo
	}

	ns := s.Clone()
	ns.Players[actorID].Finished = false
	ns.Status = StatusPlaying
	if len(ns.DiscardPile) > 0 {
		c := ns.DiscardPile[len(ns.DiscardPile)-1]
		ns.DiscardPile = ns.DiscardPile[:len(ns.DiscardPile)-1]
		ns.restoreDiscard(ns.Players[actorID], c)
	}
	ns.LastDiscard = nil
	ns.HasDiscardedThisTurn = false
	return ns, nil
}
