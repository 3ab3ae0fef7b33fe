package peer

import (
	"context"

	"github.com/remi-game/remi/internal/apperrors"
	"github.com/remi-game/remi/internal/game"
)

// mutate 本地动作的统一路径：在当前快照上校验并产生新快照，
// 成功则替换本地副本并广播；校验失败不改状态、不广播。
// 广播失败时本地已是新值（至少一次投递，无法回滚），错误上抛给界面。
func (p *Peer) mutate(ctx context.Context, op func(*game.State) (*game.State, error)) (*game.State, error) {
	p.mu.Lock()
	cur := p.state
	if cur == nil {
		p.mu.Unlock()
		return nil, apperrors.ErrNoSnapshot
	}
	ns, err := op(cur)
	if err != nil {
		p.mu.Unlock()
		return nil, err
	}
	p.state = ns
	p.mu.Unlock()

	p.notify(ns)
	if err := p.publishState(ctx, ns); err != nil {
		p.log.WithError(err).Warn("failed to publish state after local action")
		return ns, err
	}
	return ns, nil
}

// StartGame 房主开局，firstPlayerID 为先手（空则房主先手）
func (p *Peer) StartGame(ctx context.Context, firstPlayerID string) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.Start(p.id, firstPlayerID)
	})
}

// ResetGame 房主把牌局拉回 lobby
func (p *Peer) ResetGame(ctx context.Context) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.Reset(p.id)
	})
}

// Draw 从牌堆抽牌
func (p *Peer) Draw(ctx context.Context) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.DrawFromDeck(p.id)
	})
}

// TakeDiscard 从弃牌堆顶拿牌
func (p *Peer) TakeDiscard(ctx context.Context) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.TakeFromDiscard(p.id)
	})
}

// Discard 弃掉指定行、指定槽位的牌
func (p *Peer) Discard(ctx context.Context, row game.RowName, index int) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.Discard(p.id, row, index)
	})
}

// UndoDiscard 撤销最近一次弃牌
func (p *Peer) UndoDiscard(ctx context.Context) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.UndoDiscard(p.id)
	})
}

// EndTurn 结束回合。未弃牌且未确认时返回 ErrConfirmEndTurn，
// 界面确认后带 confirmed=true 重试。
func (p *Peer) EndTurn(ctx context.Context, confirmed bool) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.EndTurn(p.id, confirmed)
	})
}

// MoveCard 整理自己的两行
func (p *Peer) MoveCard(ctx context.Context, fromRow, toRow game.RowName, fromIdx, toIdx int) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.MoveCard(p.id, fromRow, toRow, fromIdx, toIdx)
	})
}

// ToggleSubmitted 亮出/收回桌面行
func (p *Peer) ToggleSubmitted(ctx context.Context) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.ToggleSubmitted(p.id)
	})
}

// DeclareFinish 宣告结束
func (p *Peer) DeclareFinish(ctx context.Context) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.DeclareFinish(p.id)
	})
}

// UndoFinish 撤销宣告结束
func (p *Peer) UndoFinish(ctx context.Context) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.UndoFinish(p.id)
	})
}

// RequestTrump 申请查看将牌
func (p *Peer) RequestTrump(ctx context.Context) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.RequestTrump(p.id)
	})
}

// ApproveTrump 批准当前将牌请求
func (p *Peer) ApproveTrump(ctx context.Context) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.ApproveTrump(p.id)
	})
}

// RejectTrump 拒绝当前将牌请求
func (p *Peer) RejectTrump(ctx context.Context) (*game.State, error) {
	return p.mutate(ctx, func(s *game.State) (*game.State, error) {
		return s.RejectTrump(p.id)
	})
}
