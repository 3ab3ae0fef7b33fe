package game

import (
	"slices"

	"github.com/remi-game/remi/internal/apperrors"
)

// RequestTrump 当前行动玩家申请查看将牌。
// 审批人是确定性推导的：房主发起时由座次表上房主的下一位审批，
// 其余玩家发起时一律由房主审批——保证房主无法给自己批准。
func (s *State) RequestTrump(actorID string) (*State, error) {
	if err := s.requireActive(actorID); err != nil {
		return nil, err
	}
	if s.TrumpCard == nil {
		return nil, apperrors.ErrNoTrump
	}
	if s.PendingTrumpRequest.Pending() {
		return nil, apperrors.ErrTrumpPending
	}
	if s.IsTrumpViewer(actorID) {
		return nil, apperrors.ErrAlreadyViewer
	}

	approver := s.HostID
	if s.IsHost(actorID) {
		approver = s.NextPlayer(s.HostID)
	}

	ns := s.Clone()
	ns.PendingTrumpRequest = &TrumpRequest{
		RequesterID: actorID,
		ApproverID:  approver,
		Status:      TrumpPending,
	}
	return ns, nil
}

// ApproveTrump 审批人批准：申请人加入可见名单（幂等），请求转为 approved
func (s *State) ApproveTrump(actorID string) (*State, error) {
	if err := s.checkResolve(actorID); err != nil {
		return nil, err
	}
	if s.TrumpCard == nil {
		return nil, apperrors.ErrNoTrump
	}

	ns := s.Clone()
	req := ns.PendingTrumpRequest
	if !slices.Contains(ns.TrumpViewers, req.RequesterID) {
		ns.TrumpViewers = append(ns.TrumpViewers, req.RequesterID)
	}
	req.Status = TrumpApproved
	return ns, nil
}

// RejectTrump 审批人拒绝：申请人保持不可见，请求转为 rejected。
// pending 不再成立，之后可以重新发起。
func (s *State) RejectTrump(actorID string) (*State, error) {
	if err := s.checkResolve(actorID); err != nil {
		return nil, err
	}

	ns := s.Clone()
	ns.PendingTrumpRequest.Status = TrumpRejected
	return ns, nil
}

// checkResolve 裁决操作的公共前置：存在 pending 请求且操作者是审批人
func (s *State) checkResolve(actorID string) error {
	if s.Status != StatusPlaying {
		return apperrors.ErrNotPlaying
	}
	if !s.PendingTrumpRequest.Pending() {
		return apperrors.ErrNoTrumpRequest
	}
	if actorID != s.PendingTrumpRequest.ApproverID {
		return apperrors.ErrNotApprover
	}
	return nil
}
