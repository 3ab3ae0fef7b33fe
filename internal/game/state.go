package game

import (
	"slices"

	"github.com/remi-game/remi/internal/game/board"
	"github.com/remi-game/remi/internal/game/card"
)

// Status 牌局状态
type Status string

const (
	StatusLobby    Status = "lobby"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// RowName 行名：手牌行 / 桌面行
type RowName string

const (
	RowHand  RowName = "hand"
	RowTable RowName = "table"
)

const (
	// MinPlayers 开局所需最少人数
	MinPlayers = 2
	// MaxPlayers 一桌最多人数
	MaxPlayers = 5
	// HandDealCount 开局发到手牌行的张数
	HandDealCount = 21
	// EndTurnMaxCards 结束回合时手牌+桌面允许的最大总张数
	EndTurnMaxCards = 21
)

// PlayerBoard 单个玩家的牌面
type PlayerBoard struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsHost    bool      `json:"isHost"`
	HandRow   board.Row `json:"handRow"`
	TableRow  board.Row `json:"tableRow"`
	Submitted bool      `json:"submitted"` // 桌面行是否对其他玩家可见
	Finished  bool      `json:"finished"`
}

// CardCount 两行非空槽总数
func (p *PlayerBoard) CardCount() int {
	return p.HandRow.CardCount() + p.TableRow.CardCount()
}

func (p *PlayerBoard) clone() *PlayerBoard {
	out := *p
	out.HandRow = p.HandRow.Clone()
	out.TableRow = p.TableRow.Clone()
	return &out
}

// LastDiscardInfo 最近一次弃牌记录，支撑单级撤销。
// FaceDown 为 true 表示弃牌堆顶已盖住（宣告结束时设置），
// 此后只能通过撤销结束找回，普通撤销弃牌不再适用。
type LastDiscardInfo struct {
	OwnerID   string  `json:"ownerId,omitempty"`
	FromRow   RowName `json:"fromRow,omitempty"`
	FromIndex *int    `json:"fromIndex,omitempty"`
	FaceDown  bool    `json:"faceDown"`
}

// TrumpStatus 将牌请求状态，pending 只能单向转为 approved/rejected
type TrumpStatus string

const (
	TrumpPending  TrumpStatus = "pending"
	TrumpApproved TrumpStatus = "approved"
	TrumpRejected TrumpStatus = "rejected"
)

// TrumpRequest 查看将牌的请求。全局同一时刻至多一个 pending；
// 已裁决的请求保留在状态里供各端展示结果，不阻塞新请求。
type TrumpRequest struct {
	RequesterID string      `json:"requesterId"`
	ApproverID  string      `json:"approverId"`
	Status      TrumpStatus `json:"status"`
}

// Pending 是否仍在等待裁决
func (r *TrumpRequest) Pending() bool {
	return r != nil && r.Status == TrumpPending
}

// State 唯一被复制的聚合：每个客户端持有一份完整副本，
// 本地校验通过的变更整体替换本地副本并广播，收到的快照无条件覆盖。
// 所有变更方法遵循写时复制：深拷贝后在副本上修改并返回，
// 原值永不改动，失败时返回错误且不产生新值。
type State struct {
	ID                   string                  `json:"id"`
	InviteCode           string                  `json:"inviteCode"`
	Status               Status                  `json:"status"`
	HostID               string                  `json:"hostId"`
	PlayerOrder          []string                `json:"playerOrder"`
	ActivePlayerID       string                  `json:"activePlayerId,omitempty"`
	Deck                 []card.Card             `json:"deck"`        // 尾部为堆顶
	DiscardPile          []card.Card             `json:"discardPile"` // 尾部为堆顶
	Players              map[string]*PlayerBoard `json:"players"`
	LastDiscard          *LastDiscardInfo        `json:"lastDiscardInfo,omitempty"`
	HasDrawnThisTurn     bool                    `json:"hasDrawnThisTurn"`
	HasDiscardedThisTurn bool                    `json:"hasDiscardedThisTurn"`
	TrumpCard            *card.Card              `json:"trumpCard,omitempty"`
	TrumpViewers         []string                `json:"trumpViewers"`
	PendingTrumpRequest  *TrumpRequest           `json:"pendingTrumpRequest,omitempty"`
}

// Clone 深拷贝整个聚合
func (s *State) Clone() *State {
	out := *s
	out.PlayerOrder = slices.Clone(s.PlayerOrder)
	out.Deck = slices.Clone(s.Deck)
	out.DiscardPile = slices.Clone(s.DiscardPile)
	out.TrumpViewers = slices.Clone(s.TrumpViewers)
	out.Players = make(map[string]*PlayerBoard, len(s.Players))
	for id, p := range s.Players {
		out.Players[id] = p.clone()
	}
	if s.LastDiscard != nil {
		ld := *s.LastDiscard
		if s.LastDiscard.FromIndex != nil {
			idx := *s.LastDiscard.FromIndex
			ld.FromIndex = &idx
		}
		out.LastDiscard = &ld
	}
	if s.TrumpCard != nil {
		tc := *s.TrumpCard
		out.TrumpCard = &tc
	}
	if s.PendingTrumpRequest != nil {
		req := *s.PendingTrumpRequest
		out.PendingTrumpRequest = &req
	}
	return &out
}

// Player 查找玩家牌面，不存在返回 nil
func (s *State) Player(id string) *PlayerBoard {
	return s.Players[id]
}

// IsHost 判断是否房主
func (s *State) IsHost(id string) bool {
	return id != "" && id == s.HostID
}

// IsTrumpViewer 判断玩家是否已获准查看将牌
func (s *State) IsTrumpViewer(id string) bool {
	return slices.Contains(s.TrumpViewers, id)
}

// NextPlayer 座次表上 id 的下一位（循环）
func (s *State) NextPlayer(id string) string {
	i := slices.Index(s.PlayerOrder, id)
	if i < 0 || len(s.PlayerOrder) == 0 {
		return ""
	}
	return s.PlayerOrder[(i+1)%len(s.PlayerOrder)]
}

// discardTop 弃牌堆顶，空堆返回 nil
func (s *State) discardTop() *card.Card {
	if len(s.DiscardPile) == 0 {
		return nil
	}
	c := s.DiscardPile[len(s.DiscardPile)-1]
	return &c
}

// DiscardTop 导出只读的弃牌堆顶
func (s *State) DiscardTop() *card.Card {
	return s.discardTop()
}
