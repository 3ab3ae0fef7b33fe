package game

import (
	"slices"

	"github.com/google/uuid"

	"github.com/remi-game/remi/internal/apperrors"
	"github.com/remi-game/remi/internal/game/board"
	"github.com/remi-game/remi/internal/game/card"
)

// NewLobby 房主创建牌局，状态进入 lobby
func NewLobby(inviteCode, hostID, hostName string) *State {
	return &State{
		ID:          uuid.NewString(),
		InviteCode:  inviteCode,
		Status:      StatusLobby,
		HostID:      hostID,
		PlayerOrder: []string{hostID},
		Deck:        []card.Card{},
		DiscardPile: []card.Card{},
		Players: map[string]*PlayerBoard{
			hostID: newPlayerBoard(hostID, hostName, true),
		},
		TrumpViewers: []string{},
	}
}

func newPlayerBoard(id, name string, isHost bool) *PlayerBoard {
	return &PlayerBoard{
		ID:       id,
		Name:     name,
		IsHost:   isHost,
		HandRow:  board.New(),
		TableRow: board.New(),
	}
}

// AddPlayer 接纳新玩家入桌。只在 lobby 阶段、未满员、id 未占用时成功；
// 准入权限（仅房主执行）由 peer 层保证，这里只管规则。
func (s *State) AddPlayer(id, name string) (*State, error) {
	if s.Status != StatusLobby {
		return nil, apperrors.ErrNotInLobby
	}
	if len(s.PlayerOrder) >= MaxPlayers {
		return nil, apperrors.ErrTableFull
	}
	if s.Player(id) != nil {
		return nil, apperrors.ErrAlreadyJoined
	}

	ns := s.Clone()
	ns.PlayerOrder = append(ns.PlayerOrder, id)
	ns.Players[id] = newPlayerBoard(id, name, false)
	return ns, nil
}

// Start 房主开局：洗新牌、每人发 21 张到手牌行、翻出将牌和首张弃牌，
// 状态进入 playing，firstPlayerID 为首个行动者（空则默认房主）。
func (s *State) Start(actorID, firstPlayerID string) (*State, error) {
	if !s.IsHost(actorID) {
		return nil, apperrors.ErrHostOnly
	}
	if s.Status != StatusLobby {
		return nil, apperrors.ErrNotInLobby
	}
	if len(s.PlayerOrder) < MinPlayers || len(s.PlayerOrder) > MaxPlayers {
		return nil, apperrors.ErrPlayerCount
	}
	if firstPlayerID == "" {
		firstPlayerID = s.HostID
	}
	if !slices.Contains(s.PlayerOrder, firstPlayerID) {
		return nil, apperrors.ErrUnknownPlayer
	}

	ns := s.Clone()
	deck := card.NewDeck()

	pop := func() card.Card {
		c := deck[len(deck)-1]
		deck = deck[:len(deck)-1]
		return c
	}

	for _, id := range ns.PlayerOrder {
		p := ns.Players[id]
		p.HandRow = board.New()
		p.TableRow = board.New()
		p.Submitted = false
		p.Finished = false
		for i := 0; i < HandDealCount; i++ {
			c := pop()
			p.HandRow[i] = &c
		}
	}

	trump := pop()
	first := pop()

	ns.Deck = deck
	ns.DiscardPile = []card.Card{first}
	ns.TrumpCard = &trump
	ns.TrumpViewers = []string{}
	ns.PendingTrumpRequest = nil
	ns.LastDiscard = nil
	ns.HasDrawnThisTurn = false
	ns.HasDiscardedThisTurn = false
	ns.ActivePlayerID = firstPlayerID
	ns.Status = StatusPlaying
	return ns, nil
}

// Reset 房主把牌局拉回 lobby：清空所有行、牌堆、将牌和回合标志，
// 保留成员和座次
func (s *State) Reset(actorID string) (*State, error) {
	if !s.IsHost(actorID) {
		return nil, apperrors.ErrHostOnly
	}

	ns := s.Clone()
	for _, p := range ns.Players {
		p.HandRow = board.New()
		p.TableRow = board.New()
		p.Submitted = false
		p.Finished = false
	}
	ns.Deck = []card.Card{}
	ns.DiscardPile = []card.Card{}
	ns.TrumpCard = nil
	ns.TrumpViewers = []string{}
	ns.PendingTrumpRequest = nil
	ns.LastDiscard = nil
	ns.HasDrawnThisTurn = false
	ns.HasDiscardedThisTurn = false
	ns.ActivePlayerID = ""
	ns.Status = StatusLobby
	return ns, nil
}
