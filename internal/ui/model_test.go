package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remi-game/remi/internal/apperrors"
	"github.com/remi-game/remi/internal/game"
	"github.com/remi-game/remi/internal/game/board"
	"github.com/remi-game/remi/internal/game/card"
	"github.com/remi-game/remi/internal/peer"
	"github.com/remi-game/remi/internal/testutil"
)

// testModel builds a model around a hosting peer on an in-memory bus.
func testModel(t *testing.T) Model {
	t.Helper()
	bus := testutil.NewBus()
	p, err := peer.Host(context.Background(), peer.Options{
		SelfID:   "host",
		SelfName: "Alice",
		Channel:  bus.Channel(),
	}, "424242")
	require.NoError(t, err)
	return New(p, make(chan *game.State))
}

// intoPlaying fabricates a playing snapshot so view tests do not need a
// full multi-peer table.
func intoPlaying(m Model) Model {
	st := m.state.Clone()
	st.Status = game.StatusPlaying
	st.ActivePlayerID = "host"
	st.Players["host"].HandRow = board.New()
	st.Players["host"].TableRow = board.New()
	m.state = st
	return m
}

func TestLobbyViewShowsRoster(t *testing.T) {
	m := testModel(t)

	view := m.View()
	assert.Contains(t, view, "424242")
	assert.Contains(t, view, "Alice")
	assert.Contains(t, view, HostIcon)
	// Host alone cannot start yet
	assert.Contains(t, view, "至少需要")
}

func TestCursorMovementWrapsAndTogglesRow(t *testing.T) {
	m := intoPlaying(testModel(t))

	assert.Equal(t, position{row: game.RowHand, idx: 0}, m.cursor)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	m = next.(Model)
	assert.Equal(t, board.RowSize-1, m.cursor.idx, "left from slot 0 should wrap to the last slot")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = next.(Model)
	assert.Equal(t, 0, m.cursor.idx)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = next.(Model)
	assert.Equal(t, game.RowTable, m.cursor.row)
}

func TestBoardViewHidesFaceDownDiscard(t *testing.T) {
	m := intoPlaying(testModel(t))

	deck := card.NewDeck()
	m.state.DiscardPile = deck[:1]
	m.state.LastDiscard = &game.LastDiscardInfo{OwnerID: "host", FaceDown: true}

	view := m.View()
	assert.Contains(t, view, CardBack)
	assert.NotContains(t, view, m.state.DiscardPile[0].String(), "face-down top card must not be rendered")
}

func TestTrumpHiddenFromNonViewers(t *testing.T) {
	m := intoPlaying(testModel(t))

	deck := card.NewDeck()
	trump := deck[0]
	m.state.TrumpCard = &trump

	assert.Contains(t, m.View(), CardBack)
	assert.NotContains(t, m.View(), trump.String())

	m.state.TrumpViewers = []string{"host"}
	assert.Contains(t, m.View(), trump.String())
}

func TestEndTurnConfirmFlow(t *testing.T) {
	m := intoPlaying(testModel(t))

	next, _ := m.Update(actionErrMsg{err: apperrors.ErrConfirmEndTurn})
	m = next.(Model)
	assert.True(t, m.confirmEndTurn)
	assert.Contains(t, m.View(), "确认结束")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = next.(Model)
	assert.False(t, m.confirmEndTurn)
}

func TestActionErrorRendersInStatusLine(t *testing.T) {
	m := intoPlaying(testModel(t))

	next, _ := m.Update(actionErrMsg{err: assert.AnError})
	m = next.(Model)
	assert.Contains(t, m.View(), assert.AnError.Error())

	// Any subsequent key clears the error
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = next.(Model)
	assert.False(t, strings.Contains(m.View(), assert.AnError.Error()))
}
