package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remi-game/remi/internal/game/card"
)

func testCard(id string) *card.Card {
	return &card.Card{ID: id, Rank: card.RankA, Suit: card.Spades, Color: card.Black}
}

// rowWith fills slots 0..n-1 with cards c0..c(n-1).
func rowWith(ids ...string) Row {
	r := New()
	for i, id := range ids {
		r[i] = testCard(id)
	}
	return r
}

func multiset(rows ...Row) map[string]int {
	m := make(map[string]int)
	for _, r := range rows {
		for _, c := range r {
			if c != nil {
				m[c.ID]++
			}
		}
	}
	return m
}

func TestMoveWithin(t *testing.T) {
	t.Parallel()

	r := rowWith("a", "b", "c", "d")

	moved := MoveWithin(r, 0, 2)
	require.Len(t, moved, RowSize)
	assert.Equal(t, "b", moved[0].ID)
	assert.Equal(t, "c", moved[1].ID)
	assert.Equal(t, "a", moved[2].ID)
	assert.Equal(t, "d", moved[3].ID)
	assert.Equal(t, multiset(r), multiset(moved))

	// Input row is untouched
	assert.Equal(t, "a", r[0].ID)
}

func TestMoveWithinMovesEmptySlots(t *testing.T) {
	t.Parallel()

	r := rowWith("a", "b")
	r[2] = nil // explicit: slot 2 empty, cards beyond

	moved := MoveWithin(r, 2, 0)
	require.Len(t, moved, RowSize)
	assert.Nil(t, moved[0])
	assert.Equal(t, "a", moved[1].ID)
	assert.Equal(t, "b", moved[2].ID)
}

func TestMoveWithinInvalidIndicesNoOp(t *testing.T) {
	t.Parallel()

	r := rowWith("a")
	assert.Equal(t, r, MoveWithin(r, -1, 3))
	assert.Equal(t, r, MoveWithin(r, 0, RowSize))
	assert.Equal(t, r, MoveWithin(r, 5, 5))
}

func TestMoveBetweenKeepsLengthsAndMultiset(t *testing.T) {
	t.Parallel()

	from := rowWith("a", "b", "c")
	to := rowWith("x", "y")

	before := multiset(from, to)
	nf, nt := MoveBetween(from, to, 1, 0)

	require.Len(t, nf, RowSize)
	require.Len(t, nt, RowSize)
	assert.Equal(t, before, multiset(nf, nt))

	assert.Equal(t, "a", nf[0].ID)
	assert.Equal(t, "c", nf[1].ID)
	assert.Equal(t, "b", nt[0].ID)
	assert.Equal(t, "x", nt[1].ID)
	assert.Equal(t, "y", nt[2].ID)
}

// The slot removed after insertion is the last empty one in the target row,
// which can swallow a pre-existing interior gap instead of the slot the
// insertion grew. Pin the exact behavior.
func TestMoveBetweenRemovesLastEmptySlot(t *testing.T) {
	t.Parallel()

	from := rowWith("a")
	to := New()
	// Target row: card at 0, gap at 1, card at 2, rest empty.
	to[0] = testCard("x")
	to[2] = testCard("y")

	_, nt := MoveBetween(from, to, 0, 1)
	require.Len(t, nt, RowSize)

	// "a" lands at 1; the removed empty slot is the trailing one (index 22
	// after growth), not the interior gap, which survives at index 3.
	assert.Equal(t, "x", nt[0].ID)
	assert.Equal(t, "a", nt[1].ID)
	assert.Nil(t, nt[2])
	assert.Equal(t, "y", nt[3].ID)
}

// A target row whose only empty slot is an interior gap loses that gap,
// not the newly inserted position.
func TestMoveBetweenSwallowsInteriorGap(t *testing.T) {
	t.Parallel()

	from := rowWith("a")
	to := New()
	for i := range to {
		to[i] = testCard(string(rune('A' + i)))
	}
	to[5] = nil // the only gap

	_, nt := MoveBetween(from, to, 0, 0)
	require.Len(t, nt, RowSize)
	assert.Equal(t, "a", nt[0].ID)
	// Cards before the gap shift right by one, the gap is gone, cards after
	// it keep their positions.
	assert.Equal(t, string(rune('A')), nt[1].ID)
	assert.NotNil(t, nt[5])
	assert.Equal(t, string(rune('A'+6)), nt[6].ID)
}

func TestMoveBetweenFullTargetTruncatesLast(t *testing.T) {
	t.Parallel()

	from := rowWith("a")
	to := New()
	ids := make([]string, RowSize)
	for i := range to {
		ids[i] = string(rune('A' + i))
		to[i] = testCard(ids[i])
	}

	_, nt := MoveBetween(from, to, 0, 0)
	require.Len(t, nt, RowSize)
	assert.Equal(t, "a", nt[0].ID)
	assert.Equal(t, ids[0], nt[1].ID)
	// The previous last card falls off the row.
	assert.Equal(t, ids[RowSize-2], nt[RowSize-1].ID)
}

func TestMoveBetweenEmptySourceSlotNoOp(t *testing.T) {
	t.Parallel()

	from := rowWith("a")
	to := New()
	nf, nt := MoveBetween(from, to, 5, 0)
	assert.Equal(t, from, nf)
	assert.Equal(t, to, nt)
}

func TestRemoveAtInsertAtRoundTrip(t *testing.T) {
	t.Parallel()

	r := rowWith("a", "b", "c")
	removed, c := RemoveAt(r, 1)
	require.NotNil(t, c)
	assert.Equal(t, "b", c.ID)
	require.Len(t, removed, RowSize)
	assert.Equal(t, "c", removed[1].ID)

	restored := InsertAt(removed, 1, c)
	assert.Equal(t, r, restored)
}

func TestRowHelpers(t *testing.T) {
	t.Parallel()

	r := rowWith("a", "b")
	assert.Equal(t, 2, r.CardCount())
	assert.Equal(t, 2, r.FirstEmpty())

	full := New()
	for i := range full {
		full[i] = testCard(string(rune('a' + i)))
	}
	assert.Equal(t, -1, full.FirstEmpty())
	assert.Equal(t, RowSize, full.CardCount())
}
