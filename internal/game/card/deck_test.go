package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckComposition(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	require.Len(t, deck, DeckSize)

	type pair struct {
		r Rank
		s Suit
	}
	counts := make(map[pair]int)
	jokers := 0
	for _, c := range deck {
		if c.IsJoker() {
			jokers++
			continue
		}
		counts[pair{c.Rank, c.Suit}]++
	}

	assert.Equal(t, JokerCount, jokers)
	assert.Len(t, counts, 13*4)
	for p, n := range counts {
		assert.Equalf(t, DeckCopies, n, "pair %v", p)
	}
}

func TestNewDeckUniqueIDs(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	seen := make(map[string]bool, len(deck))
	for _, c := range deck {
		assert.NotEmpty(t, c.ID)
		assert.False(t, seen[c.ID], "duplicate card id")
		seen[c.ID] = true
	}
}

func TestNewDeckJokerImagesDistinct(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	images := make(map[string]bool)
	for _, c := range deck {
		if !c.IsJoker() {
			assert.Empty(t, c.JokerImage)
			continue
		}
		require.NotEmpty(t, c.JokerImage)
		assert.False(t, images[c.JokerImage], "duplicate joker image in one deck")
		images[c.JokerImage] = true
	}
	assert.Len(t, images, JokerCount)
}

func TestColorOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Red, ColorOf(Hearts))
	assert.Equal(t, Red, ColorOf(Diamonds))
	assert.Equal(t, Black, ColorOf(Clubs))
	assert.Equal(t, Black, ColorOf(Spades))
	assert.Equal(t, Red, ColorOf(Joker))
}
