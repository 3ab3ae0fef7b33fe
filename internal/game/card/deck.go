package card

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

const (
	// DeckCopies 整副牌包含的标准牌副数
	DeckCopies = 3
	// JokerCount 王牌数量
	JokerCount = 9
	// DeckSize 总牌数：3×52 + 9
	DeckSize = DeckCopies*52 + JokerCount
)

// jokerImagePool 王牌插画池，每局从中不放回地抽取 9 张，
// 保证同一局里每张王牌的插画互不相同
var jokerImagePool = []string{
	"joker_acrobat", "joker_bells", "joker_crown", "joker_dancer",
	"joker_fool", "joker_harlequin", "joker_juggler", "joker_lute",
	"joker_mask", "joker_moon", "joker_owl", "joker_scepter",
	"joker_stars", "joker_sun", "joker_tumbler", "joker_wand",
}

// NewDeck 生成洗好的一整副 165 张牌。
// 牌堆尾部视为堆顶（抽牌从尾部弹出）。
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for copyNo := 0; copyNo < DeckCopies; copyNo++ {
		for _, s := range Suits {
			for _, r := range Ranks {
				deck = append(deck, Card{
					ID:    uuid.NewString(),
					Rank:  r,
					Suit:  s,
					Color: ColorOf(s),
				})
			}
		}
	}

	images := pickJokerImages(JokerCount)
	for i := 0; i < JokerCount; i++ {
		deck = append(deck, Card{
			ID:         uuid.NewString(),
			Rank:       RankJoker,
			Suit:       Joker,
			Color:      Red,
			JokerImage: images[i],
		})
	}

	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// pickJokerImages 从插画池不放回抽取 n 张
func pickJokerImages(n int) []string {
	if n > len(jokerImagePool) {
		panic(fmt.Sprintf("joker image pool too small: need %d, have %d", n, len(jokerImagePool)))
	}
	pool := make([]string, len(jokerImagePool))
	copy(pool, jokerImagePool)
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:n]
}
