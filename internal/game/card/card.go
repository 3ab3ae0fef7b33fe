package card

// Suit 定义花色
type Suit string

// Rank 定义点数
type Rank string

// Color 定义牌的颜色（仅用于渲染，王牌固定为红色）
type Color string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
	Joker    Suit = "joker"
)

const (
	Red   Color = "red"
	Black Color = "black"
)

const (
	RankA     Rank = "A"
	Rank2     Rank = "2"
	Rank3     Rank = "3"
	Rank4     Rank = "4"
	Rank5     Rank = "5"
	Rank6     Rank = "6"
	Rank7     Rank = "7"
	Rank8     Rank = "8"
	Rank9     Rank = "9"
	Rank10    Rank = "10"
	RankJ     Rank = "J"
	RankQ     Rank = "Q"
	RankK     Rank = "K"
	RankJoker Rank = "JOKER"
)

// Suits 普通花色（不含王牌）
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Ranks 普通点数（不含王牌）
var Ranks = []Rank{
	RankA, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7,
	Rank8, Rank9, Rank10, RankJ, RankQ, RankK,
}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Clubs:    "♣",
	Diamonds: "♦",
	Joker:    "★",
}

func (s Suit) Symbol() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// ColorOf 根据花色推导颜色
func ColorOf(s Suit) Color {
	if s == Hearts || s == Diamonds || s == Joker {
		return Red
	}
	return Black
}

// Card 定义一张牌，创建后不可变，身份由 ID 决定
type Card struct {
	ID         string `json:"id"`
	Rank       Rank   `json:"rank"`
	Suit       Suit   `json:"suit"`
	Color      Color  `json:"color"`
	JokerImage string `json:"jokerImage,omitempty"`
}

// IsJoker 是否为王牌
func (c Card) IsJoker() bool {
	return c.Suit == Joker
}

func (c Card) String() string {
	if c.IsJoker() {
		return "JOKER"
	}
	return string(c.Rank) + c.Suit.Symbol()
}
