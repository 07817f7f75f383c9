package card

import (
	"sort"
	"strconv"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

const (
	Clubs    Suit = iota // 梅花
	Diamonds             // 方块
	Hearts               // 红心
	Spades               // 黑桃
	NoSuit               // 王牌无花色
)

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Joker
)

// DeckSize 整副牌数量：52 张常规牌 + 2 张王牌
const DeckSize = 54

// MoveType 定义卡牌触发的走子类型
type MoveType int

const (
	Simple MoveType = iota // 按固定步数行进
	Split                  // 7 点拆分行进
	Swap                   // 与对手弹珠换位
	Wild                   // 王牌，出牌时选定任意点数
	Start                  // 弹珠从家区出发到起点
)

// MoveRule 卡牌的一条走子规则
type MoveRule struct {
	Type  MoveType `json:"type"`
	Value int      `json:"value"`
}

// Card 定义一张牌及其走子规则
type Card struct {
	Rank      Rank       `json:"rank"`
	Suit      Suit       `json:"suit"`
	MoveRules []MoveRule `json:"moveRules"`
}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Diamonds: "♦",
	Hearts:   "♥",
	Spades:   "♠",
	NoSuit:   "",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Ace:   "A",
	Two:   "2",
	Three: "3",
	Four:  "4",
	Five:  "5",
	Six:   "6",
	Seven: "7",
	Eight: "8",
	Nine:  "9",
	Ten:   "10",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Joker: "★",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// New 按点数与花色创建一张牌，并根据点数绑定走子规则
func New(r Rank, s Suit) Card {
	c := Card{Rank: r, Suit: s}
	switch r {
	case Ace:
		c.MoveRules = []MoveRule{{Simple, 1}, {Simple, 11}, {Start, 0}}
	case Four:
		// 4 可以前进也可以后退
		c.MoveRules = []MoveRule{{Simple, 4}, {Simple, -4}}
	case Seven:
		c.MoveRules = []MoveRule{{Split, 7}}
	case Jack:
		c.MoveRules = []MoveRule{{Swap, 0}}
	case King:
		c.MoveRules = []MoveRule{{Simple, 13}, {Start, 0}}
	case Joker:
		c.MoveRules = []MoveRule{{Wild, 0}}
	default:
		c.MoveRules = []MoveRule{{Simple, int(r) + 1}}
	}
	return c
}

// NewDeck 创建整副 54 张牌
// 牌的 ID 即其在此切片中的下标：suit*13+rank，52/53 为王牌
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := Clubs; s <= Spades; s++ {
		for r := Ace; r <= King; r++ {
			deck = append(deck, New(r, s))
		}
	}
	deck = append(deck, New(Joker, NoSuit), New(Joker, NoSuit))
	return deck
}

// IsJokerID 判断牌 ID 是否为王牌
func IsJokerID(id int) bool {
	return id == 52 || id == 53
}

// RankOf 根据牌 ID 计算点数
func RankOf(id int) Rank {
	if IsJokerID(id) {
		return Joker
	}
	return Rank(id % 13)
}

// SuitOf 根据牌 ID 计算花色
func SuitOf(id int) Suit {
	if IsJokerID(id) {
		return NoSuit
	}
	return Suit(id / 13)
}

// SortHand 对手牌排序：王牌排最后，其余按点数升序，同点数按 ID
func SortHand(ids []int) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if IsJokerID(a) && IsJokerID(b) {
			return a < b
		}
		if IsJokerID(a) {
			return false
		}
		if IsJokerID(b) {
			return true
		}
		if a%13 != b%13 {
			return a%13 < b%13
		}
		return a < b
	})
}
