package deck

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Color is the color of a card. Jokers have no color.
type Color string

// color constants
const (
	Red     Color = "red"
	Black   Color = "black"
	NoColor Color = "none"
)

// Rank identifies one of the seven Xuanwei ranks
type Rank string

// rank constants
const (
	Zu       Rank = "zu"       // 卒
	Ma       Rank = "ma"       // 马
	Xiang    Rank = "xiang"    // 相
	Er       Rank = "er"       // 尔
	Qu       Rank = "qu"       // 曲
	XiaoWang Rank = "xiaowang" // 小王
	DaWang   Rank = "dawang"   // 大王
)

// rank strengths. Pair and triple bonuses in the rules engine are larger
// than DaWangStrength so cross-combination comparisons stay total.
const (
	ZuStrength       = 18
	MaStrength       = 19
	XiangStrength    = 20
	ErStrength       = 21
	QuStrength       = 22
	XiaoWangStrength = 23
	DaWangStrength   = 24
)

var rankStrengths = map[Rank]int{
	Zu:       ZuStrength,
	Ma:       MaStrength,
	Xiang:    XiangStrength,
	Er:       ErStrength,
	Qu:       QuStrength,
	XiaoWang: XiaoWangStrength,
	DaWang:   DaWangStrength,
}

// Card is an individual Xuanwei playing card.
// Cards are never mutated once created; the ID is stable for the card's lifetime.
type Card struct {
	ID       string `json:"id"`
	Rank     Rank   `json:"rank"`
	Color    Color  `json:"color"`
	Strength int    `json:"strength"`
}

// NewCard returns a new card with a unique ID
func NewCard(rank Rank, color Color) *Card {
	strength, ok := rankStrengths[rank]
	if !ok {
		panic(fmt.Sprintf("unknown rank: %s", rank))
	}

	if rank == XiaoWang || rank == DaWang {
		color = NoColor
	}

	return &Card{
		ID:       uuid.New().String(),
		Rank:     rank,
		Color:    color,
		Strength: strength,
	}
}

// IsJoker returns true for the two joker ranks
func (c *Card) IsJoker() bool {
	return c.Rank == XiaoWang || c.Rank == DaWang
}

// Equal returns true if the cards are the same physical card
func (c *Card) Equal(card *Card) bool {
	return c.ID == card.ID
}

// SameKind returns true if the cards share rank and color
func (c *Card) SameKind(card *Card) bool {
	return c.Rank == card.Rank && c.Color == card.Color
}

func (c *Card) String() string {
	switch c.Rank {
	case XiaoWang:
		return "xw"
	case DaWang:
		return "dw"
	}

	color := "b"
	if c.Color == Red {
		color = "r"
	}

	return fmt.Sprintf("%s%s", c.Rank, color)
}

// CardFromString returns a Card from a short code like "qur", "zub", or "dw".
// The code is <rank><color> where color is r or b; the jokers are "xw" and "dw".
func CardFromString(s string) *Card {
	switch s {
	case "":
		return nil
	case "xw":
		return NewCard(XiaoWang, NoColor)
	case "dw":
		return NewCard(DaWang, NoColor)
	}

	var color Color
	switch s[len(s)-1] {
	case 'r':
		color = Red
	case 'b':
		color = Black
	default:
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank := Rank(s[:len(s)-1])
	if _, ok := rankStrengths[rank]; !ok || rank == XiaoWang || rank == DaWang {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	return NewCard(rank, color)
}

// CardsFromString will return a slice of cards from codes like "qur,qub,dw"
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardsToString will convert a slice of cards to a string in the format of qur,qub,dw
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.String()
	}

	return strings.Join(c, ",")
}
