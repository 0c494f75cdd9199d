package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCard(t *testing.T) {
	c := NewCard(Qu, Red)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, Qu, c.Rank)
	assert.Equal(t, Red, c.Color)
	assert.Equal(t, QuStrength, c.Strength)

	// jokers never carry a color
	j := NewCard(DaWang, Red)
	assert.Equal(t, NoColor, j.Color)
	assert.Equal(t, DaWangStrength, j.Strength)

	assert.PanicsWithValue(t, "unknown rank: ace", func() {
		NewCard(Rank("ace"), Red)
	})
}

func TestCard_Strengths(t *testing.T) {
	// strict rank ordering
	assert.True(t, ZuStrength < MaStrength)
	assert.True(t, MaStrength < XiangStrength)
	assert.True(t, XiangStrength < ErStrength)
	assert.True(t, ErStrength < QuStrength)
	assert.True(t, QuStrength < XiaoWangStrength)
	assert.True(t, XiaoWangStrength < DaWangStrength)
}

func TestCardFromString(t *testing.T) {
	assert.Nil(t, CardFromString(""))

	c := CardFromString("qur")
	assert.Equal(t, Qu, c.Rank)
	assert.Equal(t, Red, c.Color)

	c = CardFromString("erb")
	assert.Equal(t, Er, c.Rank)
	assert.Equal(t, Black, c.Color)

	c = CardFromString("xw")
	assert.Equal(t, XiaoWang, c.Rank)
	assert.Equal(t, NoColor, c.Color)

	c = CardFromString("dw")
	assert.Equal(t, DaWang, c.Rank)

	assert.Panics(t, func() { CardFromString("qux") })
	assert.Panics(t, func() { CardFromString("jackr") })
}

func TestCardsFromString_roundTrip(t *testing.T) {
	cards := CardsFromString("zur,mab,xiangr,erb,qur,xw,dw")
	assert.Equal(t, 7, len(cards))
	assert.Equal(t, "zur,mab,xiangr,erb,qur,xw,dw", CardsToString(cards))
	assert.Equal(t, 0, len(CardsFromString("")))
}

func TestCard_EqualAndSameKind(t *testing.T) {
	a := CardFromString("qur")
	b := CardFromString("qur")

	// two physical copies of the same kind are never Equal
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))
	assert.True(t, a.SameKind(b))
	assert.False(t, a.SameKind(CardFromString("qub")))
	assert.False(t, a.SameKind(CardFromString("erb")))
}

func TestCard_IsJoker(t *testing.T) {
	assert.True(t, CardFromString("xw").IsJoker())
	assert.True(t, CardFromString("dw").IsJoker())
	assert.False(t, CardFromString("qur").IsJoker())
}
