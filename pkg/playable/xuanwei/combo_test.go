package xuanwei

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"xuanwei-server/pkg/deck"
)

func combo(codes string) Combination {
	return CalculateCombination(deck.CardsFromString(codes))
}

func TestCalculateCombination_singles(t *testing.T) {
	a := assert.New(t)

	a.Equal(Combination{Type: Single, Strength: deck.ZuStrength}, combo("zur"))
	a.Equal(Combination{Type: Single, Strength: deck.QuStrength}, combo("qub"))
	a.Equal(Combination{Type: Single, Strength: deck.XiaoWangStrength}, combo("xw"))
	a.Equal(Combination{Type: Single, Strength: deck.DaWangStrength}, combo("dw"))
}

func TestCalculateCombination_pairs(t *testing.T) {
	a := assert.New(t)

	a.Equal(Combination{Type: Pair, Strength: deck.ZuStrength + pairBonus}, combo("zur,zur"))
	a.Equal(Combination{Type: Pair, Strength: deck.QuStrength + pairBonus}, combo("qub,qub"))

	// the two sentinel pairs outrank every ordinary pair
	a.Equal(Combination{Type: Pair, Strength: sentinelPairStrength}, combo("xw,dw"))
	a.Equal(Combination{Type: Pair, Strength: sentinelPairStrength}, combo("dw,xw"))
	a.Equal(Combination{Type: Pair, Strength: sentinelPairStrength}, combo("err,err"))

	// mismatched rank or color is no pair at all
	a.Equal(discardCombination, combo("zur,zub"))
	a.Equal(discardCombination, combo("zur,mar"))
}

func TestCalculateCombination_blackErPairIsOrdinary(t *testing.T) {
	// two black Er are still a same-kind pair, just not the sentinel
	assert.Equal(t, Combination{Type: Pair, Strength: deck.ErStrength + pairBonus}, combo("erb,erb"))
}

func TestCalculateCombination_triples(t *testing.T) {
	a := assert.New(t)

	a.Equal(Combination{Type: Triple, Strength: deck.QuStrength + tripleBonus}, combo("qur,qur,qur"))
	a.Equal(Combination{Type: Triple, Strength: deck.QuStrength + tripleBonus}, combo("qub,qub,qub"))

	// mixed colors or non-Qu ranks never form a triple
	a.Equal(discardCombination, combo("qur,qur,qub"))
	a.Equal(discardCombination, combo("zur,zur,zur"))
	a.Equal(discardCombination, combo(""))
}

func TestCalculateCombination_orderingIsTotal(t *testing.T) {
	a := assert.New(t)

	weakestTriple := combo("qub,qub,qub").Strength
	strongestPair := combo("xw,dw").Strength
	weakestPair := combo("zur,zur").Strength
	strongestSingle := combo("dw").Strength

	a.Greater(weakestTriple, strongestPair)
	a.Greater(weakestPair, strongestSingle)
	a.Greater(strongestSingle, DiscardStrength)
}

func TestValidPlays_leading(t *testing.T) {
	a := assert.New(t)

	hand := deck.Hand(deck.CardsFromString("zur,zur,qub,qub,qub,dw"))
	plays := ValidPlays(hand, nil, DiscardStrength)

	var singles, pairs, triples int
	for _, p := range plays {
		switch len(p) {
		case 1:
			singles++
		case 2:
			pairs++
		case 3:
			triples++
		}
	}

	a.Equal(6, singles)
	// zur+zur, and the three ways to pick two of the qub
	a.Equal(4, pairs)
	a.Equal(1, triples)
}

func TestValidPlays_following(t *testing.T) {
	a := assert.New(t)

	hand := deck.Hand(deck.CardsFromString("zur,mar,qub,err,err"))

	target := &Play{Type: Single, Cards: deck.CardsFromString("xiangb"), Strength: deck.XiangStrength}
	plays := ValidPlays(hand, target, deck.XiangStrength)
	a.Len(plays, 3) // qub and the two err

	for _, p := range plays {
		a.Len(p, 1)
		a.Greater(CalculateCombination(p).Strength, deck.XiangStrength)
	}

	pairTarget := &Play{Type: Pair, Cards: deck.CardsFromString("mar,mar"), Strength: deck.MaStrength + pairBonus}
	pairPlays := ValidPlays(hand, pairTarget, deck.MaStrength+pairBonus)
	a.Len(pairPlays, 1)
	a.Equal(sentinelPairStrength, CalculateCombination(pairPlays[0]).Strength)
}

func TestValidPlays_mustFollowExhausted(t *testing.T) {
	a := assert.New(t)

	// a strong unrelated single does not satisfy a pair target
	hand := deck.Hand(deck.CardsFromString("zur,mab,dw"))
	target := &Play{Type: Pair, Cards: deck.CardsFromString("qur,qur"), Strength: deck.QuStrength + pairBonus}

	a.Empty(ValidPlays(hand, target, deck.QuStrength+pairBonus))
}

func TestValidPlays_neverFabricatesCards(t *testing.T) {
	a := assert.New(t)

	hand := deck.Hand(deck.CardsFromString("zur,zur,qur,qur,qur,xw,dw,err"))
	for _, play := range ValidPlays(hand, nil, DiscardStrength) {
		for _, c := range play {
			a.True(hand.HasCard(c))
		}
	}
}
