package xuanwei

import (
	"xuanwei-server/pkg/deck"
)

// CombinationType classifies a set of played cards
type CombinationType string

// combination type constants
const (
	Single  CombinationType = "single"
	Pair    CombinationType = "pair"
	Triple  CombinationType = "triple"
	Discard CombinationType = "discard"
)

// strength layout. The bonuses keep the ordering total:
// any triple > any pair > any single > discard.
const (
	// DiscardStrength always loses comparisons
	DiscardStrength = -1

	// pairBonus is added to the rank strength of an ordinary same-rank,
	// same-color pair
	pairBonus = 100

	// sentinelPairStrength is the strength of the two special pairs (both
	// jokers, or both red Er). It sits above every ordinary pair.
	sentinelPairStrength = 125

	// tripleBonus is added to the max rank strength of a same-color Qu
	// triple, putting every triple above every pair
	tripleBonus = 200
)

// Play is an immutable record of one seat's action in a trick
type Play struct {
	Seat     Seat            `json:"seat"`
	Cards    []*deck.Card    `json:"cards"`
	Type     CombinationType `json:"type"`
	Strength int             `json:"strength"`
}

// Combination is the classification of a set of cards
type Combination struct {
	Type     CombinationType
	Strength int
}

// discardCombination is what every illegal set scores as
var discardCombination = Combination{Type: Discard, Strength: DiscardStrength}

// CalculateCombination classifies an ordered set of 1-3 cards.
// It is a pure function with no side effects.
func CalculateCombination(cards []*deck.Card) Combination {
	switch len(cards) {
	case 1:
		return Combination{Type: Single, Strength: cards[0].Strength}
	case 2:
		return calculatePair(cards[0], cards[1])
	case 3:
		return calculateTriple(cards)
	}

	return discardCombination
}

func calculatePair(c1, c2 *deck.Card) Combination {
	if c1.IsJoker() && c2.IsJoker() && c1.Rank != c2.Rank {
		return Combination{Type: Pair, Strength: sentinelPairStrength}
	}

	if c1.Rank == deck.Er && c2.Rank == deck.Er && c1.Color == deck.Red && c2.Color == deck.Red {
		return Combination{Type: Pair, Strength: sentinelPairStrength}
	}

	if c1.SameKind(c2) && !c1.IsJoker() {
		strength := c1.Strength
		if c2.Strength > strength {
			strength = c2.Strength
		}

		return Combination{Type: Pair, Strength: strength + pairBonus}
	}

	return discardCombination
}

func calculateTriple(cards []*deck.Card) Combination {
	max := 0
	for _, c := range cards {
		if c.Rank != deck.Qu || c.Color != cards[0].Color {
			return discardCombination
		}

		if c.Strength > max {
			max = c.Strength
		}
	}

	return Combination{Type: Triple, Strength: max + tripleBonus}
}

// ValidPlays enumerates every combination the hand can legally play.
// With no target the seat is leading and every single, pair, and triple in the
// hand is returned. Against a target, only combinations of the same type and
// cardinality whose strength exceeds currentMax are returned. An empty result
// against a target means the seat is obligated to discard.
// This is a pure function: it is both the legality oracle and the AI search space.
func ValidPlays(hand deck.Hand, target *Play, currentMax int) [][]*deck.Card {
	if target == nil {
		return leadPlays(hand)
	}

	valid := make([][]*deck.Card, 0)

	switch target.Type {
	case Single:
		for _, c := range hand {
			if c.Strength > currentMax {
				valid = append(valid, []*deck.Card{c})
			}
		}
	case Pair:
		eachPair(hand, func(cards []*deck.Card, combo Combination) {
			if combo.Strength > currentMax {
				valid = append(valid, cards)
			}
		})
	case Triple:
		eachTriple(hand, func(cards []*deck.Card, combo Combination) {
			if combo.Strength > currentMax {
				valid = append(valid, cards)
			}
		})
	}

	return valid
}

func leadPlays(hand deck.Hand) [][]*deck.Card {
	results := make([][]*deck.Card, 0, len(hand))
	for _, c := range hand {
		results = append(results, []*deck.Card{c})
	}

	eachPair(hand, func(cards []*deck.Card, _ Combination) {
		results = append(results, cards)
	})

	eachTriple(hand, func(cards []*deck.Card, _ Combination) {
		results = append(results, cards)
	})

	return results
}

func eachPair(hand deck.Hand, fn func([]*deck.Card, Combination)) {
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			cards := []*deck.Card{hand[i], hand[j]}
			if combo := CalculateCombination(cards); combo.Type == Pair {
				fn(cards, combo)
			}
		}
	}
}

func eachTriple(hand deck.Hand, fn func([]*deck.Card, Combination)) {
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			for k := j + 1; k < len(hand); k++ {
				cards := []*deck.Card{hand[i], hand[j], hand[k]}
				if combo := CalculateCombination(cards); combo.Type == Triple {
					fn(cards, combo)
				}
			}
		}
	}
}
