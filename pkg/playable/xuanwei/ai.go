package xuanwei

import (
	"sort"

	"xuanwei-server/internal/rng"
	"xuanwei-server/pkg/deck"
)

// strongPairStrength is the cutoff above which the AI treats a pair as worth
// leading aggressively
const strongPairStrength = 120

// topCardStrength is the cutoff for cards the AI counts as trick winners
// when sizing up its hand (Qu and above)
const topCardStrength = 22

// handScore rates a hand for the wagering decisions: top cards are worth 2,
// pairs 1, and triples 3.
func handScore(hand deck.Hand) int {
	top := 0
	for _, c := range hand {
		if c.Strength >= topCardStrength {
			top++
		}
	}

	pairs, triples := 0, 0
	for _, opt := range ValidPlays(hand, nil, DiscardStrength) {
		switch len(opt) {
		case 2:
			pairs++
		case 3:
			triples++
		}
	}

	return top*2 + pairs + triples*3
}

// DecideBet chooses an AI seat's wager. A strong hand grabs for the lead and
// raises its personal multiplier; a borderline hand grabs occasionally, and
// topping somebody else's grab takes a truly premium hand.
func DecideBet(hand deck.Hand, hasGrabber bool, rnd rng.Generator) (int, bool) {
	score := handScore(hand)

	grab := false
	if score >= 8 {
		grab = true
	} else if score >= 5 && rnd.Intn(10) >= 6 {
		grab = true
	}

	if hasGrabber && grab && score < 10 {
		grab = false
	}

	multiplier := 1
	if score >= 12 {
		multiplier = 4
	} else if score >= 6 {
		multiplier = 2
	}

	return multiplier, grab
}

// DecidePlay chooses an AI seat's cards for the current trick. The second
// return value reports whether the play is a discard, which happens exactly
// when the seat cannot legally follow.
func DecidePlay(hand deck.Hand, target *Play, currentMax int, collectedCount int) ([]*deck.Card, bool) {
	options := ValidPlays(hand, target, currentMax)

	if target != nil && len(options) == 0 {
		// forced discard: dump the weakest cards
		sorted := hand.Clone()
		sort.Sort(sorted)
		return sorted[:len(target.Cards)], true
	}

	if target == nil {
		return chooseLead(options, collectedCount), false
	}

	// follow as cheaply as possible
	sortOptionsByStrength(options)
	return options[0], false
}

// chooseLead picks a leading play: triples when far from the first reward
// tier, strong pairs when available, weak singles once the pile is safe, then
// any pair, then the weakest option.
func chooseLead(options [][]*deck.Card, collectedCount int) []*deck.Card {
	var pairs, triples [][]*deck.Card
	for _, opt := range options {
		switch len(opt) {
		case 2:
			pairs = append(pairs, opt)
		case 3:
			triples = append(triples, opt)
		}
	}

	if smallThreshold-collectedCount > 3 && len(triples) > 0 {
		return triples[0]
	}

	var strongPairs [][]*deck.Card
	for _, p := range pairs {
		if CalculateCombination(p).Strength >= strongPairStrength {
			strongPairs = append(strongPairs, p)
		}
	}

	if len(strongPairs) > 0 {
		sortOptionsByStrength(strongPairs)
		return strongPairs[len(strongPairs)-1]
	}

	if collectedCount >= mediumThreshold {
		var singles [][]*deck.Card
		for _, opt := range options {
			if len(opt) == 1 {
				singles = append(singles, opt)
			}
		}

		if len(singles) > 0 {
			sortOptionsByStrength(singles)
			return singles[0]
		}
	}

	if len(pairs) > 0 {
		return pairs[0]
	}

	sortOptionsByStrength(options)
	return options[0]
}

// EvaluateKouLe decides whether an AI seat accepts a dare or challenges it
func EvaluateKouLe(hand deck.Hand, collectedCount int) KouLeResponse {
	top := 0
	for _, c := range hand {
		if c.Strength >= topCardStrength {
			top++
		}
	}

	pairs := 0
	for _, opt := range ValidPlays(hand, nil, DiscardStrength) {
		if len(opt) == 2 {
			pairs++
		}
	}

	if top >= 2 || (collectedCount >= 6 && pairs >= 2) || collectedCount >= smallThreshold {
		return KouLeChallenge
	}

	return KouLeAgree
}

func sortOptionsByStrength(options [][]*deck.Card) {
	sort.SliceStable(options, func(i, j int) bool {
		return CalculateCombination(options[i]).Strength < CalculateCombination(options[j]).Strength
	})
}
