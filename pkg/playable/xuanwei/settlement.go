package xuanwei

// RewardTier is the payout bracket a seat's collected pile falls in
type RewardTier int

// reward tiers by collected-card count
const (
	TierNone RewardTier = iota
	TierSmall
	TierMedium
	TierLarge
)

// collected-card thresholds for the reward tiers
const (
	smallThreshold  = 9
	mediumThreshold = 15
	largeThreshold  = 18
)

// String returns a printable tier name
func (t RewardTier) String() string {
	switch t {
	case TierSmall:
		return "a small reward"
	case TierMedium:
		return "a medium reward"
	case TierLarge:
		return "a large reward"
	}

	return "no reward"
}

// TierForCount returns the reward tier for a collected-card count
func TierForCount(count int) RewardTier {
	switch {
	case count >= largeThreshold:
		return TierLarge
	case count >= mediumThreshold:
		return TierMedium
	case count >= smallThreshold:
		return TierSmall
	}

	return TierNone
}

// Coins returns the base coin value the tier pays
func (t RewardTier) Coins() int {
	return int(t)
}

// RewardCoins returns the base coin value for a collected-card count
func RewardCoins(count int) int {
	return TierForCount(count).Coins()
}

// ChallengeTarget returns the collected-card count a challenger must reach:
// the threshold of the next tier strictly above the count's current tier,
// capped at the top tier.
func ChallengeTarget(count int) int {
	switch {
	case count < smallThreshold:
		return smallThreshold
	case count < mediumThreshold:
		return mediumThreshold
	}

	return largeThreshold
}

// SeatResult is one seat's line in the settlement
type SeatResult struct {
	Seat            Seat       `json:"seat"`
	Collected       int        `json:"collected"`
	Tier            RewardTier `json:"tier"`
	Coins           int        `json:"coins"`
	Multiplier      int        `json:"multiplier"`
	FinalMultiplier int        `json:"finalMultiplier"`
	Net             int        `json:"net"`
}

// Settlement is the full payout for a finished hand
type Settlement struct {
	Results        [numSeats]*SeatResult `json:"results"`
	GrabMultiplier int                   `json:"grabMultiplier"`
}

// ComputeSettlement derives the payout for a hand. It is pure: the result is a
// function of the inputs only, and may be recomputed at any time.
//
// Each winning seat (coins > 0) collects coins × its own final multiplier from
// every zero-coin seat; each zero-coin seat pays every winner coins × the
// winner's final multiplier. A challenger that missed its target additionally
// pays the dare's initiator 2 × the initiator's coins × final multiplier,
// provided the initiator earned coins at all.
func ComputeSettlement(collected [numSeats]int, multipliers [numSeats]int, grabMultiplier int, history []*ChallengeEvent) *Settlement {
	s := &Settlement{GrabMultiplier: grabMultiplier}

	for i := 0; i < numSeats; i++ {
		tier := TierForCount(collected[i])
		s.Results[i] = &SeatResult{
			Seat:            Seat(i),
			Collected:       collected[i],
			Tier:            tier,
			Coins:           tier.Coins(),
			Multiplier:      multipliers[i],
			FinalMultiplier: multipliers[i] * grabMultiplier,
		}
	}

	for _, winner := range s.Results {
		if winner.Coins == 0 {
			continue
		}

		payout := winner.Coins * winner.FinalMultiplier
		for _, loser := range s.Results {
			if loser.Coins > 0 {
				continue
			}

			winner.Net += payout
			loser.Net -= payout
		}
	}

	for _, event := range history {
		initiator := s.Results[event.Initiator]
		challenger := s.Results[event.Challenger]

		if initiator.Coins == 0 {
			continue
		}

		if challenger.Collected >= event.TargetCollected {
			continue
		}

		penalty := 2 * initiator.Coins * initiator.FinalMultiplier
		initiator.Net += penalty
		challenger.Net -= penalty
	}

	return s
}
