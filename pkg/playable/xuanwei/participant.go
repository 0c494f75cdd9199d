package xuanwei

import (
	"xuanwei-server/pkg/deck"
)

// participant tracks one seat's private state for the hand
type participant struct {
	PlayerID int64
	seat     Seat
	name     string
	isAI     bool

	hand      deck.Hand
	collected deck.Hand

	// pre-deal wager state
	multiplier int
	betPlaced  bool
}

func newParticipant(playerID int64, seat Seat, name string, isAI bool) *participant {
	p := &participant{
		PlayerID: playerID,
		seat:     seat,
		name:     name,
		isAI:     isAI,
	}

	p.newHand()
	return p
}

// newHand resets the per-hand state. Collected piles only grow during a hand
// and are cleared here, at hand start.
func (p *participant) newHand() {
	p.hand = make(deck.Hand, 0, cardsPerHand)
	p.collected = make(deck.Hand, 0, deck.Size)
	p.multiplier = 1
	p.betPlaced = false
}
