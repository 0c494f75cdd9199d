package xuanwei

import (
	"xuanwei-server/pkg/playable"
)

// placeBet applies a seat's one pre-deal wager: a personal multiplier and an
// optional grab for first-play advantage. Seats act once each in rotation
// starting at the dealt starter.
func (g *Game) placeBet(seat Seat, multiplier int, grab bool) error {
	if g.phase != PhaseBetting {
		return ErrWrongPhase
	}

	if g.betTurn != seat {
		return ErrIsNotPlayersTurn
	}

	p := g.participants[seat]
	if p.betPlaced {
		return ErrAlreadyBet
	}

	switch multiplier {
	case 1, 2, 4:
	default:
		return ErrInvalidMultiplier
	}

	p.multiplier = multiplier
	p.betPlaced = true

	if grab {
		if g.grabber == seatNone {
			g.grabMultiplier = 2
		} else if g.grabber != seat {
			// topping a grab doubles the table, never adds
			g.grabMultiplier *= 2
		}

		g.grabber = seat
		g.sendLogMessages(playable.SimpleLogMessage(p.PlayerID, "{} grabbed first play (table at %dx)", g.grabMultiplier))
	} else {
		g.sendLogMessages(playable.SimpleLogMessage(p.PlayerID, "{} bet %dx", multiplier))
	}

	for _, other := range g.participants {
		if !other.betPlaced {
			g.betTurn = g.betTurn.Next()
			return nil
		}
	}

	// everyone has acted; the grabber, if any, leads the first trick
	if g.grabber != seatNone {
		g.starter = g.grabber
	}

	g.turn = g.starter
	g.phase = PhasePlaying
	g.sendLogMessages(playable.SimpleLogMessage(g.participants[g.starter].PlayerID, "{} leads the first trick"))

	return nil
}
