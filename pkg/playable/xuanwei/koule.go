package xuanwei

import (
	"xuanwei-server/pkg/playable"
)

// KouLeResponse is a seat's answer to an outstanding dare
type KouLeResponse string

// valid responses to a dare
const (
	KouLeAgree     KouLeResponse = "agree"
	KouLeChallenge KouLeResponse = "challenge"
)

// ChallengeEvent records an accepted dare challenge. Events are append-only
// and consumed at settlement; they are never mutated after the fact.
type ChallengeEvent struct {
	Initiator            Seat `json:"initiator"`
	Challenger           Seat `json:"challenger"`
	CollectedAtChallenge int  `json:"collectedAtChallenge"`
	TargetCollected      int  `json:"targetCollected"`
}

// kouLeDecision tracks an in-flight dare. The two non-initiating seats
// answer one at a time, in rotation order starting after the initiator.
type kouLeDecision struct {
	initiator   Seat
	respondents [2]Seat
	responses   []KouLeResponse
}

func newKouLeDecision(initiator Seat) *kouLeDecision {
	return &kouLeDecision{
		initiator:   initiator,
		respondents: [2]Seat{initiator.Next(), initiator.Next().Next()},
	}
}

// currentRespondent returns the seat whose answer is due next, or false if
// every respondent has answered.
func (k *kouLeDecision) currentRespondent() (Seat, bool) {
	if len(k.responses) >= len(k.respondents) {
		return seatNone, false
	}

	return k.respondents[len(k.responses)], true
}

// initiateKouLe starts a dare. Only the current leader may dare, and only
// once per trick.
func (g *Game) initiateKouLe(seat Seat) error {
	if g.phase != PhasePlaying {
		return ErrWrongPhase
	}

	if g.turn != seat {
		return ErrIsNotPlayersTurn
	}

	if len(g.trick) > 0 {
		return ErrKouLeNotLeader
	}

	if g.kouLeUsedThisTrick {
		return ErrKouLeAlreadyUsed
	}

	g.kouLe = newKouLeDecision(seat)
	g.kouLeUsedThisTrick = true
	g.phase = PhaseKouLeDecision

	g.sendLogMessages(playable.SimpleLogMessage(g.participants[seat].PlayerID, "{} called Kou Le"))

	return nil
}

// respondKouLe records a seat's answer to the outstanding dare. A challenge
// ends the decision immediately and play resumes; if both respondents agree,
// the hand either settles on the spot or is voided and redealt.
func (g *Game) respondKouLe(seat Seat, response KouLeResponse) error {
	if g.phase != PhaseKouLeDecision || g.kouLe == nil {
		return ErrWrongPhase
	}

	expected, ok := g.kouLe.currentRespondent()
	if !ok || expected != seat {
		return ErrKouLeNotYourResponse
	}

	switch response {
	case KouLeAgree, KouLeChallenge:
	default:
		return ErrKouLeBadResponse
	}

	g.kouLe.responses = append(g.kouLe.responses, response)
	p := g.participants[seat]

	if response == KouLeChallenge {
		collected := len(p.collected)
		g.kouLeHistory = append(g.kouLeHistory, &ChallengeEvent{
			Initiator:            g.kouLe.initiator,
			Challenger:           seat,
			CollectedAtChallenge: collected,
			TargetCollected:      ChallengeTarget(collected),
		})

		g.sendLogMessages(playable.SimpleLogMessage(p.PlayerID, "{} challenged, must reach %d cards", ChallengeTarget(collected)))

		g.kouLe = nil
		g.phase = PhasePlaying
		return nil
	}

	g.sendLogMessages(playable.SimpleLogMessage(p.PlayerID, "{} agreed"))

	if _, more := g.kouLe.currentRespondent(); more {
		return nil
	}

	// unanimous agreement: settle if any seat already holds a reward,
	// otherwise the hand is void and is dealt again with the same starter
	g.kouLe = nil
	for _, other := range g.participants {
		if RewardCoins(len(other.collected)) > 0 {
			g.settle()
			return nil
		}
	}

	return g.redeal()
}
