package xuanwei

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"xuanwei-server/pkg/deck"
	"xuanwei-server/pkg/playable"
)

// testGame returns a dealt game with three human seats, south starting, and
// zero pacing delays so Tick-driven transitions fire immediately
func testGame(t *testing.T) *Game {
	t.Helper()

	g, err := NewGame(logrus.StandardLogger(), []int64{1, 2, 3}, Options{
		Starter:  int(SeatSouth),
		DeckSeed: 42,
	})
	assert.NoError(t, err)
	assert.NoError(t, g.Deal())

	return g
}

// skipBetting moves a dealt game into the playing phase with default wagers
func skipBetting(t *testing.T, g *Game) {
	t.Helper()

	seat := g.betTurn
	for i := 0; i < numSeats; i++ {
		assert.NoError(t, g.placeBet(seat, 1, false))
		seat = seat.Next()
	}

	assert.Equal(t, PhasePlaying, g.phase)
}

func newAction(action string, data map[string]interface{}) *playable.PayloadIn {
	return &playable.PayloadIn{
		Action:         action,
		AdditionalData: data,
	}
}

func setHand(g *Game, seat Seat, codes string) deck.Hand {
	hand := deck.Hand(deck.CardsFromString(codes))
	g.participants[seat].hand = hand
	return hand
}

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	g, err := NewGame(nil, []int64{1, 0, 3}, DefaultOptions())
	a.NoError(err)
	a.Equal("xuanwei", g.Name())
	a.False(g.participants[SeatSouth].isAI)
	a.True(g.participants[SeatWest].isAI)
	a.NotEmpty(g.participants[SeatWest].name)
	a.Equal(PhaseDealing, g.phase)

	_, err = NewGame(nil, []int64{1, 2}, DefaultOptions())
	a.EqualError(err, "expected 3 seats, got 2")

	_, err = NewGame(nil, []int64{1, 1, 2}, DefaultOptions())
	a.EqualError(err, "player 1 cannot occupy two seats")
}

func TestGame_Deal(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)

	a.Equal(PhaseBetting, g.phase)
	a.Equal(SeatSouth, g.betTurn)

	seen := make(map[string]bool)
	for _, p := range g.participants {
		a.Len(p.hand, cardsPerHand)
		a.False(p.hand.IsDead())
		for _, c := range p.hand {
			a.False(seen[c.ID])
			seen[c.ID] = true
		}
	}

	a.Len(seen, deck.Size)
}

func TestGame_Deal_sameSeedSameHands(t *testing.T) {
	a := assert.New(t)

	g1 := testGame(t)
	g2 := testGame(t)

	for i := 0; i < numSeats; i++ {
		a.Equal(g1.participants[i].hand.String(), g2.participants[i].hand.String())
	}
}

func TestGame_playCards_rotation(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)
	skipBetting(t, g)

	a.Equal(SeatSouth, g.turn)

	south := g.participants[SeatSouth].hand
	a.NoError(g.playCards(SeatSouth, []*deck.Card{south[0]}, false))

	// south -> east -> west, not array order
	a.Equal(SeatEast, g.turn)
}

func TestGame_playCards_rejections(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)

	south := g.participants[SeatSouth].hand

	// wrong phase
	a.Equal(ErrWrongPhase, g.playCards(SeatSouth, []*deck.Card{south[0]}, false))

	skipBetting(t, g)

	// out of turn
	east := g.participants[SeatEast].hand
	a.Equal(ErrIsNotPlayersTurn, g.playCards(SeatEast, []*deck.Card{east[0]}, false))

	// not the seat's card
	a.Equal(ErrCardNotInPlayersHand, g.playCards(SeatSouth, []*deck.Card{east[0]}, false))

	// duplicated card id
	a.Equal(ErrDuplicateCard, g.playCards(SeatSouth, []*deck.Card{south[0], south[0]}, false))

	// zero or too many cards
	a.Equal(ErrInvalidCombination, g.playCards(SeatSouth, nil, false))

	// leading with a non-combination
	mixed := deck.Hand(deck.CardsFromString("zur,mab"))
	g.participants[SeatSouth].hand = mixed
	a.Equal(ErrInvalidCombination, g.playCards(SeatSouth, mixed, false))

	// a discard needs a target
	a.Equal(ErrDiscardWithoutTarget, g.playCards(SeatSouth, []*deck.Card{mixed[0]}, true))

	// nothing above mutated state
	a.Equal(SeatSouth, g.turn)
	a.Empty(g.trick)
}

func TestGame_playCards_following(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)
	skipBetting(t, g)

	south := setHand(g, SeatSouth, "mar,zub")
	east := setHand(g, SeatEast, "err,zur,mab,mab")

	a.NoError(g.playCards(SeatSouth, []*deck.Card{south[0]}, false))

	// a pair cannot follow a single
	a.Equal(ErrCombinationMismatch, g.playCards(SeatEast, east[2:4], false))

	// a weaker single cannot follow
	a.Equal(ErrCombinationTooWeak, g.playCards(SeatEast, []*deck.Card{east[1]}, false))

	// holding a beating card, east may not discard
	a.Equal(ErrMustFollow, g.playCards(SeatEast, []*deck.Card{east[1]}, true))

	a.NoError(g.playCards(SeatEast, []*deck.Card{east[0]}, false))
	a.Equal(SeatWest, g.turn)
}

func TestGame_playCards_forcedDiscard(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)
	skipBetting(t, g)

	south := setHand(g, SeatSouth, "qur,qur,zub")
	east := setHand(g, SeatEast, "zur,mab,dw,erb")
	setHand(g, SeatWest, "zub,zub,mar,mab")

	// south leads a pair; east has no pair at all
	a.NoError(g.playCards(SeatSouth, south[0:2], false))

	// discard count must match the target
	a.Equal(ErrDiscardCount, g.playCards(SeatEast, east[0:1], true))

	// east's strong single is irrelevant against a pair
	a.NoError(g.playCards(SeatEast, east[0:2], true))
	a.Equal(Discard, g.trick[1].Type)
	a.Equal(DiscardStrength, g.trick[1].Strength)
}

func TestGame_trickResolution(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)
	skipBetting(t, g)

	south := setHand(g, SeatSouth, "zur,zub")
	east := setHand(g, SeatEast, "qub,mar")
	west := setHand(g, SeatWest, "mab,erb")

	a.NoError(g.playCards(SeatSouth, south[0:1], false))
	a.NoError(g.playCards(SeatEast, east[0:1], false))
	a.NoError(g.playCards(SeatWest, west[0:1], false))

	a.Equal(PhaseRoundOver, g.phase)
	a.NotNil(g.pendingAction)
	a.Equal(actionResolveTrick, g.pendingAction.action)

	didUpdate, err := g.Tick()
	a.NoError(err)
	a.True(didUpdate)

	// east's qu takes the trick and leads next
	a.Equal(PhasePlaying, g.phase)
	a.Equal(SeatEast, g.turn)
	a.Equal(SeatEast, g.starter)
	a.Len(g.participants[SeatEast].collected, 3)
	a.Empty(g.trick)
	a.Len(g.roundHistory, 1)
}

func TestGame_trickResolutionIsIdempotent(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)
	skipBetting(t, g)

	south := setHand(g, SeatSouth, "zur,zub")
	east := setHand(g, SeatEast, "qub,mar")
	west := setHand(g, SeatWest, "mab,erb")

	a.NoError(g.playCards(SeatSouth, south[0:1], false))
	a.NoError(g.playCards(SeatEast, east[0:1], false))
	a.NoError(g.playCards(SeatWest, west[0:1], false))

	g.resolveTrick()
	a.Len(g.participants[SeatEast].collected, 3)

	// resolving again must be a no-op
	g.resolveTrick()
	a.Len(g.participants[SeatEast].collected, 3)
	a.Len(g.roundHistory, 1)

	// resolving an incomplete trick must be a no-op too
	a.NoError(g.playCards(SeatEast, east[1:2], false))
	g.phase = PhaseRoundOver
	g.resolveTrick()
	a.Len(g.trick, 1)
	g.phase = PhasePlaying
}

func TestGame_lastTrickSettles(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)
	skipBetting(t, g)

	south := setHand(g, SeatSouth, "zur")
	east := setHand(g, SeatEast, "qub")
	west := setHand(g, SeatWest, "mab")

	a.NoError(g.playCards(SeatSouth, south[0:1], false))
	a.NoError(g.playCards(SeatEast, east[0:1], false))
	a.NoError(g.playCards(SeatWest, west[0:1], false))

	g.resolveTrick()
	a.Equal(PhaseSettlement, g.phase)
	a.NotNil(g.result)

	// end-of-game details only after the end delay fires
	_, over := g.GetEndOfGameDetails()
	a.False(over)

	didUpdate, err := g.Tick()
	a.NoError(err)
	a.True(didUpdate)
	a.True(g.done)

	details, over := g.GetEndOfGameDetails()
	a.True(over)
	a.NotNil(details)
	a.Len(details.BalanceAdjustments, numSeats)
}

func TestGame_fullAIGame_cardConservation(t *testing.T) {
	a := assert.New(t)

	g, err := NewGame(logrus.StandardLogger(), []int64{0, 0, 0}, Options{
		Starter:  int(SeatSouth),
		DeckSeed: 7,
	})
	a.NoError(err)
	a.NoError(g.Deal())

	for i := 0; i < 10000 && !g.done; i++ {
		_, err := g.Tick()
		a.NoError(err)
	}

	a.True(g.done)

	total := 0
	seen := make(map[string]bool)
	for _, p := range g.participants {
		a.Empty(p.hand)
		total += len(p.collected)
		for _, c := range p.collected {
			a.False(seen[c.ID], "card in two collected piles")
			seen[c.ID] = true
		}
	}

	a.Equal(deck.Size, total)
	a.NotNil(g.result)

	net := 0
	for _, res := range g.result.Results {
		net += res.Net
	}
	a.Zero(net)
}

func TestGame_Action(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)

	_, _, err := g.Action(99, newAction("bet", nil))
	a.Equal(ErrPlayerNotSeated, err)

	_, _, err = g.Action(1, newAction("dance", nil))
	a.EqualError(err, "unknown action: dance")

	resp, didUpdate, err := g.Action(1, newAction("bet", map[string]interface{}{
		"multiplier": float64(2),
		"grab":       true,
	}))
	a.NoError(err)
	a.True(didUpdate)
	a.NotNil(resp)
	a.Equal(2, g.participants[SeatSouth].multiplier)
	a.Equal(SeatSouth, g.grabber)
}
