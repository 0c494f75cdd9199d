package xuanwei

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"xuanwei-server/pkg/deck"
)

func stateData(t *testing.T, g *Game, playerID int64) *Response {
	t.Helper()

	res, err := g.GetPlayerState(playerID)
	assert.NoError(t, err)
	assert.Equal(t, "game", res.Key)
	assert.Equal(t, "xuanwei", res.Value)

	return res.Data.(*Response)
}

func TestGame_GetPlayerState_ownHandOnly(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)

	data := stateData(t, g, 1)
	a.Equal(SeatSouth, data.Seat)
	a.Len(data.Hand, cardsPerHand)

	// the public state never carries cards, only counts
	for _, seat := range data.GameState.Seats {
		a.Equal(cardsPerHand, seat.CardsInHand)
		a.Equal(0, seat.CardsCollected)
	}

	// a spectator sees no hand and no seat
	spectator := stateData(t, g, 99)
	a.Equal(seatNone, spectator.Seat)
	a.Empty(spectator.Hand)
}

func TestGame_GetPlayerState_discardsMasked(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)
	skipBetting(t, g)

	south := setHand(g, SeatSouth, "qur,qur,zub")
	east := setHand(g, SeatEast, "zur,mab,dw,erb")
	setHand(g, SeatWest, "zub,zub,mar,mab")

	a.NoError(g.playCards(SeatSouth, south[0:2], false))
	a.NoError(g.playCards(SeatEast, east[0:2], true))

	// east sees its own discards
	eastView := stateData(t, g, 3)
	a.Equal(deck.Zu, eastView.GameState.Trick[1].Cards[0].Rank)

	// everyone else sees placeholders with no identity
	southView := stateData(t, g, 1)
	discard := southView.GameState.Trick[1]
	a.Equal(Discard, discard.Type)
	a.Len(discard.Cards, 2)
	for _, c := range discard.Cards {
		a.Empty(c.ID)
		a.Empty(c.Rank)
		a.Zero(c.Strength)
	}

	// the open play is visible to everybody
	a.Equal(deck.Qu, southView.GameState.Trick[0].Cards[0].Rank)
	a.Equal(deck.Qu, eastView.GameState.Trick[0].Cards[0].Rank)
}

func TestGame_GetPlayerState_roundHistoryMasked(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)
	skipBetting(t, g)

	south := setHand(g, SeatSouth, "qur,qur,zub")
	east := setHand(g, SeatEast, "zur,mab,dw,erb")
	west := setHand(g, SeatWest, "zub,zub,mar,mab")

	a.NoError(g.playCards(SeatSouth, south[0:2], false))
	a.NoError(g.playCards(SeatEast, east[0:2], true))
	a.NoError(g.playCards(SeatWest, west[0:2], true))

	didUpdate, err := g.Tick()
	a.NoError(err)
	a.True(didUpdate)

	southView := stateData(t, g, 1)
	a.Empty(southView.GameState.Trick)
	a.Equal(1, southView.GameState.Tricks)

	if a.Len(southView.GameState.RoundHistory, 1) {
		archived := southView.GameState.RoundHistory[0]
		a.Len(archived, numSeats)

		// the winning pair stays public after the trick resolves
		a.Equal(Pair, archived[0].Type)
		a.Equal(deck.Qu, archived[0].Cards[0].Rank)

		// archived discards keep their count but not their identity
		a.Equal(Discard, archived[1].Type)
		a.Len(archived[1].Cards, 2)
		for _, c := range archived[1].Cards {
			a.Empty(c.ID)
			a.Empty(c.Rank)
			a.Zero(c.Strength)
		}
	}

	// the discarding seat still sees its own archived cards, but nobody
	// else's
	eastView := stateData(t, g, 3)
	a.Equal(deck.Zu, eastView.GameState.RoundHistory[0][1].Cards[0].Rank)
	for _, c := range eastView.GameState.RoundHistory[0][2].Cards {
		a.Empty(c.Rank)
	}

	encoded, err := json.Marshal(southView.GameState)
	a.NoError(err)
	a.Contains(string(encoded), `"qu"`)
}

func TestGame_GetPlayerState_flags(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)

	// no kou le outside the playing phase
	data := stateData(t, g, 1)
	a.False(data.CanKouLe)

	skipBetting(t, g)

	data = stateData(t, g, 1)
	a.True(data.CanKouLe)

	// only the leader gets the option
	data = stateData(t, g, 3)
	a.False(data.CanKouLe)

	south := setHand(g, SeatSouth, "mar,zub")
	setHand(g, SeatEast, "err,zur")
	a.NoError(g.playCards(SeatSouth, south[0:1], false))

	// east can beat the lead, so it must follow
	data = stateData(t, g, 3)
	a.False(data.CanKouLe)
	a.True(data.MustFollow)
}

func TestGame_GetPlayerState_kouLeAndSettlement(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)
	skipBetting(t, g)

	a.NoError(g.initiateKouLe(SeatSouth))

	data := stateData(t, g, 1)
	a.Equal(PhaseKouLeDecision, data.GameState.Phase)
	a.Equal(SeatSouth, data.GameState.KouLeInitiator)
	a.Equal(SeatEast, data.GameState.KouLeAwaiting)

	g.participants[SeatSouth].collected = deck.Hand(deck.CardsFromString("zur,zub,mar,mab,qur,qub,err,erb,xw"))
	a.NoError(g.respondKouLe(SeatEast, KouLeAgree))
	a.NoError(g.respondKouLe(SeatWest, KouLeAgree))

	data = stateData(t, g, 1)
	a.Equal(PhaseSettlement, data.GameState.Phase)
	a.NotNil(data.GameState.Settlement)
}

func TestGame_GetPlayerState_serializes(t *testing.T) {
	a := assert.New(t)
	g := testGame(t)

	res, err := g.GetPlayerState(1)
	a.NoError(err)

	encoded, err := json.Marshal(res)
	a.NoError(err)
	a.Contains(string(encoded), `"gameState"`)
}
