package xuanwei

import (
	"xuanwei-server/pkg/deck"
	"xuanwei-server/pkg/playable"
)

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	Phase          Phase                    `json:"phase"`
	Seats          [numSeats]*GameStateSeat `json:"seats"`
	Trick          []*PlayState             `json:"trick"`
	RoundHistory   [][]*PlayState           `json:"roundHistory"`
	Tricks         int                      `json:"tricks"`
	Starter        Seat                     `json:"starter"`
	CurrentTurn    Seat                     `json:"currentTurn"`
	BetTurn        Seat                     `json:"betTurn"`
	Grabber        Seat                     `json:"grabber"`
	GrabMultiplier int                      `json:"grabMultiplier"`
	KouLeInitiator Seat                     `json:"kouLeInitiator"`
	KouLeAwaiting  Seat                     `json:"kouLeAwaiting"`
	KouLeHistory   []*ChallengeEvent        `json:"kouLeHistory"`
	Settlement     *Settlement              `json:"settlement"`
	IsGameOver     bool                     `json:"isGameOver"`
}

// GameStateSeat is the public state of an individual seat
// This is safe for all players to see
type GameStateSeat struct {
	Seat           Seat   `json:"seat"`
	PlayerID       int64  `json:"playerId"`
	Name           string `json:"name"`
	IsAI           bool   `json:"isAI"`
	CardsInHand    int    `json:"cardsInHand"`
	CardsCollected int    `json:"cardsCollected"`
	Multiplier     int    `json:"multiplier"`
	BetPlaced      bool   `json:"betPlaced"`
}

// PlayState is a play on the table. Discarded cards are masked for everyone
// but the seat that discarded them.
type PlayState struct {
	Seat     Seat            `json:"seat"`
	Type     CombinationType `json:"type"`
	Strength int             `json:"strength"`
	Cards    []*deck.Card    `json:"cards"`
}

// Response is the response format for this game
type Response struct {
	GameState *GameState `json:"gameState"`
	// Data below is player specific, and must only be shown to the intended player
	Seat       Seat      `json:"seat"`
	Hand       deck.Hand `json:"hand"`
	CanKouLe   bool      `json:"canKouLe"`
	MustFollow bool      `json:"mustFollow"`
}

// maskedCard stands in for a card the recipient may not see
func maskedCard() *deck.Card {
	return &deck.Card{Color: deck.NoColor}
}

func (g *Game) getGameState(viewer Seat) *GameState {
	seats := [numSeats]*GameStateSeat{}
	for i, p := range g.participants {
		seats[i] = &GameStateSeat{
			Seat:           p.seat,
			PlayerID:       p.PlayerID,
			Name:           p.name,
			IsAI:           p.isAI,
			CardsInHand:    len(p.hand),
			CardsCollected: len(p.collected),
			Multiplier:     p.multiplier,
			BetPlaced:      p.betPlaced,
		}
	}

	trick := make([]*PlayState, len(g.trick))
	for i, play := range g.trick {
		trick[i] = maskPlay(play, viewer)
	}

	// resolved tricks stay in the snapshot; their discards are masked the
	// same way as live ones
	history := make([][]*PlayState, len(g.roundHistory))
	for i, resolved := range g.roundHistory {
		plays := make([]*PlayState, len(resolved))
		for j, play := range resolved {
			plays[j] = maskPlay(play, viewer)
		}

		history[i] = plays
	}

	kouLeInitiator, kouLeAwaiting := seatNone, seatNone
	if g.kouLe != nil {
		kouLeInitiator = g.kouLe.initiator
		if cur, ok := g.kouLe.currentRespondent(); ok {
			kouLeAwaiting = cur
		}
	}

	return &GameState{
		Phase:          g.phase,
		Seats:          seats,
		Trick:          trick,
		RoundHistory:   history,
		Tricks:         len(g.roundHistory),
		Starter:        g.starter,
		CurrentTurn:    g.turn,
		BetTurn:        g.betTurn,
		Grabber:        g.grabber,
		GrabMultiplier: g.grabMultiplier,
		KouLeInitiator: kouLeInitiator,
		KouLeAwaiting:  kouLeAwaiting,
		KouLeHistory:   g.kouLeHistory,
		Settlement:     g.result,
		IsGameOver:     g.done,
	}
}

// maskPlay copies a play for the viewer, hiding discarded cards that are not
// the viewer's own
func maskPlay(play *Play, viewer Seat) *PlayState {
	cards := make([]*deck.Card, len(play.Cards))
	for i, c := range play.Cards {
		if play.Type == Discard && play.Seat != viewer {
			cards[i] = maskedCard()
		} else {
			cards[i] = c
		}
	}

	return &PlayState{
		Seat:     play.Seat,
		Type:     play.Type,
		Strength: play.Strength,
		Cards:    cards,
	}
}

// GetPlayerState returns the state for the given player.
// The state never contains another seat's hand or the identity of another
// seat's discards.
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	seat, ok := g.idToSeat[playerID]
	viewer := seatNone
	var hand deck.Hand
	if ok {
		viewer = seat
		hand = g.participants[seat].hand.Clone()
	}

	canKouLe := ok &&
		g.phase == PhasePlaying &&
		g.turn == seat &&
		len(g.trick) == 0 &&
		!g.kouLeUsedThisTrick

	mustFollow := false
	if ok && g.phase == PhasePlaying && g.turn == seat {
		if target := g.targetPlay(); target != nil {
			mustFollow = len(ValidPlays(g.participants[seat].hand, target, g.currentMaxStrength())) > 0
		}
	}

	return &playable.Response{
		Key:   "game",
		Value: g.Name(),
		Data: &Response{
			GameState:  g.getGameState(viewer),
			Seat:       viewer,
			Hand:       hand,
			CanKouLe:   canKouLe,
			MustFollow: mustFollow,
		},
	}, nil
}
