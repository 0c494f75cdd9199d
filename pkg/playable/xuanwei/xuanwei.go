package xuanwei

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"xuanwei-server/internal/rng"
	"xuanwei-server/internal/util"
	"xuanwei-server/pkg/deck"
	"xuanwei-server/pkg/playable"
)

// Phase is the current stage of the hand
type Phase string

// phase constants
const (
	PhaseDealing       Phase = "dealing"
	PhaseBetting       Phase = "betting"
	PhasePlaying       Phase = "playing"
	PhaseRoundOver     Phase = "roundOver"
	PhaseKouLeDecision Phase = "kouLeDecision"
	PhaseSettlement    Phase = "settlement"
)

// cardsPerHand is how many cards each seat is dealt
const cardsPerHand = deck.Size / numSeats

// seatNone marks the absence of a seat (e.g., nobody grabbed)
const seatNone Seat = -1

// Options configures a game of Xuanwei
type Options struct {
	// Starter is the dealt starter seat; pass -1 to select at random
	Starter int

	// DeckSeed seeds the shuffle; 0 uses a time-based seed
	DeckSeed int64

	// SettleDelay is the pause between a completed trick and its resolution
	SettleDelay time.Duration

	// AIDelay paces AI decisions so remote players can follow along
	AIDelay time.Duration

	// EndDelay is the pause between settlement and the game finishing
	EndDelay time.Duration
}

// DefaultOptions returns the standard pacing options
func DefaultOptions() Options {
	return Options{
		Starter:     -1,
		SettleDelay: time.Millisecond * 800,
		AIDelay:     time.Millisecond * 1500,
		EndDelay:    time.Second * 5,
	}
}

type tickAction int

const (
	actionResolveTrick tickAction = iota
	actionAIAct
	actionEndGame
)

type pendingAction struct {
	action tickAction
	after  time.Time
}

// Game is a hand of Xuanwei. Exactly one canonical Game exists per table; it
// must only be mutated from the dealer's run loop.
type Game struct {
	options Options
	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage

	participants [numSeats]*participant
	idToSeat     map[int64]Seat

	phase        Phase
	deck         *deck.Deck
	trick        []*Play
	roundHistory [][]*Play
	turn         Seat
	starter      Seat

	betTurn        Seat
	grabber        Seat
	grabMultiplier int

	kouLe              *kouLeDecision
	kouLeUsedThisTrick bool
	kouLeHistory       []*ChallengeEvent

	result *Settlement

	pendingAction *pendingAction
	rnd           rng.Generator
	done          bool
}

// NewGame returns a new Xuanwei game.
// playerIDs must contain exactly three entries in seat order; an entry of 0
// marks the seat as AI-controlled.
func NewGame(logger logrus.FieldLogger, playerIDs []int64, opts Options) (*Game, error) {
	if len(playerIDs) != numSeats {
		return nil, fmt.Errorf("expected %d seats, got %d", numSeats, len(playerIDs))
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	g := &Game{
		options:        opts,
		logger:         logger,
		logChan:        make(chan []*playable.LogMessage, 256),
		idToSeat:       make(map[int64]Seat),
		phase:          PhaseDealing,
		grabber:        seatNone,
		grabMultiplier: 1,
		rnd:            rng.Crypto{},
	}

	for i, pid := range playerIDs {
		seat := Seat(i)
		if pid > 0 {
			if _, found := g.idToSeat[pid]; found {
				return nil, fmt.Errorf("player %d cannot occupy two seats", pid)
			}

			g.participants[seat] = newParticipant(pid, seat, fmt.Sprintf("Player %d", pid), false)
			g.idToSeat[pid] = seat
		} else {
			g.participants[seat] = newParticipant(0, seat, util.GetRandomName(), true)
		}
	}

	starter := Seat(opts.Starter)
	if !starter.Valid() {
		starter = Seat(g.rnd.Intn(numSeats))
	}

	g.starter = starter
	return g, nil
}

// Deal shuffles and deals the hand, then opens the betting phase.
// A seat dealt neither an Er nor a Xiang voids the deal; the cards are
// reshuffled before anybody sees them.
func (g *Game) Deal() error {
	seed := g.options.DeckSeed

	for attempt := 0; ; attempt++ {
		d := deck.New()
		if seed == 0 {
			d.Shuffle(0)
		} else {
			// deterministic seeds still need to escape a dead deal
			d.Shuffle(seed + int64(attempt))
		}

		for _, p := range g.participants {
			p.newHand()
		}

		for i := 0; i < cardsPerHand; i++ {
			seat := g.starter
			for s := 0; s < numSeats; s++ {
				card, err := d.Draw()
				if err != nil {
					return err
				}

				g.participants[seat].hand.AddCard(card)
				seat = seat.Next()
			}
		}

		dead := false
		for _, p := range g.participants {
			if p.hand.IsDead() {
				dead = true
				break
			}
		}

		if !dead {
			g.deck = d
			break
		}

		g.logger.WithField("attempt", attempt).Debug("dead hand dealt, reshuffling")
	}

	g.trick = nil
	g.roundHistory = nil
	g.kouLe = nil
	g.kouLeUsedThisTrick = false
	g.kouLeHistory = nil
	g.result = nil
	g.pendingAction = nil
	g.grabber = seatNone
	g.grabMultiplier = 1
	g.turn = g.starter
	g.betTurn = g.starter
	g.phase = PhaseBetting

	g.sendLogMessages(playable.SimpleLogMessage(0, "The cards have been dealt; %s bets first", g.participants[g.starter].name))
	return nil
}

// Name returns "xuanwei"
func (g *Game) Name() string {
	return "xuanwei"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Action performs an intent for the given player.
// A rejected intent never mutates canonical state; the error is only shown to
// the caller.
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (*playable.Response, bool, error) {
	seat, ok := g.idToSeat[playerID]
	if !ok {
		return nil, false, ErrPlayerNotSeated
	}

	if g.done {
		return nil, false, ErrGameOver
	}

	log := g.logger.WithFields(logrus.Fields{
		"playerID": playerID,
		"seat":     seat.String(),
	})

	switch message.Action {
	case "play":
		isDiscard, _ := message.AdditionalData.GetBool("discard")
		log.WithField("cards", deck.CardsToString(message.Cards)).WithField("discard", isDiscard).Debug("play cards")
		if err := g.playCards(seat, message.Cards, isDiscard); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	case "bet":
		multiplier, _ := message.AdditionalData.GetInt("multiplier")
		grab, _ := message.AdditionalData.GetBool("grab")
		log.WithField("multiplier", multiplier).WithField("grab", grab).Debug("place bet")
		if err := g.placeBet(seat, multiplier, grab); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	case "initiateKouLe":
		log.Debug("initiate kou le")
		if err := g.initiateKouLe(seat); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	case "respondKouLe":
		response, _ := message.AdditionalData.GetString("response")
		log.WithField("response", response).Debug("respond kou le")
		if err := g.respondKouLe(seat, KouLeResponse(response)); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	default:
		return nil, false, fmt.Errorf("unknown action: %s", message.Action)
	}
}

// targetPlay returns the play the current seat must follow, or nil when leading
func (g *Game) targetPlay() *Play {
	if len(g.trick) == 0 {
		return nil
	}

	return g.trick[0]
}

// currentMaxStrength returns the strength to beat in the current trick
func (g *Game) currentMaxStrength() int {
	max := DiscardStrength
	for _, p := range g.trick {
		if p.Strength > max {
			max = p.Strength
		}
	}

	return max
}

// playCards validates and applies a play intent for the seat
func (g *Game) playCards(seat Seat, cards []*deck.Card, isDiscard bool) error {
	if g.phase != PhasePlaying {
		return ErrWrongPhase
	}

	if g.turn != seat {
		return ErrIsNotPlayersTurn
	}

	if len(cards) == 0 || len(cards) > 3 {
		return ErrInvalidCombination
	}

	p := g.participants[seat]

	// resolve the submitted cards against the canonical hand; clients only
	// need to send IDs
	seen := make(map[string]bool)
	handCards := make([]*deck.Card, len(cards))
	for i, c := range cards {
		if seen[c.ID] {
			return ErrDuplicateCard
		}
		seen[c.ID] = true

		hc := p.hand.CardByID(c.ID)
		if hc == nil {
			return ErrCardNotInPlayersHand
		}

		handCards[i] = hc
	}

	target := g.targetPlay()
	currentMax := g.currentMaxStrength()

	combo := CalculateCombination(handCards)
	if isDiscard {
		if target == nil {
			return ErrDiscardWithoutTarget
		}

		if len(handCards) != len(target.Cards) {
			return ErrDiscardCount
		}

		// must-follow: a seat holding a legal beating combination may never discard
		if len(ValidPlays(p.hand, target, currentMax)) > 0 {
			return ErrMustFollow
		}

		combo = Combination{Type: Discard, Strength: DiscardStrength}
	} else if target == nil {
		if combo.Type == Discard {
			return ErrInvalidCombination
		}
	} else {
		if combo.Type != target.Type || len(handCards) != len(target.Cards) {
			return ErrCombinationMismatch
		}

		if combo.Strength <= currentMax {
			return ErrCombinationTooWeak
		}
	}

	for _, c := range handCards {
		p.hand.Remove(c)
	}

	g.trick = append(g.trick, &Play{
		Seat:     seat,
		Cards:    handCards,
		Type:     combo.Type,
		Strength: combo.Strength,
	})

	if combo.Type == Discard {
		g.sendLogMessages(playable.SimpleLogMessage(p.PlayerID, "{} discarded %d", len(handCards)))
	} else {
		g.sendLogMessages(playable.SimpleLogMessage(p.PlayerID, "{} played a %s", combo.Type))
	}

	if len(g.trick) == numSeats {
		g.phase = PhaseRoundOver
		g.schedule(actionResolveTrick, g.options.SettleDelay)
	} else {
		g.turn = seat.Next()
	}

	return nil
}

// resolveTrick moves the completed trick to the winner's collected pile.
// It is a guarded no-op on an incomplete or already-resolved trick.
func (g *Game) resolveTrick() {
	if g.phase != PhaseRoundOver || len(g.trick) != numSeats {
		return
	}

	winning := g.trick[0]
	for _, p := range g.trick[1:] {
		if p.Strength > winning.Strength {
			winning = p
		}
	}

	winner := g.participants[winning.Seat]
	for _, play := range g.trick {
		for _, c := range play.Cards {
			winner.collected.AddCard(c)
		}
	}

	g.roundHistory = append(g.roundHistory, g.trick)
	g.trick = nil
	g.kouLeUsedThisTrick = false
	g.starter = winning.Seat
	g.turn = winning.Seat

	g.sendLogMessages(playable.SimpleLogMessage(winner.PlayerID, "{} won the trick"))

	for _, p := range g.participants {
		if len(p.hand) > 0 {
			g.phase = PhasePlaying
			return
		}
	}

	g.settle()
}

// settle recomputes the settlement from scratch and schedules the game end
func (g *Game) settle() {
	collected, multipliers := [numSeats]int{}, [numSeats]int{}
	for i, p := range g.participants {
		collected[i] = len(p.collected)
		multipliers[i] = p.multiplier
	}

	g.result = ComputeSettlement(collected, multipliers, g.grabMultiplier, g.kouLeHistory)
	g.phase = PhaseSettlement

	messages := make([]*playable.LogMessage, 0, numSeats)
	for i, res := range g.result.Results {
		p := g.participants[i]
		messages = append(messages, playable.SimpleLogMessage(p.PlayerID, "{} collected %d cards for %s (%+d coins)", res.Collected, res.Tier, res.Net))
	}
	g.sendLogMessages(messages...)

	g.schedule(actionEndGame, g.options.EndDelay)
}

// redeal voids the current hand and starts over with the same starter
func (g *Game) redeal() error {
	g.sendLogMessages(playable.SimpleLogMessage(0, "Everyone agreed to kou le with no seat at a reward tier; the hand is void and will be redealt"))
	return g.Deal()
}

// GetEndOfGameDetails returns the star-coin adjustments once the hand is done
func (g *Game) GetEndOfGameDetails() (*playable.GameOverDetails, bool) {
	if !g.done || g.result == nil {
		return nil, false
	}

	adjustments := make(map[int64]int)
	for i, p := range g.participants {
		if p.PlayerID > 0 {
			adjustments[p.PlayerID] = g.result.Results[i].Net
		}
	}

	return &playable.GameOverDetails{
		BalanceAdjustments: adjustments,
		Log:                g.result,
	}, true
}

// Interval determines how often Tick() should be called
func (g *Game) Interval() time.Duration {
	return time.Millisecond * 250
}

// Tick runs deferred transitions (trick resolution, game end) and polls AI
// seats that are due to act
func (g *Game) Tick() (bool, error) {
	if g.pendingAction != nil {
		if time.Now().Before(g.pendingAction.after) {
			return false, nil
		}

		action := g.pendingAction.action
		g.pendingAction = nil

		switch action {
		case actionResolveTrick:
			g.resolveTrick()
			return true, nil
		case actionAIAct:
			if err := g.aiAct(); err != nil {
				return false, err
			}

			return true, nil
		case actionEndGame:
			g.done = true
			return true, nil
		default:
			panic(fmt.Sprintf("unknown tick action: %d", action))
		}
	}

	if _, ok := g.awaitingAISeat(); ok {
		g.schedule(actionAIAct, g.options.AIDelay)
	}

	return false, nil
}

// awaitingAISeat returns the AI seat currently holding up the game, if any
func (g *Game) awaitingAISeat() (Seat, bool) {
	var seat Seat
	switch g.phase {
	case PhaseBetting:
		seat = g.betTurn
	case PhasePlaying:
		seat = g.turn
	case PhaseKouLeDecision:
		cur, ok := g.kouLe.currentRespondent()
		if !ok {
			return 0, false
		}

		seat = cur
	default:
		return 0, false
	}

	if g.participants[seat].isAI {
		return seat, true
	}

	return 0, false
}

// aiAct performs the decision for the AI seat that is due to act.
// The state may have moved on since the action was scheduled, so the decision
// point is re-checked and a stale trigger is a no-op.
func (g *Game) aiAct() error {
	seat, ok := g.awaitingAISeat()
	if !ok {
		return nil
	}

	p := g.participants[seat]

	switch g.phase {
	case PhaseBetting:
		multiplier, grab := DecideBet(p.hand, g.grabber != seatNone, g.rnd)
		return g.placeBet(seat, multiplier, grab)
	case PhasePlaying:
		cards, isDiscard := DecidePlay(p.hand, g.targetPlay(), g.currentMaxStrength(), len(p.collected))
		return g.playCards(seat, cards, isDiscard)
	case PhaseKouLeDecision:
		return g.respondKouLe(seat, EvaluateKouLe(p.hand, len(p.collected)))
	}

	return nil
}

func (g *Game) schedule(action tickAction, delay time.Duration) {
	g.pendingAction = &pendingAction{
		action: action,
		after:  time.Now().Add(delay),
	}
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	if g.logChan != nil {
		select {
		case g.logChan <- msg:
		default:
		}
	}
}
