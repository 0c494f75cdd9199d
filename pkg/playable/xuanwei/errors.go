package xuanwei

import "errors"

// ErrIsNotPlayersTurn is returned when it's not the seat's turn to act
var ErrIsNotPlayersTurn = errors.New("not player's turn")

// ErrWrongPhase is returned when an intent does not match the current phase
var ErrWrongPhase = errors.New("action not allowed in the current phase")

// ErrCardNotInPlayersHand happens when a seat tries to play a card it doesn't hold
var ErrCardNotInPlayersHand = errors.New("card is not in player's hand")

// ErrDuplicateCard happens when the same card appears twice in one play
var ErrDuplicateCard = errors.New("the same card cannot be played twice")

// ErrMustFollow is returned when a seat discards while holding a legal beating combination
var ErrMustFollow = errors.New("player holds a combination that can beat the target")

// ErrInvalidCombination happens when a leading play is not a legal single, pair, or triple
var ErrInvalidCombination = errors.New("cards do not form a legal combination")

// ErrCombinationTooWeak happens when a following play does not beat the current max strength
var ErrCombinationTooWeak = errors.New("combination does not beat the current play")

// ErrCombinationMismatch happens when a following play has the wrong type or cardinality
var ErrCombinationMismatch = errors.New("combination does not match the led play")

// ErrDiscardCount happens when a discard does not match the target card count
var ErrDiscardCount = errors.New("discard must match the led card count")

// ErrDiscardWithoutTarget happens when a seat tries to discard while leading
var ErrDiscardWithoutTarget = errors.New("cannot discard when leading")

// ErrInvalidMultiplier is returned for a bet multiplier outside {1, 2, 4}
var ErrInvalidMultiplier = errors.New("multiplier must be 1, 2, or 4")

// ErrAlreadyBet is returned when a seat bets twice in one hand
var ErrAlreadyBet = errors.New("player already placed a bet")

// ErrKouLeNotLeader is returned when a non-leading seat tries to initiate a challenge
var ErrKouLeNotLeader = errors.New("only the current leader may initiate kou le")

// ErrKouLeAlreadyUsed is returned when a challenge was already raised this trick
var ErrKouLeAlreadyUsed = errors.New("kou le was already initiated this trick")

// ErrKouLeNotYourResponse is returned when a seat responds out of order
var ErrKouLeNotYourResponse = errors.New("not this player's turn to respond")

// ErrKouLeBadResponse is returned for a response other than agree or challenge
var ErrKouLeBadResponse = errors.New(`response must be "agree" or "challenge"`)

// ErrPlayerNotSeated is returned for intents from an ID with no seat at the table
var ErrPlayerNotSeated = errors.New("player is not seated in this game")

// ErrGameOver is returned when an intent arrives after settlement
var ErrGameOver = errors.New("the hand has been settled")
