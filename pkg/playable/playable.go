package playable

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"xuanwei-server/pkg/deck"
)

// Playable is a game that can be run by a dealer
type Playable interface {
	// Action performs an intent for the given player
	// If playerResponse is not null, that's the response sent directly to the client
	// If updateState is true, it will trigger a state update for all connected clients
	Action(playerID int64, message *PayloadIn) (playerResponse *Response, updateState bool, err error)

	// GetPlayerState returns the current state of the game for the player
	// The returned state must never contain cards the player is not entitled to see.
	GetPlayerState(playerID int64) (*Response, error)

	// GetEndOfGameDetails returns the details after a game is over
	// If the game is still in progress, nil will be returned and the second param will be false
	GetEndOfGameDetails() (gameOverDetails *GameOverDetails, isGameOver bool)

	// Name returns the name of the game
	Name() string

	// LogChan should return a channel that a game will send log messages to
	LogChan() <-chan []*LogMessage
}

// LogMessage is the format a game should send log messages in
// If PlayerID is null, assume it's a general statement, otherwise the message will be sent like "{player} did X, Y, Z"
type LogMessage struct {
	UUID      string       `json:"uuid"`
	PlayerIDs []int64      `json:"playerIds"`
	Cards     []*deck.Card `json:"cards"`
	Message   string       `json:"message"`
	Time      time.Time    `json:"time"`
}

// Response is a container to determine who gets the specified message
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// PayloadIn is the format we expect from the client
type PayloadIn struct {
	Action         string         `json:"action"`
	Cards          []*deck.Card   `json:"cards"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// GameOverDetails provides details on how the game ended
type GameOverDetails struct {
	BalanceAdjustments map[int64]int
	Log                interface{}
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
func (a AdditionalData) GetInt(key string) (int, bool) {
	floatVal, ok := a[key].(float64)
	if !ok {
		return 0, false
	}

	return int(floatVal), true
}

// GetBool returns a boolean value for the given key
func (a AdditionalData) GetBool(key string) (bool, bool) {
	boolVal, ok := a[key].(bool)
	return boolVal, ok
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(playerID int64, format string, a ...interface{}) *LogMessage {
	var playerIDs []int64
	if playerID > 0 {
		playerIDs = []int64{playerID}
	}

	return &LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}

// SimpleLogMessageSlice returns a single log message
func SimpleLogMessageSlice(playerID int64, format string, a ...interface{}) []*LogMessage {
	return []*LogMessage{SimpleLogMessage(playerID, format, a...)}
}
