package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"xuanwei-server/pkg/playable"
	"xuanwei-server/pkg/playable/xuanwei"
	"xuanwei-server/pkg/table"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
	stateGameEnded
)

// Dealer runs a table. It is the single writer for the table's game: every
// intent and every tick-driven transition is applied inside its run loop, one
// at a time.
type Dealer struct {
	pitBoss *PitBoss
	table   *table.Table
	clients map[*Client]bool
	lock    sync.RWMutex
	game    playable.Playable

	logMessages []*playable.LogMessage

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool

	// gameDone is closed when the current game ends; it stops the tick and
	// log forwarding goroutines
	gameDone chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, table *table.Table) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		table:         table,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	log := logrus.WithFields(logrus.Fields{
		"uuid": d.table.UUID,
		"name": d.table.Name,
	})

	log.Debug("creating dealer run loop")
	for {
		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendPlayerData()
			case stateGameEvent:
				d.sendGameData()
			case stateGameEnded:
				d.sendGameEnded()
				d.sendPlayerData()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			log.Debug("terminating dealer run loop")
			d.endGameRoutines()
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		if len(d.logMessages) > 0 {
			client.Send(&playable.Response{Key: "logs", Data: d.logMessages})
		}

		if d.game == nil {
			return
		}

		gs, err := d.game.GetPlayerState(client.player.ID)
		if err != nil {
			logrus.WithError(err).Error("could not get player state")
			return
		}

		client.Send(gs)
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.stateChanged <- stateClientEvent
		return false
	}

	return true
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameEnded() {
	for _, client := range d.Clients() {
		client.Send(&playable.Response{
			Key: "gameEnded",
		})
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	game := d.game
	if game == nil {
		// should not happen
		logrus.Error("game state changed, but there's no active game")
		return
	}

	for _, client := range d.Clients() {
		// each client gets its own masked snapshot
		data, err := game.GetPlayerState(client.player.ID)
		if err != nil {
			logrus.WithError(err).Error("could not get player state")
			continue
		}

		client.Send(data)
	}
}

func (d *Dealer) sendPlayerData() {
	players, err := d.table.GetPlayers(context.Background())
	if err != nil {
		logrus.WithField("uuid", d.table.UUID).WithError(err).Error("could not get players")
		return
	}

	connectedClients := make(map[int64]*table.Player)
	for _, client := range d.Clients() {
		connectedClients[client.player.ID] = client.player
	}

	csPlayers := make(map[int64]*clientStatePlayer)
	for _, player := range players {
		_, isConnected := connectedClients[player.PlayerID]
		delete(connectedClients, player.PlayerID)
		csPlayers[player.PlayerID] = &clientStatePlayer{
			PlayerTable: player,
			IsConnected: isConnected,
			IsSeated:    true,
		}
	}

	for _, player := range connectedClients {
		csPlayers[player.ID] = &clientStatePlayer{
			PlayerTable: &table.PlayerTable{
				Player:    player,
				PlayerID:  player.ID,
				TableUUID: d.table.UUID,
			},
			IsConnected: true,
			IsSeated:    false,
		}
	}

	for _, client := range d.Clients() {
		client.Send(&playable.Response{
			Key:  "clientState",
			Data: csPlayers,
		})
	}
}

// canAdminTable will send an error message to the client if they are not a
// table admin or site admin
func canAdminTable(ctx string, c *Client) bool {
	if c.player.IsSiteAdmin {
		return true
	}

	playerTable, err := c.player.GetPlayerTable(context.Background(), c.table)
	if err != nil {
		c.Send(newErrorResponse(ctx, err))
		return false
	}

	if !playerTable.IsTableAdmin {
		c.Send(newErrorResponse(ctx, errors.New("you do not have the appropriate permission")))
		return false
	}

	return true
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	switch msg.Action {
	case "createGame":
		if !canAdminTable(msg.Context, c) {
			return
		}

		d.execInRunLoop <- func() {
			if err := d.createGame(msg.AdditionalData); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(playable.OK(msg.Context))
		}
	case "terminateGame":
		if !canAdminTable(msg.Context, c) {
			return
		}

		d.execInRunLoop <- func() {
			d.endGameRoutines()
			d.game = nil
			d.stateChanged <- stateGameEnded
		}

		c.Send(playable.OK(msg.Context))
	case "tableAdmin":
		d.execInRunLoop <- func() {
			if !canAdminTable(msg.Context, c) {
				return
			}

			isTableAdmin, ok := msg.AdditionalData.GetBool("isTableAdmin")
			if !ok {
				c.Send(newErrorResponse(msg.Context, errors.New("isTableAdmin is not boolean")))
				return
			}

			playerID, ok := msg.AdditionalData.GetInt("playerId")
			if !ok {
				c.Send(newErrorResponse(msg.Context, errors.New("could not obtain playerId")))
				return
			}

			player, err := table.GetPlayerByID(context.Background(), int64(playerID))
			if err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			playerTable, err := player.GetPlayerTable(context.Background(), c.table)
			if err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			if err := playerTable.SetIsTableAdmin(context.Background(), isTableAdmin); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(playable.OK(msg.Context))
			d.stateChanged <- stateClientEvent
		}
	case "playerStatus":
		d.execInRunLoop <- func() {
			var pt *table.PlayerTable
			var err error

			// setting status for another player requires table admin
			playerID, ok := msg.AdditionalData.GetInt("playerId")
			if ok {
				if !canAdminTable(msg.Context, c) {
					return
				}

				var player *table.Player
				player, err = table.GetPlayerByID(context.Background(), int64(playerID))
				if err != nil {
					c.Send(newErrorResponse(msg.Context, err))
					return
				}

				pt, err = player.GetPlayerTable(context.Background(), c.table)
			} else {
				// set status for self
				pt, err = c.player.GetPlayerTable(context.Background(), c.table)
			}

			if err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			isActive, ok := msg.AdditionalData.GetBool("active")
			if !ok {
				c.Send(newErrorResponse(msg.Context, errors.New("active is not boolean")))
				return
			}

			if err := pt.SetActive(context.Background(), isActive); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(playable.OK(msg.Context))
			d.stateChanged <- stateClientEvent
		}
	default:
		d.execInRunLoop <- func() {
			game := d.game
			if game == nil {
				logrus.WithField("msg", msg).Warn("unknown message")
				return
			}

			action, updateState, err := game.Action(c.player.ID, msg)
			if err != nil {
				// an illegal intent only ever reaches the offender; canonical
				// state is untouched
				logrus.WithError(err).WithField("client", c.String()).Debug("rejected action")
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			if action != nil {
				action.Context = msg.Context
				c.Send(action)
			}

			if updateState {
				d.stateChanged <- stateGameEvent
			}

			d.checkGameEnded()
		}
	}
}

// createGame starts a hand of Xuanwei at the table.
// The first three active players in shifted order take the human seats; any
// remaining seats are filled with AI players.
// NOTE: must only be called from the run loop
func (d *Dealer) createGame(additionalData playable.AdditionalData) error {
	if d.game != nil {
		return errors.New("a game is already in progress")
	}

	players, err := d.table.GetActivePlayersShifted(context.Background())
	if err != nil {
		return err
	}

	playerIDs := make([]int64, xuanwei.NumSeats)
	seat := 0
	for _, player := range players {
		if seat == xuanwei.NumSeats {
			break
		}

		playerIDs[seat] = player.PlayerID
		seat++
	}

	if seat == 0 {
		return errors.New("at least one active player is required")
	}

	opts := xuanwei.DefaultOptions()
	opts.Starter = 0
	if seed, ok := additionalData.GetInt("seed"); ok {
		opts.DeckSeed = int64(seed)
	}

	game, err := xuanwei.NewGame(logrus.WithField("table", d.table.UUID), playerIDs, opts)
	if err != nil {
		return err
	}

	if err := game.Deal(); err != nil {
		return err
	}

	d.setGame(game)
	d.stateChanged <- stateGameEvent

	return nil
}

// setGame installs a game and starts its tick and log-forwarding goroutines
// NOTE: must only be called from the run loop
func (d *Dealer) setGame(game playable.Playable) {
	d.endGameRoutines()

	d.game = game
	d.gameDone = make(chan bool)

	go d.logLoop(game.LogChan(), d.gameDone)
	if tickable, ok := game.(playable.Tickable); ok {
		go d.tickLoop(game, tickable, d.gameDone)
	}
}

// endGameRoutines stops the goroutines serving the current game, if any
func (d *Dealer) endGameRoutines() {
	if d.gameDone != nil {
		close(d.gameDone)
		d.gameDone = nil
	}
}

// tickLoop drives the game's deferred transitions (trick resolution, AI
// decisions, game end). The Tick call itself always runs inside the run loop.
func (d *Dealer) tickLoop(game playable.Playable, tickable playable.Tickable, done <-chan bool) {
	ticker := time.NewTicker(tickable.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.execInRunLoop <- func() {
				if d.game != game {
					return
				}

				didUpdate, err := tickable.Tick()
				if err != nil {
					logrus.WithError(err).Error("tick failed")
					return
				}

				if didUpdate {
					d.stateChanged <- stateGameEvent
					d.checkGameEnded()
				}
			}
		case <-done:
			return
		case <-d.close:
			return
		}
	}
}

// logLoop forwards game log messages to the connected clients
func (d *Dealer) logLoop(logChan <-chan []*playable.LogMessage, done <-chan bool) {
	for {
		select {
		case messages := <-logChan:
			d.execInRunLoop <- func() {
				d.addLogMessages(messages)
				for _, client := range d.Clients() {
					client.Send(&playable.Response{Key: "logs", Data: messages})
				}
			}
		case <-done:
			return
		case <-d.close:
			return
		}
	}
}

// checkGameEnded persists the settlement and releases the game once it
// reports it is over
// NOTE: must only be called from the run loop
func (d *Dealer) checkGameEnded() {
	game := d.game
	if game == nil {
		return
	}

	details, isOver := game.GetEndOfGameDetails()
	if !isOver {
		return
	}

	record, err := d.table.CreateGame(context.Background(), game.Name())
	if err != nil {
		logrus.WithError(err).Error("could not create game record")
		return
	}

	if err := record.EndGame(context.Background(), details.Log, details.BalanceAdjustments); err != nil {
		logrus.WithError(err).Error("could not save game record")
		return
	}

	d.endGameRoutines()
	d.game = nil
	d.stateChanged <- stateGameEnded
}
