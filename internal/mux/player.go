package mux

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"xuanwei-server/internal/jwt"
	"xuanwei-server/internal/util"
	"xuanwei-server/pkg/table"
)

type playerPayload struct {
	DisplayName string `json:"displayName"`
}

// playerWithToken is returned on player creation so the client can
// authenticate subsequent requests
type playerWithToken struct {
	*table.Player
	Token string `json:"token"`
}

var validDisplayNameRx = regexp.MustCompile(`^[\p{L}\p{N} ]{0,40}\z`)

func (m *Mux) postPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp playerPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if !validDisplayNameRx.MatchString(pp.DisplayName) {
			writeJSONError(w, http.StatusBadRequest, errors.New("display name must only contain letters, numbers, and spaces, and be 40 characters or less"))
			return
		}

		addr := remoteAddr(r)
		at, err := table.LastPlayerCreatedAt(r.Context(), addr)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if time.Since(at) < m.config.playerCreateDelay {
			writeJSONError(w, http.StatusBadRequest, errors.New("please wait before creating another player"))
			return
		}

		var displayName string
		if pp.DisplayName != "" {
			displayName = pp.DisplayName
		} else {
			displayName = util.GetRandomName()
		}

		player, err := table.CreatePlayer(r.Context(), displayName, addr)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		token, err := jwt.Sign(player.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, &playerWithToken{
			Player: player,
			Token:  token,
		})
	}
}

type postPlayerIDPayload struct {
	DisplayName string `json:"displayName"`
}

func (m *Mux) postPlayerID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		// prevent a player from updating another player
		player := r.Context().Value(ctxPlayerKey).(*table.Player)
		if player.ID != playerID {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		var pp postPlayerIDPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.DisplayName == "" {
			writeJSONError(w, http.StatusBadRequest, errors.New("nothing to update"))
			return
		}

		if !validDisplayNameRx.MatchString(pp.DisplayName) {
			writeJSONError(w, http.StatusBadRequest, errors.New("display name must only contain letters, numbers, and spaces"))
			return
		}

		player.DisplayName = pp.DisplayName
		if err := player.Save(r.Context()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, player)
	}
}
