package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	gmux "github.com/gorilla/mux"
	cfg "xuanwei-server/internal/config"
	"xuanwei-server/internal/jwt"
	"xuanwei-server/pkg/room"
	"xuanwei-server/pkg/table"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxTableKey
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config  config
	version string
	pitBoss *room.PitBoss

	// store for testing purposes
	authRouter *gmux.Router
}

type config struct {
	// playerCreateDelay is the minimum duration between two player create events from a single remote address
	playerCreateDelay time.Duration
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	pitBoss := room.NewPitBoss()
	pitBoss.StartShift()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		config: config{
			playerCreateDelay: time.Second * time.Duration(cfg.Instance().PlayerCreateDelay),
		},
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodPost).Path("/player/{id:[0-9]+}").Handler(this.postPlayerID())

		r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())
		r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())
		r.Methods(http.MethodPost).Path("/table/join").Handler(this.postTableJoin())

		tr := r.PathPrefix("/table/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		tr.Use(this.tableMiddleware)

		tr.Methods(http.MethodGet).Path("").Handler(this.getTableUUID())
		tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableUUIDWS())
		tr.Methods(http.MethodPost).Path("/seat").Handler(this.postTableUUIDSeat())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidPlayerID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		player, err := table.GetPlayerByID(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, player)
		w.Header().Set("Xuanwei-PlayerID", strconv.FormatInt(player.ID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
