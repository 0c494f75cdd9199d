package room

import (
	"xuanwei-server/pkg/playable"
	"xuanwei-server/pkg/table"
)

type clientStatePlayer struct {
	*table.PlayerTable
	IsConnected bool `json:"isConnected"`
	IsSeated    bool `json:"isSeated"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
