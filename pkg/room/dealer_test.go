package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"xuanwei-server/pkg/playable"
	"xuanwei-server/pkg/table"
)

func TestDealer_AddClient(t *testing.T) {
	d := NewDealer(&PitBoss{}, &table.Table{})
	c := NewClient(nil, nil, nil)
	c2 := NewClient(nil, nil, nil)

	d.AddClient(c)
	d.AddClient(c2)

	assert.Same(t, d, c.dealer)
	assert.False(t, d.RemoveClient(c))
	assert.True(t, d.RemoveClient(c2))
}

func TestClient_Send(t *testing.T) {
	a := assert.New(t)

	c := NewClient(nil, nil, nil)
	a.True(c.Send("message"))
	a.Equal("message", <-c.SendChan())
}

func TestDealer_addLogMessages(t *testing.T) {
	a := assert.New(t)

	d := NewDealer(&PitBoss{}, &table.Table{})
	for i := 0; i < logMessageLimit*2; i++ {
		d.addLogMessages(playable.SimpleLogMessageSlice(0, "message %d", i))
	}

	// the rolling log keeps only the most recent messages
	a.Len(d.logMessages, logMessageLimit)
	a.Contains(d.logMessages[logMessageLimit-1].Message, "49")
}
