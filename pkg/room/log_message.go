package room

import (
	"xuanwei-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages appends to the table's rolling game log
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}
