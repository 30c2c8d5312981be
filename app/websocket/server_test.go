package websocket

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateChangedQueuesEventsWhileHubIsBusy(t *testing.T) {
	s := NewServer(0)

	// No hub goroutine is draining here, so every event must land in the
	// channel's buffer instead of being dropped.
	entities := []string{"products", "sales", "receivables", "stock_moves"}
	for _, entity := range entities {
		s.StateChanged(entity)
	}

	for _, want := range entities {
		select {
		case payload := <-s.broadcast:
			var msg Message
			require.NoError(t, json.Unmarshal(payload, &msg))
			assert.Equal(t, TypeStateChanged, msg.Type)

			var data map[string]string
			require.NoError(t, json.Unmarshal(msg.Data, &data))
			assert.Equal(t, want, data["entity"])
		default:
			t.Fatalf("event for %q was dropped", want)
		}
	}
}

func TestStateChangedDropsOnlyWhenBufferIsFull(t *testing.T) {
	s := NewServer(0)

	for i := 0; i < cap(s.broadcast); i++ {
		s.StateChanged(fmt.Sprintf("entity-%d", i))
	}
	require.Len(t, s.broadcast, cap(s.broadcast))

	// The overflow event must be dropped without blocking the caller.
	s.StateChanged("overflow")
	assert.Len(t, s.broadcast, cap(s.broadcast))
}
