package notification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPushesToEveryConnection(t *testing.T) {
	hub := NewHub()
	who := Identity{Kind: KindCustomer, ID: 3}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.ServeWS(conn, who)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	web, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer web.Close()
	mobile, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer mobile.Close()

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.connections[who.Key()]) == 2
	}, time.Second, 10*time.Millisecond)

	reached := hub.Push([]Identity{who, {Kind: KindUser, ID: 3}}, &WSEvent{Type: EventNotification, Payload: "hello"})
	assert.Equal(t, 1, reached)

	for _, conn := range []*websocket.Conn{web, mobile} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		var got WSEvent
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, EventNotification, got.Type)
		assert.Equal(t, "hello", got.Payload)
	}

	web.Close()
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.connections[who.Key()]) == 1
	}, time.Second, 10*time.Millisecond)
	assert.True(t, hub.Online(who))
}
