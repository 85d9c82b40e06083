package websocket_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	xws "golang.org/x/net/websocket"

	"github.com/buildwithgo/radioitems/addons/websocket"
	"github.com/buildwithgo/radioitems/host"
)

func dial(t *testing.T, serverURL, path string) *xws.Conn {
	t.Helper()
	wsURL := strings.Replace(serverURL, "http", "ws", 1) + path
	ws, err := xws.Dial(wsURL, "", "http://localhost/")
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func TestWebSocket(t *testing.T) {
	app := host.New()
	app.GET("/ws", websocket.New(func(ws *xws.Conn) {
		defer ws.Close()
		var msg string
		for {
			if err := xws.Message.Receive(ws, &msg); err != nil {
				return
			}
			if err := xws.Message.Send(ws, "Echo: "+msg); err != nil {
				return
			}
		}
	}))

	ts := httptest.NewServer(app)
	defer ts.Close()

	ws := dial(t, ts.URL, "/ws")
	require.NoError(t, xws.Message.Send(ws, "hello"))

	var response string
	require.NoError(t, xws.Message.Receive(ws, &response))
	require.Equal(t, "Echo: hello", response)
}

func TestHubBroadcast(t *testing.T) {
	hub := websocket.NewHub()
	app := host.New()
	app.GET("/ws", websocket.New(hub.Stream()))

	ts := httptest.NewServer(app)
	defer ts.Close()

	a := dial(t, ts.URL, "/ws")
	b := dial(t, ts.URL, "/ws")
	require.Eventually(t, func() bool { return hub.Len() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Broadcast(map[string]string{"type": "event", "event": "change"}))

	for _, ws := range []*xws.Conn{a, b} {
		var got map[string]string
		require.NoError(t, xws.JSON.Receive(ws, &got))
		require.Equal(t, "change", got["event"])
	}

	a.Close()
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()
	require.Equal(t, 0, hub.Len())
	require.False(t, hub.Subscribe(nil))
}

func TestHubDropsStalledSubscriber(t *testing.T) {
	hub := websocket.NewHub(websocket.WithQueueSize(4), websocket.WithWriteTimeout(time.Second))
	app := host.New()
	app.GET("/ws", websocket.New(hub.Stream()))

	ts := httptest.NewServer(app)
	defer ts.Close()

	// never reads
	dial(t, ts.URL, "/ws")
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	payload := map[string]string{"blob": strings.Repeat("x", 64<<10)}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			_ = hub.Broadcast(payload)
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Broadcast blocked on a subscriber that does not read")
	}
	require.Eventually(t, func() bool { return hub.Len() == 0 }, 2*time.Second, 10*time.Millisecond)

	fresh := dial(t, ts.URL, "/ws")
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, hub.Broadcast(map[string]string{"event": "change"}))

	var got map[string]string
	require.NoError(t, xws.JSON.Receive(fresh, &got))
	require.Equal(t, "change", got["event"])
}
