package notify

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tobihoff/anirate/pkg/logger"
)

func newStreamServer(t *testing.T) (*Broker, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	broker := NewBroker(logger.New(logger.ERROR, false, nil))
	router := gin.New()
	router.GET("/ws/ratings", broker.ServeWS)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return broker, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/ratings"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	return ev
}

func TestStream_WelcomeEvent(t *testing.T) {
	_, srv := newStreamServer(t)
	conn := dial(t, srv)

	ev := readEvent(t, conn)
	if ev.Type != EventConnected {
		t.Fatalf("first event type = %q, want %q", ev.Type, EventConnected)
	}
	if ev.Timestamp == 0 {
		t.Fatal("welcome event carries no timestamp")
	}
}

func TestStream_BroadcastReachesAllClients(t *testing.T) {
	broker, srv := newStreamServer(t)

	conns := []*websocket.Conn{dial(t, srv), dial(t, srv)}
	for _, conn := range conns {
		readEvent(t, conn) // welcome
	}
	waitForClients(t, broker, 2)

	broker.Broadcast(EventRatingSaved, map[string]any{"id": "r1", "overallRating": 3.5})

	for i, conn := range conns {
		ev := readEvent(t, conn)
		if ev.Type != EventRatingSaved {
			t.Fatalf("client %d: event type = %q, want %q", i, ev.Type, EventRatingSaved)
		}
		data, ok := ev.Data.(map[string]any)
		if !ok {
			t.Fatalf("client %d: unexpected data shape: %#v", i, ev.Data)
		}
		if data["id"] != "r1" {
			t.Fatalf("client %d: payload id = %v", i, data["id"])
		}
	}
}

func TestStream_DisconnectUnregistersClient(t *testing.T) {
	broker, srv := newStreamServer(t)

	conn := dial(t, srv)
	readEvent(t, conn) // welcome
	waitForClients(t, broker, 1)

	conn.Close()
	waitForClients(t, broker, 0)

	// Broadcasting into an empty broker must be a no-op, not a panic.
	broker.Broadcast(EventRatingDeleted, map[string]any{"id": "r1"})
}

func waitForClients(t *testing.T, broker *Broker, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if broker.ClientCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("client count never reached %d (now %d)", want, broker.ClientCount())
}
