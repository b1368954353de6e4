package notify

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tobihoff/anirate/pkg/logger"
	"github.com/tobihoff/anirate/pkg/metrics"
)

// Event types sent over the stream.
const (
	EventConnected     = "connected"
	EventRatingSaved   = "rating_saved"
	EventRatingDeleted = "rating_deleted"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second
	sendBuffer = 16
)

// Event is one message on the ratings stream.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Broker fans rating events out to websocket subscribers. A slow client gets
// its buffered messages dropped rather than blocking the broadcast.
type Broker struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	log      *logger.Logger
}

func NewBroker(log *logger.Logger) *Broker {
	return &Broker{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The HTTP layer already applies CORS; the stream follows it.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// ServeWS handles GET /ws/ratings, upgrading the connection and registering
// the client until it disconnects.
func (b *Broker) ServeWS(c *gin.Context) {
	conn, err := b.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		b.log.Warn("ws_upgrade_failed", "error", err.Error())
		return
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	b.mu.Lock()
	b.clients[cl] = struct{}{}
	metrics.SetActiveStreamClients(int64(len(b.clients)))
	b.mu.Unlock()

	b.log.Debug("ws_client_connected", "clients", b.ClientCount())

	welcome, _ := json.Marshal(Event{Type: EventConnected, Timestamp: time.Now().Unix()})
	select {
	case cl.send <- welcome:
	default:
	}

	go b.writeLoop(cl)
	b.readLoop(cl)
}

// Broadcast sends an event to every connected client.
func (b *Broker) Broadcast(eventType string, data any) {
	payload, err := json.Marshal(Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for cl := range b.clients {
		select {
		case cl.send <- payload:
		default:
			// Buffer full; drop for this client.
		}
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *Broker) remove(cl *client) {
	b.mu.Lock()
	if _, ok := b.clients[cl]; ok {
		delete(b.clients, cl)
		close(cl.send)
	}
	metrics.SetActiveStreamClients(int64(len(b.clients)))
	b.mu.Unlock()
	cl.conn.Close()
}

// readLoop drains incoming frames; the stream is server-to-client only, so
// reads exist to notice disconnects and answer pings.
func (b *Broker) readLoop(cl *client) {
	defer b.remove(cl)
	cl.conn.SetReadLimit(512)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (b *Broker) writeLoop(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
