package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/guestlist-app/utils"
)

const (
	writeWait = 5 * time.Second

	// per-client queue; a client that falls this far behind is dropped
	clientBuffer = 32
	// events waiting to be published or delivered
	outboundBuffer = 256
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Relay forwards encoded messages to other API instances. Messages published
// through it come back to every instance, this one included, via Deliver.
type Relay interface {
	Publish(ctx context.Context, payload []byte) error
}

type client struct {
	conn *websocket.Conn
	role string
	send chan []byte
}

// writePump is the only writer of c.conn.
func (c *client) writePump() {
	defer c.conn.Close()
	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Errorf("Error sending message to client with role %s: %v", c.role, err)
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// Hub holds the websocket connections of staff screens (door, admin
// dashboard) and pushes events to them. Broadcast never waits on the network:
// events are queued and a background goroutine publishes or delivers them.
type Hub struct {
	clients  map[*client]struct{}
	mutex    sync.Mutex
	relay    Relay
	outbound chan []byte
	done     chan struct{}
	once     sync.Once
}

func NewHub() *Hub {
	h := &Hub{
		clients:  make(map[*client]struct{}),
		outbound: make(chan []byte, outboundBuffer),
		done:     make(chan struct{}),
	}
	go h.run()
	return h
}

// Close stops the background sender and disconnects every client.
func (h *Hub) Close() {
	h.once.Do(func() {
		close(h.done)
		h.mutex.Lock()
		defer h.mutex.Unlock()
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
		}
	})
}

// SetRelay routes broadcasts through r instead of delivering them directly.
func (h *Hub) SetRelay(r Relay) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.relay = r
}

func (h *Hub) register(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[c] = struct{}{}
	utils.InfoLogger.Debugf("Live client registered (role=%s, total=%d)", c.role, len(h.clients))
}

// unregister removes c and ends its writer. Safe to call more than once.
func (h *Hub) unregister(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Broadcast queues an event for every connected client and returns
// immediately. Events are dropped, with an error log, when the queue is full.
func (h *Hub) Broadcast(event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Errorf("Error marshaling %s message: %v", event, err)
		return
	}

	select {
	case h.outbound <- payload:
	default:
		utils.ErrorLogger.Errorf("Live event queue full, dropping %s", event)
	}
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			return
		case payload := <-h.outbound:
			h.dispatch(payload)
		}
	}
}

func (h *Hub) dispatch(payload []byte) {
	h.mutex.Lock()
	relay := h.relay
	h.mutex.Unlock()

	if relay != nil {
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		err := relay.Publish(ctx, payload)
		cancel()
		if err == nil {
			return
		}
		utils.ErrorLogger.Errorf("Relay publish failed, delivering locally: %v", err)
	}
	h.Deliver(payload)
}

// Deliver hands an already encoded message to every local client's queue.
// Clients whose queue is full are dropped.
func (h *Hub) Deliver(payload []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			utils.ErrorLogger.Errorf("Client with role %s is not keeping up, disconnecting", c.role)
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Serve registers conn and blocks reading from it until the client goes
// away. Incoming messages are ignored.
func (h *Hub) Serve(conn *websocket.Conn, role string) {
	c := &client{conn: conn, role: role, send: make(chan []byte, clientBuffer)}
	h.register(c)
	go c.writePump()
	defer h.unregister(c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
