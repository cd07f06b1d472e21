// Package spectate streams live frames to websocket viewers
package spectate

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/algo-snake/engine"
	"github.com/lixenwraith/algo-snake/events"
	"github.com/lixenwraith/algo-snake/parameter"
	"github.com/lixenwraith/algo-snake/replay"
)

const clientBuffer = 64

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans msgpack-encoded frames out to every connected viewer
// Viewers that fall behind are dropped
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	clients    atomic.Int32
	upgrader   websocket.Upgrader
	logger     log.Logger
}

func NewHub(logger log.Logger) *Hub {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		upgrader:   websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		logger:     log.With(logger, "component", "spectate"),
	}
}

// Run owns the client set until ctx is done; call it once
func (h *Hub) Run(ctx context.Context) {
	clients := make(map[*client]bool)
	var latest []byte
	defer func() {
		close(h.done)
		for c := range clients {
			close(c.send)
		}
		h.clients.Store(0)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			clients[c] = true
			h.clients.Store(int32(len(clients)))
			if latest != nil {
				c.send <- latest
			}
			level.Info(h.logger).Log("msg", "viewer joined", "viewer", c.id, "viewers", len(clients))
		case c := <-h.unregister:
			if clients[c] {
				delete(clients, c)
				close(c.send)
				h.clients.Store(int32(len(clients)))
			}
		case msg := <-h.broadcast:
			latest = msg
			for c := range clients {
				select {
				case c.send <- msg:
				default:
					delete(clients, c)
					close(c.send)
					level.Warn(h.logger).Log("msg", "viewer dropped", "viewer", c.id)
				}
			}
			h.clients.Store(int32(len(clients)))
		}
	}
}

// Clients returns the number of connected viewers
func (h *Hub) Clients() int { return int(h.clients.Load()) }

// Publish encodes a view and queues it for every viewer
func (h *Hub) Publish(v engine.View) error {
	data, err := msgpack.Marshal(replay.FromView(v))
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- data:
	default:
		level.Debug(h.logger).Log("msg", "broadcast queue full", "tick", v.Tick)
	}
	return nil
}

func (h *Hub) HandleEvent(v engine.View, _ events.GameEvent) {
	if err := h.Publish(v); err != nil {
		level.Error(h.logger).Log("msg", "encode frame", "err", err)
	}
}

func (h *Hub) EventTypes() []events.EventType {
	return []events.EventType{events.EventTickDone, events.EventGameOver, events.EventReset}
}

// ServeHTTP upgrades a viewer connection
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{id: uuid.NewString(), conn: conn, send: make(chan []byte, clientBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	go h.writer(c)
	go h.reader(c)
}

// reader discards viewer input and notices disconnects
func (h *Hub) reader(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writer(c *client) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(parameter.SpectateWriteTimeout))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			break
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
}

// Serve runs the hub and an HTTP server on addr until ctx is done
func Serve(ctx context.Context, addr string, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	level.Info(h.logger).Log("msg", "spectator server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
