// Package wshost streams list updates to browsers over WebSocket.
//
// A Hub is a differ.ListHost: every applied batch of updates is encoded as
// JSON and sent to each connected client. Combine it with another host
// through differ.Hosts to mirror a terminal grid in the browser.
package wshost

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/listkit/pkg/differ"
)

// MessageType is the type of a message sent to clients.
type MessageType string

const (
	MessageHello   MessageType = "hello"
	MessageUpdates MessageType = "updates"
)

// UpdateMessage is the wire form of a differ.Update.
type UpdateMessage struct {
	Op      string `json:"op"`
	Pos     int    `json:"pos"`
	Count   int    `json:"count"`
	Payload string `json:"payload,omitempty"`
}

// Message is sent to clients via WebSocket.
type Message struct {
	Type    MessageType     `json:"type"`
	Seq     uint64          `json:"seq"`
	Size    int             `json:"size"`
	Updates []UpdateMessage `json:"updates,omitempty"`
}

// ClientObserver is notified about connections and broadcasts.
// *metrics.Collector implements it.
type ClientObserver interface {
	ClientConnected()
	ClientDisconnected()
	Broadcast()
}

type nopObserver struct{}

func (nopObserver) ClientConnected()    {}
func (nopObserver) ClientDisconnected() {}
func (nopObserver) Broadcast()          {}

// Config configures a Hub.
type Config struct {
	// Size reports the current list length for hello messages.
	Size func() int

	// Render writes the HTML page served at "/". Default: a page that
	// logs received messages.
	Render func(w io.Writer) error

	// Gatherer backs the "/metrics" endpoint. Default: prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer

	// Observer receives connection and broadcast events.
	Observer ClientObserver

	// Logger receives write failures. Default: slog.Default()
	Logger *slog.Logger

	// WriteTimeout bounds each write to a client. A client that does not
	// drain its connection in time is dropped. Default: DefaultWriteTimeout
	WriteTimeout time.Duration
}

// DefaultWriteTimeout is the per-message write deadline.
const DefaultWriteTimeout = time.Second

// Hub manages WebSocket connections and broadcasts list updates.
type Hub struct {
	cfg      Config
	logger   *slog.Logger
	observer ClientObserver
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
	size    int
	seq     uint64

	// sendMu serializes writes; a websocket.Conn allows one writer.
	sendMu sync.Mutex
}

var _ differ.ListHost = (*Hub)(nil)

// New creates a hub.
func New(cfg Config) *Hub {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.Render == nil {
		cfg.Render = func(w io.Writer) error {
			_, err := io.WriteString(w, defaultPage)
			return err
		}
	}
	h := &Hub{
		cfg:      cfg,
		logger:   cfg.Logger,
		observer: cfg.Observer,
		clients:  make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	if cfg.Size != nil {
		h.size = cfg.Size()
	}
	return h
}

// Router returns the hub's HTTP routes: "/" serves the page, "/ws" the
// update stream, and "/metrics" the Prometheus metrics.
func (h *Hub) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.cfg.Render(w); err != nil {
			h.logger.Error("wshost: render failed", "error", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
		}
	})
	r.Get("/ws", h.HandleWebSocket)
	r.Handle("/metrics", promhttp.HandlerFor(h.cfg.Gatherer, promhttp.HandlerOpts{}))
	return r
}

// HandleWebSocket upgrades the connection and keeps it until the client
// disconnects. The client first receives a hello message with the list size.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	h.sendMu.Lock()
	h.mu.Lock()
	hello := Message{Type: MessageHello, Seq: h.seq, Size: h.size}
	h.clients[conn] = true
	h.mu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
	err = conn.WriteJSON(hello)
	h.sendMu.Unlock()
	h.observer.ClientConnected()

	if err == nil {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}

	h.drop(conn)
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
		h.observer.ClientDisconnected()
	}
}

// Apply implements differ.ListHost. Each client write is bounded by
// Config.WriteTimeout, so a stalled client delays a batch by at most that.
func (h *Hub) Apply(updates []differ.Update) {
	if len(updates) == 0 {
		return
	}
	h.sendMu.Lock()
	defer h.sendMu.Unlock()

	h.mu.Lock()
	for _, u := range updates {
		switch u.Op {
		case differ.OpInsert:
			h.size += u.Count
		case differ.OpRemove:
			h.size -= u.Count
		}
	}
	h.seq++
	msg := Message{Type: MessageUpdates, Seq: h.seq, Size: h.size, Updates: encodeUpdates(updates)}
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("wshost: encode failed", "error", err)
		return
	}
	for _, client := range clients {
		client.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("wshost: dropping client", "error", err)
			h.drop(client)
		}
	}
	h.observer.Broadcast()
}

func encodeUpdates(updates []differ.Update) []UpdateMessage {
	out := make([]UpdateMessage, len(updates))
	for i, u := range updates {
		out[i] = UpdateMessage{Op: u.Op.String(), Pos: u.Pos, Count: u.Count}
		if u.Payload != nil {
			out[i].Payload = fmt.Sprint(u.Payload)
		}
	}
	return out
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*websocket.Conn]bool)
	h.mu.Unlock()

	for client := range clients {
		client.Close()
		h.observer.ClientDisconnected()
	}
}

const defaultPage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>listkit</title></head>
<body>
<pre id="log"></pre>
<script>
(function() {
    var log = document.getElementById('log');
    var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(protocol + '//' + location.host + '/ws');
    ws.onmessage = function(e) {
        log.textContent = e.data + '\n' + log.textContent;
    };
})();
</script>
</body>
</html>
`
