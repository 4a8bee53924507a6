// Package server exposes a read-only spectator feed over HTTP: every event
// published on the bus is streamed to websocket clients, next to a small
// JSON view of the play-count table.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/observability/log"
)

const (
	writeWait       = 5 * time.Second
	shutdownTimeout = 5 * time.Second
	defaultBuffer   = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// spectators connect from anywhere
	CheckOrigin: func(*http.Request) bool { return true },
}

// Envelope is the wire form of one bus event.
type Envelope struct {
	Type   string    `json:"type"`
	Source string    `json:"source"`
	At     time.Time `json:"at"`
	Data   any       `json:"data"`
}

// PlayCounts is the read side of the play-count table.
type PlayCounts interface {
	Counts() map[int]int
}

type Options struct {
	Address string
	// Buffer is the per-client queue length; events beyond it are dropped.
	Buffer int
	// ModeTitles names the variants listed by /played.
	ModeTitles map[int]string
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

type Feed struct {
	opts   Options
	counts PlayCounts
	logger log.Log

	mu      sync.RWMutex
	clients map[*client]struct{}
	sub     bus.Subscription
	running atomic.Bool
	dropped atomic.Uint64
}

func NewFeed(opts Options, counts PlayCounts, logger log.Log) *Feed {
	if opts.Buffer <= 0 {
		opts.Buffer = defaultBuffer
	}
	return &Feed{
		opts:    opts,
		counts:  counts,
		logger:  logger.With(log.String("component", "feed")),
		clients: make(map[*client]struct{}),
	}
}

// Attach starts forwarding every event of b to connected clients.
func (f *Feed) Attach(b bus.EventBus) error {
	sub, err := b.SubscribeAll(f.broadcast)
	if err != nil {
		return fmt.Errorf("server: attach feed: %w", err)
	}
	f.mu.Lock()
	f.sub = sub
	f.mu.Unlock()
	return nil
}

// Detach stops forwarding events.
func (f *Feed) Detach() error {
	f.mu.Lock()
	sub := f.sub
	f.sub = nil
	f.mu.Unlock()
	if sub == nil {
		return nil
	}
	return sub.Cancel()
}

// Handler serves /ws, /played and /healthz.
func (f *Feed) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", f.handleWebSocket)
	mux.HandleFunc("/played", f.handlePlayed)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Run serves until ctx is cancelled, then shuts down and disconnects every
// client.
func (f *Feed) Run(ctx context.Context) error {
	if !f.running.CompareAndSwap(false, true) {
		return ErrFeedRunning
	}
	defer f.running.Store(false)

	ln, err := net.Listen("tcp", f.opts.Address)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", f.opts.Address, err)
	}
	srv := &http.Server{Handler: f.Handler(), ReadHeaderTimeout: 5 * time.Second}
	f.logger.Info("spectator feed listening", log.String("address", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		f.disconnectAll()
		return err
	case err := <-errCh:
		f.disconnectAll()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Clients returns the number of connected spectators.
func (f *Feed) Clients() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

// Dropped returns how many messages were discarded for slow clients.
func (f *Feed) Dropped() uint64 {
	return f.dropped.Load()
}

func (f *Feed) broadcast(ev bus.Event) error {
	data, err := json.Marshal(Envelope{
		Type:   ev.Type(),
		Source: ev.Source(),
		At:     ev.Timestamp(),
		Data:   ev.Data(),
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidEvent, ev.Type(), err)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for c := range f.clients {
		select {
		case c.send <- data:
		default:
			f.dropped.Add(1)
		}
	}
	return nil
}

func (f *Feed) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, f.opts.Buffer)}

	f.mu.Lock()
	f.clients[c] = struct{}{}
	f.mu.Unlock()
	f.logger.Debug("spectator connected", log.String("remote", conn.RemoteAddr().String()))

	go f.writePump(c)
	f.readPump(c)
}

// readPump discards client input and notices disconnects.
func (f *Feed) readPump(c *client) {
	defer f.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *Feed) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (f *Feed) remove(c *client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[c]; !ok {
		return
	}
	delete(f.clients, c)
	close(c.send)
}

func (f *Feed) disconnectAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		delete(f.clients, c)
		close(c.send)
	}
}

type playedEntry struct {
	ID    int    `json:"id"`
	Title string `json:"title,omitempty"`
	Count int    `json:"count"`
}

func (f *Feed) handlePlayed(w http.ResponseWriter, _ *http.Request) {
	counts := f.counts.Counts()
	if counts == nil {
		counts = make(map[int]int)
	}
	for id := range f.opts.ModeTitles {
		if _, ok := counts[id]; !ok {
			counts[id] = 0
		}
	}
	entries := make([]playedEntry, 0, len(counts))
	for id, n := range counts {
		entries = append(entries, playedEntry{ID: id, Title: f.opts.ModeTitles[id], Count: n})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"modes": entries}); err != nil {
		f.logger.Warn("failed to write play counts", log.Error(err))
	}
}
