package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Hub fans events out to the spectators of a single game
type Hub struct {
	sessionID model.SessionID
	clients   map[*Client]bool
	mu        sync.RWMutex
	logger    *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a new Hub for a game
func NewHub(sessionID model.SessionID, logger *slog.Logger) *Hub {
	return &Hub{
		sessionID:  sessionID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("game_id", string(sessionID))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop. Messages broadcast before Close are
// still delivered.
func (h *Hub) Run() {
	h.logger.Debug("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client registered",
				slog.String("client_id", client.id),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.deliver(message)

		case <-h.done:
			h.drain()
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Debug("sse hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	close(client.send)
	clientCount := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("sse client unregistered",
		slog.String("client_id", client.id),
		slog.Duration("connection_duration", time.Since(client.connectedAt)),
		slog.Int("total_clients", clientCount))
}

func (h *Hub) deliver(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			dropped++
			h.logger.Warn("sse message dropped - client buffer full",
				slog.String("client_id", client.id))
		}
	}
	if dropped > 0 {
		h.logger.Warn("sse broadcast partial failure",
			slog.Int("sent", len(h.clients)-dropped),
			slog.Int("dropped", dropped))
	}
}

func (h *Hub) drain() {
	for {
		select {
		case message := <-h.broadcast:
			h.deliver(message)
		default:
			return
		}
	}
}

// Register adds a client to the hub. A client registered on a closed hub
// has its channel closed straight away.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name and data
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatSSEMessage(eventName, data))
}

// Close shuts down the hub. Safe to call more than once.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with event name and data.
// Each line of data gets its own "data: " prefix.
func formatSSEMessage(eventName, data string) []byte {
	var sb strings.Builder
	sb.WriteString("event: ")
	sb.WriteString(eventName)
	sb.WriteByte('\n')
	for _, line := range splitLines(data) {
		sb.WriteString("data: ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}

// splitLines splits on \n, dropping \r and a trailing empty line
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// finishedRetention is how long a finished game's id stays blocked from
// getting a new hub
const finishedRetention = 5 * time.Minute

// HubManager manages hubs for all watched games
type HubManager struct {
	hubs     map[model.SessionID]*Hub
	finished map[model.SessionID]time.Time
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:     make(map[model.SessionID]*Hub),
		finished: make(map[model.SessionID]time.Time),
		logger:   logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a game, creating one if it doesn't exist.
// Returns nil for a game whose hub was removed because it finished.
func (m *HubManager) GetOrCreateHub(sessionID model.SessionID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[sessionID]; ok {
		return hub
	}
	if _, done := m.finished[sessionID]; done {
		return nil
	}

	hub := NewHub(sessionID, m.logger)
	m.hubs[sessionID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a game, or nil if it doesn't exist
func (m *HubManager) GetHub(sessionID model.SessionID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[sessionID]
}

// RemoveHub closes a finished game's hub. The id cannot get a new hub
// until CleanupEmptyHubs forgets it.
func (m *HubManager) RemoveHub(sessionID model.SessionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.finished[sessionID] = time.Now()
	if hub, ok := m.hubs[sessionID]; ok {
		hub.Close()
		delete(m.hubs, sessionID)
		m.logger.Debug("sse hub removed", slog.String("game_id", string(sessionID)))
	}
}

// CleanupEmptyHubs removes hubs with no clients and forgets games that
// finished more than finishedRetention ago
func (m *HubManager) CleanupEmptyHubs() {
	m.cleanup(time.Now())
}

func (m *HubManager) cleanup(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removedCount := 0
	for id, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, id)
			removedCount++
		}
	}
	for id, at := range m.finished {
		if now.Sub(at) > finishedRetention {
			delete(m.finished, id)
		}
	}
	if removedCount > 0 {
		m.logger.Info("sse empty hubs cleaned up", slog.Int("removed", removedCount))
	}
}

// CloseAll closes every hub, ending all open streams
func (m *HubManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}
