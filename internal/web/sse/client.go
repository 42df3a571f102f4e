package sse

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// Time between keepalive comments
	pingPeriod = 30 * time.Second

	// Reconnect delay suggested to browsers, in milliseconds
	retryMillis = "3000"

	// Buffer size for outgoing messages
	sendBufferSize = 64
)

// Client is one connected spectator stream
type Client struct {
	hub         *Hub
	id          string
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client with a random id
func NewClient(hub *Hub) *Client {
	return &Client{
		hub:         hub,
		id:          uuid.NewString(),
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeSSE streams hub events to w until the client disconnects or the hub closes
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	client := NewClient(hub)
	hub.Register(client)
	defer hub.Unregister(client)

	_, _ = w.Write([]byte("retry: " + retryMillis + "\n\n"))
	_, _ = w.Write(formatSSEMessage("connected", `{"status":"connected"}`))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
