package sse

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Event is a named payload pushed to a connected client.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type client struct {
	userID string
	send   chan Event
}

// Manager fans events out to the SSE connections of individual users. A user
// may hold several connections (multiple extension tabs); every connection
// gets the event.
type Manager struct {
	register   chan *client
	unregister chan *client
	broadcast  chan userEvent
	clients    map[string]map[*client]bool
}

type userEvent struct {
	userID string
	event  Event
}

func NewManager() *Manager {
	return &Manager{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan userEvent, 64),
		clients:    make(map[string]map[*client]bool),
	}
}

// Run owns the client registry. Call once in a goroutine at startup.
func (m *Manager) Run() {
	for {
		select {
		case c := <-m.register:
			if m.clients[c.userID] == nil {
				m.clients[c.userID] = make(map[*client]bool)
			}
			m.clients[c.userID][c] = true

		case c := <-m.unregister:
			if conns, ok := m.clients[c.userID]; ok {
				if conns[c] {
					delete(conns, c)
					close(c.send)
					if len(conns) == 0 {
						delete(m.clients, c.userID)
					}
				}
			}

		case ue := <-m.broadcast:
			for c := range m.clients[ue.userID] {
				select {
				case c.send <- ue.event:
				default:
					// Slow consumer, drop the event rather than block the registry
				}
			}
		}
	}
}

// SendToUser pushes an event to all open connections of a user. Non-blocking;
// events for users without a connection are dropped.
func (m *Manager) SendToUser(userID, eventType string, data interface{}) {
	select {
	case m.broadcast <- userEvent{userID: userID, event: Event{Type: eventType, Data: data}}:
	default:
		log.Printf("[SSE] Broadcast queue full, dropping %s event for user %s", eventType, userID)
	}
}

// ServeHTTP streams events to one authenticated connection until the client
// disconnects.
func (m *Manager) ServeHTTP(c *gin.Context, userID string) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	cl := &client{userID: userID, send: make(chan Event, 16)}
	m.register <- cl
	defer func() { m.unregister <- cl }()

	// Initial comment keeps proxies from buffering the empty stream
	fmt.Fprint(c.Writer, ": connected\n\n")
	flusher.Flush()

	notify := c.Request.Context().Done()
	for {
		select {
		case <-notify:
			return
		case event, ok := <-cl.send:
			if !ok {
				return
			}
			payload, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event.Type, payload)
			flusher.Flush()
		}
	}
}
