package ws

// The hub keeps the connected waiting-room displays and pushes a message to
// all of them whenever the desk state changes.

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/models"
)

var ErrHubClosed = errors.New("websocket hub is closed")

// Client is one websocket connection.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// Message is what displays receive for every desk event.
type Message struct {
	ID      string           `json:"id"`
	Seq     uint64           `json:"seq"`
	Type    models.EventType `json:"type"`
	Status  string           `json:"status"`
	Actor   string           `json:"actor,omitempty"`
	Queue   *int             `json:"queue,omitempty"`
	Patient string           `json:"patient,omitempty"`
	At      time.Time        `json:"at"`
}

type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for client := range h.clients {
			delete(h.clients, client)
			close(client.Send)
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug().Str("client_id", client.ID).Msg("display connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Debug().Str("client_id", client.ID).Msg("display disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// slow display, drop it
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish implements services.EventSink.
func (h *Hub) Publish(ctx context.Context, ev models.Event) error {
	data, err := json.Marshal(NewMessage(ev))
	if err != nil {
		return err
	}

	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}

	select {
	case h.broadcast <- data:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func NewMessage(ev models.Event) Message {
	msg := Message{
		ID:     ev.ID.String(),
		Seq:    ev.Seq,
		Type:   ev.Type,
		Status: statusLabel(ev.Type),
		Actor:  ev.Actor,
		At:     ev.At,
	}
	if ev.QueueIndex >= 0 {
		n := ev.QueueIndex + 1
		msg.Queue = &n
	}
	if ev.Patient != nil {
		msg.Patient = ev.Patient.Name
	}
	return msg
}

func statusLabel(t models.EventType) string {
	switch t {
	case models.EventPatientRegistered:
		return "Waiting"
	case models.EventPatientPassed:
		return "Passed reception"
	case models.EventPatientServed:
		return "Served"
	default:
		return "Roster changed"
	}
}
