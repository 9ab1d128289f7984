package websocket

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

type UnicastMessage struct {
	UserID  uuid.UUID
	Message []byte
}

type RoleMessage struct {
	Role    string
	Message []byte
}

// Hub maintains the set of active clients and routes messages to them.
// A client registers with the user's id and role, so the hub can deliver
// personal notifications (unicast), role-wide notifications, and global
// broadcasts without the clients filtering anything themselves.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Messages for every connected client.
	broadcast chan []byte

	// Messages for a single user.
	unicast chan UnicastMessage

	// Messages for every client sharing a role.
	rolecast chan RoleMessage

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Channel to signal termination
	stop     chan struct{}
	stopOnce sync.Once
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		unicast:    make(chan UnicastMessage),
		rolecast:   make(chan RoleMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),

		clients: make(map[*Client]bool),
		stop:    make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("[WebSocket Hub] Client registered (User: %s, Role: %s)", client.userID, client.role)
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("[WebSocket Hub] Client unregistered (User: %s)", client.userID)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				h.deliver(client, message)
			}
		case msg := <-h.unicast:
			for client := range h.clients {
				if client.userID == msg.UserID {
					h.deliver(client, msg.Message)
				}
			}
		case msg := <-h.rolecast:
			for client := range h.clients {
				if client.role == msg.Role {
					h.deliver(client, msg.Message)
				}
			}
		case <-h.stop:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		}
	}
}

// deliver drops clients whose send buffer is full rather than blocking the hub.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.send <- message:
	default:
		close(client.send)
		delete(h.clients, client)
	}
}

func (h *Hub) BroadcastMessage(message []byte) {
	select {
	case h.broadcast <- message:
	case <-h.stop:
	}
}

func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	select {
	case h.unicast <- UnicastMessage{UserID: userID, Message: message}:
	case <-h.stop:
	}
}

func (h *Hub) SendToRole(role string, message []byte) {
	select {
	case h.rolecast <- RoleMessage{Role: role, Message: message}:
	case <-h.stop:
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}
