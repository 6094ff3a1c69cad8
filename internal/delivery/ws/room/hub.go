package ws_room

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/humanbelnik/matchpoint/core/internal/model"
	usecase_room "github.com/humanbelnik/matchpoint/core/internal/usecase/room"
)

const (
	EventLobbyUpdate     = "LOBBY_UPDATE"
	EventPoolReady       = "POOL_READY"
	EventRoomFailed      = "ROOM_FAILED"
	EventVoteCast        = "VOTE_CAST"
	EventMatchFound      = "MATCH_FOUND"
	EventSessionFinished = "SESSION_FINISHED"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan Event
	userID   string
	roomCode model.RoomCode
}

type roomEvent struct {
	roomCode model.RoomCode
	event    Event
}

// Hub fans room events out to every subscribed client. Subscribers are
// a delivery optimization on top of the pollable read model, not the
// source of truth; a dropped event only delays the next poll.
type Hub struct {
	usecase    *usecase_room.Usecase
	logger     *slog.Logger
	clients    map[*Client]bool
	rooms      map[model.RoomCode]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomEvent
	mu         sync.RWMutex
}

func NewHub(usecase *usecase_room.Usecase) *Hub {
	return &Hub{
		usecase:    usecase,
		logger:     slog.Default(),
		clients:    make(map[*Client]bool),
		rooms:      make(map[model.RoomCode]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomEvent),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case roomEvent := <-h.broadcast:
			h.broadcastToRoom(roomEvent.roomCode, roomEvent.event)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if _, exists := h.rooms[client.roomCode]; !exists {
		h.rooms[client.roomCode] = make(map[*Client]bool)
	}
	h.rooms[client.roomCode][client] = true

	h.logger.Info("client registered",
		"user_id", client.userID,
		"room", client.roomCode)

	go h.broadcastParticipantsCount(client.roomCode)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropClient(client)

	h.logger.Info("client unregistered",
		"user_id", client.userID,
		"room", client.roomCode)
}

// dropClient is the single place a client's send channel gets closed.
// Callers must hold the write lock; the clients-map check keeps a drop
// racing an unregister from closing the channel twice.
func (h *Hub) dropClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	if roomClients, exists := h.rooms[client.roomCode]; exists {
		delete(roomClients, client)
		if len(roomClients) == 0 {
			delete(h.rooms, client.roomCode)
		}
	}
}

func (h *Hub) broadcastParticipantsCount(roomCode model.RoomCode) {
	count, err := h.usecase.ParticipantsCount(context.Background(), roomCode)
	if err != nil {
		h.logger.Error("failed to get participants count", "error", err, "room", roomCode)
		return
	}

	h.broadcastToRoom(roomCode, Event{
		Type: EventLobbyUpdate,
		Payload: map[string]interface{}{
			"participants_count": count,
		},
	})
}

func (h *Hub) broadcastToRoom(roomCode model.RoomCode, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.rooms[roomCode] {
		select {
		case client.send <- event:
		default:
			// Slow consumer. Drop it outright so its readPump
			// unregister finds nothing left to close.
			h.dropClient(client)
		}
	}
}

func (h *Hub) NotifyUserJoined(roomCode model.RoomCode) {
	go h.broadcastParticipantsCount(roomCode)
}

func (h *Hub) NotifyPoolReady(roomCode model.RoomCode) {
	h.broadcast <- roomEvent{
		roomCode: roomCode,
		event: Event{
			Type: EventPoolReady,
			Payload: map[string]interface{}{
				"room_code": roomCode,
			},
		},
	}
}

func (h *Hub) NotifyRoomFailed(roomCode model.RoomCode) {
	h.broadcast <- roomEvent{
		roomCode: roomCode,
		event: Event{
			Type: EventRoomFailed,
			Payload: map[string]interface{}{
				"room_code": roomCode,
			},
		},
	}
}

func (h *Hub) NotifyVoteCast(roomCode model.RoomCode, contentID model.ContentID) {
	h.broadcast <- roomEvent{
		roomCode: roomCode,
		event: Event{
			Type: EventVoteCast,
			Payload: map[string]interface{}{
				"content_id": contentID,
			},
		},
	}
}

func (h *Hub) NotifyMatchFound(roomCode model.RoomCode, contentID model.ContentID, meta model.DisplayMeta) {
	h.broadcast <- roomEvent{
		roomCode: roomCode,
		event: Event{
			Type: EventMatchFound,
			Payload: map[string]interface{}{
				"content_id":   contentID,
				"title":        meta.Title,
				"poster_link":  meta.PosterLink,
				"release_date": meta.ReleaseDate,
				"timestamp":    time.Now().Unix(),
			},
		},
	}
}

func (h *Hub) NotifySessionFinished(roomCode model.RoomCode) {
	h.broadcast <- roomEvent{
		roomCode: roomCode,
		event: Event{
			Type: EventSessionFinished,
			Payload: map[string]interface{}{
				"room_code": roomCode,
			},
		},
	}
}
