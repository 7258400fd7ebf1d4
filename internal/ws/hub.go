package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types pushed to poll watchers. The hub is the single change
// notification path; clients never need to re-poll on an interval.
const (
	EventResponseSubmitted = "response_submitted"
	EventPollStateChanged  = "poll_state_changed"
	EventResultsRevealed   = "results_revealed"
	EventQuestionUpdated   = "question_updated"
	EventResponsesReset    = "responses_reset"
	EventParticipantJoined = "participant_joined"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Hub struct {
	mu    sync.RWMutex
	polls map[uint]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		polls: make(map[uint]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(pollID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.polls[pollID] == nil {
		h.polls[pollID] = make(map[*websocket.Conn]bool)
	}
	h.polls[pollID][conn] = true
	log.Printf("ws: client connected to poll %d (total: %d)", pollID, len(h.polls[pollID]))
}

func (h *Hub) RemoveConnection(pollID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.polls[pollID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.polls, pollID)
		}
		log.Printf("ws: client disconnected from poll %d", pollID)
	}
}

// Watchers reports how many connections are currently subscribed to a poll.
func (h *Hub) Watchers(pollID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.polls[pollID])
}

// Broadcast holds the write lock for the whole fan-out: it prunes failed
// connections from the map, and gorilla connections do not allow concurrent
// writers.
func (h *Hub) Broadcast(pollID uint, message WSMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.polls[pollID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(h.polls, pollID)
	}
}
