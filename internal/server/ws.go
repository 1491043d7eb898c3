package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/s777ia/ShoreSquad/internal/weather"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsHub tracks connected clients and pushes fresh weather bundles to them.
// All writes to a connection happen under mu; gorilla connections do not
// allow concurrent writers.
type wsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{clients: make(map[*websocket.Conn]struct{})}
}

// GET /ws: upgrades, registers and sends the latest bundle so a new client
// has something to render.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	var snapshot *weather.Bundle
	if bundle, ok := s.state.Weather(); ok {
		snapshot = &bundle
	}
	s.hub.register(conn, snapshot)
	go s.hub.readPump(conn)
}

// BroadcastWeather pushes a bundle to every connected client. Called by the
// refresher callback.
func (s *Server) BroadcastWeather(b weather.Bundle) {
	s.hub.broadcast(b)
}

// register adds the connection and, still holding the lock, sends the
// initial snapshot so the write cannot interleave with a broadcast.
func (h *wsHub) register(c *websocket.Conn, snapshot *weather.Bundle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	if snapshot == nil {
		return
	}
	data, err := json.Marshal(*snapshot)
	if err != nil {
		log.Println("error encoding ws payload:", err)
		return
	}
	if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("ws initial write error: %v", err)
		delete(h.clients, c)
		c.Close()
	}
}

func (h *wsHub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *wsHub) broadcast(b weather.Bundle) {
	data, err := json.Marshal(b)
	if err != nil {
		log.Println("error encoding ws payload:", err)
		return
	}
	h.mu.Lock()
	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			c.Close()
			delete(h.clients, c)
		}
	}
	h.mu.Unlock()
}

func (h *wsHub) readPump(c *websocket.Conn) {
	defer func() {
		h.remove(c)
		_ = c.Close()
	}()
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
