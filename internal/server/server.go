package server

import (
	_ "embed"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/s777ia/ShoreSquad/internal/events"
	"github.com/s777ia/ShoreSquad/internal/geo"
	"github.com/s777ia/ShoreSquad/internal/location"
	"github.com/s777ia/ShoreSquad/internal/weather"
)

//go:embed index.html
var indexHTML []byte

// Server HTTP: serves the UI and the API.
type Server struct {
	state    *State
	resolver *location.Resolver
	source   *location.ClientSource
	weather  *weather.Service
	hub      *wsHub
	mux      *http.ServeMux
}

func NewServer(state *State, resolver *location.Resolver, source *location.ClientSource, wsvc *weather.Service) *Server {
	s := &Server{
		state:    state,
		resolver: resolver,
		source:   source,
		weather:  wsvc,
		hub:      newWSHub(),
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) Router() http.Handler { return s.mux }

func (s *Server) routes() {
	// UI
	s.mux.HandleFunc("/", s.handleIndex)

	// API
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/weather", s.handleWeather)
	s.mux.HandleFunc("/api/location", s.handleLocation)
	s.mux.HandleFunc("/api/events", s.handleEvents)
	s.mux.HandleFunc("/api/events/join", s.handleJoinEvent)
	s.mux.HandleFunc("/api/crews", s.handleCrews)
	s.mux.HandleFunc("/api/crews/join", s.handleJoinCrew)
	s.mux.HandleFunc("/api/preferences", s.handlePreferences)
	s.mux.HandleFunc("/api/stats", s.handleStats)

	// Live updates
	s.mux.HandleFunc("/ws", s.handleWS)
}

// GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// GET /api/weather: latest bundle; fetched on demand until the refresher has
// filled the state.
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	bundle, ok := s.state.Weather()
	if !ok {
		bundle = s.weather.Bundle(r.Context())
		s.state.SetWeather(bundle)
	}
	writeJSON(w, bundle)
}

// POST /api/location: the client reports its coordinate (the geolocation
// permission prompt happens in the browser; we only see the result).
func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var coord geo.Coordinate
	if err := json.NewDecoder(r.Body).Decode(&coord); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	s.source.Report(coord)
	s.resolver.Invalidate()
	resolved := s.resolver.Resolve(r.Context())
	writeJSON(w, map[string]any{"status": "ok", "coordinate": resolved})
}

// Annotated event for the list endpoint.
type eventWithDistance struct {
	events.CleanupEvent
	DistanceMeters float64 `json:"distanceMeters"`
}

// GET /api/events?filter=all|today|weekend|upcoming: filtered events,
// annotated with the distance from the resolved coordinate.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := events.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	here := s.resolver.Resolve(r.Context())
	list := events.Apply(s.state.Events(), filter, time.Now())

	out := make([]eventWithDistance, 0, len(list))
	for _, ev := range list {
		out = append(out, eventWithDistance{
			CleanupEvent:   ev,
			DistanceMeters: geo.HaversineMeters(here, ev.Coordinate),
		})
	}
	writeJSON(w, out)
}

type joinRequest struct {
	ID string `json:"id"`
}

// POST /api/events/join: optimistic join; returns a receipt and the updated
// event.
func (s *Server) handleJoinEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeJoin(w, r)
	if !ok {
		return
	}
	ev, err := s.state.JoinEvent(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, map[string]any{"receipt": uuid.NewString(), "event": ev})
}

// GET /api/crews
func (s *Server) handleCrews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.state.Crews())
}

// POST /api/crews/join
func (s *Server) handleJoinCrew(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeJoin(w, r)
	if !ok {
		return
	}
	crew, err := s.state.JoinCrew(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, map[string]any{"receipt": uuid.NewString(), "crew": crew})
}

// GET/PUT /api/preferences: opaque JSON blob owned by the client.
func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		prefs := s.state.Preferences()
		if prefs == nil {
			prefs = json.RawMessage(`{}`)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(prefs)
	case http.MethodPut, http.MethodPost:
		raw, err := io.ReadAll(r.Body)
		if err != nil || !json.Valid(raw) {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		s.state.SetPreferences(raw)
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		s.state.ClearPreferences()
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.state.Stats())
}

func decodeJoin(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return "", false
	}
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return "", false
	}
	return req.ID, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("error encoding response:", err)
	}
}
