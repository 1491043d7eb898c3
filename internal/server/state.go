package server

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/s777ia/ShoreSquad/internal/config"
	"github.com/s777ia/ShoreSquad/internal/events"
	"github.com/s777ia/ShoreSquad/internal/storage"
	"github.com/s777ia/ShoreSquad/internal/weather"
)

// Stats are the aggregate numbers shown on the landing page.
type Stats struct {
	Events      int     `json:"events"`
	Volunteers  int     `json:"volunteers"`
	Crews       int     `json:"crews"`
	CollectedKg float64 `json:"collectedKg"`
}

// State holds the in-memory view of events, crews and the latest weather
// bundle, backed by the key-value store.
type State struct {
	mu         sync.RWMutex
	events     []events.CleanupEvent
	crews      []events.Crew
	weather    weather.Bundle
	hasWeather bool
	prefs      json.RawMessage
	store      storage.Store
	keys       config.Keys
}

// NewState creates the state over a store (nil for memory only).
func NewState(store storage.Store, keys config.Keys) *State {
	return &State{store: store, keys: keys}
}

// LoadOrSeed reads events, crews and preferences from the store, seeding the
// demo data on first start. Store failures fall back to fresh seeds.
func (s *State) LoadOrSeed(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evs []events.CleanupEvent
	if ok := s.loadJSON(s.keys.CleanupEvents, &evs); !ok || len(evs) == 0 {
		evs = events.SeedEvents(now)
		s.persistJSON(s.keys.CleanupEvents, evs)
		log.Printf("seeded %d cleanup events", len(evs))
	}
	s.events = evs

	var crews []events.Crew
	if ok := s.loadJSON(s.keys.CrewData, &crews); !ok || len(crews) == 0 {
		crews = events.SeedCrews(now)
		s.persistJSON(s.keys.CrewData, crews)
		log.Printf("seeded %d crews", len(crews))
	}
	s.crews = crews

	if s.store != nil {
		if raw, ok, err := s.store.Get(s.keys.UserPreferences); err == nil && ok {
			s.prefs = raw
		}
	}
}

func (s *State) loadJSON(key string, v any) bool {
	if s.store == nil {
		return false
	}
	ok, err := storage.GetJSON(s.store, key, v)
	if err != nil {
		log.Printf("warning: failed to read %s from store: %v", key, err)
		return false
	}
	return ok
}

func (s *State) persistJSON(key string, v any) {
	if s.store == nil {
		return
	}
	if err := storage.PutJSON(s.store, key, v); err != nil {
		log.Printf("warning: failed to persist %s: %v", key, err)
	}
}

// Events returns a copy of the event list in stored order.
func (s *State) Events() []events.CleanupEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]events.CleanupEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Crews returns a copy of the crew list.
func (s *State) Crews() []events.Crew {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]events.Crew, len(s.crews))
	copy(out, s.crews)
	return out
}

// JoinEvent increments the attendee count for the event and persists the
// list. Joining a full event is rejected.
func (s *State) JoinEvent(id string) (events.CleanupEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID != id {
			continue
		}
		if s.events[i].Spots > 0 && s.events[i].Attendees >= s.events[i].Spots {
			return events.CleanupEvent{}, fmt.Errorf("event %s is full", id)
		}
		s.events[i].Attendees++
		s.persistJSON(s.keys.CleanupEvents, s.events)
		return s.events[i], nil
	}
	return events.CleanupEvent{}, fmt.Errorf("event %s not found", id)
}

// JoinCrew increments the member count for the crew and persists the list.
func (s *State) JoinCrew(id string) (events.Crew, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.crews {
		if s.crews[i].ID != id {
			continue
		}
		s.crews[i].Members++
		s.persistJSON(s.keys.CrewData, s.crews)
		return s.crews[i], nil
	}
	return events.Crew{}, fmt.Errorf("crew %s not found", id)
}

// SetWeather replaces the current weather bundle.
func (s *State) SetWeather(b weather.Bundle) {
	s.mu.Lock()
	s.weather = b
	s.hasWeather = true
	s.mu.Unlock()
}

// Weather returns the latest bundle and whether one has been set.
func (s *State) Weather() (weather.Bundle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weather, s.hasWeather
}

// Preferences returns the stored raw preference blob, nil when unset.
func (s *State) Preferences() json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// SetPreferences stores the raw preference blob as-is. The shape belongs to
// the client; the server only round-trips it.
func (s *State) SetPreferences(raw json.RawMessage) {
	s.mu.Lock()
	s.prefs = raw
	if s.store != nil {
		if err := s.store.Put(s.keys.UserPreferences, raw); err != nil {
			log.Println("warning: failed to persist preferences:", err)
		}
	}
	s.mu.Unlock()
}

// ClearPreferences drops the stored preference blob.
func (s *State) ClearPreferences() {
	s.mu.Lock()
	s.prefs = nil
	if s.store != nil {
		if err := s.store.Delete(s.keys.UserPreferences); err != nil {
			log.Println("warning: failed to delete preferences:", err)
		}
	}
	s.mu.Unlock()
}

// Stats aggregates the landing page numbers from events and crews.
func (s *State) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Events: len(s.events), Crews: len(s.crews)}
	for _, ev := range s.events {
		st.Volunteers += ev.Attendees
		st.CollectedKg += ev.CollectedKg
	}
	return st
}

// Close closes the underlying store if there is one.
func (s *State) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
