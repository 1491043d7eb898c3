package location

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/s777ia/ShoreSquad/internal/geo"
	"github.com/s777ia/ShoreSquad/internal/storage"
)

// ErrUnavailable is returned by a Source that currently has no coordinate.
var ErrUnavailable = errors.New("location unavailable")

// Source yields the device coordinate. It stands in for the geolocation
// capability: implementations may be fed by the client over the API, read a
// fixed value, or fail.
type Source interface {
	Locate(ctx context.Context) (geo.Coordinate, error)
}

// Options tune a Resolver. Zero values get the documented defaults.
type Options struct {
	Fallback geo.Coordinate
	StoreKey string
	Timeout  time.Duration // bound on a single lookup, default 10s
	TTL      time.Duration // validity window for a resolved coordinate, default 5m
}

// Resolver resolves the active coordinate. Lookups are bounded and cached;
// any failure yields the fallback coordinate, never an error.
type Resolver struct {
	mu       sync.Mutex
	source   Source
	store    storage.Store
	fallback geo.Coordinate
	key      string
	timeout  time.Duration
	ttl      time.Duration

	cached   geo.Coordinate
	cachedAt time.Time
	have     bool

	now func() time.Time
}

// Stored shape of a persisted coordinate, so the validity window survives
// restarts.
type persistedLocation struct {
	Coordinate geo.Coordinate `json:"coordinate"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func NewResolver(source Source, store storage.Store, opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	r := &Resolver{
		source:   source,
		store:    store,
		fallback: opts.Fallback,
		key:      opts.StoreKey,
		timeout:  opts.Timeout,
		ttl:      opts.TTL,
		now:      time.Now,
	}
	r.loadPersisted()
	return r
}

// loadPersisted seeds the cache from the store when a fresh enough
// coordinate was saved by a previous run.
func (r *Resolver) loadPersisted() {
	if r.store == nil || r.key == "" {
		return
	}
	var p persistedLocation
	ok, err := storage.GetJSON(r.store, r.key, &p)
	if err != nil {
		log.Println("warning: failed to read persisted location:", err)
		return
	}
	if ok && r.now().Sub(p.UpdatedAt) < r.ttl {
		r.cached = p.Coordinate
		r.cachedAt = p.UpdatedAt
		r.have = true
	}
}

// Resolve returns the active coordinate. Within the validity window the
// cached value is returned without consulting the source.
func (r *Resolver) Resolve(ctx context.Context) geo.Coordinate {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if r.have && now.Sub(r.cachedAt) < r.ttl {
		return r.cached
	}
	if r.source == nil {
		return r.fallback
	}

	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	coord, err := r.source.Locate(cctx)
	if err != nil {
		// Denial, timeout or missing capability all end up here: the caller
		// gets the fallback and no error.
		return r.fallback
	}

	r.cached = coord
	r.cachedAt = now
	r.have = true
	if r.store != nil && r.key != "" {
		p := persistedLocation{Coordinate: coord, UpdatedAt: now}
		if err := storage.PutJSON(r.store, r.key, p); err != nil {
			log.Println("warning: failed to persist location:", err)
		}
	}
	return coord
}

// Invalidate drops the cached coordinate so the next Resolve consults the
// source again. Used when the client reports a new position.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.have = false
	r.mu.Unlock()
}

// ClientSource is a Source fed by coordinates the web client reports over
// the API.
type ClientSource struct {
	mu    sync.Mutex
	coord geo.Coordinate
	set   bool
}

func NewClientSource() *ClientSource { return &ClientSource{} }

// Report stores the latest client-provided coordinate.
func (s *ClientSource) Report(c geo.Coordinate) {
	s.mu.Lock()
	s.coord = c
	s.set = true
	s.mu.Unlock()
}

func (s *ClientSource) Locate(ctx context.Context) (geo.Coordinate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return geo.Coordinate{}, ErrUnavailable
	}
	return s.coord, nil
}
