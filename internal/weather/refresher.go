package weather

import (
	"context"
	"sync"
	"time"
)

// Refresher periodically fetches a fresh bundle and hands it to a callback.
// The first tick fires immediately so the app has data right after startup.
type Refresher struct {
	svc      *Service
	interval time.Duration
	onUpdate func(Bundle) // callback so the server can update state and broadcast
	done     chan struct{}
	wg       sync.WaitGroup
}

func NewRefresher(svc *Service, interval time.Duration, onUpdate func(Bundle)) *Refresher {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Refresher{
		svc:      svc,
		interval: interval,
		onUpdate: onUpdate,
		done:     make(chan struct{}),
	}
}

// Start launches the refresh loop in a goroutine.
func (r *Refresher) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		t := time.NewTimer(0)
		defer t.Stop()
		for {
			select {
			case <-r.done:
				return
			case <-t.C:
				r.tick()
				t.Reset(r.interval)
			}
		}
	}()
}

func (r *Refresher) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	bundle := r.svc.Bundle(ctx)
	if r.onUpdate != nil {
		r.onUpdate(bundle)
	}
}

// Close stops the loop and waits for an in-flight tick to finish.
func (r *Refresher) Close() {
	close(r.done)
	r.wg.Wait()
}
