package manage

import (
	"context"
	"sync"
	"time"

	"github.com/itchan-dev/postadmin/shared/logger"
)

// Sessions keeps one Page per operator session over a shared store.
type Sessions struct {
	store       Store
	maxDraftLen int
	mu          sync.Mutex
	pages       map[string]*Page
}

func NewSessions(s Store, maxDraftLen int) *Sessions {
	return &Sessions{
		store:       s,
		maxDraftLen: maxDraftLen,
		pages:       make(map[string]*Page),
	}
}

// Get returns the page for id, creating it on first use.
func (s *Sessions) Get(id string) *Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pages[id]
	if !ok {
		page = NewPage(s.store, s.maxDraftLen)
		s.pages[id] = page
	}
	return page
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Evict drops pages idle for longer than ttl. Busy pages are kept.
func (s *Sessions) Evict(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, page := range s.pages {
		if page.Busy() || page.IdleSince().After(cutoff) {
			continue
		}
		delete(s.pages, id)
		evicted++
	}
	return evicted
}

const minJanitorInterval = time.Millisecond

// StartJanitor evicts idle sessions every ttl/2 until ctx is done.
func (s *Sessions) StartJanitor(ctx context.Context, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(max(ttl/2, minJanitorInterval))
	logger.Log.Info("started session janitor",
		"component", "sessions",
		"ttl", ttl)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.Evict(ttl); n > 0 {
					logger.Log.Debug("evicted idle sessions",
						"component", "sessions",
						"evicted", n)
				}
			case <-ctx.Done():
				logger.Log.Info("session janitor shutting down gracefully",
					"component", "sessions")
				return
			}
		}
	}()
}
