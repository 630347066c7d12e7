package view

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marklaroya/portfolio/internal/content"
)

// ErrViewNotFound is returned for ids that were never issued or have been
// evicted after going idle.
var ErrViewNotFound = errors.New("view not found")

// View is the interactive state of one page load. A reload gets a new View,
// so nothing carries over between loads.
type View struct {
	ID       string
	Document *Document
	Theme    *Theme
	Nav      *Navigator
	Created  time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// Do runs fn with exclusive access to the view.
func (v *View) Do(fn func(v *View)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(v)
}

// Store keeps page views in memory for the lifetime of the process.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	limit    int
	sections []content.Section
	views    map[string]*View
	now      func() time.Time
}

// NewStore holds at most limit views; the least recently seen one makes room
// for a new load. A limit of zero or less means no cap.
func NewStore(ttl time.Duration, limit int, sections []content.Section) *Store {
	return &Store{
		ttl:      ttl,
		limit:    limit,
		sections: sections,
		views:    make(map[string]*View),
		now:      time.Now,
	}
}

// New registers a fresh view: light theme, menu closed.
func (s *Store) New() *View {
	now := s.now()
	doc := NewDocument()
	v := &View{
		ID:       uuid.NewString(),
		Document: doc,
		Theme:    NewTheme(doc),
		Nav:      NewNavigator(s.sections),
		Created:  now,
		lastSeen: now,
	}

	s.mu.Lock()
	if s.limit > 0 {
		for len(s.views) >= s.limit {
			s.dropOldest()
		}
	}
	s.views[v.ID] = v
	s.mu.Unlock()
	return v
}

// dropOldest removes the least recently seen view. Caller holds s.mu.
func (s *Store) dropOldest() {
	var oldest *View
	for _, v := range s.views {
		if oldest == nil || v.lastSeen.Before(oldest.lastSeen) {
			oldest = v
		}
	}
	if oldest != nil {
		delete(s.views, oldest.ID)
	}
}

// Get returns the view and marks it as seen.
func (s *Store) Get(id string) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[id]
	if !ok {
		return nil, ErrViewNotFound
	}
	now := s.now()
	if now.Sub(v.lastSeen) > s.ttl {
		delete(s.views, id)
		return nil, ErrViewNotFound
	}
	v.lastSeen = now
	return v, nil
}

// Evict drops views idle for longer than the TTL and returns how many went.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, v := range s.views {
		if now.Sub(v.lastSeen) > s.ttl {
			delete(s.views, id)
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}
