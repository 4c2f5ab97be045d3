// Package session keeps per-browser-session cross-filter state in memory.
// Session loss is harmless: the client falls back to an unselected view.
package session

import (
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"citracker/core/crossfilter"
	"citracker/core/dataset"
)

type entry struct {
	state    crossfilter.State
	lastSeen time.Time

	// Last upstream selection observed per section. A change there makes any
	// element-based selection meaningless, so the section state is dropped.
	selections map[string]dataset.Selection
}

// Store is a TTL-bound map of session id to cross-filter state. Safe for
// concurrent use.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry
	now     func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// NewID mints a fresh session id.
func (s *Store) NewID() string {
	id, err := uuid.NewV4()
	if err != nil {
		// v4 generation only fails when the entropy source does; fall back
		// to a time-based id rather than refusing the session.
		return uuid.NewV5(uuid.NamespaceOID, time.Now().String()).String()
	}
	return id.String()
}

func (s *Store) get(id string) *entry {
	now := s.now()
	e, ok := s.entries[id]
	if ok && now.Sub(e.lastSeen) > s.ttl {
		delete(s.entries, id)
		ok = false
	}
	if !ok {
		e = &entry{selections: make(map[string]dataset.Selection)}
		s.entries[id] = e
	}
	e.lastSeen = now
	s.evictExpired(now)
	return e
}

func (s *Store) evictExpired(now time.Time) {
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, id)
		}
	}
}

// Observe returns the cross-filter state for id as seen under sel for the
// given section. If sel differs from the selection the section last rendered
// with, the section's element selections are cleared first.
func (s *Store) Observe(id, section string, sel dataset.Selection) crossfilter.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(id)
	if last, ok := e.selections[section]; ok && last != sel {
		e.state, _ = e.state.Reset(section)
	}
	e.selections[section] = sel
	return e.state
}

// Click applies a chart click for id and returns the updated state. ok is
// false when the section/chart pair is unknown.
func (s *Store) Click(id, section, chart string, el crossfilter.Element) (crossfilter.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(id)
	next, ok := e.state.Click(section, chart, el)
	if ok {
		e.state = next
	}
	return e.state, ok
}

// Reset clears one section (or all for "").
func (s *Store) Reset(id, section string) (crossfilter.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(id)
	next, ok := e.state.Reset(section)
	if ok {
		e.state = next
	}
	return e.state, ok
}

// Len reports live sessions, for metrics.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired(s.now())
	return len(s.entries)
}
