package web

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/nguyentantai21042004/lingua-flow/internal/pipeline"
)

// Store keeps one pipeline session per browser, keyed by a ULID cookie.
// Nothing is persisted; a restart starts every browser over.
type Store struct {
	ctrl pipeline.Controller
	ttl  time.Duration

	mu       sync.Mutex
	sessions map[string]*pipeline.Session
}

func NewStore(ctrl pipeline.Controller, ttl time.Duration) *Store {
	return &Store{
		ctrl:     ctrl,
		ttl:      ttl,
		sessions: make(map[string]*pipeline.Session),
	}
}

// Get returns a live session and marks it used.
func (s *Store) Get(id string) (*pipeline.Session, bool) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()

	if !ok {
		return nil, false
	}
	if s.expired(sess, time.Now()) {
		s.remove(id)
		return nil, false
	}

	sess.Touch()
	return sess, true
}

// Create starts a new session and returns its id.
func (s *Store) Create() (string, *pipeline.Session) {
	id := ulid.Make().String()
	sess := pipeline.NewSession(s.ctrl)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return id, sess
}

// Len returns the number of sessions held, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

func (s *Store) expired(sess *pipeline.Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.LastUsed()) > s.ttl
}

func (s *Store) remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
