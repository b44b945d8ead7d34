package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/schisto-api/wizard"
)

var ErrSessionNotFound = fmt.Errorf("assessment session not found")

// Session holds a wizard of a single user. Sessions are only kept in
// memory and never persisted.
type Session struct {
	ID        string
	Wizard    *wizard.Wizard
	CreatedAt time.Time

	lastSeen time.Time
}

// SessionStore keeps the assessment sessions
type SessionStore interface {
	CreateSession() *Session
	GetSession(id string) (*Session, error)
	DeleteSession(id string) error
}

// SessionRegistry is an in-memory SessionStore. A session not accessed for
// the idle timeout is dropped by the janitor.
type SessionRegistry struct {
	sync.RWMutex

	sessions    map[string]*Session
	idleTimeout time.Duration
	options     []wizard.Option
	now         func() time.Time
}

func NewSessionRegistry(idleTimeout time.Duration, opts ...wizard.Option) *SessionRegistry {
	return &SessionRegistry{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
		options:     opts,
		now:         time.Now,
	}
}

// CreateSession starts a new wizard
func (r *SessionRegistry) CreateSession() *Session {
	now := r.now()
	s := &Session{
		ID:        uuid.New().String(),
		Wizard:    wizard.New(r.options...),
		CreatedAt: now,
		lastSeen:  now,
	}

	r.Lock()
	r.sessions[s.ID] = s
	r.Unlock()

	return s
}

// GetSession returns a session and refreshes its idle timer
func (r *SessionRegistry) GetSession(id string) (*Session, error) {
	r.Lock()
	defer r.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lastSeen = r.now()

	return s, nil
}

func (r *SessionRegistry) DeleteSession(id string) error {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)

	return nil
}

// Len returns the number of live sessions
func (r *SessionRegistry) Len() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.sessions)
}

// Expire drops sessions idle for longer than the idle timeout and returns
// how many were dropped
func (r *SessionRegistry) Expire() int {
	if r.idleTimeout <= 0 {
		return 0
	}

	deadline := r.now().Add(-r.idleTimeout)

	r.Lock()
	defer r.Unlock()

	count := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(deadline) {
			delete(r.sessions, id)
			count++
		}
	}

	return count
}

// Run expires idle sessions periodically until the context is done
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if count := r.Expire(); count > 0 {
				log.WithField("prefix", "session").Infof("expire %d idle sessions", count)
			}
		}
	}
}
