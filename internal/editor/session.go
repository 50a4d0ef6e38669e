package editor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"portfolio-backend/internal/portfolio"
)

// DefaultSessionTTL is how long an idle draft survives before it is swept.
const DefaultSessionTTL = 2 * time.Hour

// Session is one in-memory draft of a document. The draft shares no mutable
// state with the authoritative document; edits stay invisible until commit.
type Session struct {
	ID        string
	Lang      portfolio.Lang
	Draft     portfolio.Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func newSessionRegistry(ttl time.Duration) *sessionRegistry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionRegistry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *sessionRegistry) create(lang portfolio.Lang, draft portfolio.Document) *Session {
	now := r.now()
	sess := &Session{
		ID:        uuid.NewString(),
		Lang:      lang,
		Draft:     draft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.mu.Lock()
	r.sweepLocked(now)
	r.sessions[sess.ID] = sess
	r.mu.Unlock()
	return sess
}

// withSession runs fn while holding the registry lock, so structured
// mutations on a draft never interleave.
func (r *sessionRegistry) withSession(id string, fn func(*Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweepLocked(now)
	sess, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if err := fn(sess); err != nil {
		return err
	}
	sess.UpdatedAt = now
	return nil
}

func (r *sessionRegistry) drop(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

func (r *sessionRegistry) sweepLocked(now time.Time) {
	for id, sess := range r.sessions {
		if now.Sub(sess.UpdatedAt) > r.ttl {
			delete(r.sessions, id)
		}
	}
}
