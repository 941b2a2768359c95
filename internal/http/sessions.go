package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"atletica/internal/calendar"
)

const sessionCookieName = "atletica_session"

type sessionEntry struct {
	mu       sync.Mutex
	session  *calendar.Session
	lastSeen time.Time
}

// sessionStore keeps one calendar session per browser. Entries live in
// memory only and are dropped after ttl of inactivity.
type sessionStore struct {
	mu         sync.Mutex
	ttl        time.Duration
	now        func() time.Time
	newSession func() *calendar.Session
	items      map[string]*sessionEntry
}

func newSessionStore(ttl time.Duration, newSession func() *calendar.Session) *sessionStore {
	return &sessionStore{
		ttl:        ttl,
		now:        time.Now,
		newSession: newSession,
		items:      make(map[string]*sessionEntry),
	}
}

// acquire returns the caller's session entry, creating one when the request
// carries no live session id. The cookie is sent on every call so its
// lifetime follows the last activity, like the server-side expiry.
func (st *sessionStore) acquire(w http.ResponseWriter, r *http.Request) (string, *sessionEntry) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if e, ok := st.items[c.Value]; ok && now.Sub(e.lastSeen) <= st.ttl {
			e.lastSeen = now
			st.setCookie(w, c.Value)
			return c.Value, e
		}
	}

	id := newSessionID()
	e := &sessionEntry{session: st.newSession(), lastSeen: now}
	st.items[id] = e
	st.setCookie(w, id)
	return id, e
}

func (st *sessionStore) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(st.ttl.Seconds()),
	})
}

// CleanExpired drops idle sessions. It satisfies cache.Cleaner so the
// cache manager can sweep sessions on its schedule.
func (st *sessionStore) CleanExpired() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for id, e := range st.items {
		if now.Sub(e.lastSeen) > st.ttl {
			delete(st.items, id)
			removed++
		}
	}
	return removed
}

func (st *sessionStore) Size() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.items)
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("s_%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
