package api

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Mutating endpoints (advance, save) are token-protected: the simulation
// is the authority on its own state, and an unauthenticated network peer
// must not be able to advance the clock.

// SessionDuration bounds how long an issued session stays valid.
const SessionDuration = 24 * time.Hour

type session struct {
	createdAt time.Time
	expiresAt time.Time
}

// SessionManager exchanges the admin token for short-lived session IDs
// and validates them on protected routes.
type SessionManager struct {
	mu         sync.RWMutex
	sessions   map[string]session
	adminToken string
}

// NewSessionManager creates a manager around a static admin token. An
// empty token disables authentication entirely (local single-user use).
func NewSessionManager(adminToken string) *SessionManager {
	return &SessionManager{
		sessions:   make(map[string]session),
		adminToken: adminToken,
	}
}

// Enabled reports whether authentication is configured.
func (sm *SessionManager) Enabled() bool { return sm.adminToken != "" }

// Login validates the presented token and mints a session ID.
func (sm *SessionManager) Login(token string) (string, bool) {
	if !sm.Enabled() {
		return "", false
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(sm.adminToken)) != 1 {
		return "", false
	}

	id := newSessionID()
	now := time.Now()
	sm.mu.Lock()
	sm.sessions[id] = session{createdAt: now, expiresAt: now.Add(SessionDuration)}
	sm.mu.Unlock()
	return id, true
}

// Validate checks a session ID, expiring stale entries lazily.
func (sm *SessionManager) Validate(id string) bool {
	sm.mu.RLock()
	s, ok := sm.sessions[id]
	sm.mu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(s.expiresAt) {
		sm.mu.Lock()
		delete(sm.sessions, id)
		sm.mu.Unlock()
		return false
	}
	return true
}

// Middleware protects a route subtree. Requests may present either the
// admin token directly (Authorization: Bearer <token>) or a session ID
// from Login. With no token configured, everything passes.
func (sm *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sm.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		credential := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if credential == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(credential), []byte(sm.adminToken)) == 1 || sm.Validate(credential) {
			next.ServeHTTP(w, r)
			return
		}

		log.Printf("api: rejected admin request from %s", GetClientIP(r))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}

func newSessionID() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the host is in serious trouble; a
		// predictable ID here only affects the local admin surface.
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(buf)
}
