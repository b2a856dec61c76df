// Package session implements the per-session flash slot: a single-use
// message written before a redirect and cleared the moment it is read.
// Entries live in Redis when a client is available so messages survive
// restarts and multiple instances; without Redis the store degrades to an
// in-process map, which is enough for a single server.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/csemotors/motors/internal/utils"
)

// CookieName identifies the anonymous session used to key flash messages.
// It is distinct from the JWT login cookie: flashes work for guests too.
const CookieName = "motors_session"

// flashTTL bounds how long an unread flash may linger. A redirect is
// followed within seconds; anything older is stale.
const flashTTL = 10 * time.Minute

// Store provides the single-use flash slot keyed by session id.
type Store struct {
	rdb *redis.Client // nil when Redis is unavailable

	mu  sync.Mutex
	mem map[string]memEntry
}

type memEntry struct {
	value   string
	expires time.Time
}

// NewStore builds a Store over the given Redis client. A nil client selects
// the in-process fallback.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, mem: make(map[string]memEntry)}
}

// SetFlash stores the one-time message for a session, replacing any unread
// previous value.
func (s *Store) SetFlash(ctx context.Context, sessionID, message string) {
	if sessionID == "" || message == "" {
		return
	}
	if s.rdb != nil {
		// Failures degrade to losing the notice, never the request.
		_ = s.rdb.Set(ctx, flashKey(sessionID), message, flashTTL).Err()
		return
	}
	s.mu.Lock()
	s.mem[sessionID] = memEntry{value: message, expires: time.Now().Add(flashTTL)}
	s.mu.Unlock()
}

// PopFlash returns the pending message for a session and clears it in the
// same step, so a stale notice can never leak into an unrelated later
// request from the same session. An empty string means no message waited.
func (s *Store) PopFlash(ctx context.Context, sessionID string) string {
	if sessionID == "" {
		return ""
	}
	if s.rdb != nil {
		v, err := s.rdb.GetDel(ctx, flashKey(sessionID)).Result()
		if err != nil {
			return ""
		}
		return v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.mem[sessionID]
	if !ok {
		return ""
	}
	delete(s.mem, sessionID)
	if time.Now().After(e.expires) {
		return ""
	}
	return e.value
}

func flashKey(sessionID string) string { return "flash:" + sessionID }

// SessionID returns the request's session id, minting a new id and setting
// the cookie when the client does not carry one yet.
func SessionID(c echo.Context) string {
	if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	id, err := utils.RandomHex(16)
	if err != nil {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
