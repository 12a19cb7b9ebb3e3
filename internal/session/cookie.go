package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CookieConfig controls the anonymous session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func (c CookieConfig) name() string {
	if strings.TrimSpace(c.Name) == "" {
		return "cart_session"
	}
	return c.Name
}

// SessionID returns the session identifier from the request cookie,
// minting and setting a fresh one when absent. One session owns one
// persisted snapshot; concurrent tabs share it, last writer wins.
func (c CookieConfig) SessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(c.name()); err == nil {
		if id := strings.TrimSpace(cookie.Value); id != "" {
			return id
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    id,
		Path:     "/",
		MaxAge:   int(c.TTL / time.Second),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
