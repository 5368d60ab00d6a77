package session

import (
	"net/http"
	"time"
)

// CookieName is the session ID cookie shared by the gate and auth handlers.
const CookieName = "comparo_session"

// SessionIDFromRequest extracts the session ID from the cookie, or "" when
// the visitor has no session.
func SessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

// SetCookie writes the session cookie. Durable logins get a MaxAge so the
// cookie survives browser restarts; ephemeral logins use a session cookie
// that the browser discards at tab close.
func SetCookie(w http.ResponseWriter, sessionID string, durable bool, durableTTL time.Duration) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if durable {
		cookie.MaxAge = int(durableTTL.Seconds())
	}
	http.SetCookie(w, cookie)
}

// ClearCookie expires the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
