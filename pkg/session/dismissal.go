package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	// CookieName is the session cookie used by the inventory UI.
	CookieName = "stocktracker_session"

	dismissedDigestKey = "low_stock_dismissed_digest"
)

// DismissedDigest returns the low-stock digest the browser last dismissed,
// or "" when nothing was dismissed.
func DismissedDigest(store sessions.Store, r *http.Request) string {
	if store == nil {
		return ""
	}
	sess, err := store.Get(r, CookieName)
	if err != nil {
		return ""
	}
	digest, _ := sess.Values[dismissedDigestKey].(string)
	return digest
}

// DismissDigest remembers digest as dismissed for this browser. The
// notification re-opens once the low-stock digest changes.
func DismissDigest(store sessions.Store, w http.ResponseWriter, r *http.Request, digest string) error {
	if store == nil {
		return fmt.Errorf("session: no store configured")
	}
	sess, err := store.Get(r, CookieName)
	if err != nil {
		return fmt.Errorf("session: load: %w", err)
	}
	sess.Values[dismissedDigestKey] = digest
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}
