package session

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestRedisStore_NewWithoutCookie(t *testing.T) {
	store := NewRedisStore(nil, []byte("0123456789abcdef0123456789abcdef"), []byte("0123456789abcdef"), false)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	sess, err := store.New(r, CookieName)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !sess.IsNew {
		t.Error("expected a fresh session")
	}
	if !sess.Options.HttpOnly || sess.Options.SameSite != http.SameSiteLaxMode {
		t.Errorf("unexpected cookie options: %+v", sess.Options)
	}
}

func TestRedisStore_TamperedCookieYieldsFreshSession(t *testing.T) {
	store := NewRedisStore(nil, []byte("0123456789abcdef0123456789abcdef"), []byte("0123456789abcdef"), false)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-valid-cookie"})

	sess, err := store.New(r, CookieName)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !sess.IsNew || sess.ID != "" {
		t.Errorf("expected fresh session, got ID=%q IsNew=%v", sess.ID, sess.IsNew)
	}
}

// Integration test, skipped unless REDIS_URL is set.
func TestRedisStoreIntegration(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close() //nolint:errcheck

	store := NewRedisStore(client, []byte("0123456789abcdef0123456789abcdef"), []byte("0123456789abcdef"), false)

	w := httptest.NewRecorder()
	if err := DismissDigest(store, w, httptest.NewRequest(http.MethodPost, "/", nil), "d1"); err != nil {
		t.Fatalf("DismissDigest: %v", err)
	}
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	if got := DismissedDigest(store, next); got != "d1" {
		t.Errorf("expected d1, got %q", got)
	}
}
