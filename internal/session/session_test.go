package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": exp.Unix(),
	}).SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return tok
}

// roundTrip saves s and returns a request carrying the resulting cookie.
func roundTrip(t *testing.T, s *Session, r *http.Request) *http.Request {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, s.Save(r, w))
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager(secret, false)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	s := m.Open(r)
	assert.Empty(t, s.Token())

	s.SetToken("abc123", "Admin")
	next := roundTrip(t, s, r)

	reopened := m.Open(next)
	assert.Equal(t, "abc123", reopened.Token())
	assert.Equal(t, "Admin", reopened.DisplayName())
	assert.NotEmpty(t, reopened.ID())
}

func TestClearRemovesEverything(t *testing.T) {
	m := NewManager(secret, false)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	s := m.Open(r)
	s.SetToken("abc123", "Admin")
	s.Clear()
	s.AddFlash(FlashSuccess, "Logged out")

	reopened := m.Open(roundTrip(t, s, r))
	assert.Empty(t, reopened.Token())
	assert.Empty(t, reopened.DisplayName())
	assert.Equal(t, []Flash{{Type: FlashSuccess, Message: "Logged out"}}, reopened.Flashes())
}

func TestFlashesAreDrained(t *testing.T) {
	m := NewManager(secret, false)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	s := m.Open(r)
	s.AddFlash(FlashError, "Failed")
	assert.Len(t, s.Flashes(), 1)
	assert.Empty(t, s.Flashes())
}

func TestForeignCookieYieldsEmptySession(t *testing.T) {
	m := NewManager(secret, false)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "garbage"})

	s := m.Open(r)
	assert.Empty(t, s.Token())
}

func TestExpiredJWTCountsAsLoggedOut(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, Expired(signed(t, now.Add(-time.Minute)), now))
	assert.False(t, Expired(signed(t, now.Add(time.Hour)), now))
	assert.False(t, Expired("abc123", now), "opaque tokens are left to the API")

	m := NewManager(secret, false)
	m.now = func() time.Time { return now }
	s := m.Open(httptest.NewRequest(http.MethodGet, "/", nil))
	s.SetToken(signed(t, now.Add(-time.Second)), "Admin")
	assert.Empty(t, s.Token())
}

func TestSetDisplayNameKeepsSessionID(t *testing.T) {
	m := NewManager(secret, false)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	s := m.Open(r)
	s.SetToken("abc123", "Admin")
	id := s.ID()
	s.SetDisplayName("Asha")

	reopened := m.Open(roundTrip(t, s, r))
	assert.Equal(t, "Asha", reopened.DisplayName())
	assert.Equal(t, id, reopened.ID())
	assert.Equal(t, "abc123", reopened.Token())
}
