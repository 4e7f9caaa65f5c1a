// Package session keeps the admin's upstream bearer token, display name and
// pending flash messages in a signed cookie.
package session

import (
	"encoding/gob"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	cookieName = "lenzoo-admin"

	keyToken = "token"
	keyName  = "name"
	keyID    = "sid"
)

func init() {
	gob.Register(Flash{})
}

// Flash is a one-shot toast shown on the next rendered page.
type Flash struct {
	Type    string
	Message string
}

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
)

// Manager opens per-request sessions.
type Manager struct {
	store *sessions.CookieStore
	now   func() time.Time
}

func NewManager(secret []byte, secure bool) *Manager {
	store := sessions.NewCookieStore(secret)
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"
	store.MaxAge(int((12 * time.Hour).Seconds()))
	return &Manager{store: store, now: time.Now}
}

// Session is the admin session of one request. Changes are written by Save.
type Session struct {
	raw *sessions.Session
	now func() time.Time
}

// Open loads the request's session. A corrupt or foreign cookie yields a
// fresh, empty session.
func (m *Manager) Open(r *http.Request) *Session {
	raw, err := m.store.Get(r, cookieName)
	if err != nil {
		raw, _ = m.store.New(r, cookieName)
	}
	return &Session{raw: raw, now: m.now}
}

func (s *Session) Save(r *http.Request, w http.ResponseWriter) error {
	return s.raw.Save(r, w)
}

// Token returns the bearer token, or "" when logged out or when the token is
// a JWT whose exp has passed.
func (s *Session) Token() string {
	token, _ := s.raw.Values[keyToken].(string)
	if token == "" || Expired(token, s.now()) {
		return ""
	}
	return token
}

// Expired reports whether a token is stored but its JWT exp has passed.
func (s *Session) Expired() bool {
	token, _ := s.raw.Values[keyToken].(string)
	return token != "" && Expired(token, s.now())
}

// SetToken stores a fresh login and starts a new session id.
func (s *Session) SetToken(token, displayName string) {
	s.raw.Values[keyToken] = token
	s.raw.Values[keyName] = displayName
	s.raw.Values[keyID] = uuid.NewString()
}

// SetDisplayName renames the admin without starting a new session.
func (s *Session) SetDisplayName(name string) {
	s.raw.Values[keyName] = name
}

func (s *Session) DisplayName() string {
	name, _ := s.raw.Values[keyName].(string)
	return name
}

// ID is stable for one login.
func (s *Session) ID() string {
	id, _ := s.raw.Values[keyID].(string)
	return id
}

// Clear removes everything stored for the admin. Flashes added afterwards
// survive until the next request.
func (s *Session) Clear() {
	for k := range s.raw.Values {
		delete(s.raw.Values, k)
	}
}

func (s *Session) AddFlash(kind, message string) {
	s.raw.AddFlash(Flash{Type: kind, Message: message})
}

// Flashes drains pending flashes. Callers must Save to persist the removal.
func (s *Session) Flashes() []Flash {
	var out []Flash
	for _, f := range s.raw.Flashes() {
		if fm, ok := f.(Flash); ok {
			out = append(out, fm)
		}
	}
	return out
}

// Expired reports whether token is a JWT with an exp claim before now. The
// signature is not checked; the console does not own the signing key and the
// API remains the authority. Tokens that are not JWTs never expire here.
func Expired(token string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
