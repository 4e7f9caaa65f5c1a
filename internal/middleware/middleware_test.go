package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"lenzooadmin/internal/session"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func init() {
	gin.SetMode(gin.TestMode)
}

func loggedInRequest(t *testing.T, m *session.Manager, token string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	s := m.Open(r)
	s.SetToken(token, "Ada")
	w := httptest.NewRecorder()
	require.NoError(t, s.Save(r, w))

	next := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func guarded(m *session.Manager) *gin.Engine {
	r := gin.New()
	r.Use(Session(m))
	r.GET("/dashboard", RequireSession(zap.NewNop()), func(c *gin.Context) {
		c.String(http.StatusOK, "hello "+CurrentSession(c).DisplayName())
	})
	return r
}

func TestRequireSessionRedirectsAnonymous(t *testing.T) {
	m := session.NewManager(secret, false)
	w := httptest.NewRecorder()
	guarded(m).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Result().Cookies(), "flash should be persisted")
}

func TestRequireSessionLetsTokenThrough(t *testing.T) {
	m := session.NewManager(secret, false)
	w := httptest.NewRecorder()
	guarded(m).ServeHTTP(w, loggedInRequest(t, m, "opaque-token"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello Ada", w.Body.String())
}

func TestRequireSessionRejectsExpiredJWT(t *testing.T) {
	// {"alg":"HS256","typ":"JWT"} . {"exp":1000}
	expired := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJleHAiOjEwMDB9.c2ln"
	m := session.NewManager(secret, false)
	w := httptest.NewRecorder()
	guarded(m).ServeHTTP(w, loggedInRequest(t, m, expired))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "/missing", entries[1].ContextMap()["path"])
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.Len())
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	h := CSRF(secret, false, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
