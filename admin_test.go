package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/marklaroya/portfolio/internal/analytics"
	"github.com/marklaroya/portfolio/internal/auth"
	"github.com/marklaroya/portfolio/internal/config"
	"github.com/marklaroya/portfolio/internal/content"
	"github.com/marklaroya/portfolio/internal/server"
	"github.com/marklaroya/portfolio/internal/view"
	"github.com/marklaroya/portfolio/internal/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type adminFixture struct {
	engine *gin.Engine
	visits *analytics.Store
}

func newAdminFixture(t *testing.T, loginLimit int) *adminFixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	visits, err := analytics.Open(context.Background(), filepath.Join(t.TempDir(), "admin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { visits.Close() })

	tracker, err := analytics.NewTracker(visits, config.DefaultExcludes, log)
	require.NoError(t, err)

	renderer, err := web.NewRenderer("", log)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)

	engine := server.New(server.Deps{
		Config:   config.Default(),
		Views:    view.NewStore(time.Minute, 0, content.Sections()),
		Renderer: renderer,
		Log:      log,
	})
	setupAdminRoutes(engine, adminDeps{
		auth:    auth.New("admin", string(hash), "test-secret"),
		visits:  visits,
		tracker: tracker,
		limiter: server.NewRateLimiter(loginLimit, time.Minute),
		log:     log,
	})
	return &adminFixture{engine: engine, visits: visits}
}

func (f *adminFixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *adminFixture) login(t *testing.T, user, pass string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {user}, "password": {pass}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func sessionFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func (f *adminFixture) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return f.do(req)
}

func TestAdminRequiresSession(t *testing.T) {
	f := newAdminFixture(t, 10)
	for _, path := range []string{"/admin/dashboard", "/admin/visitors", "/admin/api/stats", "/admin/export/stats"} {
		w := f.get(path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}

	w := f.get("/admin/dashboard", &http.Cookie{Name: sessionCookie, Value: "forged"})
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAdminLoginPage(t *testing.T) {
	f := newAdminFixture(t, 10)
	w := f.get("/admin/login", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="password"`)
}

func TestAdminBadLogin(t *testing.T) {
	f := newAdminFixture(t, 10)
	w := f.login(t, "admin", "nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, w.Result().Cookies())
}

func TestAdminLoginAndDashboard(t *testing.T) {
	f := newAdminFixture(t, 10)
	ctx := context.Background()
	require.NoError(t, f.visits.Record(ctx, analytics.Visit{HashedIP: "abcd", Path: "/", UserAgent: "test"}))
	require.NoError(t, f.visits.Record(ctx, analytics.Visit{HashedIP: "ef01", Path: "/", UserAgent: "test"}))

	w := f.login(t, "admin", "letmein")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	cookie := sessionFrom(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/admin", cookie.Path)

	w = f.get("/admin/dashboard", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-stat="total">2<`)
	assert.Contains(t, w.Body.String(), `data-stat="unique">2<`)

	w = f.get("/admin/visitors", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "abcd")

	w = f.get("/admin/api/stats", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var stats analytics.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 2, stats.TotalVisitors)
	assert.Len(t, stats.RecentVisitors, 2)

	w = f.get("/admin/export/stats", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=admin-stats.json", w.Header().Get("Content-Disposition"))
}

func TestAdminPrivacyCleanup(t *testing.T) {
	f := newAdminFixture(t, 10)
	ctx := context.Background()
	require.NoError(t, f.visits.Record(ctx, analytics.Visit{HashedIP: "old", Path: "/", Timestamp: time.Now().AddDate(-2, 0, 0)}))
	require.NoError(t, f.visits.Record(ctx, analytics.Visit{HashedIP: "new", Path: "/"}))

	cookie := sessionFrom(t, f.login(t, "admin", "letmein"))
	req := httptest.NewRequest(http.MethodPost, "/admin/privacy/cleanup", nil)
	req.AddCookie(cookie)
	w := f.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":1}`, w.Body.String())
}

func TestAdminLogout(t *testing.T) {
	f := newAdminFixture(t, 10)
	cookie := sessionFrom(t, f.login(t, "admin", "letmein"))

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(cookie)
	w := f.do(req)
	assert.Equal(t, http.StatusFound, w.Code)
	cleared := sessionFrom(t, w)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestAdminLoginRateLimited(t *testing.T) {
	f := newAdminFixture(t, 2)
	f.login(t, "admin", "x")
	f.login(t, "admin", "y")
	w := f.login(t, "admin", "letmein")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAdminRootRedirects(t *testing.T) {
	f := newAdminFixture(t, 10)
	w := f.get("/admin", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
}
