package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marklaroya/portfolio/internal/analytics"
	"github.com/marklaroya/portfolio/internal/config"
	"github.com/marklaroya/portfolio/internal/content"
	"github.com/marklaroya/portfolio/internal/metrics"
	"github.com/marklaroya/portfolio/internal/view"
	"github.com/marklaroya/portfolio/internal/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type visitLog struct {
	mu     sync.Mutex
	visits []analytics.Visit
}

func (l *visitLog) Record(_ context.Context, v analytics.Visit) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visits = append(l.visits, v)
	return nil
}

func (l *visitLog) paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, v := range l.visits {
		out = append(out, v.Path)
	}
	return out
}

type testServer struct {
	engine  *gin.Engine
	views   *view.Store
	tracker *analytics.Tracker
	visits  *visitLog
}

func newTestServer(t *testing.T, ttl time.Duration, mutate func(*Deps)) *testServer {
	t.Helper()
	r, err := web.NewRenderer("", discard)
	require.NoError(t, err)

	cfg := config.Default()
	visits := &visitLog{}
	tracker, err := analytics.NewTracker(visits, cfg.Analytics.Exclude, discard)
	require.NoError(t, err)

	d := Deps{
		Config:   cfg,
		Views:    view.NewStore(ttl, 0, content.Sections()),
		Renderer: r,
		Tracker:  tracker,
		Log:      discard,
	}
	if mutate != nil {
		mutate(&d)
	}
	return &testServer{engine: New(d), views: d.Views, tracker: tracker, visits: visits}
}

func (ts *testServer) do(method, target, form string, header ...string) *httptest.ResponseRecorder {
	var body io.Reader
	if form != "" {
		body = strings.NewReader(form)
	}
	req := httptest.NewRequest(method, target, body)
	if form != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

var viewIDRe = regexp.MustCompile(`/views/([0-9a-f-]{36})/theme`)

// load fetches the page and returns its body and view id.
func (ts *testServer) load(t *testing.T) (string, string) {
	t.Helper()
	w := ts.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	m := viewIDRe.FindStringSubmatch(w.Body.String())
	require.NotNil(t, m, "page carries a view id")
	return w.Body.String(), m[1]
}

func TestIndexStartsLightWithMenuClosed(t *testing.T) {
	ts := newTestServer(t, time.Minute, nil)
	body, id := ts.load(t)

	assert.Contains(t, body, `<html lang="en" class="">`)
	assert.Contains(t, body, `data-menu="closed"`)

	v, err := ts.views.Get(id)
	require.NoError(t, err)
	assert.False(t, v.Theme.Dark())
	assert.False(t, v.Nav.MenuOpen())
}

func TestThemeToggleThenReload(t *testing.T) {
	ts := newTestServer(t, time.Minute, nil)
	_, id := ts.load(t)

	w := ts.do(http.MethodPost, "/views/"+id+"/theme", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"themeChanged":{"dark":true}}`, w.Header().Get("HX-Trigger"))
	assert.Contains(t, w.Body.String(), `id="site-nav"`)
	assert.Contains(t, w.Body.String(), `aria-pressed="true"`)

	v, err := ts.views.Get(id)
	require.NoError(t, err)
	assert.True(t, v.Document.HasClass(view.DarkClass))

	body, newID := ts.load(t)
	assert.NotEqual(t, id, newID)
	assert.Contains(t, body, `<html lang="en" class="">`)

	w = ts.do(http.MethodPost, "/views/"+id+"/theme", "")
	assert.JSONEq(t, `{"themeChanged":{"dark":false}}`, w.Header().Get("HX-Trigger"))
}

func TestThemeExplicitValue(t *testing.T) {
	ts := newTestServer(t, time.Minute, nil)
	_, id := ts.load(t)

	for _, want := range []bool{true, true, false, false} {
		form := "dark=false"
		if want {
			form = "dark=true"
		}
		w := ts.do(http.MethodPost, "/views/"+id+"/theme", form)
		require.Equal(t, http.StatusOK, w.Code)

		v, err := ts.views.Get(id)
		require.NoError(t, err)
		assert.Equal(t, want, v.Theme.Dark())
	}

	w := ts.do(http.MethodPost, "/views/"+id+"/theme", "dark=maybe")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuThenGoTo(t *testing.T) {
	ts := newTestServer(t, time.Minute, nil)
	_, id := ts.load(t)

	w := ts.do(http.MethodPost, "/views/"+id+"/menu", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-menu="open"`)
	assert.Contains(t, w.Body.String(), `id="mobile-menu"`)
	assert.Empty(t, w.Header().Get("HX-Trigger"))

	w = ts.do(http.MethodPost, "/views/"+id+"/goto/projects", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-menu="closed"`)
	assert.JSONEq(t, `{"scrollToSection":{"id":"projects"}}`, w.Header().Get("HX-Trigger"))

	v, err := ts.views.Get(id)
	require.NoError(t, err)
	assert.False(t, v.Nav.MenuOpen())
}

func TestMenuTogglesBackClosed(t *testing.T) {
	ts := newTestServer(t, time.Minute, nil)
	_, id := ts.load(t)

	ts.do(http.MethodPost, "/views/"+id+"/menu", "")
	w := ts.do(http.MethodPost, "/views/"+id+"/menu", "")
	assert.Contains(t, w.Body.String(), `data-menu="closed"`)
}

func TestGoToUnknownSection(t *testing.T) {
	ts := newTestServer(t, time.Minute, nil)
	_, id := ts.load(t)
	ts.do(http.MethodPost, "/views/"+id+"/menu", "")

	w := ts.do(http.MethodPost, "/views/"+id+"/goto/blog", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("HX-Trigger"))
	assert.Contains(t, w.Body.String(), `data-menu="closed"`)
}

func TestUnknownViewAsksForReload(t *testing.T) {
	ts := newTestServer(t, time.Minute, nil)
	for _, path := range []string{"/theme", "/menu", "/goto/about"} {
		w := ts.do(http.MethodPost, "/views/does-not-exist"+path, "")
		assert.Equal(t, http.StatusGone, w.Code, path)
		assert.Equal(t, "true", w.Header().Get("HX-Refresh"), path)
	}
}

func TestExpiredViewAsksForReload(t *testing.T) {
	ts := newTestServer(t, time.Millisecond, nil)
	_, id := ts.load(t)
	time.Sleep(5 * time.Millisecond)

	w := ts.do(http.MethodPost, "/views/"+id+"/theme", "")
	assert.Equal(t, http.StatusGone, w.Code)
	assert.Equal(t, "true", w.Header().Get("HX-Refresh"))
}

func TestVisitTracking(t *testing.T) {
	ts := newTestServer(t, time.Minute, nil)

	ts.do(http.MethodGet, "/", "", "DNT", "1")
	ts.do(http.MethodGet, "/static/css/site.css", "")
	ts.do(http.MethodGet, "/privacy", "")
	ts.do(http.MethodGet, "/healthz", "")
	_, id := ts.load(t)
	ts.do(http.MethodPost, "/views/"+id+"/theme", "")
	ts.do(http.MethodGet, "/missing", "")
	ts.tracker.Wait()

	assert.Equal(t, []string{"/"}, ts.visits.paths())
}

func TestStaticAndHeaders(t *testing.T) {
	ts := newTestServer(t, time.Minute, nil)
	w := ts.do(http.MethodGet, "/static/js/site.js", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scrollToSection")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestPrivacyPage(t *testing.T) {
	ts := newTestServer(t, time.Minute, nil)
	w := ts.do(http.MethodGet, "/privacy", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1 year")
}

func TestHealthAndReadiness(t *testing.T) {
	ts := newTestServer(t, time.Minute, nil)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/readyz", "").Code)

	down := newTestServer(t, time.Minute, func(d *Deps) {
		d.Ready = func(context.Context) error { return errors.New("db gone") }
	})
	assert.Equal(t, http.StatusServiceUnavailable, down.do(http.MethodGet, "/readyz", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, time.Minute, nil)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, "/metrics", "").Code)

	reg := prom.NewRegistry()
	withMetrics := newTestServer(t, time.Minute, func(d *Deps) {
		d.Metrics = metrics.NewPrometheusRecorder(reg)
		d.Gatherer = reg
	})
	_, id := withMetrics.load(t)
	withMetrics.do(http.MethodPost, "/views/"+id+"/goto/contact", "")

	w := withMetrics.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "portfolio_page_views_total 1")
	assert.Contains(t, body, `portfolio_navigations_total{result="found",section="contact"} 1`)
}

func TestHumanDuration(t *testing.T) {
	day := 24 * time.Hour
	assert.Equal(t, "1 year", humanDuration(365*day))
	assert.Equal(t, "6 months", humanDuration(180*day))
	assert.Equal(t, "45 days", humanDuration(45*day))
	assert.Equal(t, "1 day", humanDuration(day))
	assert.Equal(t, "2h0m0s", humanDuration(2*time.Hour))
}
