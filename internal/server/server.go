// Package server wires the HTTP surface of the portfolio.
package server

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/marklaroya/portfolio/internal/analytics"
	"github.com/marklaroya/portfolio/internal/config"
	"github.com/marklaroya/portfolio/internal/content"
	"github.com/marklaroya/portfolio/internal/metrics"
	"github.com/marklaroya/portfolio/internal/view"
	"github.com/marklaroya/portfolio/internal/web"
)

// Deps are the collaborators the handlers need. Tracker and Gatherer are
// optional: nil turns visit tracking or /metrics off.
type Deps struct {
	Config   *config.Config
	Views    *view.Store
	Renderer *web.Renderer
	Metrics  metrics.Recorder
	Tracker  *analytics.Tracker
	Gatherer prom.Gatherer
	// Ready reports whether backing stores are reachable.
	Ready func(ctx context.Context) error
	Log   *slog.Logger
}

type Server struct {
	views    *view.Store
	renderer *web.Renderer
	metrics  metrics.Recorder
	ready    func(ctx context.Context) error
	log      *slog.Logger
	sections []content.Section
	profile  *content.Profile
}

// New builds the gin engine with every public route mounted.
func New(d Deps) *gin.Engine {
	if d.Metrics == nil {
		d.Metrics = metrics.NoopRecorder{}
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	s := &Server{
		views:    d.Views,
		renderer: d.Renderer,
		metrics:  d.Metrics,
		ready:    d.Ready,
		log:      d.Log,
		sections: content.Sections(),
		profile:  content.Owner(),
	}

	r := gin.New()
	// ClientIP feeds the login limiter and the visitor hash, so forwarded
	// headers count only from configured proxies.
	var proxies []string
	if d.Config != nil {
		proxies = d.Config.HTTP.TrustedProxies
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		d.Log.Error("trusted proxies rejected, ignoring forwarded headers", "err", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.HTMLRender = d.Renderer
	r.Use(gin.Recovery(), RequestLogger(d.Log), SecurityHeaders())
	if d.Tracker != nil {
		r.Use(TrackVisits(d.Tracker))
	}

	r.StaticFS("/static", web.StaticFS())
	if d.Config != nil {
		r.Static("/Images", d.Config.Site.ImagesDir)
		r.Static("/assets", d.Config.Site.AssetsDir)
	}

	r.GET("/", s.index)
	r.GET("/privacy", s.privacy(d.Config))
	r.GET("/healthz", s.healthz)
	r.GET("/readyz", s.readyz)

	v := r.Group("/views/:id")
	v.POST("/theme", s.theme)
	v.POST("/menu", s.menu)
	v.POST("/goto/:section", s.goTo)

	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.HTTPHandler(d.Gatherer)))
	}
	return r
}

// render buffers the output so a failing template becomes a clean 500
// instead of a half-written page.
func (s *Server) render(c *gin.Context, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.renderer.Execute(&buf, name, data); err != nil {
		s.log.Error("render failed", "template", name, "err", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
