package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marklaroya/portfolio/internal/config"
	"github.com/marklaroya/portfolio/internal/content"
	"github.com/marklaroya/portfolio/internal/view"
	"github.com/marklaroya/portfolio/internal/web"
)

// Events the client script listens for.
const (
	EventThemeChanged    = "themeChanged"
	EventScrollToSection = "scrollToSection"
)

func (s *Server) index(c *gin.Context) {
	v := s.views.New()
	s.metrics.IncPageView()
	s.metrics.SetActiveViews(s.views.Len())

	var page web.Page
	v.Do(func(v *view.View) { page = web.PageFor(v, s.sections, s.profile) })

	c.Header("Cache-Control", "no-store")
	s.render(c, http.StatusOK, web.PageIndex, page)
}

// lookup resolves the view in the path. Expired views make HTMX reload the
// page, which starts a fresh view.
func (s *Server) lookup(c *gin.Context) (*view.View, bool) {
	v, err := s.views.Get(c.Param("id"))
	if errors.Is(err, view.ErrViewNotFound) {
		c.Header("HX-Refresh", "true")
		c.String(http.StatusGone, "page expired, reloading")
		return nil, false
	}
	if err != nil {
		s.log.Error("view lookup", "err", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	return v, true
}

// theme sets the theme when the form carries dark=true|false and toggles it
// otherwise.
func (s *Server) theme(c *gin.Context) {
	var want *bool
	if raw, ok := c.GetPostForm("dark"); ok {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			c.String(http.StatusBadRequest, "dark must be true or false")
			return
		}
		want = &b
	}

	v, ok := s.lookup(c)
	if !ok {
		return
	}

	var (
		dark bool
		name string
		nav  web.Nav
	)
	v.Do(func(v *view.View) {
		if want != nil {
			v.Theme.SetTheme(*want)
		} else {
			v.Theme.Toggle()
		}
		dark, name = v.Theme.Dark(), v.Theme.Name()
		nav = web.NavFor(v, s.sections)
	})
	s.metrics.IncThemeChange(dark)
	s.log.Debug("theme changed", "view", v.ID, "theme", name, "age", time.Since(v.Created).Round(time.Second))

	s.trigger(c, EventThemeChanged, gin.H{"dark": dark})
	s.render(c, http.StatusOK, web.FragmentNav, nav)
}

func (s *Server) menu(c *gin.Context) {
	v, ok := s.lookup(c)
	if !ok {
		return
	}
	var (
		open bool
		nav  web.Nav
	)
	v.Do(func(v *view.View) {
		open = v.Nav.ToggleMenu()
		nav = web.NavFor(v, s.sections)
	})
	s.metrics.IncMenuToggle(open)
	s.render(c, http.StatusOK, web.FragmentNav, nav)
}

// goTo closes the menu and, when the section exists, asks the client to
// scroll to it. Unknown sections are not an error.
func (s *Server) goTo(c *gin.Context) {
	v, ok := s.lookup(c)
	if !ok {
		return
	}
	id := c.Param("section")

	var (
		section content.Section
		found   bool
		nav     web.Nav
	)
	v.Do(func(v *view.View) {
		section, found = v.Nav.GoTo(id)
		nav = web.NavFor(v, s.sections)
	})
	s.metrics.IncNavigation(id, found)

	if found {
		s.trigger(c, EventScrollToSection, gin.H{"id": section.ID})
	} else {
		s.log.Debug("unknown section", "section", id)
	}
	s.render(c, http.StatusOK, web.FragmentNav, nav)
}

func (s *Server) trigger(c *gin.Context, event string, detail any) {
	b, err := json.Marshal(map[string]any{event: detail})
	if err != nil {
		s.log.Error("encode HX-Trigger", "event", event, "err", err)
		return
	}
	c.Header("HX-Trigger", string(b))
}

func (s *Server) privacy(cfg *config.Config) gin.HandlerFunc {
	retention := "12 months"
	if cfg != nil {
		retention = humanDuration(cfg.Analytics.Retention)
	}
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, web.PagePrivacy, gin.H{"Retention": retention})
	}
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) readyz(c *gin.Context) {
	if s.ready != nil {
		if err := s.ready(c.Request.Context()); err != nil {
			s.log.Warn("not ready", "err", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "views": s.views.Len()})
}

func humanDuration(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	switch {
	case days >= 30 && days%365 == 0:
		return plural(days/365, "year")
	case days >= 30 && days%30 == 0:
		return plural(days/30, "month")
	case days >= 1:
		return plural(days, "day")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
