// Package web renders the portfolio pages and fragments.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"
	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin/render"
	"github.com/yuin/goldmark"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl templates/partials/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templatePatterns = []string{"*.tmpl", "partials/*.tmpl"}

const reloadDebounce = 300 * time.Millisecond

// Renderer holds the parsed template set. It satisfies gin's
// render.HTMLRender so handlers can call c.HTML directly.
type Renderer struct {
	fsys fs.FS
	dir  string
	tmpl atomic.Pointer[template.Template]
	log  *slog.Logger
}

// NewRenderer parses the embedded templates, or the ones under dir when it
// is set (dev mode, see Watch).
func NewRenderer(dir string, log *slog.Logger) (*Renderer, error) {
	if log == nil {
		log = slog.Default()
	}
	r := &Renderer{dir: dir, log: log}
	if dir != "" {
		r.fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, err
		}
		r.fsys = sub
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-parses the templates. The previous set stays live on error.
func (r *Renderer) Reload() error {
	t := template.New("root").Funcs(sprig.FuncMap()).Funcs(funcs())
	for _, p := range templatePatterns {
		if _, err := t.ParseFS(r.fsys, p); err != nil {
			return fmt.Errorf("parse templates %s: %w", p, err)
		}
	}
	r.tmpl.Store(t)
	return nil
}

// Instance implements render.HTMLRender.
func (r *Renderer) Instance(name string, data any) render.Render {
	return render.HTML{Template: r.tmpl.Load(), Name: name, Data: data}
}

// Execute writes the named template straight to w. Callers that must not
// send partial output buffer w themselves.
func (r *Renderer) Execute(w io.Writer, name string, data any) error {
	if err := r.tmpl.Load().ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// Watch re-parses on template changes until ctx ends. No-op for embedded
// templates.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.dir == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("template watcher: %w", err)
	}
	for _, d := range []string{r.dir, filepath.Join(r.dir, "partials")} {
		if err := w.Add(d); err != nil {
			w.Close()
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	go func() {
		defer w.Close()
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(ev.Name, ".tmpl") || ev.Op == fsnotify.Chmod {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					if err := r.Reload(); err != nil {
						r.log.Error("template reload failed", "err", err)
						return
					}
					r.log.Info("templates reloaded")
				})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				r.log.Warn("template watcher", "err", err)
			}
		}
	}()
	r.log.Info("watching templates", "dir", r.dir)
	return nil
}

// StaticFS serves the embedded css and client script.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

var md = goldmark.New()

// trustedURL only ever sees compiled-in links; html/template would
// otherwise rewrite tel: hrefs to #ZgotmplZ.
func funcs() template.FuncMap {
	return template.FuncMap{
		"markdown":   markdown,
		"title":      title,
		"stagger":    stagger,
		"initial":    initial,
		"pct":        func(n int) string { return fmt.Sprintf("%d%%", n) },
		"trustedURL": func(s string) template.URL { return template.URL(s) },
	}
}

// markdown renders trusted, compiled-in copy. Raw HTML in the source is
// dropped by goldmark's default renderer.
func markdown(s string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(s), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// stagger returns the CSS animation-delay for the i-th element of a list.
func stagger(base, step float64, i int) string {
	return fmt.Sprintf("%.2fs", base+step*float64(i))
}

// A Caser keeps state, so each call gets its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

func initial(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}
	return string(r)
}
