package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	pageViews    prom.Counter
	activeViews  prom.Gauge
	evicted      prom.Counter
	themeChanges *prom.CounterVec
	menuToggles  *prom.CounterVec
	navigations  *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		pageViews: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_views_total",
			Help:      "Full page loads, each of which starts a fresh view",
		}),
		activeViews: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "active_views",
			Help:      "Page views currently held in memory",
		}),
		evicted: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "evicted_views_total",
			Help:      "Page views dropped after going idle",
		}),
		themeChanges: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "theme_changes_total",
			Help:      "Theme changes by resulting theme",
		}, []string{"theme"}),
		menuToggles: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "menu_toggles_total",
			Help:      "Mobile menu toggles by resulting state",
		}, []string{"state"}),
		navigations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "navigations_total",
			Help:      "Section navigation requests by section and outcome",
		}, []string{"section", "result"}),
	}
	reg.MustRegister(pr.pageViews, pr.activeViews, pr.evicted, pr.themeChanges, pr.menuToggles, pr.navigations)
	return pr
}

func (p *PrometheusRecorder) IncPageView() { p.pageViews.Inc() }

func (p *PrometheusRecorder) SetActiveViews(n int) { p.activeViews.Set(float64(n)) }

func (p *PrometheusRecorder) IncEvictedViews(n int) { p.evicted.Add(float64(n)) }

func (p *PrometheusRecorder) IncThemeChange(dark bool) {
	theme := "light"
	if dark {
		theme = "dark"
	}
	p.themeChanges.WithLabelValues(theme).Inc()
}

func (p *PrometheusRecorder) IncMenuToggle(open bool) {
	state := "closed"
	if open {
		state = "open"
	}
	p.menuToggles.WithLabelValues(state).Inc()
}

// IncNavigation keeps label cardinality bounded: unknown ids share one label.
func (p *PrometheusRecorder) IncNavigation(section string, found bool) {
	result := "found"
	if !found {
		section = "unknown"
		result = "missing"
	}
	p.navigations.WithLabelValues(section, result).Inc()
}

// HTTPHandler returns an http.Handler that serves the metrics in g.
func HTTPHandler(g prom.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
