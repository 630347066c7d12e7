package metrics

// Recorder defines the observability hooks for page views.
type Recorder interface {
	IncPageView()
	SetActiveViews(n int)
	IncEvictedViews(n int)
	IncThemeChange(dark bool)
	IncMenuToggle(open bool)
	IncNavigation(section string, found bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are off).
type NoopRecorder struct{}

func (NoopRecorder) IncPageView()               {}
func (NoopRecorder) SetActiveViews(int)         {}
func (NoopRecorder) IncEvictedViews(int)        {}
func (NoopRecorder) IncThemeChange(bool)        {}
func (NoopRecorder) IncMenuToggle(bool)         {}
func (NoopRecorder) IncNavigation(string, bool) {}
