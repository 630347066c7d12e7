package view

// DarkClass is the marker the dark palette hangs off.
const DarkClass = "dark"

// Theme reflects a single light/dark flag onto a document root.
type Theme struct {
	dark bool
	root *Document
}

// NewTheme starts light: the marker is removed from root if present.
func NewTheme(root *Document) *Theme {
	t := &Theme{root: root}
	t.SetTheme(false)
	return t
}

// SetTheme applies the dark marker to the root when isDark is true and
// removes it otherwise.
func (t *Theme) SetTheme(isDark bool) {
	t.dark = isDark
	if isDark {
		t.root.AddClass(DarkClass)
	} else {
		t.root.RemoveClass(DarkClass)
	}
}

// Toggle flips the flag and returns the new value.
func (t *Theme) Toggle() bool {
	t.SetTheme(!t.dark)
	return t.dark
}

func (t *Theme) Dark() bool { return t.dark }

// Name is "dark" or "light".
func (t *Theme) Name() string {
	if t.dark {
		return "dark"
	}
	return "light"
}
