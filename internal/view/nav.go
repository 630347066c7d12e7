package view

import "github.com/marklaroya/portfolio/internal/content"

// Navigator owns the mobile menu flag and resolves section anchors.
//
// The menu has two states. The toggle button moves between them and every
// GoTo closes it; nothing else changes it.
type Navigator struct {
	open     bool
	sections map[string]content.Section
}

func NewNavigator(sections []content.Section) *Navigator {
	n := &Navigator{sections: make(map[string]content.Section, len(sections))}
	for _, s := range sections {
		n.sections[s.ID] = s
	}
	return n
}

// ToggleMenu flips the menu and returns whether it is now open.
func (n *Navigator) ToggleMenu() bool {
	n.open = !n.open
	return n.open
}

func (n *Navigator) MenuOpen() bool { return n.open }

// GoTo looks up the section to scroll to. An unknown id is not an error:
// found is false and the caller skips the scroll. The menu is closed either way.
func (n *Navigator) GoTo(id string) (section content.Section, found bool) {
	section, found = n.sections[id]
	n.open = false
	return section, found
}
