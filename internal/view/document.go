package view

import "strings"

// Document is the presentation root of a page view. Its classes end up on
// the <html> element and the stylesheet keys off them.
type Document struct {
	classes []string
}

func NewDocument(classes ...string) *Document {
	d := &Document{}
	for _, c := range classes {
		d.AddClass(c)
	}
	return d
}

func (d *Document) AddClass(class string) {
	if class == "" || d.HasClass(class) {
		return
	}
	d.classes = append(d.classes, class)
}

func (d *Document) RemoveClass(class string) {
	for i, c := range d.classes {
		if c == class {
			d.classes = append(d.classes[:i], d.classes[i+1:]...)
			return
		}
	}
}

func (d *Document) HasClass(class string) bool {
	for _, c := range d.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Class renders the class attribute value.
func (d *Document) Class() string {
	return strings.Join(d.classes, " ")
}
