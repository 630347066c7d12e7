// Package content holds the portfolio copy. Everything here is compiled in
// and never changes at runtime; templates render each list in order.
package content

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section is a navigation anchor on the page.
type Section struct {
	ID    string
	Label string
}

type Social struct {
	Icon  string
	Href  string
	Label string
}

type Highlight struct {
	Icon        string
	Title       string
	Subtitle    string
	Description string
	Color       string
}

type Skill struct {
	Name       string
	Level      string
	Color      string
	Percentage int
}

type SkillCategory struct {
	Title  string
	Color  string
	Skills []Skill
}

type Project struct {
	Title       string
	Description string
	Image       string
	Preview     string // optional live demo
	Code        string
	Tech        []string
	Status      string
}

type Contact struct {
	Icon        string
	Title       string
	Value       string
	Description string
	Href        string
	Color       string
}

// Profile is everything the page shows about its owner.
type Profile struct {
	Name         string
	Role         string
	Greeting     string
	Intro        string
	Portrait     string
	AboutImage   string
	ResumePath   string
	HeroSocials  []Social
	Highlights   []Highlight
	Journey      string // markdown
	SkillGroups  []SkillCategory
	Projects     []Project
	Pitch        string
	Contacts     []Contact
	ResponseTime string
	CardSocials  []Social
	FooterLinks  []Social
	Copyright    string
	Technologies string
}

var sectionIDs = []string{"about", "experience", "projects", "contact"}

// Sections returns the fixed navigation set in page order.
func Sections() []Section {
	caser := cases.Title(language.English)
	out := make([]Section, 0, len(sectionIDs))
	for _, id := range sectionIDs {
		out = append(out, Section{ID: id, Label: caser.String(id)})
	}
	return out
}

// Owner returns the portfolio profile.
func Owner() *Profile {
	return &owner
}
