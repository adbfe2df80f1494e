// Package content serves the read-only directories shown on the site:
// announcements, events, food, discounts and study spaces.
package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"aus-site-backend/internal/i18n"
)

//go:embed content.yaml
var defaultContent []byte

// Localized is a string given in both site languages.
type Localized struct {
	EN string `yaml:"en" json:"en"`
	FR string `yaml:"fr" json:"fr"`
}

// In returns the text for lang, falling back to English.
func (l Localized) In(lang i18n.Language) string {
	if lang == i18n.French && l.FR != "" {
		return l.FR
	}
	return l.EN
}

// FoodType tags who runs a food option.
type FoodType string

const (
	FoodSSMU        FoodType = "SSMU"
	FoodMcGill      FoodType = "McGill"
	FoodIndependent FoodType = "Independent"
)

// DiscountType tags how a discount is offered.
type DiscountType string

const (
	DiscountFree     DiscountType = "free"
	DiscountPaid     DiscountType = "paid"
	DiscountDiscount DiscountType = "discount"
)

type announcement struct {
	Date        string    `yaml:"date"`
	Title       Localized `yaml:"title"`
	Description Localized `yaml:"description"`
}

type event struct {
	Title       Localized `yaml:"title"`
	Description Localized `yaml:"description"`
	When        Localized `yaml:"when"`
	Location    string    `yaml:"location"`
}

// Announcement is a news item rendered in one language.
type Announcement struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Event is an upcoming event rendered in one language.
type Event struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	When        string `json:"when"`
	Location    string `json:"location"`
}

// FoodOption is an affordable place to eat.
type FoodOption struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Address     string   `yaml:"address" json:"address"`
	PriceRange  string   `yaml:"price_range" json:"priceRange,omitempty"`
	Type        FoodType `yaml:"type" json:"type"`
}

// Discount is a student discount or free service.
type Discount struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description" json:"description"`
	Type        DiscountType `yaml:"type" json:"type"`
	Note        string       `yaml:"note" json:"note,omitempty"`
}

// StudySpace is a place to study on campus.
type StudySpace struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Address     string `yaml:"address" json:"address"`
	Capacity    string `yaml:"capacity" json:"capacity,omitempty"`
}

type dataset struct {
	Announcements []announcement `yaml:"announcements"`
	Events        []event        `yaml:"events"`
	Food          []FoodOption   `yaml:"food"`
	Discounts     []Discount     `yaml:"discounts"`
	StudySpaces   []StudySpace   `yaml:"study_spaces"`
}

// Catalog is the immutable set of site directories.
type Catalog struct {
	data dataset
}

// Load decodes the embedded dataset.
func Load() (*Catalog, error) {
	return Parse(defaultContent)
}

// Parse decodes a YAML dataset and checks its tags.
func Parse(raw []byte) (*Catalog, error) {
	var d dataset
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}
	for _, f := range d.Food {
		if !f.Type.Valid() {
			return nil, fmt.Errorf("food option %q has unknown type %q", f.Name, f.Type)
		}
	}
	for _, x := range d.Discounts {
		if !x.Type.Valid() {
			return nil, fmt.Errorf("discount %q has unknown type %q", x.Name, x.Type)
		}
	}
	return &Catalog{data: d}, nil
}

// Valid reports whether t is a known food type.
func (t FoodType) Valid() bool {
	switch t {
	case FoodSSMU, FoodMcGill, FoodIndependent:
		return true
	}
	return false
}

// Valid reports whether t is a known discount type.
func (t DiscountType) Valid() bool {
	switch t {
	case DiscountFree, DiscountPaid, DiscountDiscount:
		return true
	}
	return false
}

// Announcements returns the news items in lang.
func (c *Catalog) Announcements(lang i18n.Language) []Announcement {
	out := make([]Announcement, 0, len(c.data.Announcements))
	for _, a := range c.data.Announcements {
		out = append(out, Announcement{
			Date:        a.Date,
			Title:       a.Title.In(lang),
			Description: a.Description.In(lang),
		})
	}
	return out
}

// Events returns the upcoming events in lang.
func (c *Catalog) Events(lang i18n.Language) []Event {
	out := make([]Event, 0, len(c.data.Events))
	for _, e := range c.data.Events {
		out = append(out, Event{
			Title:       e.Title.In(lang),
			Description: e.Description.In(lang),
			When:        e.When.In(lang),
			Location:    e.Location,
		})
	}
	return out
}

// Food returns the food options of type t, or all of them when t is empty.
func (c *Catalog) Food(t FoodType) []FoodOption {
	out := make([]FoodOption, 0, len(c.data.Food))
	for _, f := range c.data.Food {
		if t == "" || f.Type == t {
			out = append(out, f)
		}
	}
	return out
}

// FoodByType groups the food options by type.
func (c *Catalog) FoodByType() map[FoodType][]FoodOption {
	out := make(map[FoodType][]FoodOption)
	for _, f := range c.data.Food {
		out[f.Type] = append(out[f.Type], f)
	}
	return out
}

// Discounts returns the discounts of type t, or all of them when t is empty.
func (c *Catalog) Discounts(t DiscountType) []Discount {
	out := make([]Discount, 0, len(c.data.Discounts))
	for _, d := range c.data.Discounts {
		if t == "" || d.Type == t {
			out = append(out, d)
		}
	}
	return out
}

// StudySpaces returns every study space.
func (c *Catalog) StudySpaces() []StudySpace {
	out := make([]StudySpace, len(c.data.StudySpaces))
	copy(out, c.data.StudySpaces)
	return out
}
