package catalog

import "strings"

// Mode selects which catalog is shown: in-person ("standard") or online offerings.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeOnline   Mode = "online"
)

// ParseMode defaults to ModeStandard for anything but "online".
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeOnline)) {
		return ModeOnline
	}
	return ModeStandard
}

func (m Mode) IsOnline() bool { return m == ModeOnline }

type Category struct {
	ID       string `json:"id" yaml:"id" db:"id"`
	Name     string `json:"name" yaml:"name" db:"name"`
	IsOnline bool   `json:"isOnline" yaml:"isOnline" db:"is_online"`
}

type Theme struct {
	ID         string `json:"id" yaml:"id" db:"id"`
	Name       string `json:"name" yaml:"name" db:"name"`
	CategoryID string `json:"categoryId" yaml:"categoryId" db:"category_id"`
}

// Formation is a course offering.
// Prices and duration are kept as stored (free text); see the reservation package for parsing.
type Formation struct {
	ID                  string `json:"id" yaml:"id"`
	Name                string `json:"name" yaml:"name"`
	Code                string `json:"formationId" yaml:"formationId"`
	ThemeID             string `json:"themeId" yaml:"themeId"`
	IsOnline            bool   `json:"isOnline" yaml:"isOnline"`
	PricePerMonth       string `json:"pricePerMonth,omitempty" yaml:"pricePerMonth,omitempty"`
	DurationMonths      string `json:"durationMonths,omitempty" yaml:"durationMonths,omitempty"`
	PriceWithLodging    string `json:"prixAvecHebergement,omitempty" yaml:"prixAvecHebergement,omitempty"`
	PriceWithoutLodging string `json:"prixSansHebergement,omitempty" yaml:"prixSansHebergement,omitempty"`
}

// Catalog is a fully materialised snapshot of the three catalog collections.
type Catalog struct {
	Categories []Category  `json:"categories" yaml:"categories"`
	Themes     []Theme     `json:"themes" yaml:"themes"`
	Formations []Formation `json:"formations" yaml:"formations"`
}

// ActiveSet holds the categories and themes that have at least one formation in a mode.
type ActiveSet struct {
	Categories []Category `json:"activeCategories"`
	Themes     []Theme    `json:"activeThemes"`
}

func (as ActiveSet) HasCategory(id string) bool {
	for _, c := range as.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (as ActiveSet) Theme(id string) (Theme, bool) {
	for _, t := range as.Themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// CatalogView is what a catalog page renders for a mode and a selection.
type CatalogView struct {
	Mode        Mode        `json:"mode"`
	Selection   Selection   `json:"selection"`
	FilterState FilterState `json:"filterState"`
	ActiveSet
	Formations []Formation `json:"formations"`
}
