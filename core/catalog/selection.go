package catalog

import (
	"net/url"
	"strings"
)

// query-string parameters of the catalog pages
const (
	CategoryParam = "categoryId"
	ThemeParam    = "themeId"
	OrderingParam = "ordering"
)

type SortKey string

const (
	SortByCode SortKey = "formationId"
	SortByName SortKey = "name"

	DefaultSortKey = SortByCode
)

func (k SortKey) IsValid() bool { return k == SortByCode || k == SortByName }

// value returns the field compared by the sort; missing values compare as "".
func (k SortKey) value(f Formation) string {
	if k == SortByName {
		return f.Name
	}
	return f.Code
}

type SortDirection string

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

func (d SortDirection) flip() SortDirection {
	if d == Descending {
		return Ascending
	}
	return Descending
}

type FilterState string

const (
	NoFilter       FilterState = "noFilter"
	CategoryFilter FilterState = "categoryFilter"
	ThemeFilter    FilterState = "themeFilter"
)

// Selection is the filter and sort state of a catalog page. Empty ids mean "not set".
type Selection struct {
	CategoryID string        `json:"categoryId,omitempty"`
	ThemeID    string        `json:"themeId,omitempty"`
	SortKey    SortKey       `json:"sortKey"`
	Direction  SortDirection `json:"sortDirection"`
}

// DefaultSelection has no filter and sorts by formation code, ascending.
func DefaultSelection() Selection {
	return Selection{SortKey: DefaultSortKey, Direction: Ascending}
}

func (sel Selection) FilterState() FilterState {
	switch {
	case sel.ThemeID != "":
		return ThemeFilter
	case sel.CategoryID != "":
		return CategoryFilter
	default:
		return NoFilter
	}
}

// SelectCategory sets the category and resets the theme, which may not belong to it.
func SelectCategory(sel Selection, categoryID string) Selection {
	sel.CategoryID = categoryID
	sel.ThemeID = ""
	return sel
}

// SelectTheme sets the theme and re-derives the category from it.
// An unknown theme id clears the category.
func SelectTheme(sel Selection, themeID string, themes []Theme) Selection {
	sel.ThemeID = themeID
	sel.CategoryID = ""
	for _, t := range themes {
		if t.ID == themeID {
			sel.CategoryID = t.CategoryID
			break
		}
	}
	return sel
}

// ClearFilter drops both the category and the theme; the sort is kept.
func ClearFilter(sel Selection) Selection {
	sel.CategoryID = ""
	sel.ThemeID = ""
	return sel
}

// ToggleSort flips the direction when `key` is already the sort key,
// otherwise sorts by `key` ascending.
func ToggleSort(sel Selection, key SortKey) Selection {
	if key == sel.SortKey {
		sel.Direction = sel.Direction.flip()
		return sel
	}
	sel.SortKey = key
	sel.Direction = Ascending
	return sel
}

// Ordering renders the sort as an `ordering` value ("name", "-name", ...).
func (sel Selection) Ordering() string {
	key := sel.SortKey
	if !key.IsValid() {
		key = DefaultSortKey
	}
	if sel.Direction == Descending {
		return "-" + string(key)
	}
	return string(key)
}

// Encode writes the selection into query-string values, omitting unset ids.
func (sel Selection) Encode(v url.Values) {
	v.Del(CategoryParam)
	v.Del(ThemeParam)
	if sel.CategoryID != "" {
		v.Set(CategoryParam, sel.CategoryID)
	}
	if sel.ThemeID != "" {
		v.Set(ThemeParam, sel.ThemeID)
	}
	if sel.SortKey != DefaultSortKey || sel.Direction == Descending {
		v.Set(OrderingParam, sel.Ordering())
	} else {
		v.Del(OrderingParam)
	}
}

// ParseOrdering parses an `ordering` value; "-" prefix means descending.
// Unknown keys yield the default sort.
func ParseOrdering(s string) (SortKey, SortDirection) {
	s = strings.TrimSpace(s)
	dir := Ascending
	if strings.HasPrefix(s, "-") {
		dir = Descending
		s = s[1:] // drop "-"
	}
	key := SortKey(s)
	if !key.IsValid() {
		return DefaultSortKey, Ascending
	}
	return key, dir
}

// HydrateSelection rebuilds the initial selection of a page from its query string.
// A themeId resolving in the active set wins (its category is re-derived),
// then a resolving categoryId; anything else starts without filter.
func HydrateSelection(v url.Values, active ActiveSet) Selection {
	sel := DefaultSelection()
	sel.SortKey, sel.Direction = ParseOrdering(v.Get(OrderingParam))

	if themeID := strings.TrimSpace(v.Get(ThemeParam)); themeID != "" {
		if theme, ok := active.Theme(themeID); ok {
			return SelectTheme(sel, theme.ID, active.Themes)
		}
	}
	if catID := strings.TrimSpace(v.Get(CategoryParam)); catID != "" && active.HasCategory(catID) {
		return SelectCategory(sel, catID)
	}
	return sel
}
